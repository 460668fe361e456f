package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"shelves/internal/config"
	"shelves/internal/credentials"
	"shelves/internal/server"
	"shelves/internal/services"
	"shelves/pkg/logger"
	"shelves/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	l := logger.Configure(os.Stdout, cfg.AppName, cfg.Env)

	ctx := context.Background()

	// --- Credentials ---
	tokens, err := credentials.NewTokens(cfg.JWTSecret)
	if err != nil {
		l.Fatalf("Failed to initialize token issuer: %v", err)
	}
	hasher := credentials.NewHasher(credentials.HashCost)

	// --- Database ---
	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		l.Fatalf("Failed to open %s store: %v", cfg.DatabaseDriver, err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			l.WithError(err).Warn("Error closing store")
		}
	}()
	l.WithField("driver", cfg.DatabaseDriver).Info("Store opened")

	// --- RabbitMQ (optional) ---
	deps := server.Deps{Store: store, Tokens: tokens, Hasher: hasher, Logger: l}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			l.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		deps.Events = mqClient

		if err := mqClient.ConsumeCatalogEvents(auditEvent(l)); err != nil {
			l.WithError(err).Error("Failed to start catalog event consumer")
		}
	} else {
		l.Info("RABBITMQ_URL not set; catalog events are disabled")
	}

	app := server.New(cfg.AppName, deps)

	if cfg.SeedAdmin() {
		if err := app.Users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			l.Fatalf("Failed to seed admin user: %v", err)
		}
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		l.WithField("port", cfg.Port).Info("Starting server")
		if err := app.Listen(cfg.Port); err != nil {
			l.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	l.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		l.WithError(err).Error("Error during Fiber shutdown")
	}
	l.Info("Server gracefully stopped")
}

// auditEvent writes each received catalog event to the log. Undecodable
// messages are rejected.
func auditEvent(l *log.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.CatalogEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode catalog event: %w", err)
		}
		if event.Type == "" || event.ID == "" {
			return fmt.Errorf("catalog event is missing type or id")
		}
		l.WithFields(log.Fields{
			"audit":       true,
			"event":       event.Type,
			"resource_id": event.ID,
			"at":          event.At.Format(time.RFC3339),
			"routing_key": msg.RoutingKey,
		}).Info("Catalog event")
		return nil
	}
}
