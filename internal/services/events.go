package services

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventPublisher delivers catalog events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CatalogEvent is published after every successful mutation.
type CatalogEvent struct {
	Type string    `json:"type"` // e.g. "item.created"
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

// publishEvent is best effort: a broker failure is logged and never fails
// the request that caused it.
func publishEvent(p EventPublisher, eventType, id string) {
	if p == nil {
		return
	}

	body, err := json.Marshal(CatalogEvent{Type: eventType, ID: id, At: time.Now().UTC()})
	if err != nil {
		log.WithError(err).Warn("Failed to marshal catalog event")
		return
	}
	if err := p.Publish(eventType, body); err != nil {
		log.WithError(err).WithFields(log.Fields{"event": eventType, "id": id}).Warn("Failed to publish catalog event")
		return
	}
	log.WithFields(log.Fields{"event": eventType, "id": id}).Debug("Published catalog event")
}
