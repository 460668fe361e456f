package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = time.Hour

var (
	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSecret is returned when the signing secret is not configured.
	ErrMissingSecret = errors.New("token signing secret is not configured")
)

// Identity is the decoded token payload attached to an authenticated request.
type Identity struct {
	SubjectID string `json:"_id"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Claims is the JWT payload.
type Claims struct {
	SubjectID string `json:"_id"`
	IsAdmin   bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// Tokens issues and verifies HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a Tokens signing with secret. An empty secret is an error.
func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token for subjectID that expires after TokenTTL.
func (t *Tokens) Issue(subjectID string, isAdmin bool) (string, error) {
	now := t.now()
	claims := &Claims{
		SubjectID: subjectID,
		IsAdmin:   isAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   subjectID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns the identity it carries.
func (t *Tokens) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SubjectID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{SubjectID: claims.SubjectID, IsAdmin: claims.IsAdmin}, nil
}
