package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken signals a malformed, badly signed or expired token.
var ErrInvalidToken = errors.New("token: invalid or expired token")

// Claims is the courier identity carried inside a bearer token.
type Claims struct {
	CourierID int64
	Username  string
}

// Manager issues and verifies HMAC-signed bearer tokens. Tokens are
// stateless: there is no revocation list, expiry is the only invalidation.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token embedding the courier identity.
func (m *Manager) Issue(courierID int64, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"courier_id": courierID,
		"username":   username,
		"exp":        now.Add(m.ttl).Unix(),
		"iat":        now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (m *Manager) Verify(raw string) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// numbers decode as float64 from JSON claims
	id, ok := claims["courier_id"].(float64)
	if !ok || id <= 0 {
		return nil, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{CourierID: int64(id), Username: username}, nil
}
