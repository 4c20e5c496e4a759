package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
)

const (
	VisitorCookie  = "user_id"
	LastCityCookie = "last_city"

	VisitorTTL  = 365 * 24 * time.Hour
	LastCityTTL = 30 * 24 * time.Hour
)

// Policy assigns opaque visitor identifiers. An identifier only groups
// history rows; it is never validated server-side and a forged value is
// treated the same as a real one.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// VisitorID reuses a non-empty existing identifier, otherwise generates a
// fresh 128-bit random token encoded as a 32-character hex string.
func (p *Policy) VisitorID(existing string) (string, error) {
	if existing != "" {
		return existing, nil
	}

	token := make([]byte, 16)
	if _, err := rand.Read(token); err != nil {
		return "", errors.Wrap(err, "generate visitor token")
	}

	return hex.EncodeToString(token), nil
}
