package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookline/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session is unknown or has expired.
var ErrNotFound = errors.New("session not found or expired")

// Store keeps search sessions so follow-up calls can omit parameters already
// supplied. Implementations are injected into the HTTP layer; the negotiation
// core never touches sessions.
type Store interface {
	Put(ctx context.Context, s *models.SearchSession) error
	Get(ctx context.Context, sessionID string) (*models.SearchSession, error)
	// Last returns the most recently stored session, for callers that
	// follow up without repeating the session id.
	Last(ctx context.Context) (*models.SearchSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// NewSessionID derives a fresh id from the current timestamp, with a uuid
// fragment to break same-millisecond collisions.
func NewSessionID() string {
	return fmt.Sprintf("search-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
