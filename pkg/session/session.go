package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-multiselect/pkg/selection"
)

// DefaultTTL bounds how long an idle session survives.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Session is the persisted state of one widget instance.
type Session struct {
	ID        string          `json:"id"`
	State     selection.State `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store loads and saves sessions. Implementations are safe for concurrent
// use. Save refreshes the expiry.
type Store interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a random session id.
func NewID() string {
	return uuid.NewString()
}

// New starts a session around state with a fresh id.
func New(state selection.State) Session {
	return Session{
		ID:        NewID(),
		State:     state.Clone(),
		UpdatedAt: time.Now().UTC(),
	}
}

// LoadOrNew loads id, or starts a new session seeded with initial when id is
// empty or unknown.
func LoadOrNew(ctx context.Context, store Store, id string, initial selection.State) (Session, error) {
	if id == "" {
		return New(initial), nil
	}
	s, err := store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(initial), nil
	}
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

func validID(id string) error {
	if id == "" {
		return errors.New("session: id is required")
	}
	return nil
}
