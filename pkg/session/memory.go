package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process with expiry.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store whose entries expire after ttl of inactivity.
// A ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	value, found := m.cache.Get(id)
	if !found {
		return Session{}, ErrNotFound
	}
	s, ok := value.(Session)
	if !ok {
		return Session{}, ErrNotFound
	}
	s.State = s.State.Clone()
	return s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validID(s.ID); err != nil {
		return err
	}
	s.State = s.State.Clone()
	s.UpdatedAt = time.Now().UTC()
	m.cache.Set(s.ID, s, m.ttl)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.cache.Delete(id)
	return nil
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	return m.cache.ItemCount()
}
