package session_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/selection"
	"github.com/goliatone/go-multiselect/pkg/session"
)

func runStoreTests(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Run("round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		state := selection.NewState(selection.FormData{"tags": []any{"x", 2}})
		state = selection.Reduce(selection.EventSearch, selection.Payload{FieldName: "tags[]", Query: "ab"}, state)
		s := session.New(state)

		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
		loaded, err := store.Load(ctx, s.ID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if loaded.ID != s.ID {
			t.Fatalf("id mismatch: %s vs %s", loaded.ID, s.ID)
		}
		if !loaded.State.IsSelected("tags[]", "x") || !loaded.State.IsSelected("tags[]", "2") {
			t.Fatalf("selections lost: %#v", loaded.State.Data)
		}
		if loaded.State.Query("tags[]") != "ab" {
			t.Fatalf("query lost: %#v", loaded.State.Queries)
		}
		if loaded.UpdatedAt.IsZero() {
			t.Fatalf("expected UpdatedAt to be set")
		}
	})

	t.Run("missing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Load(context.Background(), session.NewID())
		if !errors.Is(err, session.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		s := session.New(selection.NewState(nil))
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Delete(ctx, s.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Load(ctx, s.ID); !errors.Is(err, session.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		store := newStore(t)
		if err := store.Save(context.Background(), session.Session{}); err == nil {
			t.Fatalf("expected error for empty id")
		}
	})

	t.Run("results survive", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		state := selection.NewState(nil)
		state.Results = map[string][]option.Option{"city": {{Label: "Bern", Value: "brn"}}}
		s := session.New(state)
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
		loaded, err := store.Load(ctx, s.ID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got := option.Labels(loaded.State.Results["city"]); len(got) != 1 || got[0] != "Bern" {
			t.Fatalf("results lost: %v", got)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) session.Store {
		return session.NewMemoryStore(time.Minute)
	})
}

func TestMemoryStore_IsolatesState(t *testing.T) {
	store := session.NewMemoryStore(0)
	ctx := context.Background()
	s := session.New(selection.NewState(selection.FormData{"tags": []any{"x"}}))
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.State.Data["tags"] = append(s.State.Data["tags"].([]any), "leak")
	loaded, _ := store.Load(ctx, s.ID)
	if loaded.State.IsSelected("tags[]", "leak") {
		t.Fatalf("store shares state with caller")
	}
	if store.Len() != 1 {
		t.Fatalf("expected one session, got %d", store.Len())
	}
}

func TestMemoryStore_Expires(t *testing.T) {
	store := session.NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()
	s := session.New(selection.NewState(nil))
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, err := store.Load(ctx, s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping redis store tests: REDIS_ADDR not set")
	}
	probe, err := session.NewRedisStore(context.Background(), session.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("skipping redis store tests: %v", err)
	}
	_ = probe.Close()

	runStoreTests(t, func(t *testing.T) session.Store {
		store, err := session.NewRedisStore(context.Background(), session.RedisConfig{
			Addr:      addr,
			KeyPrefix: "multiselect-test:",
			TTL:       time.Minute,
		})
		if err != nil {
			t.Fatalf("NewRedisStore: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestLoadOrNew(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	ctx := context.Background()
	initial := selection.NewState(selection.FormData{"city": "ber"})

	fresh, err := session.LoadOrNew(ctx, store, "", initial)
	if err != nil || fresh.ID == "" {
		t.Fatalf("expected fresh session, got %+v (err %v)", fresh, err)
	}
	if !fresh.State.IsSelected("city", "ber") {
		t.Fatalf("fresh session not seeded")
	}

	unknown, err := session.LoadOrNew(ctx, store, "nope", initial)
	if err != nil || unknown.ID == "nope" {
		t.Fatalf("unknown id should start a new session, got %+v (err %v)", unknown, err)
	}

	if err := store.Save(ctx, fresh); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := session.LoadOrNew(ctx, store, fresh.ID, selection.NewState(nil))
	if err != nil || again.ID != fresh.ID {
		t.Fatalf("expected stored session, got %+v (err %v)", again, err)
	}
}
