package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		if err := store.Save(ctx, map[string]string{"token": "abc", "user": `{"name":"Demo"}`}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.Load(ctx, "token", "user", "other")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got["token"] != "abc" || got["user"] != `{"name":"Demo"}` || len(got) != 2 {
			t.Fatalf("unexpected values %v", got)
		}
	})

	t.Run("save overwrites", func(t *testing.T) {
		if err := store.Save(ctx, map[string]string{"token": "def"}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, _ := store.Load(ctx, "token")
		if got["token"] != "def" {
			t.Fatalf("expected overwritten token, got %q", got["token"])
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := store.Remove(ctx, "token", "user"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		got, _ := store.Load(ctx, "token", "user")
		if len(got) != 0 {
			t.Fatalf("expected empty state, got %v", got)
		}
	})

	t.Run("load without keys", func(t *testing.T) {
		got, err := store.Load(ctx)
		if err != nil || len(got) != 0 {
			t.Fatalf("unexpected result %v err=%v", got, err)
		}
	})
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Save(context.Background(), map[string]string{"token": "persisted"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	store.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	got, _ := reopened.Load(context.Background(), "token")
	if got["token"] != "persisted" {
		t.Fatalf("expected persisted token, got %v", got)
	}
}
