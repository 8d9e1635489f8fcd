package memory

import (
	"context"
	"testing"
)

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Save(ctx, map[string]string{"token": "t", "user": "{}"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "token", "user", "missing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got["token"] != "t" {
		t.Fatalf("unexpected values %v", got)
	}

	if err := s.Remove(ctx, "token", "missing"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = s.Load(ctx, "token", "user")
	if _, ok := got["token"]; ok {
		t.Fatal("expected token to be removed")
	}
	if got["user"] != "{}" {
		t.Fatal("expected user to remain")
	}
}
