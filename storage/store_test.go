package storage

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStorePrefixIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save", "local.yaml")

	a, err := Open(path, "evac.")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := a.Set("best", "4"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	b, err := Open(path, "other.")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := b.Get("best"); ok {
		t.Error("other namespace should not see evac keys")
	}
	if err := b.Set("best", "9"); err != nil {
		t.Fatal(err)
	}

	a2, err := Open(path, "evac.")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := a2.Get("best"); !ok || v != "4" {
		t.Errorf("Get(best) = %q, %v; want 4, true", v, ok)
	}
	if keys := a2.Keys(); len(keys) != 1 || keys[0] != "best" {
		t.Errorf("Keys() = %v, want [best]", keys)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "other.best") || !strings.Contains(string(raw), "evac.best") {
		t.Errorf("file lost a namespace:\n%s", raw)
	}
}

func TestStoreDelete(t *testing.T) {
	s, err := Open("", "p.")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
	s.Set("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("key still present after Delete")
	}
}

func TestUserIDStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	s, err := Open(path, "evac.")
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.UserID(rand.New(rand.NewSource(1)))
	if err != nil || len(id) != 16 {
		t.Fatalf("UserID = %q, %v", id, err)
	}

	reopened, err := Open(path, "evac.")
	if err != nil {
		t.Fatal(err)
	}
	again, err := reopened.UserID(rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("UserID changed across opens: %q != %q", again, id)
	}
}

func TestOpenBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	if err := os.WriteFile(path, []byte("- not\n- a map\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, "p."); err == nil {
		t.Error("expected parse error")
	}
}
