package users

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryDirectoryLookup(t *testing.T) {
	d := NewMemoryDirectory(Principal{ID: "1", Name: "alice"})

	p, err := d.Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Name != "alice" {
		t.Fatalf("Name = %q, want alice", p.Name)
	}

	if _, err := d.Lookup(context.Background(), "404"); !errors.Is(err, ErrUnknownPrincipal) {
		t.Fatalf("Lookup(404) = %v, want ErrUnknownPrincipal", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	data := `[{"id":"1","name":"alice"},{"id":"2","name":"bob","email":"bob@example.com"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	p, err := d.Lookup(context.Background(), "2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Email != "bob@example.com" {
		t.Fatalf("Email = %q", p.Email)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("LoadFile on a missing path succeeded")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile on malformed JSON succeeded")
	}
}
