// Package users resolves local principal identifiers. The authorization
// core never owns user records; it only needs to confirm that a grant
// target exists before tuples are written on its behalf.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrUnknownPrincipal reports a user id that does not resolve. A grant
// batch hitting this error is aborted with zero tuples written.
var ErrUnknownPrincipal = errors.New("unknown principal")

type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Directory looks principals up by id.
type Directory interface {
	Lookup(ctx context.Context, id string) (Principal, error)
}

// MemoryDirectory is a map-backed Directory, seeded at startup or by
// tests.
type MemoryDirectory struct {
	mu   sync.RWMutex
	byID map[string]Principal
}

func NewMemoryDirectory(seed ...Principal) *MemoryDirectory {
	d := &MemoryDirectory{byID: make(map[string]Principal, len(seed))}
	for _, p := range seed {
		d.byID[p.ID] = p
	}
	return d
}

func (d *MemoryDirectory) Add(p Principal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[p.ID] = p
}

func (d *MemoryDirectory) Lookup(ctx context.Context, id string) (Principal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.byID[id]
	if !ok {
		return Principal{}, fmt.Errorf("%w: %q", ErrUnknownPrincipal, id)
	}
	return p, nil
}

// LoadFile reads a JSON array of principals from path into a
// MemoryDirectory.
func LoadFile(path string) (*MemoryDirectory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var seed []Principal
	if err := json.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return NewMemoryDirectory(seed...), nil
}
