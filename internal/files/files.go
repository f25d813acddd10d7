// Package files owns the file metadata records and the lifecycle glue
// that keeps their authorization tuples in step: owner assignment on
// create (with rollback when the tuple write fails) and tuple revocation
// before delete.
package files

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a uuid with no record behind it.
var ErrNotFound = errors.New("file not found")

// File is the persisted metadata for one file. The binary content lives
// elsewhere; ContentRef is an opaque handle into that storage.
type File struct {
	UUID       string    `json:"uuid"`
	Name       string    `json:"name"`
	ContentRef string    `json:"content_ref,omitempty"`
	Size       int64     `json:"size,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Payload carries the caller-supplied fields for create and update.
type Payload struct {
	Name       string `json:"name"`
	ContentRef string `json:"content_ref,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// Store persists file records.
type Store interface {
	Create(ctx context.Context, p Payload) (*File, error)
	Get(ctx context.Context, uuid string) (*File, error)
	Update(ctx context.Context, uuid string, p Payload) (*File, error)
	Delete(ctx context.Context, uuid string) error
	// List resolves the given uuids, silently skipping ones that no
	// longer exist (the tuple store may momentarily be ahead of us).
	List(ctx context.Context, uuids []string) ([]*File, error)
}
