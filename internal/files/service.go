package files

import (
	"context"
	"errors"
	"fmt"
)

// Authorizer is the slice of the access layer the lifecycle needs.
type Authorizer interface {
	AssignOwner(ctx context.Context, userID, fileUUID string) error
	RevokeAllForFile(ctx context.Context, fileUUID string) error
}

// Service orders record persistence against tuple writes so a file is
// never reachable without an owner and never deleted while its tuples
// survive.
type Service struct {
	store Store
	authz Authorizer
}

func NewService(store Store, authz Authorizer) *Service {
	return &Service{store: store, authz: authz}
}

// Create durably writes the record, then the owner tuple. The two are
// not atomic across stores; when the tuple write fails the record is
// rolled back so no ownerless file is left behind, and the store error
// is surfaced.
func (s *Service) Create(ctx context.Context, ownerID string, p Payload) (*File, error) {
	f, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.authz.AssignOwner(ctx, ownerID, f.UUID); err != nil {
		if derr := s.store.Delete(ctx, f.UUID); derr != nil {
			// record survives with no owner tuple; both faults matter
			return nil, fmt.Errorf("owner assignment failed and rollback failed: %w", errors.Join(err, derr))
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, uuid string) (*File, error) {
	return s.store.Get(ctx, uuid)
}

func (s *Service) Update(ctx context.Context, uuid string, p Payload) (*File, error) {
	return s.store.Update(ctx, uuid, p)
}

func (s *Service) List(ctx context.Context, uuids []string) ([]*File, error) {
	return s.store.List(ctx, uuids)
}

// Delete revokes the file's tuples first and aborts when that fails;
// the record is only removed once the store has dropped every relation
// referencing it.
func (s *Service) Delete(ctx context.Context, uuid string) error {
	if _, err := s.store.Get(ctx, uuid); err != nil {
		return err
	}
	if err := s.authz.RevokeAllForFile(ctx, uuid); err != nil {
		return err
	}
	return s.store.Delete(ctx, uuid)
}
