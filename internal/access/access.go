// Package access implements the authorization operations over the
// relationship-tuple store: checks, listings, grants and the lifecycle
// hooks that keep tuple state in step with file records.
//
// The package returns decisions, not denials: a false check result is a
// plain boolean and enforcement (403s and friends) belongs to the caller.
// Store failures propagate wrapped with the originating operation's name;
// nothing is swallowed or retried here.
package access

import (
	"context"
	"fmt"

	"github.com/filehub/filehub-go/internal/authz"
	"github.com/filehub/filehub-go/internal/identity"
	"github.com/filehub/filehub-go/internal/relation"
	"github.com/filehub/filehub-go/internal/users"
)

// Assignment pairs a local user id with the relation to grant or revoke.
type Assignment struct {
	UserID   string `json:"user_id"`
	Relation string `json:"relation"`
}

// RelationSummary echoes the probed pair alongside the per-relation
// results so callers can trace which identifiers the store was asked
// about.
type RelationSummary struct {
	User      string          `json:"user"`
	Object    string          `json:"object"`
	Relations map[string]bool `json:"relations"`
}

// Service executes authorization operations against one tuple store.
// Each operation is a single remote round trip (grant and revoke batch
// their tuples into one write). The zero value is not usable; construct
// with New.
type Service struct {
	store authz.TupleStore
	dir   users.Directory
}

func New(store authz.TupleStore, dir users.Directory) *Service {
	return &Service{store: store, dir: dir}
}

// CheckAccess reports whether userID holds rel on the file. The store's
// decision is returned verbatim; there is no local override.
func (s *Service) CheckAccess(ctx context.Context, userID string, rel relation.Relation, fileUUID string) (bool, error) {
	if _, err := relation.Parse(rel.String()); err != nil {
		return false, err
	}
	ok, err := s.store.Check(ctx, identity.Principal(userID).String(), rel.String(), identity.File(fileUUID).String())
	if err != nil {
		return false, fmt.Errorf("check_access: %w", err)
	}
	return ok, nil
}

// ListAccessibleFiles returns the uuids of every file on which userID
// holds rel. The result is an unordered set; the store guarantees no
// ordering and none is imposed here.
func (s *Service) ListAccessibleFiles(ctx context.Context, userID string, rel relation.Relation) ([]string, error) {
	if _, err := relation.Parse(rel.String()); err != nil {
		return nil, err
	}
	objects, err := s.store.ListObjects(ctx, identity.Principal(userID).String(), rel.String(), string(identity.KindFile))
	if err != nil {
		return nil, fmt.Errorf("list_accessible_files: %w", err)
	}

	uuids := make([]string, 0, len(objects))
	for _, obj := range objects {
		id, err := identity.ParseFile(obj)
		if err != nil {
			// store/schema drift, not caller input
			return nil, fmt.Errorf("list_accessible_files: %w", err)
		}
		uuids = append(uuids, id)
	}
	return uuids, nil
}

// ListAuthorizedUsers returns the store-shaped principal identifiers
// ("user:<id>") holding rel on the file. Identifiers are returned
// unstripped; downstream consumers need the store-shaped identity.
func (s *Service) ListAuthorizedUsers(ctx context.Context, fileUUID string, rel relation.Relation) ([]string, error) {
	if _, err := relation.Parse(rel.String()); err != nil {
		return nil, err
	}
	out, err := s.store.ListUsers(ctx, string(identity.KindFile), fileUUID, rel.String())
	if err != nil {
		return nil, fmt.Errorf("list_authorized_users: %w", err)
	}
	return out, nil
}

// ListRelationsForFile probes the assignable relations for the pair and
// returns the raw per-relation booleans.
func (s *Service) ListRelationsForFile(ctx context.Context, userID, fileUUID string) (RelationSummary, error) {
	user := identity.Principal(userID).String()
	object := identity.File(fileUUID).String()

	probes := make([]string, len(relation.Assignable))
	for i, r := range relation.Assignable {
		probes[i] = r.String()
	}

	rels, err := s.store.ListRelations(ctx, user, object, probes)
	if err != nil {
		return RelationSummary{}, fmt.Errorf("list_relations: %w", err)
	}
	return RelationSummary{User: user, Object: object, Relations: rels}, nil
}

// AssignOwner writes the single owner tuple that protects a freshly
// created file. Call it once, immediately after the record is durable;
// the files service compensates when this fails.
func (s *Service) AssignOwner(ctx context.Context, userID, fileUUID string) error {
	writes := []authz.Tuple{{
		User:     identity.Principal(userID).String(),
		Relation: relation.Owner.String(),
		Object:   identity.File(fileUUID).String(),
	}}
	if err := s.store.Write(ctx, writes, nil); err != nil {
		return fmt.Errorf("assign_owner: %w", err)
	}
	return nil
}

// GrantRelations shares a file. Every relation must be assignable and
// every user must resolve in the directory before anything is written;
// the first failure aborts the whole batch with zero side effects. The
// validated tuples go to the store as one atomic write.
func (s *Service) GrantRelations(ctx context.Context, fileUUID string, assignments []Assignment) error {
	writes, err := s.buildTuples(ctx, fileUUID, assignments, true)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, writes, nil); err != nil {
		return fmt.Errorf("grant_relations: %w", err)
	}
	return nil
}

// RevokeRelations removes previously granted relations as one atomic
// delete batch. Relations are validated; user existence is not, so
// tuples left behind by a since-removed principal can still be cleaned.
func (s *Service) RevokeRelations(ctx context.Context, fileUUID string, assignments []Assignment) error {
	deletes, err := s.buildTuples(ctx, fileUUID, assignments, false)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, nil, deletes); err != nil {
		return fmt.Errorf("revoke_relations: %w", err)
	}
	return nil
}

func (s *Service) buildTuples(ctx context.Context, fileUUID string, assignments []Assignment, resolveUsers bool) ([]authz.Tuple, error) {
	object := identity.File(fileUUID).String()
	tuples := make([]authz.Tuple, 0, len(assignments))
	for _, a := range assignments {
		rel, err := relation.ParseAssignable(a.Relation)
		if err != nil {
			return nil, err
		}
		if resolveUsers {
			if _, err := s.dir.Lookup(ctx, a.UserID); err != nil {
				return nil, err
			}
		}
		tuples = append(tuples, authz.Tuple{
			User:     identity.Principal(a.UserID).String(),
			Relation: rel.String(),
			Object:   object,
		})
	}
	return tuples, nil
}

// RevokeAllForFile removes every assignable-relation tuple referencing
// the file, discovered live via one ListUsers per assignable relation,
// then deleted in a single batch. Used during file deletion, before the
// record itself goes away.
func (s *Service) RevokeAllForFile(ctx context.Context, fileUUID string) error {
	object := identity.File(fileUUID).String()

	var deletes []authz.Tuple
	seen := map[authz.Tuple]struct{}{}
	for _, rel := range relation.Assignable {
		holders, err := s.store.ListUsers(ctx, string(identity.KindFile), fileUUID, rel.String())
		if err != nil {
			return fmt.Errorf("revoke_all: %w", err)
		}
		for _, user := range holders {
			t := authz.Tuple{User: user, Relation: rel.String(), Object: object}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			deletes = append(deletes, t)
		}
	}
	if len(deletes) == 0 {
		return nil
	}
	if err := s.store.Write(ctx, nil, deletes); err != nil {
		return fmt.Errorf("revoke_all: %w", err)
	}
	return nil
}
