// Package authz wraps the external relationship-tuple store. Every
// decision is a live round trip; there is no local cache and no local
// override of the store's answer.
package authz

import "context"

// Tuple is the atomic fact (user, relation, object) held by the store.
// User and Object are store-shaped identifiers ("user:alice", "file:9f2c").
type Tuple struct {
	User     string `json:"user"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// TupleStore is the four-primitive surface the rest of the system consumes.
// Implementations must be safe for concurrent use; they provide no ordering
// guarantee beyond each Write being a single atomic batch as seen by the
// store.
type TupleStore interface {
	// Check reports whether user has relation on object.
	Check(ctx context.Context, user, relation, object string) (bool, error)

	// ListObjects returns the store identifiers of every object of
	// objectType on which user has relation. Order is not meaningful.
	ListObjects(ctx context.Context, user, relation, objectType string) ([]string, error)

	// ListUsers returns store-shaped identifiers of user-typed principals
	// holding relation on the object. Wildcards and usersets are excluded.
	ListUsers(ctx context.Context, objectType, objectID, relation string) ([]string, error)

	// ListRelations reports, for each probed relation, whether user holds
	// it on object.
	ListRelations(ctx context.Context, user, object string, relations []string) (map[string]bool, error)

	// Write applies one batch of tuple additions and deletions. The batch
	// is atomic at the store: either all of it lands or none of it does.
	Write(ctx context.Context, writes, deletes []Tuple) error
}
