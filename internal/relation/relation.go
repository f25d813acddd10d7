// Package relation defines the closed vocabulary of relations between
// principals and files. owner, viewer and editor are assignable: they are
// written directly as tuples. can_view and can_edit are derived by the
// store's authorization model (owner and editor imply both, viewer implies
// can_view) and are only ever checked or listed, never written.
package relation

import (
	"errors"
	"fmt"
)

type Relation string

const (
	Owner  Relation = "owner"
	Viewer Relation = "viewer"
	Editor Relation = "editor"

	CanView Relation = "can_view"
	CanEdit Relation = "can_edit"
)

// ErrInvalidRelation rejects relation strings outside the vocabulary.
// Validation happens before any store call; raw caller input is never
// forwarded to the store.
var ErrInvalidRelation = errors.New("invalid relation")

// Assignable is the fixed probe set for list-relations calls, in the
// order the original share API documents them.
var Assignable = []Relation{Owner, Viewer, Editor}

// All lists every member of the vocabulary.
var All = []Relation{Owner, Viewer, Editor, CanView, CanEdit}

// Parse validates a caller-supplied relation string.
func Parse(s string) (Relation, error) {
	switch r := Relation(s); r {
	case Owner, Viewer, Editor, CanView, CanEdit:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRelation, s)
}

// ParseAssignable validates that s names a relation that may be written
// directly as a tuple.
func ParseAssignable(s string) (Relation, error) {
	r, err := Parse(s)
	if err != nil {
		return "", err
	}
	if !r.IsAssignable() {
		return "", fmt.Errorf("%w: %q is derived, not assignable", ErrInvalidRelation, s)
	}
	return r, nil
}

func (r Relation) String() string { return string(r) }

// IsAssignable reports whether r may be written directly as a tuple.
func (r Relation) IsAssignable() bool {
	return r == Owner || r == Viewer || r == Editor
}

// IsDerived reports whether r is computed by the authorization model.
func (r Relation) IsDerived() bool {
	return r == CanView || r == CanEdit
}
