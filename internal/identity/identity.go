// Package identity maps local users and files onto the tuple store's
// string-typed identifiers and back. The store speaks "type:id" strings
// (user:alice, file:9f2c...); everything else in this codebase passes a
// typed Ref so a principal can never end up where an object belongs.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the two identifier namespaces the store knows about.
type Kind string

const (
	KindPrincipal Kind = "user"
	KindFile      Kind = "file"
)

// ErrMalformedIdentifier reports a store-returned identifier that does not
// have the expected "type:id" shape. This is store/schema drift, not a
// caller mistake.
var ErrMalformedIdentifier = errors.New("malformed identifier")

// Ref is a typed reference into one of the store's namespaces.
type Ref struct {
	Kind Kind
	ID   string
}

// String renders the store form, e.g. "file:9f2c-..".
func (r Ref) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Principal builds a principal ref from a local user id.
func Principal(id string) Ref {
	return Ref{Kind: KindPrincipal, ID: id}
}

// File builds a file ref from a file uuid.
func File(uuid string) Ref {
	return Ref{Kind: KindFile, ID: uuid}
}

// Parse splits a store identifier into a typed Ref. The kind must match;
// anything without the expected prefix is ErrMalformedIdentifier.
func Parse(s string, kind Kind) (Ref, error) {
	prefix := string(kind) + ":"
	if !strings.HasPrefix(s, prefix) {
		return Ref{}, fmt.Errorf("%w: %q is not a %s identifier", ErrMalformedIdentifier, s, kind)
	}
	id := s[len(prefix):]
	if id == "" {
		return Ref{}, fmt.Errorf("%w: %q has an empty id", ErrMalformedIdentifier, s)
	}
	return Ref{Kind: kind, ID: id}, nil
}

// ParseFile parses "file:<uuid>" and returns the bare uuid.
func ParseFile(s string) (string, error) {
	r, err := Parse(s, KindFile)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

// ParsePrincipal parses "user:<id>" and returns the bare id.
func ParsePrincipal(s string) (string, error) {
	r, err := Parse(s, KindPrincipal)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}
