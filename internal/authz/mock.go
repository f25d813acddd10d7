package authz

import (
	"context"
	"strings"
	"sync"
)

// derived encodes the authorization model the real store carries: which
// assignable relations satisfy each derived relation.
var derived = map[string][]string{
	"can_view": {"owner", "editor", "viewer"},
	"can_edit": {"owner", "editor"},
}

// Mock is an in-memory TupleStore for tests and local development. It
// evaluates the same owner/editor/viewer derivation rules the production
// authorization model encodes, including wildcard users.
type Mock struct {
	mu sync.RWMutex
	// object -> relation -> set(user)
	tuples map[string]map[string]map[string]struct{}

	// Err, when set, is returned by every call. WriteErr fails only
	// Write, leaving reads working.
	Err      error
	WriteErr error
}

func NewMock() *Mock {
	return &Mock{tuples: map[string]map[string]map[string]struct{}{}}
}

// Seed adds a tuple without going through Write. Test setup helper.
func (m *Mock) Seed(user, relation, object string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(user, relation, object)
}

func (m *Mock) add(user, relation, object string) {
	rels, ok := m.tuples[object]
	if !ok {
		rels = map[string]map[string]struct{}{}
		m.tuples[object] = rels
	}
	users, ok := rels[relation]
	if !ok {
		users = map[string]struct{}{}
		rels[relation] = users
	}
	users[user] = struct{}{}
}

func (m *Mock) remove(user, relation, object string) {
	if rels, ok := m.tuples[object]; ok {
		if users, ok := rels[relation]; ok {
			delete(users, user)
		}
	}
}

// holds evaluates relation on object for user, expanding derived
// relations through the model. Callers hold at least a read lock.
func (m *Mock) holds(user, relation, object string) bool {
	if base, ok := derived[relation]; ok {
		for _, r := range base {
			if m.holdsDirect(user, r, object) {
				return true
			}
		}
		return false
	}
	return m.holdsDirect(user, relation, object)
}

func (m *Mock) holdsDirect(user, relation, object string) bool {
	users, ok := m.tuples[object][relation]
	if !ok {
		return false
	}
	if _, ok := users[user]; ok {
		return true
	}
	// a wildcard tuple of the user's type matches every concrete user
	if i := strings.IndexByte(user, ':'); i > 0 {
		if _, ok := users[user[:i]+":*"]; ok {
			return true
		}
	}
	return false
}

func (m *Mock) Check(ctx context.Context, user, relation, object string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.holds(user, relation, object), nil
}

func (m *Mock) ListObjects(ctx context.Context, user, relation, objectType string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := objectType + ":"
	var out []string
	for object := range m.tuples {
		if !strings.HasPrefix(object, prefix) {
			continue
		}
		if m.holds(user, relation, object) {
			out = append(out, object)
		}
	}
	return out, nil
}

func (m *Mock) ListUsers(ctx context.Context, objectType, objectID, relation string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	object := objectType + ":" + objectID
	probe := []string{relation}
	if base, ok := derived[relation]; ok {
		probe = base
	}

	seen := map[string]struct{}{}
	var out []string
	for _, r := range probe {
		for user := range m.tuples[object][r] {
			// user-typed, concrete principals only
			if !strings.HasPrefix(user, "user:") || strings.HasSuffix(user, ":*") {
				continue
			}
			if _, dup := seen[user]; dup {
				continue
			}
			seen[user] = struct{}{}
			out = append(out, user)
		}
	}
	return out, nil
}

func (m *Mock) ListRelations(ctx context.Context, user, object string, relations []string) (map[string]bool, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]bool, len(relations))
	for _, r := range relations {
		out[r] = m.holds(user, r, object)
	}
	return out, nil
}

func (m *Mock) Write(ctx context.Context, writes, deletes []Tuple) error {
	if m.Err != nil {
		return m.Err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range writes {
		m.add(t.User, t.Relation, t.Object)
	}
	for _, t := range deletes {
		m.remove(t.User, t.Relation, t.Object)
	}
	return nil
}
