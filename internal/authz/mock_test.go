package authz

import (
	"context"
	"testing"
)

func TestMockDerivation(t *testing.T) {
	m := NewMock()
	m.Seed("user:alice", "owner", "file:1")
	m.Seed("user:bob", "viewer", "file:1")
	m.Seed("user:carol", "editor", "file:1")

	ctx := context.Background()
	cases := []struct {
		user, relation string
		want           bool
	}{
		{"user:alice", "owner", true},
		{"user:alice", "can_view", true},
		{"user:alice", "can_edit", true},
		{"user:bob", "can_view", true},
		{"user:bob", "can_edit", false},
		{"user:carol", "can_view", true},
		{"user:carol", "can_edit", true},
		{"user:dave", "can_view", false},
	}
	for _, c := range cases {
		got, err := m.Check(ctx, c.user, c.relation, "file:1")
		if err != nil {
			t.Fatalf("Check(%s, %s): %v", c.user, c.relation, err)
		}
		if got != c.want {
			t.Fatalf("Check(%s, %s) = %v, want %v", c.user, c.relation, got, c.want)
		}
	}
}

func TestMockWildcard(t *testing.T) {
	m := NewMock()
	m.Seed("user:*", "viewer", "file:1")

	ok, err := m.Check(context.Background(), "user:anyone", "can_view", "file:1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("wildcard viewer tuple should grant can_view to any user")
	}
}

func TestMockListObjects(t *testing.T) {
	m := NewMock()
	m.Seed("user:alice", "owner", "file:1")
	m.Seed("user:alice", "viewer", "file:2")
	m.Seed("user:bob", "owner", "file:3")

	objs, err := m.ListObjects(context.Background(), "user:alice", "can_view", "file")
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, o := range objs {
		got[o] = true
	}
	if len(got) != 2 || !got["file:1"] || !got["file:2"] {
		t.Fatalf("ListObjects = %v, want file:1 and file:2", objs)
	}
}

func TestMockListUsersSkipsWildcard(t *testing.T) {
	m := NewMock()
	m.Seed("user:alice", "viewer", "file:1")
	m.Seed("user:*", "viewer", "file:1")

	users, err := m.ListUsers(context.Background(), "file", "1", "viewer")
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0] != "user:alice" {
		t.Fatalf("ListUsers = %v, want [user:alice]", users)
	}
}

func TestMockWriteBatch(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	err := m.Write(ctx, []Tuple{
		{User: "user:alice", Relation: "owner", Object: "file:1"},
		{User: "user:bob", Relation: "viewer", Object: "file:1"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = m.Write(ctx, nil, []Tuple{{User: "user:bob", Relation: "viewer", Object: "file:1"}})
	if err != nil {
		t.Fatal(err)
	}

	ok, _ := m.Check(ctx, "user:bob", "viewer", "file:1")
	if ok {
		t.Fatal("tuple survived its delete")
	}
	ok, _ = m.Check(ctx, "user:alice", "owner", "file:1")
	if !ok {
		t.Fatal("unrelated tuple removed by delete batch")
	}
}
