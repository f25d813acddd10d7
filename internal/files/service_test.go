package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/filehub/filehub-go/internal/access"
	"github.com/filehub/filehub-go/internal/authz"
	"github.com/filehub/filehub-go/internal/relation"
	"github.com/filehub/filehub-go/internal/users"
)

func newFixture(t *testing.T) (*Service, *access.Service, *authz.Mock) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tuples := authz.NewMock()
	acc := access.New(tuples, users.NewMemoryDirectory(
		users.Principal{ID: "alice"},
		users.Principal{ID: "bob"},
	))
	return NewService(store, acc), acc, tuples
}

func TestCreateAssignsOwner(t *testing.T) {
	svc, acc, _ := newFixture(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "alice", Payload{Name: "notes.txt"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := acc.CheckAccess(ctx, "alice", relation.Owner, f.UUID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("creator is not owner immediately after create")
	}
}

func TestCreateRollsBackWhenOwnerWriteFails(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatal(err)
	}
	tuples := authz.NewMock()
	acc := access.New(tuples, users.NewMemoryDirectory(users.Principal{ID: "alice"}))
	svc := NewService(store, acc)

	sentinel := errors.New("store down")
	tuples.WriteErr = sentinel

	_, err = svc.Create(context.Background(), "alice", Payload{Name: "notes.txt"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Create = %v, want wrapped store error", err)
	}

	// no ownerless record may survive
	entries, err := os.ReadDir(filepath.Join(root, "files"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("%d record(s) survived failed owner assignment", len(entries))
	}
}

func TestDeleteRevokesTuplesFirst(t *testing.T) {
	svc, acc, _ := newFixture(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "alice", Payload{Name: "notes.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if err := acc.GrantRelations(ctx, f.UUID, []access.Assignment{{UserID: "bob", Relation: "viewer"}}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, f.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(ctx, f.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	ok, err := acc.CheckAccess(ctx, "alice", relation.Owner, f.UUID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("owner tuple survived file deletion")
	}
	ok, _ = acc.CheckAccess(ctx, "bob", relation.CanView, f.UUID)
	if ok {
		t.Fatal("granted viewer tuple survived file deletion")
	}
}

func TestDeleteAbortsWhenRevokeFails(t *testing.T) {
	svc, _, tuples := newFixture(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "alice", Payload{Name: "notes.txt"})
	if err != nil {
		t.Fatal(err)
	}

	tuples.WriteErr = errors.New("store down")
	if err := svc.Delete(ctx, f.UUID); err == nil {
		t.Fatal("Delete succeeded despite failed tuple revocation")
	}

	// record must still resolve: no orphaned owner tuple allowed
	if _, err := svc.Get(ctx, f.UUID); err != nil {
		t.Fatalf("record gone after aborted delete: %v", err)
	}
}

func TestDeleteMissingFile(t *testing.T) {
	svc, _, _ := newFixture(t)
	if err := svc.Delete(context.Background(), "no-such-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete = %v, want ErrNotFound", err)
	}
}
