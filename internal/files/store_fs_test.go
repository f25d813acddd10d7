package files

import (
	"context"
	"errors"
	"testing"
)

func TestFileStoreCRUD(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	f, err := s.Create(ctx, Payload{Name: "report.pdf", ContentRef: "blob/1", Size: 1024})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.UUID == "" {
		t.Fatal("Create returned empty uuid")
	}
	if f.CreatedAt.IsZero() || !f.CreatedAt.Equal(f.UpdatedAt) {
		t.Fatalf("timestamps: created=%v updated=%v", f.CreatedAt, f.UpdatedAt)
	}

	got, err := s.Get(ctx, f.UUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "report.pdf" || got.Size != 1024 {
		t.Fatalf("Get = %+v", got)
	}

	upd, err := s.Update(ctx, f.UUID, Payload{ContentRef: "blob/2", Size: 2048})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Name != "report.pdf" {
		t.Fatalf("Update cleared name: %+v", upd)
	}
	if upd.ContentRef != "blob/2" || upd.Size != 2048 {
		t.Fatalf("Update = %+v", upd)
	}

	if err := s.Delete(ctx, f.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, f.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, f.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreList(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	a, _ := s.Create(ctx, Payload{Name: "a"})
	b, _ := s.Create(ctx, Payload{Name: "b"})

	got, err := s.List(ctx, []string{a.UUID, "missing-uuid", b.UUID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d records, want 2", len(got))
	}
}
