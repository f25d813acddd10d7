package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore keeps one JSON document per file record under
// <root>/files/<uuid>.json. Writes go through a tmp file and rename so a
// crash never leaves a half-written record.
type FileStore struct {
	root string
	mu   sync.RWMutex // process-local concurrency
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "files"), 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.root, "files", id+".json")
}

func (s *FileStore) writeRecord(f *File) error {
	path := s.recordPath(f.UUID)
	tmp := path + ".tmp"

	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) readRecord(id string) (*File, error) {
	b, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FileStore) Create(ctx context.Context, p Payload) (*File, error) {
	now := time.Now().UTC()
	f := &File{
		UUID:       uuid.NewString(),
		Name:       p.Name,
		ContentRef: p.ContentRef,
		Size:       p.Size,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeRecord(f); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return f, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readRecord(id)
}

func (s *FileStore) Update(ctx context.Context, id string, p Payload) (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.readRecord(id)
	if err != nil {
		return nil, err
	}
	if p.Name != "" {
		f.Name = p.Name
	}
	if p.ContentRef != "" {
		f.ContentRef = p.ContentRef
		f.Size = p.Size
	}
	f.UpdatedAt = time.Now().UTC()

	if err := s.writeRecord(f); err != nil {
		return nil, fmt.Errorf("update file record: %w", err)
	}
	return f, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.recordPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *FileStore) List(ctx context.Context, uuids []string) ([]*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*File, 0, len(uuids))
	for _, id := range uuids {
		f, err := s.readRecord(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
