package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore keeps every document as a pretty-printed JSON file under one
// data directory. This is the default backend and matches the on-disk
// layout the frontend's data files already use.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) ensure(name string, defaultContent any) error {
	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(defaultContent, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func (s *FileStore) Read(ctx context.Context, name string, out any, defaultContent any) error {
	if err := s.ensure(name, defaultContent); err != nil {
		return err
	}
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *FileStore) Write(ctx context.Context, name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(name), raw, 0o644)
}
