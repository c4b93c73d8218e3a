package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// JSON-backed key/value storage. Single file holding one object of
// string values, human-readable, portable. Every Set rewrites the file.
// No locking; fine for a local single-user CLI. A file that does not
// decode as such an object reads as empty and is replaced on the next Set.

const DefaultFileName = "shelf.json"

type Store struct {
	Path string
	log  zerolog.Logger
}

func New(path string, log zerolog.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{Path: path, log: log}
}

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	kv := map[string]string{}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv); err != nil {
		s.log.Warn().Err(err).Str("path", s.Path).Msg("store file is malformed, reading it as empty")
		return map[string]string{}, nil
	}
	if kv == nil { // "null"
		kv = map[string]string{}
	}
	return kv, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	kv, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := kv[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	kv, err := s.load()
	if err != nil {
		return err
	}
	kv[key] = value
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
