package store

import "context"

// Memory is a KV kept in process memory.
type Memory struct {
	m map[string]string
}

func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.m[key] = value
	return nil
}

func (s *Memory) Close() error { return nil }
