// Package draft keeps the single in-progress listing form durable between
// sessions. There is exactly one slot: saving always overwrites it, whoever
// the record belongs to.
package draft

import (
	"context"
	"errors"
	"sync"
)

// Key is the fixed storage key of the draft slot.
const Key = "shelterly:pg_form_draft"

// ErrNoDraft is returned by Store.Load when the slot is empty.
var ErrNoDraft = errors.New("no draft saved")

// Store persists the serialized draft under Key.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNoDraft
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
