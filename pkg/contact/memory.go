package contact

import (
	"context"
	"sync"
	"time"
)

// MemoryStorer is an in-memory Storer used when no database path is
// configured and in tests.
type MemoryStorer struct {
	mu       sync.RWMutex
	messages []*Message
	nextID   int64
}

// NewMemoryStorer creates an empty in-memory store.
func NewMemoryStorer() *MemoryStorer {
	return &MemoryStorer{nextID: 1}
}

func (s *MemoryStorer) Put(ctx context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = s.nextID
	s.nextID++
	msg.CreatedAt = time.Now().UTC()

	stored := *msg
	s.messages = append(s.messages, &stored)
	return nil
}

func (s *MemoryStorer) Get(ctx context.Context, id int64) (*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.messages {
		if m.ID == id {
			found := *m
			return &found, nil
		}
	}
	return nil, ErrNotFound{ID: id}
}

func (s *MemoryStorer) List(ctx context.Context) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Message, 0, len(s.messages))
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := *s.messages[i]
		out = append(out, &m)
	}
	return out, nil
}

func (s *MemoryStorer) Close() error {
	return nil
}
