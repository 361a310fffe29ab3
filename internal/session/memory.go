package session

import (
	"context"
	"sync"

	"coffee-shop-bot/internal/models"
)

// MemoryStore keeps session state in process memory. Growth is unbounded;
// sessions live for the process lifetime.
type MemoryStore struct {
	mu     sync.Mutex
	carts  map[string][]models.CartLine
	drafts map[string]models.DraftOrder
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:  make(map[string][]models.CartLine),
		drafts: make(map[string]models.DraftOrder),
	}
}

func (s *MemoryStore) Cart(_ context.Context, userID string) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(s.carts[userID]))
	copy(lines, s.carts[userID])
	return lines, nil
}

func (s *MemoryStore) AppendCartLine(_ context.Context, userID string, line models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = append(s.carts[userID], line)
	return nil
}

func (s *MemoryStore) ClearCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

func (s *MemoryStore) Draft(_ context.Context, userID string) (models.DraftOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.drafts[userID], nil
}

func (s *MemoryStore) SaveDraft(_ context.Context, userID string, draft models.DraftOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[userID] = draft
	return nil
}

func (s *MemoryStore) ClearDraft(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
	return nil
}
