// Package contextstore holds the default in-process conversation context
// storage. One shared map, last writer wins per conversation id.
package contextstore

import (
	"context"
	"sync"

	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.ContextRepository = (*MemoryStore)(nil)

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*model.ConversationContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: map[string]*model.ConversationContext{}}
}

func (s *MemoryStore) Save(_ context.Context, conv *model.ConversationContext) error {
	if conv == nil || conv.ConversationID == "" {
		return domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[conv.ConversationID] = conv.Clone()
	return nil
}

// Find returns a copy, so in-flight readers never observe a later Save.
func (s *MemoryStore) Find(_ context.Context, conversationID string) (*model.ConversationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.byID[conversationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return conv.Clone(), nil
}
