package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/domain/ports/repository"
)

const contextKeyPrefix = "conversation_context:"

// Compile-time check
var _ repository.ContextRepository = (*ContextStore)(nil)

// ContextStore keeps conversation contexts in Redis so multiple engine
// instances can share them. Contexts expire after the configured TTL;
// that matches the engine's session-scoped lifecycle.
type ContextStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewContextStore(client RedisClient, ttl time.Duration) *ContextStore {
	return &ContextStore{client: client, ttl: ttl}
}

func (s *ContextStore) Save(ctx context.Context, conv *model.ConversationContext) error {
	if conv == nil || conv.ConversationID == "" {
		return domain.ErrInvalidArgument
	}
	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, contextKeyPrefix+conv.ConversationID, data, s.ttl)
}

func (s *ContextStore) Find(ctx context.Context, conversationID string) (*model.ConversationContext, error) {
	data, err := s.client.Get(ctx, contextKeyPrefix+conversationID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var conv model.ConversationContext
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}
