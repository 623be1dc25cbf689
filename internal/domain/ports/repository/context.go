package repository

import (
	"context"

	"sonix-engine/internal/domain/model"
)

// ContextRepository owns conversation contexts. Last writer wins for a
// given conversation id; there is no merge or partial update.
type ContextRepository interface {
	// Save stores (or replaces) the context for its conversation id.
	Save(ctx context.Context, conv *model.ConversationContext) error

	// Find returns a copy of the stored context, or domain.ErrNotFound.
	Find(ctx context.Context, conversationID string) (*model.ConversationContext, error)
}
