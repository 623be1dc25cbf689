// File: internal/usecase/limit_wrapper.go
package usecase

import (
	"context"
	"time"

	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/infra/metrics"
)

// Compile-time check
var _ ResponseUseCase = (*limitedResponses)(nil)

type limitedResponses struct {
	inner ResponseUseCase
	sem   chan struct{}
}

// NewLimitedResponses bounds the number of in-flight generations. Context
// reads and writes pass through unthrottled.
func NewLimitedResponses(inner ResponseUseCase, maxConcurrent int) ResponseUseCase {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedResponses{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedResponses) UpdateContext(ctx context.Context, conversationID string, messages []model.Message, prefs *model.UserPreferences, systemPrompt string) error {
	return l.inner.UpdateContext(ctx, conversationID, messages, prefs, systemPrompt)
}

func (l *limitedResponses) GetContext(ctx context.Context, conversationID string) (*model.ConversationContext, error) {
	return l.inner.GetContext(ctx, conversationID)
}

// GenerateResponse waits for a slot unless the caller's context ends
// first; a cancelled caller gets the fallback rather than a queue spot.
func (l *limitedResponses) GenerateResponse(ctx context.Context, conversationID, message string, isVoice bool) *model.AIResponse {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.IncFallback("text")
		return fallbackResponse(start, err)
	}
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		metrics.IncFallback("text")
		return fallbackResponse(start, ctx.Err())
	}
	defer func() { <-l.sem }()
	return l.inner.GenerateResponse(ctx, conversationID, message, isVoice)
}
