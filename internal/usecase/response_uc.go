// File: internal/usecase/response_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sonix-engine/internal/config"
	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/domain/ports/adapter"
	"sonix-engine/internal/domain/ports/repository"
	"sonix-engine/internal/infra/logging"
	"sonix-engine/internal/infra/metrics"
	"sonix-engine/internal/intent"
	"sonix-engine/internal/synth"
)

// Compile-time check
var _ ResponseUseCase = (*responseUC)(nil)

// ResponseUseCase is the engine's call contract for the messaging UI.
// GenerateResponse is total: it always produces a response record, falling
// back to an apologetic canned reply when everything else fails.
type ResponseUseCase interface {
	UpdateContext(ctx context.Context, conversationID string, messages []model.Message, prefs *model.UserPreferences, systemPrompt string) error
	GetContext(ctx context.Context, conversationID string) (*model.ConversationContext, error)
	GenerateResponse(ctx context.Context, conversationID, message string, isVoice bool) *model.AIResponse
}

type responseUC struct {
	contexts   repository.ContextRepository
	classifier *intent.Classifier
	text       *synth.TextSynthesizer
	image      *synth.ImageSynthesizer
	rnd        adapter.RandomSource
	sleep      adapter.Sleeper
	cfg        config.EngineConfig
	log        *zerolog.Logger
}

func NewResponseUseCase(
	contexts repository.ContextRepository,
	classifier *intent.Classifier,
	text *synth.TextSynthesizer,
	image *synth.ImageSynthesizer,
	rnd adapter.RandomSource,
	sleep adapter.Sleeper,
	cfg config.EngineConfig,
	log *zerolog.Logger,
) *responseUC {
	return &responseUC{
		contexts:   contexts,
		classifier: classifier,
		text:       text,
		image:      image,
		rnd:        rnd,
		sleep:      sleep,
		cfg:        cfg,
		log:        log,
	}
}

// UpdateContext replaces the stored context for the conversation. The
// message history is truncated to the window tail; unset preferences and
// prompt fall back to defaults rather than inheriting a prior call's.
func (u *responseUC) UpdateContext(ctx context.Context, conversationID string, messages []model.Message, prefs *model.UserPreferences, systemPrompt string) error {
	if conversationID == "" {
		return domain.ErrInvalidArgument
	}
	conv := model.NewConversationContext(conversationID, messages, prefs, systemPrompt)
	if err := u.contexts.Save(ctx, conv); err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	return nil
}

func (u *responseUC) GetContext(ctx context.Context, conversationID string) (*model.ConversationContext, error) {
	return u.contexts.Find(ctx, conversationID)
}

// GenerateResponse runs the full pipeline: classify, then either the
// single-shot image path or the retried text synthesis race.
func (u *responseUC) GenerateResponse(ctx context.Context, conversationID, message string, isVoice bool) *model.AIResponse {
	start := time.Now()
	ctx = logging.WithConversationID(ctx, conversationID)
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "ResponseUC.GenerateResponse")()

	// Context is captured by value here; a concurrent UpdateContext
	// affects the next call, not this one.
	conv, err := u.contexts.Find(ctx, conversationID)
	if err != nil {
		conv = nil
	}

	it := u.classifier.Analyze(message)
	metrics.IncIntent(string(it.Type))
	log.Debug().
		Str("intent", string(it.Type)).
		Float64("confidence", it.Confidence).
		Msg("intent classified")

	if it.Type == model.IntentImageGeneration {
		resp := u.image.Synthesize(ctx, it.Keywords, message)
		success := resp.Type == model.ResponseImage
		if !success {
			metrics.IncFallback("image")
		}
		metrics.ObserveGeneration("image", int(time.Since(start)/time.Millisecond), success)
		return resp
	}

	var lastErr error
	for attempt := 0; attempt <= u.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.IncRetry()
			// Linear backoff: 1s, 2s, ... scaled by the attempt number.
			if err := u.sleep.Sleep(ctx, time.Duration(attempt)*u.cfg.RetryBackoff); err != nil {
				lastErr = err
				break
			}
		}

		resp, err := u.attempt(ctx, conv, it, message, isVoice, attempt, start)
		if err == nil {
			metrics.IncAttempt("success")
			metrics.ObserveGeneration("text", int(time.Since(start)/time.Millisecond), true)
			return resp
		}
		lastErr = err
		result := "failure"
		if err == domain.ErrResponseTimeout {
			result = "timeout"
		}
		metrics.IncAttempt(result)
		log.Warn().Err(err).
			Int("attempt", attempt).
			Msg("synthesis attempt failed")
	}

	metrics.IncFallback("text")
	metrics.ObserveGeneration("text", int(time.Since(start)/time.Millisecond), false)
	return fallbackResponse(start, lastErr)
}

// attempt races one synthesis run against the response timeout. The
// buffered result channel keeps a late-finishing run from blocking or
// resolving the caller twice.
func (u *responseUC) attempt(ctx context.Context, conv *model.ConversationContext, it model.Intent, message string, isVoice bool, attempt int, start time.Time) (*model.AIResponse, error) {
	type outcome struct {
		resp *model.AIResponse
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		delay := u.processingDelay()
		if err := u.sleep.Sleep(ctx, delay); err != nil {
			done <- outcome{err: err}
			return
		}
		// Transient failure is only injected on the very first attempt.
		if attempt == 0 && u.rnd.Float64() < u.cfg.FailureChance {
			done <- outcome{err: domain.ErrSynthesisFailed}
			return
		}
		done <- outcome{resp: u.buildTextResponse(message, it, conv, isVoice, start)}
	}()

	timeout := time.NewTimer(u.cfg.ResponseTimeout)
	defer timeout.Stop()
	select {
	case out := <-done:
		return out.resp, out.err
	case <-timeout.C:
		return nil, domain.ErrResponseTimeout
	}
}

func (u *responseUC) processingDelay() time.Duration {
	span := int((u.cfg.MaxProcessingDelay - u.cfg.MinProcessingDelay) / time.Millisecond)
	if span <= 0 {
		return u.cfg.MinProcessingDelay
	}
	return u.cfg.MinProcessingDelay + time.Duration(u.rnd.Intn(span+1))*time.Millisecond
}

func (u *responseUC) buildTextResponse(message string, it model.Intent, conv *model.ConversationContext, isVoice bool, start time.Time) *model.AIResponse {
	resp := &model.AIResponse{
		Content:   u.text.Synthesize(message, it, conv),
		Type:      model.ResponseText,
		Timestamp: time.Now(),
		Metadata: model.ResponseMetadata{
			Confidence:     it.Confidence,
			ProcessingTime: time.Since(start),
			Model:          model.ModelChat,
		},
	}
	// Voice replies need both the caller's flag and an independent draw.
	if isVoice && u.rnd.Float64() < u.cfg.VoiceChance {
		resp.Type = model.ResponseVoice
		resp.AudioURL = fmt.Sprintf("https://audio.sonix.app/tts/%s.mp3", uuid.NewString())
	}
	return resp
}

// fallbackResponse is the terminal degradation shared by the retry loop
// and the concurrency limiter.
func fallbackResponse(start time.Time, lastErr error) *model.AIResponse {
	errMsg := "synthesis attempts exhausted"
	if lastErr != nil {
		errMsg = lastErr.Error()
	}
	return &model.AIResponse{
		Content:   "I'm having a little trouble collecting my thoughts right now. Give me a moment and ask again?",
		Type:      model.ResponseText,
		Timestamp: time.Now(),
		Metadata: model.ResponseMetadata{
			Confidence:     0.1,
			ProcessingTime: time.Since(start),
			Model:          model.ModelFallback,
			Error:          errMsg,
		},
	}
}
