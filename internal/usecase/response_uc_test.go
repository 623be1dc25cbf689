package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"sonix-engine/internal/config"
	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/infra/adapters/sim"
	"sonix-engine/internal/infra/contextstore"
	"sonix-engine/internal/intent"
	"sonix-engine/internal/synth"
)

// ---- Fakes ----

// scriptedRand replays a fixed sequence of Float64 draws; exhausted
// sequences return 0.99 (no failure, no voice).
type scriptedRand struct {
	mu     sync.Mutex
	floats []float64
	i      int
}

func (s *scriptedRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.i < len(s.floats) {
		v := s.floats[s.i]
		s.i++
		return v
	}
	return 0.99
}

func (s *scriptedRand) Intn(n int) int { return 0 }

// recordingSleeper notes every wait. With realWait set it also sleeps, so
// timeout races behave as in production.
type recordingSleeper struct {
	mu       sync.Mutex
	delays   []time.Duration
	realWait bool
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	if s.realWait {
		return sim.NewTimerSleeper().Sleep(ctx, d)
	}
	return nil
}

func (s *recordingSleeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delays)
}

func nopLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func fastEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		ResponseTimeout:    100 * time.Millisecond,
		MinProcessingDelay: time.Millisecond,
		MaxProcessingDelay: time.Millisecond,
		ImageDelay:         time.Millisecond,
		RetryBackoff:       time.Millisecond,
		MaxRetries:         2,
		FailureChance:      0.1,
		VoiceChance:        0.3,
		ConcurrentLimit:    4,
	}
}

func newEngine(cfg config.EngineConfig, rnd *scriptedRand, sleep *recordingSleeper) *responseUC {
	log := nopLogger()
	return NewResponseUseCase(
		contextstore.NewMemoryStore(),
		intent.NewClassifier(),
		synth.NewTextSynthesizer(rnd),
		synth.NewImageSynthesizer(rnd, sleep, cfg.ImageDelay, cfg.FailureChance, log),
		rnd, sleep, cfg, log,
	)
}

// ---- Tests ----

func TestGenerateResponse_SuccessFirstAttempt(t *testing.T) {
	sleep := &recordingSleeper{}
	uc := newEngine(fastEngineConfig(), &scriptedRand{}, sleep)

	resp := uc.GenerateResponse(context.Background(), "c1", "hello there", false)

	if resp == nil {
		t.Fatal("response must never be nil")
	}
	if resp.Type != model.ResponseText {
		t.Fatalf("type: got %q want text", resp.Type)
	}
	if resp.Metadata.Model != model.ModelChat {
		t.Fatalf("model: got %q want %q", resp.Metadata.Model, model.ModelChat)
	}
	if resp.Metadata.Confidence != 0.9 { // greeting confidence
		t.Fatalf("confidence: got %v want 0.9", resp.Metadata.Confidence)
	}
	// One processing delay, no backoff.
	if sleep.count() != 1 {
		t.Fatalf("sleeps: got %d want 1 (%v)", sleep.count(), sleep.delays)
	}
}

func TestGenerateResponse_TransientFailureThenRetrySucceeds(t *testing.T) {
	// First draw is the attempt-0 failure injection.
	rnd := &scriptedRand{floats: []float64{0.05}}
	sleep := &recordingSleeper{}
	uc := newEngine(fastEngineConfig(), rnd, sleep)

	resp := uc.GenerateResponse(context.Background(), "c1", "hello there", false)

	if resp.Metadata.Model != model.ModelChat {
		t.Fatalf("retry should have recovered, got model %q error %q", resp.Metadata.Model, resp.Metadata.Error)
	}
	// delay(attempt 0), backoff, delay(attempt 1)
	if sleep.count() != 3 {
		t.Fatalf("sleeps: got %d want 3 (%v)", sleep.count(), sleep.delays)
	}
	if sleep.delays[1] != time.Millisecond {
		t.Fatalf("first backoff: got %v want 1ms", sleep.delays[1])
	}
}

func TestGenerateResponse_TimeoutsExhaustRetries(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.ResponseTimeout = 5 * time.Millisecond
	cfg.MinProcessingDelay = 40 * time.Millisecond
	cfg.MaxProcessingDelay = 40 * time.Millisecond
	sleep := &recordingSleeper{realWait: true}
	uc := newEngine(cfg, &scriptedRand{}, sleep)

	resp := uc.GenerateResponse(context.Background(), "c1", "tell me a story", false)

	if resp.Metadata.Model != model.ModelFallback {
		t.Fatalf("model: got %q want %q", resp.Metadata.Model, model.ModelFallback)
	}
	if resp.Metadata.Error != domain.ErrResponseTimeout.Error() {
		t.Fatalf("metadata.error: got %q want timeout", resp.Metadata.Error)
	}
	if resp.Metadata.Confidence != 0.1 {
		t.Fatalf("confidence: got %v want 0.1", resp.Metadata.Confidence)
	}
	if resp.Type != model.ResponseText {
		t.Fatalf("fallback type: got %q want text", resp.Type)
	}

	// 3 attempts (1 initial + MaxRetries) and 2 backoffs in between, with
	// linear backoff scaled by the attempt number.
	time.Sleep(50 * time.Millisecond) // let late attempt goroutines record their sleeps
	var processing, backoffs []time.Duration
	sleep.mu.Lock()
	for _, d := range sleep.delays {
		if d == 40*time.Millisecond {
			processing = append(processing, d)
		} else {
			backoffs = append(backoffs, d)
		}
	}
	sleep.mu.Unlock()
	if len(processing) != 3 {
		t.Fatalf("attempts: got %d want 3", len(processing))
	}
	if len(backoffs) != 2 || backoffs[0] != time.Millisecond || backoffs[1] != 2*time.Millisecond {
		t.Fatalf("backoffs: got %v want [1ms 2ms]", backoffs)
	}
}

func TestGenerateResponse_VoiceDraw(t *testing.T) {
	// Draws: failure injection (miss), then voice (hit).
	rnd := &scriptedRand{floats: []float64{0.99, 0.1}}
	uc := newEngine(fastEngineConfig(), rnd, &recordingSleeper{})

	resp := uc.GenerateResponse(context.Background(), "c1", "hello there", true)

	if resp.Type != model.ResponseVoice {
		t.Fatalf("type: got %q want voice", resp.Type)
	}
	if resp.AudioURL == "" {
		t.Fatal("voice response must carry an audio url")
	}
}

func TestGenerateResponse_VoiceDrawMissYieldsText(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.99, 0.9}}
	uc := newEngine(fastEngineConfig(), rnd, &recordingSleeper{})

	resp := uc.GenerateResponse(context.Background(), "c1", "hello there", true)

	if resp.Type != model.ResponseText {
		t.Fatalf("type: got %q want text", resp.Type)
	}
	if resp.AudioURL != "" {
		t.Fatal("text response must not carry an audio url")
	}
}

func TestGenerateResponse_ImagePathSingleAttempt(t *testing.T) {
	// Single draw: the image failure roll (forced).
	rnd := &scriptedRand{floats: []float64{0.05}}
	sleep := &recordingSleeper{}
	uc := newEngine(fastEngineConfig(), rnd, sleep)

	resp := uc.GenerateResponse(context.Background(), "c1", "generate an image of a sunset", false)

	if resp.Type != model.ResponseText {
		t.Fatalf("failed image should degrade to text, got %q", resp.Type)
	}
	if resp.Metadata.Model != model.ModelFallback {
		t.Fatalf("model: got %q want %q", resp.Metadata.Model, model.ModelFallback)
	}
	// Exactly one simulated call, no retries and no backoff waits.
	if sleep.count() != 1 {
		t.Fatalf("sleeps: got %d want 1 (%v)", sleep.count(), sleep.delays)
	}
}

func TestGenerateResponse_ImagePathSuccess(t *testing.T) {
	uc := newEngine(fastEngineConfig(), &scriptedRand{}, &recordingSleeper{})

	resp := uc.GenerateResponse(context.Background(), "c1", "generate an image of a sunset", false)

	if resp.Type != model.ResponseImage {
		t.Fatalf("type: got %q want image", resp.Type)
	}
	if resp.ImageURL == "" {
		t.Fatal("image response must carry an image url")
	}
	if resp.Metadata.Model != model.ModelImage {
		t.Fatalf("model: got %q want %q", resp.Metadata.Model, model.ModelImage)
	}
}

// The contract is total: any input yields a well-formed response.
func TestGenerateResponse_AlwaysWellFormed(t *testing.T) {
	uc := newEngine(fastEngineConfig(), &scriptedRand{}, &recordingSleeper{})

	messages := []string{
		"", "hello", "???", "generate an image of a robot",
		"how do I write code", "just some words", "hi?",
	}
	valid := map[model.ResponseType]bool{
		model.ResponseText:  true,
		model.ResponseVoice: true,
		model.ResponseImage: true,
	}
	for _, m := range messages {
		resp := uc.GenerateResponse(context.Background(), "c1", m, false)
		if resp == nil {
			t.Fatalf("nil response for %q", m)
		}
		if !valid[resp.Type] {
			t.Fatalf("invalid type %q for %q", resp.Type, m)
		}
		if resp.Metadata.Confidence < 0 || resp.Metadata.Confidence > 1 {
			t.Fatalf("confidence out of range: %v for %q", resp.Metadata.Confidence, m)
		}
	}
}

func TestUpdateContext_OverwriteAndTruncate(t *testing.T) {
	uc := newEngine(fastEngineConfig(), &scriptedRand{}, &recordingSleeper{})
	ctx := context.Background()

	msgs := make([]model.Message, 0, 25)
	for i := 0; i < 25; i++ {
		msgs = append(msgs, model.Message{
			ID:      fmt.Sprintf("m-%d", i),
			Content: fmt.Sprintf("message %d", i),
			Status:  model.MessageSent,
			Type:    model.MessageText,
		})
	}
	prefs := &model.UserPreferences{ResponseStyle: model.StyleTechnical, PreferredLanguage: "de"}
	if err := uc.UpdateContext(ctx, "c1", msgs, prefs, "custom prompt"); err != nil {
		t.Fatalf("update: %v", err)
	}

	conv, err := uc.GetContext(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(conv.MessageWindow) != model.MaxContextMessages {
		t.Fatalf("window: got %d want %d", len(conv.MessageWindow), model.MaxContextMessages)
	}
	if tail := conv.MessageWindow[len(conv.MessageWindow)-1]; tail.ID != "m-24" {
		t.Fatalf("window tail: got %s want m-24", tail.ID)
	}
	if conv.Preferences.ResponseStyle != model.StyleTechnical {
		t.Fatalf("preferences not stored")
	}

	// A later call replaces everything; unset fields fall back to defaults.
	if err := uc.UpdateContext(ctx, "c1", msgs[:1], nil, ""); err != nil {
		t.Fatalf("second update: %v", err)
	}
	conv, err = uc.GetContext(ctx, "c1")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if len(conv.MessageWindow) != 1 {
		t.Fatalf("window after overwrite: got %d want 1", len(conv.MessageWindow))
	}
	if conv.Preferences.ResponseStyle != model.StyleCasual {
		t.Fatalf("preferences should reset to defaults, got %q", conv.Preferences.ResponseStyle)
	}
	if conv.SystemPrompt != model.DefaultSystemPrompt {
		t.Fatal("system prompt should reset to default")
	}
}

func TestUpdateContext_EmptyIDRejected(t *testing.T) {
	uc := newEngine(fastEngineConfig(), &scriptedRand{}, &recordingSleeper{})

	if err := uc.UpdateContext(context.Background(), "", nil, nil, ""); err != domain.ErrInvalidArgument {
		t.Fatalf("got %v want ErrInvalidArgument", err)
	}
}

func TestGetContext_UnknownConversation(t *testing.T) {
	uc := newEngine(fastEngineConfig(), &scriptedRand{}, &recordingSleeper{})

	if _, err := uc.GetContext(context.Background(), "nope"); err != domain.ErrNotFound {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}
