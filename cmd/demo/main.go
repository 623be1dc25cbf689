// File: cmd/demo/main.go
//
// Drives a handful of concurrent conversations through the engine with
// fast timings and prints the responses. Useful for eyeballing intent
// routing, topic callbacks, and the fallback path without the HTTP layer.
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"sonix-engine/internal/config"
	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/infra/adapters/sim"
	"sonix-engine/internal/infra/contextstore"
	"sonix-engine/internal/infra/logging"
	"sonix-engine/internal/infra/worker"
	"sonix-engine/internal/intent"
	"sonix-engine/internal/synth"
	"sonix-engine/internal/usecase"
)

var scripts = [][]string{
	{
		"hello there",
		"what is the weather like on mars?",
		"generate an image of a sunset over the ocean",
	},
	{
		"hey, can you help me debug a function?",
		"the algorithm keeps timing out on large inputs",
	},
	{
		"good evening",
		"draw a cyberpunk robot for me",
		"tell me about your favorite music",
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := logging.New(config.LogConfig{Level: "info", Format: "console"}, true)

	// Shrink the simulated timings so the demo runs in seconds.
	engineCfg := config.NormalizeEngine(config.EngineConfig{
		ResponseTimeout:    2 * time.Second,
		MinProcessingDelay: 50 * time.Millisecond,
		MaxProcessingDelay: 200 * time.Millisecond,
		ImageDelay:         300 * time.Millisecond,
		RetryBackoff:       100 * time.Millisecond,
	})

	rnd := sim.NewLockedRand()
	sleeper := sim.NewTimerSleeper()
	contexts := contextstore.NewMemoryStore()
	engine := usecase.NewResponseUseCase(
		contexts,
		intent.NewClassifier(),
		synth.NewTextSynthesizer(rnd),
		synth.NewImageSynthesizer(rnd, sleeper, engineCfg.ImageDelay, engineCfg.FailureChance, logger),
		rnd, sleeper, engineCfg, logger,
	)
	suggestions := usecase.NewSuggestionUseCase()

	pool := worker.NewPool(len(scripts), logger)
	pool.Start(ctx)
	defer pool.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex // serialize printing per conversation block

	for i, script := range scripts {
		conversationID := fmt.Sprintf("demo-%d", i+1)
		script := script
		wg.Add(1)
		if err := pool.Submit(func(ctx context.Context) error {
			defer wg.Done()
			runConversation(ctx, engine, &mu, conversationID, script)
			return nil
		}); err != nil {
			wg.Done()
			logger.Error().Err(err).Str("conversation_id", conversationID).Msg("submit failed")
		}
	}
	wg.Wait()

	fmt.Println("\nquick replies after an image turn:")
	for _, s := range suggestions.Suggestions("demo-1", "show me an image") {
		fmt.Printf("  - %s\n", s)
	}
}

func runConversation(ctx context.Context, engine usecase.ResponseUseCase, mu *sync.Mutex, conversationID string, script []string) {
	var history []model.Message

	for _, text := range script {
		history = append(history, model.Message{
			ID:        uuid.NewString(),
			Content:   text,
			SenderID:  "demo-user",
			Timestamp: time.Now(),
			Status:    model.MessageSent,
			Type:      model.MessageText,
		})
		if err := engine.UpdateContext(ctx, conversationID, history, nil, ""); err != nil {
			fmt.Printf("[%s] context error: %v\n", conversationID, err)
			return
		}

		resp := engine.GenerateResponse(ctx, conversationID, text, false)

		mu.Lock()
		fmt.Printf("\n[%s] user:  %s\n", conversationID, text)
		fmt.Printf("[%s] sonix: %s\n", conversationID, resp.Content)
		fmt.Printf("[%s]        type=%s model=%s confidence=%.2f took=%s\n",
			conversationID, resp.Type, resp.Metadata.Model, resp.Metadata.Confidence, resp.Metadata.ProcessingTime)
		if resp.ImageURL != "" {
			fmt.Printf("[%s]        image=%s\n", conversationID, resp.ImageURL)
		}
		mu.Unlock()

		history = append(history, model.Message{
			ID:        uuid.NewString(),
			Content:   resp.Content,
			SenderID:  "sonix",
			Timestamp: resp.Timestamp,
			Status:    model.MessageDelivered,
			Type:      model.MessageType(resp.Type),
		})
	}
}
