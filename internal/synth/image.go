package synth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/domain/ports/adapter"
)

const fallbackSubject = "abstract digital art"

// ImageSynthesizer simulates a slower, separately failing external image
// generation call. One shot only: when it fails, it degrades straight to
// a text apology instead of retrying.
type ImageSynthesizer struct {
	rnd           adapter.RandomSource
	sleep         adapter.Sleeper
	delay         time.Duration
	failureChance float64
	log           *zerolog.Logger
}

func NewImageSynthesizer(rnd adapter.RandomSource, sleep adapter.Sleeper, delay time.Duration, failureChance float64, log *zerolog.Logger) *ImageSynthesizer {
	return &ImageSynthesizer{
		rnd:           rnd,
		sleep:         sleep,
		delay:         delay,
		failureChance: failureChance,
		log:           log,
	}
}

// Synthesize runs the single simulated generation attempt and always
// returns a response: an image on success, an apologetic text otherwise.
func (s *ImageSynthesizer) Synthesize(ctx context.Context, keywords []string, originalMessage string) *model.AIResponse {
	start := time.Now()

	if err := s.sleep.Sleep(ctx, s.delay); err != nil {
		s.log.Warn().Err(err).Msg("image generation interrupted")
		return s.failure(start, err)
	}
	if s.rnd.Float64() < s.failureChance {
		s.log.Warn().Str("message", originalMessage).Msg("simulated image generation failure")
		return s.failure(start, domain.ErrImageFailed)
	}

	subject := strings.Join(keywords, " ")
	if subject == "" {
		subject = fallbackSubject
	}
	return &model.AIResponse{
		Content:   fmt.Sprintf("Here's the image I generated of %s. I hope it captures what you had in mind!", subject),
		Type:      model.ResponseImage,
		Timestamp: time.Now(),
		ImageURL:  fmt.Sprintf("https://images.sonix.app/generate?prompt=%s", url.QueryEscape(subject)),
		Metadata: model.ResponseMetadata{
			Confidence:     0.85,
			ProcessingTime: time.Since(start),
			Model:          model.ModelImage,
		},
	}
}

func (s *ImageSynthesizer) failure(start time.Time, err error) *model.AIResponse {
	return &model.AIResponse{
		Content:   "I'm sorry, I couldn't generate that image right now. Want me to describe it in words instead?",
		Type:      model.ResponseText,
		Timestamp: time.Now(),
		Metadata: model.ResponseMetadata{
			Confidence:     0.1,
			ProcessingTime: time.Since(start),
			Model:          model.ModelFallback,
			Error:          err.Error(),
		},
	}
}
