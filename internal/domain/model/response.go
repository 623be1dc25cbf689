package model

import (
	"time"
)

type ResponseType string

const (
	ResponseText  ResponseType = "text"
	ResponseVoice ResponseType = "voice"
	ResponseImage ResponseType = "image"
)

// Models reported in response metadata.
const (
	ModelChat     = "sonix-chat-v2"
	ModelImage    = "sonix-image-v1"
	ModelFallback = "sonix-fallback"
)

// ResponseMetadata carries diagnostics about how a response was produced.
// Error is only set on the terminal fallback path.
type ResponseMetadata struct {
	Confidence     float64       `json:"confidence"`
	ProcessingTime time.Duration `json:"processingTime"`
	Model          string        `json:"model"`
	Error          string        `json:"error,omitempty"`
}

// AIResponse is the engine's output record. Exactly one of AudioURL and
// ImageURL is set, and only when Type matches.
type AIResponse struct {
	Content   string           `json:"content"`
	Type      ResponseType     `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	AudioURL  string           `json:"audioUrl,omitempty"`
	ImageURL  string           `json:"imageUrl,omitempty"`
	Metadata  ResponseMetadata `json:"metadata"`
}
