package model

import (
	"time"
)

type MessageStatus string

const (
	MessageSending   MessageStatus = "sending"
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
	MessageFailed    MessageStatus = "failed"
)

type MessageType string

const (
	MessageText    MessageType = "text"
	MessageVoice   MessageType = "voice"
	MessageFile    MessageType = "file"
	MessageImage   MessageType = "image"
	MessageAIImage MessageType = "ai-generated-image"
)

// Message is a single conversation turn as the engine consumes it.
// Messages are immutable once appended to a context window; status
// transitions happen on the caller's copy.
type Message struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	SenderID  string        `json:"senderId"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
	Type      MessageType   `json:"type"`
}
