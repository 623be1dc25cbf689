package model

type IntentType string

const (
	IntentImageGeneration IntentType = "image_generation"
	IntentCode            IntentType = "code"
	IntentQuestion        IntentType = "question"
	IntentGreeting        IntentType = "greeting"
	IntentGeneral         IntentType = "general"
)

// Intent classifies what a user message is asking for. Confidence is a
// fixed per-type constant, not derived from the text. Keywords are only
// populated for image requests (the extracted descriptor tokens).
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
	Keywords   []string   `json:"keywords,omitempty"`
}
