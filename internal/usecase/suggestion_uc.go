// File: internal/usecase/suggestion_uc.go
package usecase

import (
	"strings"
)

// Compile-time check
var _ SuggestionUseCase = (*suggestionUC)(nil)

// SuggestionUseCase proposes quick replies for the input UI. Deterministic:
// the same last message always yields the same four suggestions.
type SuggestionUseCase interface {
	Suggestions(conversationID, lastMessage string) []string
}

var (
	onboardingSuggestions = []string{
		"Tell me something interesting",
		"Generate an image of a sunset",
		"Help me write some code",
		"What can you do?",
	}
	imageSuggestions = []string{
		"Make it more colorful",
		"Generate another one",
		"Try a watercolor style",
		"Draw a robot for me",
	}
	codingSuggestions = []string{
		"Explain that code",
		"Can you optimize it?",
		"Show me an example function",
		"What about error handling?",
	}
	genericSuggestions = []string{
		"Tell me more",
		"That's interesting!",
		"What do you think?",
		"Let's change the topic",
	}
)

type suggestionUC struct{}

func NewSuggestionUseCase() *suggestionUC {
	return &suggestionUC{}
}

func (s *suggestionUC) Suggestions(conversationID, lastMessage string) []string {
	if lastMessage == "" {
		return onboardingSuggestions
	}
	lower := strings.ToLower(lastMessage)
	switch {
	case strings.Contains(lower, "image") || strings.Contains(lower, "picture"):
		return imageSuggestions
	case strings.Contains(lower, "code") || strings.Contains(lower, "programming"):
		return codingSuggestions
	default:
		return genericSuggestions
	}
}
