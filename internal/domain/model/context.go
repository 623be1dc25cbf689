package model

// MaxContextMessages bounds the rolling message window kept per
// conversation. Older turns are dropped head-first, never summarized.
const MaxContextMessages = 20

// DefaultSystemPrompt is used when the caller does not supply one.
const DefaultSystemPrompt = "You are Sonix, a helpful and friendly AI assistant. Keep replies conversational and concise."

type ResponseStyle string

const (
	StyleCasual       ResponseStyle = "casual"
	StyleProfessional ResponseStyle = "professional"
	StyleTechnical    ResponseStyle = "technical"
	StyleCreative     ResponseStyle = "creative"
)

// UserPreferences tune how replies are phrased for one conversation.
type UserPreferences struct {
	ResponseStyle     ResponseStyle `json:"responseStyle"`
	PreferredLanguage string        `json:"preferredLanguage"`
	Topics            []string      `json:"topics,omitempty"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ResponseStyle:     StyleCasual,
		PreferredLanguage: "en",
	}
}

// ConversationContext is the per-conversation state the engine reads when
// producing a reply. Each update replaces it wholesale; nothing is merged
// from prior state.
type ConversationContext struct {
	ConversationID string          `json:"conversationId"`
	MessageWindow  []Message       `json:"messageWindow"`
	Preferences    UserPreferences `json:"preferences"`
	SystemPrompt   string          `json:"systemPrompt"`
}

// NewConversationContext builds a context from the caller's full message
// history, keeping only the tail of the window. Nil preferences and an
// empty prompt fall back to the fixed defaults.
func NewConversationContext(conversationID string, messages []Message, prefs *UserPreferences, systemPrompt string) *ConversationContext {
	window := messages
	if len(window) > MaxContextMessages {
		window = window[len(window)-MaxContextMessages:]
	}
	// Copy so the caller's slice stays independent of the stored window.
	copied := make([]Message, len(window))
	copy(copied, window)

	p := DefaultPreferences()
	if prefs != nil {
		p = *prefs
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &ConversationContext{
		ConversationID: conversationID,
		MessageWindow:  copied,
		Preferences:    p,
		SystemPrompt:   systemPrompt,
	}
}

// RecentMessages returns the last n messages of the window.
func (c *ConversationContext) RecentMessages(n int) []Message {
	if n <= 0 || len(c.MessageWindow) <= n {
		return c.MessageWindow
	}
	return c.MessageWindow[len(c.MessageWindow)-n:]
}

// Clone returns a value copy so in-flight generation keeps reading the
// context as it was at call start, even if the store is overwritten.
func (c *ConversationContext) Clone() *ConversationContext {
	cp := *c
	cp.MessageWindow = make([]Message, len(c.MessageWindow))
	copy(cp.MessageWindow, c.MessageWindow)
	if c.Preferences.Topics != nil {
		cp.Preferences.Topics = append([]string(nil), c.Preferences.Topics...)
	}
	return &cp
}
