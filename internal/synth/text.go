// Package synth produces the actual reply content: canned text pools keyed
// by intent plus a simulated image generation call. Text synthesis is pure
// given its random source; retries and timeouts live one level up.
package synth

import (
	"fmt"
	"strings"

	"sonix-engine/internal/domain/model"
	"sonix-engine/internal/domain/ports/adapter"
)

// Base sentence pools per intent. General doubles as the fallback pool for
// any intent without its own entry. Literal tables on purpose; no
// templating.
var basePools = map[model.IntentType][]string{
	model.IntentGreeting: {
		"Hey! Great to see you again.",
		"Hello there! What's on your mind today?",
		"Hi! I was hoping you'd drop by.",
		"Hey hey! Ready when you are.",
	},
	model.IntentQuestion: {
		"Good question! Here's how I'd think about it.",
		"Let me break that down for you.",
		"That's an interesting one, here's my take.",
	},
	model.IntentCode: {
		"Ah, a coding question! Let's work through it together.",
		"I love talking shop. Here's an approach that usually works.",
		"Let's look at this from a developer's perspective.",
	},
	model.IntentGeneral: {
		"I hear you! Tell me more.",
		"That's a fun way to put it.",
		"Interesting, I hadn't thought about it like that.",
		"Totally makes sense to me.",
		"I'm with you on that one.",
	},
}

// Closing follow-ups, appended to every synthesized reply.
var followUps = []string{
	"What else would you like to talk about?",
	"Anything else I can help you with?",
	"Want to dig deeper into that?",
}

// Stop words excluded from topic extraction.
var topicStopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {},
	"they": {}, "have": {}, "been": {},
}

const (
	topicScanMessages  = 5 // how many recent messages to scan
	topicsPerMessage   = 2 // qualifying tokens kept per message
	maxRecentTopics    = 3 // cap on topics named in the reply
	topicMinTokenRunes = 5 // tokens shorter than this are skipped
)

// TextSynthesizer assembles reply text from the literal pools. Pure apart
// from pool selection, which goes through the injected random source.
type TextSynthesizer struct {
	rnd adapter.RandomSource
}

func NewTextSynthesizer(rnd adapter.RandomSource) *TextSynthesizer {
	return &TextSynthesizer{rnd: rnd}
}

// Synthesize builds the reply for a non-image intent. conv may be nil for
// a conversation without stored context.
func (s *TextSynthesizer) Synthesize(message string, it model.Intent, conv *model.ConversationContext) string {
	pool, ok := basePools[it.Type]
	if !ok || len(pool) == 0 {
		pool = basePools[model.IntentGeneral]
	}
	parts := []string{pool[s.rnd.Intn(len(pool))]}

	if conv != nil && len(conv.MessageWindow) > 0 {
		if topics := recentTopics(conv); len(topics) > 0 {
			parts = append(parts, fmt.Sprintf("I remember we touched on %s earlier.", strings.Join(topics, ", ")))
		}
	}

	parts = append(parts, followUps[s.rnd.Intn(len(followUps))])
	return strings.Join(parts, " ")
}

// recentTopics scans the last few messages for content words worth calling
// back to: tokens longer than 4 characters that are not stop words, at
// most 2 per message, deduped, capped at 3 overall.
func recentTopics(conv *model.ConversationContext) []string {
	var topics []string
	seen := make(map[string]struct{})

	for _, msg := range conv.RecentMessages(topicScanMessages) {
		kept := 0
		for _, tok := range strings.Fields(msg.Content) {
			if kept == topicsPerMessage {
				break
			}
			word := strings.ToLower(strings.Trim(tok, ".,!?;:'\""))
			if len(word) < topicMinTokenRunes {
				continue
			}
			if _, stop := topicStopWords[word]; stop {
				continue
			}
			// A duplicate still uses up one of the message's two slots.
			kept++
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			topics = append(topics, word)
			if len(topics) == maxRecentTopics {
				return topics
			}
		}
	}
	return topics
}
