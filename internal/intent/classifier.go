// Package intent classifies user messages into a closed set of intent
// types with a deliberately simple rule table. Rules are evaluated in
// priority order and the first match wins; later rules never override an
// earlier one.
package intent

import (
	"regexp"
	"strings"

	"sonix-engine/internal/domain/model"
)

// Classifier holds the compiled rule tables. It is stateless after
// construction and safe for concurrent use.
type Classifier struct {
	// Regex patterns that mark a message as an image request
	imagePatterns []*regexp.Regexp

	// Subject/style nouns recognized as image descriptors
	descriptorVocab map[string]struct{}

	// Substring keywords for the remaining rules
	codeKeywords     []string
	greetingKeywords []string
	questionPrefixes []string
}

// NewClassifier creates a Classifier with the default rule tables.
func NewClassifier() *Classifier {
	c := &Classifier{
		codeKeywords:     []string{"code", "function", "algorithm"},
		greetingKeywords: []string{"hello", "hi", "hey"},
		questionPrefixes: []string{"how", "what"},
	}

	c.imagePatterns = []*regexp.Regexp{
		// "generate/create/make ... image/picture/photo/drawing/art"
		regexp.MustCompile(`(?i)\b(generate|create|make)\b.*\b(image|picture|photo|drawing|art)\b`),
		// "draw/paint/sketch ... for me"
		regexp.MustCompile(`(?i)\b(draw|paint|sketch)\b.*\bfor me\b`),
		// "image/picture/photo of ..."
		regexp.MustCompile(`(?i)\b(image|picture|photo)\s+of\b`),
		// "show me a/an ... image/picture"
		regexp.MustCompile(`(?i)\bshow me\b.*\b(image|picture)\b`),
	}

	c.descriptorVocab = make(map[string]struct{})
	for _, w := range []string{
		// subjects
		"sunset", "sunrise", "robot", "portrait", "landscape", "mountain",
		"ocean", "beach", "forest", "city", "skyline", "dragon", "castle",
		"galaxy", "space", "cat", "dog", "flower", "garden", "river",
		// styles
		"abstract", "watercolor", "anime", "cyberpunk", "vintage", "neon",
		"minimalist", "surreal", "realistic", "pixel",
	} {
		c.descriptorVocab[w] = struct{}{}
	}
	return c
}

// Analyze assigns exactly one intent to the message.
func (c *Classifier) Analyze(message string) model.Intent {
	lower := strings.ToLower(message)

	if c.isImageRequest(message) {
		return model.Intent{
			Type:       model.IntentImageGeneration,
			Confidence: 0.9,
			Keywords:   c.extractDescriptors(message),
		}
	}

	for _, kw := range c.codeKeywords {
		if strings.Contains(lower, kw) {
			return model.Intent{
				Type:       model.IntentCode,
				Confidence: 0.8,
				Keywords:   []string{"programming", "development"},
			}
		}
	}

	if strings.Contains(message, "?") || hasAnyPrefix(lower, c.questionPrefixes) {
		return model.Intent{Type: model.IntentQuestion, Confidence: 0.7}
	}

	for _, kw := range c.greetingKeywords {
		if strings.Contains(lower, kw) {
			return model.Intent{Type: model.IntentGreeting, Confidence: 0.9}
		}
	}

	return model.Intent{Type: model.IntentGeneral, Confidence: 0.5}
}

func (c *Classifier) isImageRequest(message string) bool {
	for _, pattern := range c.imagePatterns {
		if pattern.MatchString(message) {
			return true
		}
	}
	return false
}

// extractDescriptors keeps every message token found in the descriptor
// vocabulary, in input order. Matching is case-insensitive; the returned
// tokens are lowercased.
func (c *Classifier) extractDescriptors(message string) []string {
	var out []string
	for _, tok := range strings.Fields(message) {
		word := strings.ToLower(strings.Trim(tok, ".,!?;:'\""))
		if _, ok := c.descriptorVocab[word]; ok {
			out = append(out, word)
		}
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
