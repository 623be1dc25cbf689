package usecase

import (
	"reflect"
	"testing"
)

func TestSuggestions_Categories(t *testing.T) {
	uc := NewSuggestionUseCase()

	cases := []struct {
		name        string
		lastMessage string
		want        []string
	}{
		{"onboarding", "", onboardingSuggestions},
		{"image", "show me an image", imageSuggestions},
		{"picture", "nice Picture!", imageSuggestions},
		{"code", "here is my code", codingSuggestions},
		{"programming", "I enjoy programming", codingSuggestions},
		{"generic", "lovely weather today", genericSuggestions},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := uc.Suggestions("c1", tc.lastMessage)
			if len(got) != 4 {
				t.Fatalf("suggestion count: got %d want 4", len(got))
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

// Same input, same output. No hidden randomness.
func TestSuggestions_Deterministic(t *testing.T) {
	uc := NewSuggestionUseCase()
	first := uc.Suggestions("c1", "show me an image")
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(uc.Suggestions("c1", "show me an image"), first) {
			t.Fatal("suggestions changed between calls")
		}
	}
}
