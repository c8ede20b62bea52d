package kb

import (
	"strings"
	"testing"
)

func TestLookup_TopicMatch(t *testing.T) {
	b := New()

	a := b.Lookup("What color contrast ratio do I need?")
	if a == nil {
		t.Fatal("Expected an article for 'color contrast'")
	}
	if a.Topic != "color contrast" {
		t.Errorf("Expected topic 'color contrast', got '%s'", a.Topic)
	}
	if !strings.Contains(a.Answer, "4.5:1") {
		t.Error("Contrast article should mention the 4.5:1 ratio")
	}
}

func TestLookup_KeywordMatch(t *testing.T) {
	tests := []struct {
		question  string
		wantTopic string
	}{
		{"What ratio is required for AA?", "color contrast"},
		{"How do I write alt attributes?", "alt text"},
		{"My focus outline disappeared", "keyboard navigation"},
		{"How should I label inputs?", "forms"},
		{"Is Tab order important?", "keyboard navigation"},
	}

	b := New()
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			a := b.Lookup(tt.question)
			if a == nil {
				t.Fatalf("Expected article for %q", tt.question)
			}
			if a.Topic != tt.wantTopic {
				t.Errorf("Expected topic '%s', got '%s'", tt.wantTopic, a.Topic)
			}
		})
	}
}

func TestLookup_NoMatch(t *testing.T) {
	b := New()
	if a := b.Lookup("What is the airspeed velocity of an unladen swallow?"); a != nil {
		t.Errorf("Expected no article, got topic '%s'", a.Topic)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	b := New()
	if a := b.Lookup("COLOR CONTRAST requirements?"); a == nil {
		t.Error("Lookup should be case-insensitive")
	}
}

func TestGet(t *testing.T) {
	b := New()
	if a := b.Get("  Forms "); a == nil {
		t.Error("Get should trim and lowercase the topic")
	}
	if a := b.Get("nonexistent"); a != nil {
		t.Error("Get should return nil for unknown topics")
	}
}

func TestTopics_StableOrder(t *testing.T) {
	b := New()
	topics := b.Topics()
	if len(topics) != 4 {
		t.Fatalf("Expected 4 topics, got %d", len(topics))
	}
	for i := 1; i < len(topics); i++ {
		if topics[i-1] >= topics[i] {
			t.Errorf("Topics not sorted: %v", topics)
		}
	}
}
