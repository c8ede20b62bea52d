package advisor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/accessly/a11ybot/pkg/media"
	"github.com/accessly/a11ybot/pkg/providers"
)

// mockProvider records calls and returns a canned response or error.
type mockProvider struct {
	calls    int
	messages []providers.Message
	resp     *providers.Response
	err      error
}

func (m *mockProvider) Chat(ctx context.Context, messages []providers.Message, model string) (*providers.Response, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockProvider) GetDefaultModel() string { return "mock-model" }

func newTestAdvisor(mock *mockProvider) *Advisor {
	return New(Options{
		Provider:   mock,
		Persona:    "You are an accessibility expert.",
		Credential: "test-key",
	})
}

func TestGenerate_TextQuestion(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "4.5:1 for normal text"}}
	a := newTestAdvisor(mock)

	reply, err := a.Generate(context.Background(),
		Turn{Text: "What contrast ratio is required for WCAG AA?"}, nil)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if reply.Text != "4.5:1 for normal text" {
		t.Errorf("Expected '4.5:1 for normal text', got '%s'", reply.Text)
	}
	if mock.calls != 1 {
		t.Errorf("Expected exactly one remote call, got %d", mock.calls)
	}
}

func TestGenerate_ImageOnly(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "Alt text: a bar chart of quarterly sales"}}
	a := newTestAdvisor(mock)

	img := media.ImagePart([]byte("png-bytes"), "image/png")
	reply, err := a.Generate(context.Background(), Turn{Text: "", Image: &img}, nil)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if reply.Text == "" {
		t.Error("Expected a suggestion, got empty text")
	}

	// Image-only turns get the analysis instruction as their text
	last := mock.messages[len(mock.messages)-1]
	if last.Content == "" {
		t.Error("Expected instruction text on image-only turn")
	}
	if len(last.Parts) != 1 || last.Parts[0].Type != "image" {
		t.Errorf("Expected one image part, got %+v", last.Parts)
	}
}

func TestGenerate_InvalidInput_NoRemoteCall(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "should not be reached"}}
	a := newTestAdvisor(mock)

	_, err := a.Generate(context.Background(), Turn{Text: "   "}, nil)

	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got: %v", err)
	}
	if mock.calls != 0 {
		t.Errorf("Expected no remote call, got %d", mock.calls)
	}
}

func TestGenerate_EmptyTurnWithHistoryIsInvalid(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "x"}}
	a := newTestAdvisor(mock)

	history := []providers.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	_, err := a.Generate(context.Background(), Turn{}, history)

	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty turn with history, got: %v", err)
	}
	if mock.calls != 0 {
		t.Errorf("Expected no remote call, got %d", mock.calls)
	}
}

func TestGenerate_MissingCredential_NoRemoteCall(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "x"}}
	a := New(Options{Provider: mock, Persona: "p", Credential: ""})

	for i := 0; i < 3; i++ {
		_, err := a.Generate(context.Background(), Turn{Text: "valid question"}, nil)
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("Call %d: expected ErrMissingCredential, got: %v", i, err)
		}
	}
	if mock.calls != 0 {
		t.Errorf("Expected no remote calls without credential, got %d", mock.calls)
	}
}

func TestGenerate_EmptyPayloadIsError(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "   \n  "}}
	a := newTestAdvisor(mock)

	_, err := a.Generate(context.Background(), Turn{Text: "question"}, nil)

	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got: %v", err)
	}
}

func TestGenerate_AuthRejectedPassesThrough(t *testing.T) {
	mock := &mockProvider{err: fmt.Errorf("http 403: %w", providers.ErrAuthRejected)}
	a := newTestAdvisor(mock)

	_, err := a.Generate(context.Background(), Turn{Text: "question"}, nil)

	if !errors.Is(err, ErrAuthRejected) {
		t.Errorf("Expected ErrAuthRejected, got: %v", err)
	}
}

func TestGenerate_UnavailablePassesThrough(t *testing.T) {
	mock := &mockProvider{err: fmt.Errorf("timeout: %w", providers.ErrUnavailable)}
	a := newTestAdvisor(mock)

	_, err := a.Generate(context.Background(), Turn{Text: "question"}, nil)

	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("Expected ErrRemoteUnavailable, got: %v", err)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	mock := &mockProvider{err: fmt.Errorf("http 403: %w", providers.ErrAuthRejected)}
	a := newTestAdvisor(mock)

	var first, second error
	_, first = a.Generate(context.Background(), Turn{Text: "q"}, nil)
	_, second = a.Generate(context.Background(), Turn{Text: "q"}, nil)

	if !errors.Is(first, ErrAuthRejected) || !errors.Is(second, ErrAuthRejected) {
		t.Errorf("Expected same classification on repeat, got %v then %v", first, second)
	}
	if mock.calls != 2 {
		t.Errorf("Expected one remote call per Generate, got %d", mock.calls)
	}
}

func TestBuildMessages_Order(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "ok"}}
	a := newTestAdvisor(mock)

	history := []providers.Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
	}
	if _, err := a.Generate(context.Background(), Turn{Text: "third"}, history); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	msgs := mock.messages
	if len(msgs) != 4 {
		t.Fatalf("Expected persona + 2 history + turn = 4 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Errorf("Expected persona first, got role '%s'", msgs[0].Role)
	}
	if msgs[1].Content != "first" || msgs[2].Content != "second" || msgs[3].Content != "third" {
		t.Errorf("History order not preserved: %+v", msgs)
	}
}

func TestBuildMessages_NoPersona(t *testing.T) {
	mock := &mockProvider{resp: &providers.Response{Content: "ok"}}
	a := New(Options{Provider: mock, Credential: "k"})

	if _, err := a.Generate(context.Background(), Turn{Text: "q"}, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(mock.messages) != 1 || mock.messages[0].Role != "user" {
		t.Errorf("Expected a lone user message without persona, got %+v", mock.messages)
	}
}

func TestNew_DefaultsModelFromProvider(t *testing.T) {
	a := New(Options{Provider: &mockProvider{}, Credential: "k"})
	if a.Model() != "mock-model" {
		t.Errorf("Expected provider default model, got '%s'", a.Model())
	}
}
