package providers

import (
	"context"
	"errors"

	"github.com/accessly/a11ybot/pkg/media"
)

// Classified remote-call failures. Providers wrap their SDK or HTTP
// errors with one of these so callers can branch with errors.Is
// without knowing which backend is active.
var (
	// ErrAuthRejected means the remote service refused the configured
	// credential (invalid, revoked, or blocked for the API).
	ErrAuthRejected = errors.New("remote service rejected credentials")

	// ErrUnavailable covers network failures, timeouts, quota
	// exhaustion and server-side errors. Transient from the caller's
	// point of view; a manual retry may succeed.
	ErrUnavailable = errors.New("remote service unavailable")
)

// Message is one turn in a conversation, in a provider-neutral shape.
// Parts carries optional multimodal content (at most one image per
// request in practice).
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`

	Parts []media.ContentPart `json:"parts,omitempty"`
}

// UsageInfo reports token accounting for a single call.
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the provider-neutral result of one generation call.
type Response struct {
	Content      string     `json:"content"`
	FinishReason string     `json:"finish_reason"`
	Usage        *UsageInfo `json:"usage,omitempty"`
}

// Provider is the remote generation capability boundary. One call to
// Chat performs exactly one remote request; no retries happen below
// this interface.
type Provider interface {
	Chat(ctx context.Context, messages []Message, model string) (*Response, error)
	GetDefaultModel() string
}

// classifyStatus maps an HTTP status code to the failure taxonomy.
// Returns nil for statuses that are not classified failures.
func classifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrAuthRejected
	case status == 429 || status >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}
