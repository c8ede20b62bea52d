package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/accessly/a11ybot/pkg/logger"
	"github.com/accessly/a11ybot/pkg/media"
	"github.com/accessly/a11ybot/pkg/providers"
)

// Error kinds surfaced by Generate. All are terminal for the current
// request; nothing is retried automatically.
var (
	// ErrMissingCredential means no API key was configured. Detected
	// before any network attempt.
	ErrMissingCredential = errors.New("no API credential configured")

	// ErrInvalidInput means the turn carried neither text nor an image.
	ErrInvalidInput = errors.New("empty input: text or an image is required")

	// ErrEmptyResponse means the remote call succeeded but returned no
	// usable content.
	ErrEmptyResponse = errors.New("remote service returned no usable content")

	// ErrAuthRejected and ErrRemoteUnavailable are classified by the
	// provider layer and pass through Generate unchanged.
	ErrAuthRejected      = providers.ErrAuthRejected
	ErrRemoteUnavailable = providers.ErrUnavailable
)

// Turn is one user interaction: text, an optional image, or both.
type Turn struct {
	Text  string
	Image *media.ContentPart
}

// Reply is the outcome of one successful generation.
type Reply struct {
	Text  string
	Usage *providers.UsageInfo
}

// Options configures an Advisor.
type Options struct {
	Provider providers.Provider
	Model    string

	// Persona is the fixed system instruction conditioning the model
	// toward the accessibility-advisor role. Immutable after
	// construction.
	Persona string

	// Credential is the API key for the active provider. When empty,
	// every Generate call fails with ErrMissingCredential without
	// touching the network.
	Credential string
}

// Advisor assembles prompts and orchestrates single request/response
// calls against the remote generation capability. It holds no mutable
// request state; the only side effect per call is one outbound request.
type Advisor struct {
	provider   providers.Provider
	model      string
	persona    string
	credential string
}

func New(opts Options) *Advisor {
	model := opts.Model
	if model == "" && opts.Provider != nil {
		model = opts.Provider.GetDefaultModel()
	}
	return &Advisor{
		provider:   opts.Provider,
		model:      model,
		persona:    opts.Persona,
		credential: opts.Credential,
	}
}

// Model returns the active model identifier.
func (a *Advisor) Model() string {
	return a.model
}

// SetModel switches the model used for subsequent calls.
func (a *Advisor) SetModel(model string) {
	a.model = model
}

// Generate assembles a prompt from the persona, prior history and the
// current turn, performs exactly one remote call, and returns the
// generated text. The prompt is built fresh on every call; nothing is
// cached here.
func (a *Advisor) Generate(ctx context.Context, turn Turn, history []providers.Message) (*Reply, error) {
	if a.credential == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(turn.Text) == "" && turn.Image == nil {
		return nil, ErrInvalidInput
	}

	messages := a.buildMessages(turn, history)

	logger.DebugCF("advisor", "Issuing generation request", map[string]interface{}{
		"model":        a.model,
		"history_len":  len(history),
		"has_image":    turn.Image != nil,
		"prompt_turns": len(messages),
	})

	resp, err := a.provider.Chat(ctx, messages, a.model)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Reply{Text: text, Usage: resp.Usage}, nil
}
