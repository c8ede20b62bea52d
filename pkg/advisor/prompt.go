package advisor

import (
	"strings"

	"github.com/accessly/a11ybot/pkg/media"
	"github.com/accessly/a11ybot/pkg/providers"
)

// imageInstruction is appended when a turn carries an image but no
// question of its own.
const imageInstruction = `Analyze this image for accessibility and provide:
1. Descriptive alt text (under 125 characters)
2. Key accessibility issues
3. Quick improvement suggestions

Keep the response concise and actionable.`

// buildMessages assembles the prompt payload for one request: the
// persona as the system message, then prior turns in order, then the
// current turn with at most one inline image.
func (a *Advisor) buildMessages(turn Turn, history []providers.Message) []providers.Message {
	messages := make([]providers.Message, 0, len(history)+2)

	if a.persona != "" {
		messages = append(messages, providers.Message{
			Role:    "system",
			Content: a.persona,
		})
	}

	messages = append(messages, history...)

	userMsg := providers.Message{
		Role:    "user",
		Content: strings.TrimSpace(turn.Text),
	}
	if turn.Image != nil {
		if userMsg.Content == "" {
			userMsg.Content = imageInstruction
		}
		userMsg.Parts = []media.ContentPart{*turn.Image}
	}

	return append(messages, userMsg)
}
