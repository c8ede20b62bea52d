package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider wraps the official Anthropic SDK.
type AnthropicProvider struct {
	client *anthropic.Client
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &AnthropicProvider{client: &client}
}

func (p *AnthropicProvider) GetDefaultModel() string {
	return "claude-sonnet-4-5-20250929"
}

func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message, model string) (*Response, error) {
	params := buildAnthropicParams(messages, model)

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropicErr(err)
	}

	return parseAnthropicResponse(resp), nil
}

func buildAnthropicParams(messages []Message, model string) anthropic.MessageNewParams {
	var system []anthropic.TextBlockParam
	var anthropicMessages []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case "assistant":
			anthropicMessages = append(anthropicMessages,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)),
			)
		default:
			anthropicMessages = append(anthropicMessages,
				anthropic.NewUserMessage(anthropicBlocks(msg)...),
			)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		Messages:  anthropicMessages,
		MaxTokens: 1024,
	}
	if len(system) > 0 {
		params.System = system
	}
	return params
}

func anthropicBlocks(msg Message) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	if msg.Content != "" {
		blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
	}
	for _, cp := range msg.Parts {
		switch cp.Type {
		case "image":
			blocks = append(blocks, anthropic.NewImageBlockBase64(cp.MediaType, cp.Data))
		case "text":
			blocks = append(blocks, anthropic.NewTextBlock(cp.Text))
		}
	}
	if len(blocks) == 0 {
		blocks = append(blocks, anthropic.NewTextBlock(""))
	}
	return blocks
}

func parseAnthropicResponse(resp *anthropic.Message) *Response {
	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.AsText().Text
		}
	}

	finishReason := "stop"
	switch resp.StopReason {
	case anthropic.StopReasonMaxTokens:
		finishReason = "length"
	case anthropic.StopReasonEndTurn:
		finishReason = "stop"
	}

	return &Response{
		Content:      content,
		FinishReason: finishReason,
		Usage: &UsageInfo{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}
}

func classifyAnthropicErr(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if kind := classifyStatus(apiErr.StatusCode); kind != nil {
			return fmt.Errorf("anthropic API call: %v: %w", err, kind)
		}
		return fmt.Errorf("anthropic API call: %w", err)
	}
	// No HTTP response at all: transport failure or timeout.
	return fmt.Errorf("anthropic API call: %v: %w", err, ErrUnavailable)
}
