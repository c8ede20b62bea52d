package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider wraps the official OpenAI SDK.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &OpenAIProvider{client: &client}
}

func (p *OpenAIProvider) GetDefaultModel() string {
	return "gpt-4o-mini"
}

func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, model string) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: buildOpenAIMessages(messages),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIErr(err)
	}

	if len(resp.Choices) == 0 {
		return &Response{Content: "", FinishReason: "stop"}, nil
	}

	choice := resp.Choices[0]
	finishReason := "stop"
	if choice.FinishReason == "length" {
		finishReason = "length"
	}

	return &Response{
		Content:      choice.Message.Content,
		FinishReason: finishReason,
		Usage: &UsageInfo{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func buildOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			if len(msg.Parts) == 0 {
				out = append(out, openai.UserMessage(msg.Content))
				continue
			}
			var parts []openai.ChatCompletionContentPartUnionParam
			if msg.Content != "" {
				parts = append(parts, openai.TextContentPart(msg.Content))
			}
			for _, cp := range msg.Parts {
				switch cp.Type {
				case "image":
					// Inline images travel as data URIs in the chat API.
					url := fmt.Sprintf("data:%s;base64,%s", cp.MediaType, cp.Data)
					parts = append(parts, openai.ImageContentPart(
						openai.ChatCompletionContentPartImageImageURLParam{URL: url},
					))
				case "text":
					parts = append(parts, openai.TextContentPart(cp.Text))
				}
			}
			out = append(out, openai.UserMessage(parts))
		}
	}
	return out
}

func classifyOpenAIErr(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if kind := classifyStatus(apiErr.StatusCode); kind != nil {
			return fmt.Errorf("openai API call: %v: %w", err, kind)
		}
		return fmt.Errorf("openai API call: %w", err)
	}
	return fmt.Errorf("openai API call: %v: %w", err, ErrUnavailable)
}
