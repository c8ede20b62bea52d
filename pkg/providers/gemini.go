package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider talks to the Generative Language API over plain REST.
type GeminiProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiProvider creates a provider authenticated with an API key.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewGeminiProviderWithBaseURL overrides the API endpoint. Used by tests.
func NewGeminiProviderWithBaseURL(apiKey, baseURL string) *GeminiProvider {
	p := NewGeminiProvider(apiKey)
	p.baseURL = baseURL
	return p
}

func (p *GeminiProvider) GetDefaultModel() string {
	return "gemini-2.0-flash"
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Chat performs one generateContent call. System messages become the
// system instruction; assistant turns map to the "model" role.
func (p *GeminiProvider) Chat(ctx context.Context, messages []Message, model string) (*Response, error) {
	req := buildGeminiRequest(messages)

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini call: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr geminiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		kind := classifyGemini(resp.StatusCode, apiErr.Error.Status)
		if kind != nil {
			return nil, fmt.Errorf("gemini http %d (%s): %s: %w",
				resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message, kind)
		}
		return nil, fmt.Errorf("gemini http %d (%s): %s",
			resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	return parseGeminiResponse(&out), nil
}

func buildGeminiRequest(messages []Message) *geminiRequest {
	req := &geminiRequest{}

	for _, msg := range messages {
		parts := geminiParts(msg)

		switch msg.Role {
		case "system":
			if req.SystemInstruction == nil {
				req.SystemInstruction = &geminiContent{}
			}
			req.SystemInstruction.Parts = append(req.SystemInstruction.Parts, parts...)
		case "assistant":
			req.Contents = append(req.Contents, geminiContent{Role: "model", Parts: parts})
		default:
			req.Contents = append(req.Contents, geminiContent{Role: "user", Parts: parts})
		}
	}

	return req
}

func geminiParts(msg Message) []geminiPart {
	var parts []geminiPart
	if msg.Content != "" {
		parts = append(parts, geminiPart{Text: msg.Content})
	}
	for _, cp := range msg.Parts {
		switch cp.Type {
		case "image":
			parts = append(parts, geminiPart{InlineData: &geminiInlineData{
				MimeType: cp.MediaType,
				Data:     cp.Data,
			}})
		case "text":
			parts = append(parts, geminiPart{Text: cp.Text})
		}
	}
	if len(parts) == 0 {
		parts = append(parts, geminiPart{Text: ""})
	}
	return parts
}

func parseGeminiResponse(out *geminiResponse) *Response {
	var content string
	finishReason := "stop"

	if len(out.Candidates) > 0 {
		for _, part := range out.Candidates[0].Content.Parts {
			content += part.Text
		}
		switch out.Candidates[0].FinishReason {
		case "MAX_TOKENS":
			finishReason = "length"
		case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT":
			finishReason = "filtered"
		}
	}

	resp := &Response{
		Content:      content,
		FinishReason: finishReason,
	}
	if out.UsageMetadata != nil {
		resp.Usage = &UsageInfo{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      out.UsageMetadata.TotalTokenCount,
		}
	}
	return resp
}

// classifyGemini extends plain HTTP status classification with the
// API's own status strings. A blocked key surfaces as 400
// API_KEY_INVALID rather than 403, so the status code alone is not
// enough.
func classifyGemini(status int, apiStatus string) error {
	switch apiStatus {
	case "UNAUTHENTICATED", "PERMISSION_DENIED", "API_KEY_INVALID":
		return ErrAuthRejected
	case "RESOURCE_EXHAUSTED", "UNAVAILABLE", "DEADLINE_EXCEEDED", "INTERNAL":
		return ErrUnavailable
	}
	return classifyStatus(status)
}
