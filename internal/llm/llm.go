package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"reposcorer/internal/models"
)

// ResponseFormatError means the model's reply was not valid JSON. Raw keeps
// the unmodified reply so callers can show it for debugging.
type ResponseFormatError struct {
	Raw string
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("invalid AI response format: %v", e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// Client sends analysis prompts to an OpenAI-compatible completion endpoint.
// Constructed once at startup; a missing API key is rejected by config
// before this point.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Analyze sends the prompt once (no retry, no streaming) and parses the
// reply into an AnalysisResult.
func (c *Client) Analyze(ctx context.Context, prompt string) (*models.AnalysisResult, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// No ResponseFormat — not all models support json_object mode.
		// The prompt itself pins the required JSON shape.
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	return parseAnalysis(resp.Choices[0].Message.Content)
}

// parseAnalysis strips markdown code fences and parses the remaining text as
// JSON. Partial or malformed payloads are a total failure; field-level gaps
// are tolerated and filled with defaults at render time.
func parseAnalysis(raw string) (*models.AnalysisResult, error) {
	text := stripCodeFences(raw)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &ResponseFormatError{Raw: raw, Err: err}
	}
	return &result, nil
}

// stripCodeFences removes the markdown fences some models wrap around JSON:
// the opening ```json or ``` marker (first occurrence only), then any
// trailing backticks.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.Replace(s, "```json", "", 1)
	case strings.HasPrefix(s, "```"):
		s = strings.Replace(s, "```", "", 1)
	default:
		return s
	}
	s = strings.TrimRight(s, "`")
	return strings.TrimSpace(s)
}
