// Package inference wraps the two model backends behind the uniform
// adapter contract the dispatch core consumes.
package inference

import (
	"context"
	"errors"
	"fmt"

	"resty.dev/v3"

	"duochat-server/internal/domain/chat"
	"duochat-server/internal/domain/conversation"
	"duochat-server/internal/infrastructure/metrics"
)

const (
	chatTemperature     = 0.7
	chatMaxOutputTokens = 500

	// Classification wants a short, deterministic answer.
	classifyTemperature     = 0.1
	classifyMaxOutputTokens = 10
)

// GeminiClient is the hosted model adapter, speaking the Gemini REST API.
type GeminiClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiClient constructs a GeminiClient.
func NewGeminiClient(client *resty.Client, baseURL, apiKey, model string) *GeminiClient {
	return &GeminiClient{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// Model returns the hosted model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Backend returns the backend name used in fallback text.
func (c *GeminiClient) Backend() string {
	return "Gemini API"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// Generate sends the flattened history plus the prompted message and
// normalizes the Gemini response shape into a Result.
func (c *GeminiClient) Generate(ctx context.Context, history []chat.Entry, prompt string) chat.Result {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, entry := range history {
		parts := make([]geminiPart, 0, len(entry.Parts))
		for _, text := range entry.Parts {
			parts = append(parts, geminiPart{Text: text})
		}
		contents = append(contents, geminiContent{
			Role:  wireRole(entry.Role),
			Parts: parts,
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: prompt}},
	})

	body, err := c.generateContent(ctx, geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     chatTemperature,
			MaxOutputTokens: chatMaxOutputTokens,
		},
	})
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues(c.model).Inc()
		return chat.Result{Err: err}
	}

	text, err := firstCandidateText(body)
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues(c.model).Inc()
		return chat.Result{Err: err}
	}

	return chat.Result{
		Text: text,
		Usage: chat.Usage{
			PromptTokens:     body.UsageMetadata.PromptTokenCount,
			CompletionTokens: body.UsageMetadata.CandidatesTokenCount,
		},
	}
}

// Complete runs a single low-temperature completion with no history. The
// classifier uses it.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.generateContent(ctx, geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     classifyTemperature,
			MaxOutputTokens: classifyMaxOutputTokens,
		},
	})
	if err != nil {
		return "", err
	}
	return firstCandidateText(body)
}

func (c *GeminiClient) generateContent(ctx context.Context, request geminiRequest) (*geminiResponse, error) {
	var body geminiResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(request).
		SetResult(&body).
		Post(fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}
	return &body, nil
}

func firstCandidateText(body *geminiResponse) (string, error) {
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates returned")
	}
	return body.Candidates[0].Content.Parts[0].Text, nil
}

// wireRole maps stored roles onto the Gemini wire roles: the assistant
// side is called "model" there.
func wireRole(role conversation.Role) string {
	if role == conversation.RoleAssistant {
		return "model"
	}
	return string(role)
}
