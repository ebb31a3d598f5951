package inference

import (
	"context"
	"errors"
	"fmt"

	"resty.dev/v3"

	"duochat-server/internal/domain/chat"
	"duochat-server/internal/infrastructure/metrics"
)

// OllamaClient is the local model adapter, speaking the Ollama chat API
// of a self-hosted inference server.
type OllamaClient struct {
	client *resty.Client
	url    string
	model  string
}

// NewOllamaClient constructs an OllamaClient. url is the full chat
// endpoint of the inference server.
func NewOllamaClient(client *resty.Client, url, model string) *OllamaClient {
	return &OllamaClient{
		client: client,
		url:    url,
		model:  model,
	}
}

// Model returns the local model name.
func (c *OllamaClient) Model() string {
	return c.model
}

// Backend returns the backend name used in fallback text.
func (c *OllamaClient) Backend() string {
	return "Ollama API"
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaResponse struct {
	Message         ollamaMessage `json:"message"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

// Generate sends only the prompted message; the local backend is called
// statelessly, without the prior history.
func (c *OllamaClient) Generate(ctx context.Context, _ []chat.Entry, prompt string) chat.Result {
	request := ollamaRequest{
		Model:    c.model,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}

	var body ollamaResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&body).
		Post(c.url)
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues(c.model).Inc()
		return chat.Result{Err: err}
	}
	if resp.IsError() {
		metrics.BackendErrorsTotal.WithLabelValues(c.model).Inc()
		return chat.Result{Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	usage := chat.Usage{
		PromptTokens:     body.PromptEvalCount,
		CompletionTokens: body.EvalCount,
	}

	if body.Message.Content == "" {
		return chat.Result{Usage: usage, Err: errors.New("no content returned from Ollama")}
	}

	return chat.Result{Text: body.Message.Content, Usage: usage}
}
