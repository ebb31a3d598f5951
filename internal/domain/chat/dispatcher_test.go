package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duochat-server/internal/domain/conversation"
)

// stubAdapter returns a canned result and counts invocations.
type stubAdapter struct {
	model       string
	backend     string
	result      Result
	calls       int
	lastPrompt  string
	lastHistory []Entry
}

func (a *stubAdapter) Model() string   { return a.model }
func (a *stubAdapter) Backend() string { return a.backend }

func (a *stubAdapter) Generate(_ context.Context, history []Entry, prompt string) Result {
	a.calls++
	a.lastPrompt = prompt
	a.lastHistory = history
	return a.result
}

type stubClassifier struct {
	complex    bool
	lastPrompt string
}

func (c *stubClassifier) IsComplex(_ context.Context, prompt string) bool {
	c.lastPrompt = prompt
	return c.complex
}

type usageRow struct {
	userID           string
	model            string
	promptTokens     int
	completionTokens int
}

// recorderSpy captures ledger writes.
type recorderSpy struct {
	rows []usageRow
	err  error
}

func (r *recorderSpy) Record(_ context.Context, userID, model string, promptTokens, completionTokens int) error {
	r.rows = append(r.rows, usageRow{userID, model, promptTokens, completionTokens})
	return r.err
}

func newTestDispatcher(hosted, local *stubAdapter, complex bool) (*Dispatcher, *stubClassifier, *recorderSpy) {
	classifier := &stubClassifier{complex: complex}
	recorder := &recorderSpy{}
	d := NewDispatcher(hosted, local, classifier, recorder, 0, zerolog.Nop())
	return d, classifier, recorder
}

func TestDispatchComplexRunsBothBackends(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Text: "hosted answer", Usage: Usage{PromptTokens: 10, CompletionTokens: 5}}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API", result: Result{Text: "local answer", Usage: Usage{PromptTokens: 8, CompletionTokens: 4}}}
	d, _, recorder := newTestDispatcher(hosted, local, true)

	fragments, complex, err := d.Dispatch(context.Background(), nil, "compare X and Y", "user-1", "llama3.2:latest")

	require.NoError(t, err)
	assert.True(t, complex)
	assert.Equal(t, 1, hosted.calls)
	assert.Equal(t, 1, local.calls)

	// Hosted always comes first, regardless of completion order.
	require.Len(t, fragments, 2)
	assert.Equal(t, conversation.Fragment{Model: "gemini-2.0-flash", Text: "hosted answer"}, fragments[0])
	assert.Equal(t, conversation.Fragment{Model: "llama3.2:latest", Text: "local answer"}, fragments[1])

	assert.Len(t, recorder.rows, 2)
}

func TestDispatchSimpleUsesOnlySelectedBackend(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Text: "hosted answer"}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API", result: Result{Text: "local answer", Usage: Usage{PromptTokens: 3, CompletionTokens: 2}}}
	d, _, recorder := newTestDispatcher(hosted, local, false)

	fragments, complex, err := d.Dispatch(context.Background(), nil, "hi", "user-1", "llama3.2:latest")

	require.NoError(t, err)
	assert.False(t, complex)
	assert.Equal(t, 0, hosted.calls)
	assert.Equal(t, 1, local.calls)

	require.Len(t, fragments, 1)
	assert.Equal(t, "local answer", fragments[0].Text)

	require.Len(t, recorder.rows, 1)
	assert.Equal(t, usageRow{"user-1", "llama3.2:latest", 3, 2}, recorder.rows[0])
}

func TestDispatchUnknownModel(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API"}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API"}
	d, _, recorder := newTestDispatcher(hosted, local, false)

	_, _, err := d.Dispatch(context.Background(), nil, "hi", "user-1", "gpt-99")

	require.ErrorIs(t, err, ErrUnknownModel)
	assert.Equal(t, 0, hosted.calls)
	assert.Equal(t, 0, local.calls)
	assert.Empty(t, recorder.rows)
}

func TestDispatchFallbackTextOnBackendFailure(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Err: errors.New("connection refused")}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API", result: Result{Text: "local answer"}}
	d, _, recorder := newTestDispatcher(hosted, local, true)

	fragments, _, err := d.Dispatch(context.Background(), nil, "compare", "user-1", "gemini-2.0-flash")

	require.NoError(t, err)
	require.Len(t, fragments, 2)
	assert.Equal(t, "Error calling Gemini API: connection refused", fragments[0].Text)

	// The failed call still gets a ledger row, with zero counts.
	require.Len(t, recorder.rows, 2)
	for _, row := range recorder.rows {
		if row.model == "gemini-2.0-flash" {
			assert.Zero(t, row.promptTokens)
			assert.Zero(t, row.completionTokens)
		}
	}
}

func TestDispatchDropsEmptyTexts(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Text: ""}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API", result: Result{Text: "local answer"}}
	d, _, _ := newTestDispatcher(hosted, local, true)

	fragments, _, err := d.Dispatch(context.Background(), nil, "compare", "user-1", "gemini-2.0-flash")

	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "llama3.2:latest", fragments[0].Model)
}

func TestDispatchClassifiesRawMessageButPromptsWithInstruction(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Text: "answer"}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API"}
	d, classifier, _ := newTestDispatcher(hosted, local, false)

	_, _, err := d.Dispatch(context.Background(), nil, "what is 2+2", "user-1", "gemini-2.0-flash")

	require.NoError(t, err)
	assert.Equal(t, "what is 2+2", classifier.lastPrompt)
	assert.True(t, strings.HasPrefix(hosted.lastPrompt, InstructionPrompt))
	assert.True(t, strings.HasSuffix(hosted.lastPrompt, "what is 2+2"))
}

func TestDispatchRecordErrorDoesNotFailTurn(t *testing.T) {
	hosted := &stubAdapter{model: "gemini-2.0-flash", backend: "Gemini API", result: Result{Text: "answer"}}
	local := &stubAdapter{model: "llama3.2:latest", backend: "Ollama API"}
	classifier := &stubClassifier{}
	recorder := &recorderSpy{err: errors.New("ledger down")}
	d := NewDispatcher(hosted, local, classifier, recorder, 0, zerolog.Nop())

	fragments, _, err := d.Dispatch(context.Background(), nil, "hi", "user-1", "gemini-2.0-flash")

	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "answer", fragments[0].Text)
}
