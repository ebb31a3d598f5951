package chat

import (
	"context"

	"duochat-server/internal/domain/conversation"
)

// Entry is the in-memory chat-history projection consumed by the model
// backends: one entry per stored message fragment, flattened from the
// persisted turns. It is derived state, never stored.
type Entry struct {
	Role  conversation.Role
	Parts []string
}

// Usage carries the token counters a backend reports for one call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Result is the outcome of one adapter invocation. Failure is explicit
// here; the textual fallback the caller ultimately sees is applied at the
// dispatch boundary, not inside the adapter.
type Result struct {
	Text  string
	Usage Usage
	Err   error
}

// Adapter is a uniform wrapper around one model backend's call
// convention and response shape.
type Adapter interface {
	// Model returns the model name used in responses and the usage ledger.
	Model() string
	// Backend returns the human-readable backend name used in fallback text.
	Backend() string
	// Generate produces a completion for the prompt given the prior
	// history. The returned Result always carries usage counters, zero
	// valued when the call failed.
	Generate(ctx context.Context, history []Entry, prompt string) Result
}

// Recorder appends usage ledger rows. Satisfied by tokenusage.Service.
type Recorder interface {
	Record(ctx context.Context, userID, model string, promptTokens, completionTokens int) error
}

// Flatten projects persisted turns into the entry sequence resubmitted to
// a model backend, one entry per fragment in append order.
func Flatten(turns []conversation.Turn) []Entry {
	var entries []Entry
	for _, turn := range turns {
		for _, fragment := range turn.Fragments {
			entries = append(entries, Entry{
				Role:  turn.Role,
				Parts: []string{fragment.Text},
			})
		}
	}
	return entries
}
