package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"duochat-server/internal/domain/conversation"
)

// ErrUnknownModel is returned when the selected model matches neither
// configured backend.
var ErrUnknownModel = errors.New("unknown model")

// PromptClassifier decides whether a turn needs both backends.
type PromptClassifier interface {
	IsComplex(ctx context.Context, prompt string) bool
}

// Dispatcher runs one or both model adapters for a turn and merges their
// outputs into a deterministically ordered fragment list: the hosted
// entry, when present, always precedes the local one regardless of which
// call finished first.
type Dispatcher struct {
	hosted     Adapter
	local      Adapter
	classifier PromptClassifier
	recorder   Recorder
	timeout    time.Duration
	log        zerolog.Logger
}

// NewDispatcher constructs a Dispatcher. timeout bounds each adapter call
// independently; an expired adapter fails alone, it never cancels its
// sibling or the turn.
func NewDispatcher(hosted, local Adapter, classifier PromptClassifier, recorder Recorder, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		hosted:     hosted,
		local:      local,
		classifier: classifier,
		recorder:   recorder,
		timeout:    timeout,
		log:        log,
	}
}

// Dispatch classifies the raw message, invokes the backends, and returns
// the merged fragments plus whether the complex path was taken.
func (d *Dispatcher) Dispatch(ctx context.Context, history []Entry, message, userID, selectedModel string) ([]conversation.Fragment, bool, error) {
	complex := d.classifier.IsComplex(ctx, message)
	prompt := InstructionPrompt + "\n" + message

	var hostedText, localText string

	if complex {
		// Both backends, concurrently. Plain errgroup: no shared context
		// cancellation, both calls always run to completion.
		var g errgroup.Group
		g.Go(func() error {
			hostedText = d.invoke(ctx, d.hosted, history, prompt, userID)
			return nil
		})
		g.Go(func() error {
			localText = d.invoke(ctx, d.local, history, prompt, userID)
			return nil
		})
		_ = g.Wait()
	} else {
		switch selectedModel {
		case d.hosted.Model():
			hostedText = d.invoke(ctx, d.hosted, history, prompt, userID)
		case d.local.Model():
			localText = d.invoke(ctx, d.local, history, prompt, userID)
		default:
			return nil, false, fmt.Errorf("%w: %s", ErrUnknownModel, selectedModel)
		}
	}

	var fragments []conversation.Fragment
	if hostedText != "" {
		fragments = append(fragments, conversation.Fragment{Model: d.hosted.Model(), Text: hostedText})
	}
	if localText != "" {
		fragments = append(fragments, conversation.Fragment{Model: d.local.Model(), Text: localText})
	}

	return fragments, complex, nil
}

// Models returns the model names of the two backends, hosted first.
func (d *Dispatcher) Models() []string {
	return []string{d.hosted.Model(), d.local.Model()}
}

// invoke runs one adapter under the per-adapter deadline, writes the
// usage ledger row, and converts failure into the textual fallback the
// caller surfaces as a reply.
func (d *Dispatcher) invoke(ctx context.Context, adapter Adapter, history []Entry, prompt, userID string) string {
	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	res := adapter.Generate(callCtx, history, prompt)

	// Every invocation gets a ledger row, failed ones with zero counts.
	if err := d.recorder.Record(ctx, userID, adapter.Model(), res.Usage.PromptTokens, res.Usage.CompletionTokens); err != nil {
		d.log.Error().Err(err).Str("model", adapter.Model()).Msg("record token usage")
	}

	if res.Err != nil {
		d.log.Warn().Err(res.Err).Str("model", adapter.Model()).Msg("backend call failed")
		return fmt.Sprintf("Error calling %s: %v", adapter.Backend(), res.Err)
	}
	return res.Text
}
