package chat

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Completer is a single-shot, low-temperature completion capability used
// for prompt classification. The hosted backend client provides it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier labels a user prompt as complex (multi-answer) or simple
// (single-answer). Ambiguity resolves to the cheaper single-backend
// path: any backend error classifies as simple.
type Classifier struct {
	completer Completer
	timeout   time.Duration
	log       zerolog.Logger
}

// NewClassifier constructs a Classifier.
func NewClassifier(completer Completer, timeout time.Duration, log zerolog.Logger) *Classifier {
	return &Classifier{completer: completer, timeout: timeout, log: log}
}

// IsComplex returns true only when the backend answers with an exact
// "true" token after trimming and lowercasing.
func (c *Classifier) IsComplex(ctx context.Context, prompt string) bool {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	answer, err := c.completer.Complete(ctx, evaluationPrompt+prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("prompt classification failed, defaulting to simple")
		return false
	}

	return strings.ToLower(strings.TrimSpace(answer)) == "true"
}
