package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter is a canned single-shot completion backend.
type stubCompleter struct {
	answer     string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.answer, s.err
}

func TestClassifierExactTrueMatch(t *testing.T) {
	cases := []struct {
		name    string
		answer  string
		complex bool
	}{
		{"plain true", "true", true},
		{"uppercase", "TRUE", true},
		{"surrounding whitespace", "  True \n", true},
		{"trailing punctuation", "true.", false},
		{"embedded true", "the answer is true", false},
		{"false", "false", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			completer := &stubCompleter{answer: tc.answer}
			classifier := NewClassifier(completer, 0, zerolog.Nop())

			assert.Equal(t, tc.complex, classifier.IsComplex(context.Background(), "prompt"))
		})
	}
}

func TestClassifierFailsClosed(t *testing.T) {
	completer := &stubCompleter{err: errors.New("backend down")}
	classifier := NewClassifier(completer, 0, zerolog.Nop())

	assert.False(t, classifier.IsComplex(context.Background(), "any prompt"))
}

func TestClassifierSendsEvaluationInstruction(t *testing.T) {
	completer := &stubCompleter{answer: "false"}
	classifier := NewClassifier(completer, 0, zerolog.Nop())

	classifier.IsComplex(context.Background(), "compare X and Y")

	require.True(t, strings.HasSuffix(completer.lastPrompt, "compare X and Y"))
	assert.Greater(t, len(completer.lastPrompt), len("compare X and Y"))
}
