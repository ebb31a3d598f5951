package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	cases := []struct {
		name     string
		turns    []Turn
		expected string
	}{
		{
			name:     "no turns",
			turns:    nil,
			expected: "No Msg",
		},
		{
			name:     "empty first turn",
			turns:    []Turn{{Role: RoleUser}},
			expected: "No Msg",
		},
		{
			name: "blank text",
			turns: []Turn{
				{Role: RoleUser, Fragments: []Fragment{{Model: "gemini-2.0-flash", Text: "   "}}},
			},
			expected: "No Msg",
		},
		{
			name: "short message kept whole",
			turns: []Turn{
				{Role: RoleUser, Fragments: []Fragment{{Model: "gemini-2.0-flash", Text: "hello there"}}},
			},
			expected: "hello there",
		},
		{
			name: "long message truncated to six words",
			turns: []Turn{
				{Role: RoleUser, Fragments: []Fragment{{Model: "gemini-2.0-flash", Text: "one two three four five six seven eight"}}},
			},
			expected: "one two three four five six",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conv := &Conversation{Turns: tc.turns}
			assert.Equal(t, tc.expected, conv.Preview())
		})
	}
}
