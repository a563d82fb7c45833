package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"rate limit status", errors.New("generate: status 429"), true},
		{"server error", errors.New("generate: status 503 service unavailable"), true},
		{"bad gateway", errors.New("502 bad gateway"), true},
		{"timeout", errors.New("request timed out"), true},
		{"quota", errors.New("insufficient_quota: billing limit reached"), false},
		{"auth", errors.New("status 401 unauthorized"), false},
		{"bad request", errors.New("status 400 invalid model"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Transient(tc.err))
		})
	}
}

func TestMockDistinguishesGroundedPrompts(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	grounded, err := m.Generate(ctx, domain.GenerateRequest{
		Prompt: "Context:\n[1] (doc.pdf p.1)\nsome passage\n\nQuestion: what?",
	})
	require.NoError(t, err)
	require.Contains(t, grounded, "Grounding context was supplied")

	ungrounded, err := m.Generate(ctx, domain.GenerateRequest{
		Prompt: "Context: no matching passages were found in the documents.\n\nQuestion: what?",
	})
	require.NoError(t, err)
	require.Contains(t, ungrounded, "No grounding context was found")
	require.NotEqual(t, grounded, ungrounded)
}
