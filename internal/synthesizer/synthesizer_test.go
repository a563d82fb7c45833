package synthesizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

type scriptedGenerator struct {
	errs  []error
	calls int
	last  domain.GenerateRequest
}

func (g *scriptedGenerator) Name() string { return "scripted" }

func (g *scriptedGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	g.last = req
	g.calls++
	if g.calls <= len(g.errs) && g.errs[g.calls-1] != nil {
		return "", g.errs[g.calls-1]
	}
	return "the answer", nil
}

func someChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "c1", Source: "report.pdf", FirstPage: 2, LastPage: 3, Text: "revenue grew 10%"},
		{ID: "c2", Source: "report.pdf", FirstPage: 7, LastPage: 7, Text: "costs were flat"},
	}
}

func TestSynthesizePassesPromptAndReturnsSources(t *testing.T) {
	gen := &scriptedGenerator{}
	s := New(gen, 0.2, 500)

	ans, err := s.Synthesize(context.Background(), "how did revenue do?", someChunks(), nil)
	require.NoError(t, err)
	require.Equal(t, "the answer", ans.Text)
	require.Equal(t, []string{"c1", "c2"}, ans.Sources)

	require.Equal(t, 0.2, gen.last.Temperature)
	require.Equal(t, 500, gen.last.MaxTokens)
	require.NotEmpty(t, gen.last.System)
	require.Contains(t, gen.last.Prompt, "revenue grew 10%")
	require.Contains(t, gen.last.Prompt, "report.pdf p.2-3")
	require.Contains(t, gen.last.Prompt, "report.pdf p.7")
	require.Contains(t, gen.last.Prompt, "Question: how did revenue do?")
}

func TestBuildPromptIncludesHistoryVerbatim(t *testing.T) {
	turns := []domain.Turn{
		{Role: domain.RoleUser, Text: "what is the report about?"},
		{Role: domain.RoleAssistant, Text: "quarterly results."},
	}
	p := BuildPrompt("and profits?", someChunks(), turns)
	require.Contains(t, p, "Conversation so far:\n")
	require.Contains(t, p, "User: what is the report about?")
	require.Contains(t, p, "Assistant: quarterly results.")
	require.Contains(t, p, "Question: and profits?")
}

func TestBuildPromptWithoutRetrievedChunks(t *testing.T) {
	p := BuildPrompt("anything?", nil, nil)
	require.Contains(t, p, "no matching passages were found")
	require.NotContains(t, p, "[1]")
}

func TestSynthesizeRetriesTransientFailures(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("status 503 unavailable")}}
	s := New(gen, 0, 100)

	ans, err := s.Synthesize(context.Background(), "q", someChunks(), nil)
	require.NoError(t, err)
	require.Equal(t, "the answer", ans.Text)
	require.Equal(t, 2, gen.calls)
}

func TestSynthesizeDoesNotRetryPermanentFailures(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("status 401 unauthorized"), nil}}
	s := New(gen, 0, 100)

	_, err := s.Synthesize(context.Background(), "q", someChunks(), nil)
	require.Error(t, err)
	require.Equal(t, 1, gen.calls)
}

func TestSynthesizeGivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("status 502 bad gateway")
	gen := &scriptedGenerator{errs: []error{boom, boom, boom, boom}}
	s := New(gen, 0, 100)

	_, err := s.Synthesize(context.Background(), "q", someChunks(), nil)
	require.Error(t, err)
	require.Equal(t, 3, gen.calls)
}

func TestSynthesizeEmptyRetrievalStillAnswers(t *testing.T) {
	gen := &scriptedGenerator{}
	s := New(gen, 0, 100)

	ans, err := s.Synthesize(context.Background(), "q", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "the answer", ans.Text)
	require.Empty(t, ans.Sources)
}
