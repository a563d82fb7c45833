package llm

import (
	"context"
	"strings"

	"docchat/internal/domain"
)

// Mock answers deterministically from the prompt itself so the pipeline can
// run offline and tests stay network-free.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	_ = ctx
	var b strings.Builder
	b.WriteString("Deterministic answer based on the provided context.")
	if strings.Contains(req.Prompt, "[1] (") {
		b.WriteString(" Grounding context was supplied.")
	} else {
		b.WriteString(" No grounding context was found in the documents.")
	}
	return b.String(), nil
}
