package synthesizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docchat/internal/domain"
	"docchat/internal/llm"
)

const systemInstruction = "You are a document assistant. Answer using only the provided context from the " +
	"user's documents. Cite the bracketed context numbers you relied on. If the context does not contain " +
	"the answer, say so instead of guessing."

// maxRetries and retryBase bound how long a transient provider failure can
// stall one question: at most two extra attempts, 1s then 2s apart.
const (
	maxRetries = 2
	retryBase  = time.Second
)

// Synthesizer turns retrieved chunks, conversation history and the current
// question into one prompt and asks the language model for a grounded
// answer.
type Synthesizer struct {
	generator   domain.Generator
	temperature float64
	maxTokens   int
}

func New(generator domain.Generator, temperature float64, maxTokens int) *Synthesizer {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &Synthesizer{generator: generator, temperature: temperature, maxTokens: maxTokens}
}

// Synthesize answers the question from the retrieved chunks. An empty
// retrieval set still produces an answer; the model is told there is no
// matching context. Transient provider failures are retried with backoff;
// persistent ones surface wrapped in domain.ErrGeneration.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, retrieved []domain.Chunk, turns []domain.Turn) (domain.Answer, error) {
	req := domain.GenerateRequest{
		System:      systemInstruction,
		Prompt:      BuildPrompt(question, retrieved, turns),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	var text string
	var err error
	for attempt := 0; ; attempt++ {
		text, err = s.generator.Generate(ctx, req)
		if err == nil {
			break
		}
		if attempt >= maxRetries || !llm.Transient(err) || ctx.Err() != nil {
			return domain.Answer{}, fmt.Errorf("synthesize answer: %w", err)
		}
		wait(ctx, retryBase<<attempt)
	}

	sources := make([]string, 0, len(retrieved))
	for _, c := range retrieved {
		sources = append(sources, c.ID)
	}
	return domain.Answer{Text: strings.TrimSpace(text), Sources: sources}, nil
}

// BuildPrompt lays out context chunks with their source attribution, the
// recent conversation verbatim, and the current question.
func BuildPrompt(question string, retrieved []domain.Chunk, turns []domain.Turn) string {
	var b strings.Builder

	if len(retrieved) > 0 {
		b.WriteString("Context:\n")
		for i, c := range retrieved {
			fmt.Fprintf(&b, "[%d] (%s)\n%s\n\n", i+1, c.Ref(), c.Text)
		}
	} else {
		b.WriteString("Context: no matching passages were found in the documents.\n\n")
	}

	if len(turns) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, t := range turns {
			switch t.Role {
			case domain.RoleAssistant:
				b.WriteString("Assistant: ")
			default:
				b.WriteString("User: ")
			}
			b.WriteString(t.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
