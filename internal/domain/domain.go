package domain

import (
	"context"
	"strconv"
)

// File is an uploaded document before extraction: raw bytes plus the name
// the user knows it by. It exists only for the duration of one ingest call.
type File struct {
	Name string
	Data []byte
}

// TextUnit is the extracted text of a single page, kept just long enough
// to be chunked.
type TextUnit struct {
	Source string
	Page   int
	Text   string
}

// Chunk is the atomic unit of retrieval: a bounded segment of source text
// with enough provenance to cite it back.
type Chunk struct {
	ID         string
	DocumentID string
	Source     string
	FirstPage  int
	LastPage   int
	Index      int
	Text       string
}

// Ref renders the citation label used in prompts and answers,
// e.g. "report.pdf p.3-5".
func (c Chunk) Ref() string {
	if c.LastPage > c.FirstPage {
		return c.Source + " p." + strconv.Itoa(c.FirstPage) + "-" + strconv.Itoa(c.LastPage)
	}
	return c.Source + " p." + strconv.Itoa(c.FirstPage)
}

// SearchResult is a chunk matched by similarity search.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Turn is one utterance in the conversation. Role is RoleUser or RoleAssistant.
type Turn struct {
	Role string
	Text string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Answer is the synthesized reply to one question together with the IDs of
// the chunks it was grounded on.
type Answer struct {
	Text    string
	Sources []string
}

// FileResult reports how one file fared during ingestion.
type FileResult struct {
	Name   string
	Chunks int
	Err    error
}

// IngestResult is the partial-success outcome of one Ingest call. A failed
// file never hides its siblings.
type IngestResult struct {
	Files       []FileResult
	ChunksAdded int
}

// Failed returns the results of files that could not be ingested.
func (r IngestResult) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Extractor converts a document into page-ordered text units.
type Extractor interface {
	Extract(name string, data []byte) ([]TextUnit, error)
}

// Chunker splits extracted text units into overlapping chunks.
type Chunker interface {
	Chunk(docID string, units []TextUnit) ([]Chunk, error)
}

// Embedder converts texts into fixed-dimension vectors, one per input,
// order-preserving. Dimension may be unknown (0) until the first call.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore holds (vector, chunk) pairs for one session and supports
// nearest-neighbour search. Append-only; the first Add establishes the
// dimension.
type VectorStore interface {
	Add(ctx context.Context, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)
	Len() int
}

// Generator produces a completion for a prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest carries everything a provider needs for one completion.
type GenerateRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}
