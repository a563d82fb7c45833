// Package service wires the ingestion and question-answering pipeline into
// one session: a vector index plus a conversation log that live and die
// together.
package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"docchat/internal/domain"
	"docchat/internal/extractor"
	"docchat/internal/history"
	"docchat/internal/retriever"
	"docchat/internal/synthesizer"
)

// Options tunes session behaviour beyond the assembled components.
type Options struct {
	// HistoryWindow is the number of recent turns passed to the
	// synthesizer. The full log is kept for export regardless.
	HistoryWindow int

	// Extractors picks an extractor per file name. Defaults to
	// extractor.ForFile.
	Extractors func(name string) domain.Extractor
}

// Stats is a snapshot of session counters.
type Stats struct {
	Documents int
	Chunks    int
	Queries   int
}

// Service is the RAG orchestrator for one session. All operations are
// serialized: concurrent calls for the same session queue on the mutex, so
// a double-submitted question cannot interleave with an ingest.
type Service struct {
	mu         sync.Mutex
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	retriever  *retriever.Retriever
	synth      *synthesizer.Synthesizer
	log        *history.Log
	window     int
	extractors func(name string) domain.Extractor

	ready     bool
	documents int
	queries   int
}

func New(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, retr *retriever.Retriever, synth *synthesizer.Synthesizer, opts Options) *Service {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 12
	}
	if opts.Extractors == nil {
		opts.Extractors = extractor.ForFile
	}
	return &Service{
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		retriever:  retr,
		synth:      synth,
		log:        history.NewLog(),
		window:     opts.HistoryWindow,
		extractors: opts.Extractors,
	}
}

// Ingest runs extract -> chunk -> embed -> index for each file. A failing
// file is reported in the result and never stops its siblings; ingestion
// is cumulative across calls. The context is checked between documents, so
// a long batch can be cancelled at document boundaries; the returned
// result then covers what was already indexed.
func (s *Service) Ingest(ctx context.Context, files []domain.File) (domain.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result domain.IngestResult
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		fr := s.ingestOne(ctx, f)
		result.Files = append(result.Files, fr)
		if fr.Err == nil {
			s.ready = true
			s.documents++
			result.ChunksAdded += fr.Chunks
		} else {
			log.Printf("ingest %s failed: %v", f.Name, fr.Err)
		}
	}
	return result, nil
}

func (s *Service) ingestOne(ctx context.Context, f domain.File) domain.FileResult {
	units, err := s.extractors(f.Name).Extract(f.Name, f.Data)
	if err != nil {
		return domain.FileResult{Name: f.Name, Err: err}
	}
	if len(units) == 0 {
		// Parsed fine, nothing to index. Still a success.
		return domain.FileResult{Name: f.Name, Chunks: 0}
	}

	chunks, err := s.chunker.Chunk(uuid.NewString(), units)
	if err != nil {
		return domain.FileResult{Name: f.Name, Err: fmt.Errorf("chunk %s: %w", f.Name, err)}
	}
	if len(chunks) == 0 {
		return domain.FileResult{Name: f.Name, Chunks: 0}
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return domain.FileResult{Name: f.Name, Err: fmt.Errorf("embed %s: %w", f.Name, err)}
	}
	if len(vectors) != len(chunks) {
		return domain.FileResult{Name: f.Name, Err: fmt.Errorf("%w: got %d vectors for %d chunks of %s",
			domain.ErrEmbedding, len(vectors), len(chunks), f.Name)}
	}

	if err := s.store.Add(ctx, chunks, vectors); err != nil {
		return domain.FileResult{Name: f.Name, Err: fmt.Errorf("index %s: %w", f.Name, err)}
	}
	return domain.FileResult{Name: f.Name, Chunks: len(chunks)}
}

// Ask retrieves context for the question, synthesizes a grounded answer and
// records the turn pair. Failures surface whole; nothing is appended to the
// conversation on error.
func (s *Service) Ask(ctx context.Context, question string) (domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.Answer{}, domain.ErrNotReady
	}

	retrieved, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve context: %w", err)
	}

	turns := s.log.Window(s.window)
	answer, err := s.synth.Synthesize(ctx, question, retrieved, turns)
	if err != nil {
		return domain.Answer{}, err
	}

	s.log.Append(
		domain.Turn{Role: domain.RoleUser, Text: question},
		domain.Turn{Role: domain.RoleAssistant, Text: answer.Text},
	)
	s.queries++
	return answer, nil
}

// History returns the full conversation log, oldest first.
func (s *Service) History() []domain.Turn {
	return s.log.All()
}

// Stats reports session counters for display.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Documents: s.documents, Chunks: s.store.Len(), Queries: s.queries}
}
