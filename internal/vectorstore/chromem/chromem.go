// Package chromem backs the session's vector index with an in-memory
// chromem-go collection. Same session-scoped semantics as the memory store;
// nothing is persisted.
package chromem

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"docchat/internal/domain"
)

// Store adapts a chromem-go collection to the VectorStore contract.
// Embeddings are always supplied by the caller; the collection never embeds
// on its own.
type Store struct {
	mu         sync.RWMutex
	collection *chromem.Collection
	dimension  int
	count      int
}

func NewStore() (*Store, error) {
	db := chromem.NewDB()
	collection, err := db.CreateCollection("session", nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("create chromem collection: %w", err)
	}
	return &Store{collection: collection}, nil
}

// rejectEmbedding guards against any path that would ask the collection to
// embed text itself.
func rejectEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("chromem store requires precomputed embeddings")
}

func (s *Store) Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dimension
	for i, v := range vectors {
		if dim == 0 {
			dim = len(v)
		}
		if len(v) == 0 || len(v) != dim {
			return &domain.DimensionError{Source: chunks[i].Source, Got: len(v), Want: dim}
		}
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for i, ch := range chunks {
		// Collection IDs carry an insertion counter: chunk IDs repeat when
		// the same document is ingested twice, and both copies must count.
		docs = append(docs, chromem.Document{
			ID:        fmt.Sprintf("%06d-%s", s.count+i, ch.ID),
			Content:   ch.Text,
			Embedding: vectors[i],
			Metadata: map[string]string{
				"chunk_id":    ch.ID,
				"document_id": ch.DocumentID,
				"source":      ch.Source,
				"first_page":  strconv.Itoa(ch.FirstPage),
				"last_page":   strconv.Itoa(ch.LastPage),
				"index":       strconv.Itoa(ch.Index),
			},
		})
	}
	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	s.dimension = dim
	s.count += len(docs)
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.count == 0 || topK <= 0 {
		return nil, nil
	}
	if s.dimension != len(vector) {
		return nil, &domain.DimensionError{Source: "query", Got: len(vector), Want: s.dimension}
	}
	if topK > s.count {
		topK = s.count
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, domain.SearchResult{Chunk: chunkFromResult(r), Score: r.Similarity})
	}
	return out, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func chunkFromResult(r chromem.Result) domain.Chunk {
	firstPage, _ := strconv.Atoi(r.Metadata["first_page"])
	lastPage, _ := strconv.Atoi(r.Metadata["last_page"])
	index, _ := strconv.Atoi(r.Metadata["index"])
	return domain.Chunk{
		ID:         r.Metadata["chunk_id"],
		DocumentID: r.Metadata["document_id"],
		Source:     r.Metadata["source"],
		FirstPage:  firstPage,
		LastPage:   lastPage,
		Index:      index,
		Text:       r.Content,
	}
}
