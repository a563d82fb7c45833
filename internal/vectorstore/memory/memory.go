// Package memory holds the session's vector index in process memory and
// answers nearest-neighbour queries with an exact brute-force scan. At the
// scale of a handful of PDFs that beats maintaining an approximate index.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"docchat/internal/domain"
)

// Store is an append-only in-memory vector index. The first Add establishes
// the dimension; later vectors must match it.
type Store struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	norms     []float64
	chunks    []domain.Chunk
}

func NewStore() *Store { return &Store{} }

func (s *Store) Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	_ = ctx
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate before touching state so a bad batch never half-applies.
	dim := s.dimension
	for i, v := range vectors {
		if dim == 0 {
			dim = len(v)
		}
		if len(v) == 0 || len(v) != dim {
			return &domain.DimensionError{Source: chunks[i].Source, Got: len(v), Want: dim}
		}
	}
	s.dimension = dim
	for i := range vectors {
		s.vectors = append(s.vectors, vectors[i])
		s.norms = append(s.norms, norm(vectors[i]))
		s.chunks = append(s.chunks, chunks[i])
	}
	return nil
}

// Search returns up to topK results by descending cosine similarity. Ties
// keep insertion order. Searching an empty store returns no results.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]domain.SearchResult, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 || topK <= 0 {
		return nil, nil
	}
	if s.dimension != len(vector) {
		return nil, &domain.DimensionError{Source: "query", Got: len(vector), Want: s.dimension}
	}

	qNorm := norm(vector)
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = cosine(s.vectors[i], s.norms[i], vector, qNorm)
	}

	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	// Stable sort keeps earlier-inserted chunks ahead on equal scores.
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })

	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{Chunk: s.chunks[j], Score: float32(scores[j])})
	}
	return results, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (aNorm * bNorm)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
