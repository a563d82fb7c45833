package retriever

import (
	"context"
	"fmt"

	"docchat/internal/domain"
)

// Retriever embeds a query and looks up the most similar chunks. Nothing is
// cached: every call re-embeds and re-searches.
type Retriever struct {
	embedder domain.Embedder
	store    domain.VectorStore
	topK     int
}

func New(embedder domain.Embedder, store domain.VectorStore, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve returns the top chunks for the query, best first, without scores.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.Chunk, error) {
	results, err := r.RetrieveScored(ctx, query)
	if err != nil {
		return nil, err
	}
	chunks := make([]domain.Chunk, 0, len(results))
	for _, res := range results {
		chunks = append(chunks, res.Chunk)
	}
	return chunks, nil
}

// RetrieveScored is Retrieve with similarity scores attached.
func (r *Retriever) RetrieveScored(ctx context.Context, query string) ([]domain.SearchResult, error) {
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: got %d vectors for one query", domain.ErrEmbedding, len(vectors))
	}
	results, err := r.store.Search(ctx, vectors[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return results, nil
}
