package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func chunk(id string) domain.Chunk {
	return domain.Chunk{ID: id, Source: "doc.pdf", FirstPage: 1, LastPage: 1, Text: "text " + id}
}

func TestSearchEmptyStore(t *testing.T) {
	s := NewStore()
	results, err := s.Search(context.Background(), []float32{1, 0}, 4)
	require.NoError(t, err)
	require.Empty(t, results)
	require.Equal(t, 0, s.Len())
}

func TestSearchOrdersByCosine(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Add(ctx,
		[]domain.Chunk{chunk("far"), chunk("near"), chunk("mid")},
		[][]float32{{0, 1, 0}, {1, 0, 0}, {1, 1, 0}},
	)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	results, err := s.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "near", results[0].Chunk.ID)
	require.Equal(t, "mid", results[1].Chunk.ID)
	require.Equal(t, "far", results[2].Chunk.ID)
	require.InDelta(t, 1.0, float64(results[0].Score), 1e-6)
	require.Greater(t, results[1].Score, results[2].Score)
}

func TestSearchClampsTopK(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, []domain.Chunk{chunk("a"), chunk("b")}, [][]float32{{1, 0}, {0, 1}}))

	results, err := s.Search(ctx, []float32{1, 1}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = s.Search(ctx, []float32{1, 1}, 0)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestTiesKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	// Identical vectors score identically against any query.
	require.NoError(t, s.Add(ctx,
		[]domain.Chunk{chunk("first"), chunk("second"), chunk("third")},
		[][]float32{{1, 1}, {1, 1}, {1, 1}},
	))

	results, err := s.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Equal(t, "first", results[0].Chunk.ID)
	require.Equal(t, "second", results[1].Chunk.ID)
	require.Equal(t, "third", results[2].Chunk.ID)
}

func TestAddRejectsDimensionMismatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, []domain.Chunk{chunk("a")}, [][]float32{{1, 0, 0}}))

	err := s.Add(ctx, []domain.Chunk{chunk("b")}, [][]float32{{1, 0}})
	var dimErr *domain.DimensionError
	require.ErrorAs(t, err, &dimErr)
	require.Equal(t, 2, dimErr.Got)
	require.Equal(t, 3, dimErr.Want)
	require.Equal(t, 1, s.Len(), "failed batch must not partially apply")
}

func TestAddRejectsMixedBatchAtomically(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	err := s.Add(ctx,
		[]domain.Chunk{chunk("a"), chunk("b")},
		[][]float32{{1, 0, 0}, {1, 0}},
	)
	var dimErr *domain.DimensionError
	require.ErrorAs(t, err, &dimErr)
	require.Equal(t, 0, s.Len())
}

func TestSearchRejectsQueryDimensionMismatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, []domain.Chunk{chunk("a")}, [][]float32{{1, 0, 0}}))

	_, err := s.Search(ctx, []float32{1, 0}, 4)
	var dimErr *domain.DimensionError
	require.ErrorAs(t, err, &dimErr)
}

func TestCumulativeAdds(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, []domain.Chunk{chunk("a")}, [][]float32{{1, 0}}))
	require.NoError(t, s.Add(ctx, []domain.Chunk{chunk("a")}, [][]float32{{1, 0}}))
	require.Equal(t, 2, s.Len(), "re-adding the same content grows the index")
}
