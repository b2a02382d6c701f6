package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/store"
)

func TestAggregateExact_GroupsByDocument(t *testing.T) {
	hits := []store.ChunkHit{
		{DocumentID: "doc-a", ChunkIndex: 0},
		{DocumentID: "doc-a", ChunkIndex: 1},
		{DocumentID: "doc-b", ChunkIndex: 0},
	}
	candidates := aggregateExact(hits, 4)
	require.Len(t, candidates, 2)
	require.Equal(t, "doc-a", candidates[0].DocumentID)
	require.Equal(t, 2, candidates[0].MatchedChunks)
	require.InDelta(t, 0.5, candidates[0].Score, 1e-9)
	require.Equal(t, "doc-b", candidates[1].DocumentID)
	require.InDelta(t, 0.25, candidates[1].Score, 1e-9)
}

func TestAggregateExact_ZeroSubmitted(t *testing.T) {
	candidates := aggregateExact([]store.ChunkHit{{DocumentID: "doc-a"}}, 0)
	require.Empty(t, candidates)
}

func TestAggregateFuzzy_BestHitPerChunkAndDocument(t *testing.T) {
	// Document doc-a appears twice for the first query chunk; only its best
	// score may count.
	perChunk := [][]store.SimilarChunk{
		{
			{DocumentID: "doc-a", Score: 0.9},
			{DocumentID: "doc-a", Score: 0.5},
			{DocumentID: "doc-b", Score: 0.4},
		},
		{
			{DocumentID: "doc-a", Score: 0.7},
		},
	}
	candidates := aggregateFuzzy(perChunk)
	require.Len(t, candidates, 2)
	require.Equal(t, "doc-a", candidates[0].DocumentID)
	require.Equal(t, 2, candidates[0].MatchedChunks)
	require.InDelta(t, 0.8, candidates[0].Score, 1e-9)
	require.Equal(t, "doc-b", candidates[1].DocumentID)
	require.Equal(t, 1, candidates[1].MatchedChunks)
	require.InDelta(t, 0.4, candidates[1].Score, 1e-9)
}

func TestAggregateFuzzy_Empty(t *testing.T) {
	require.Empty(t, aggregateFuzzy(nil))
	require.Empty(t, aggregateFuzzy([][]store.SimilarChunk{{}, {}}))
}

func TestRank_TieBreaks(t *testing.T) {
	candidates := []model.MatchCandidate{
		{DocumentID: "doc-b", MatchedChunks: 1, Score: 0.5},
		{DocumentID: "doc-a", MatchedChunks: 1, Score: 0.5},
		{DocumentID: "doc-more-chunks", MatchedChunks: 3, Score: 0.5},
		{DocumentID: "doc-high", MatchedChunks: 1, Score: 0.9},
	}
	rank(candidates)
	require.Equal(t, "doc-high", candidates[0].DocumentID)
	require.Equal(t, "doc-more-chunks", candidates[1].DocumentID)
	require.Equal(t, "doc-a", candidates[2].DocumentID)
	require.Equal(t, "doc-b", candidates[3].DocumentID)
}
