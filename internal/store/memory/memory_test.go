package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/model"
	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
)

func chunkOf(docID string, idx int, text string) model.Chunk {
	return model.Chunk{
		DocumentID:  docID,
		ChunkIndex:  idx,
		Text:        text,
		ContentHash: textutil.Hash(text),
		WordCount:   len(text),
	}
}

func TestInsertAndFindByHash(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	doc := &model.Document{ID: "doc-1", ContentHash: "hash-1", ChunkCount: 1}
	require.NoError(t, st.InsertDocument(ctx, doc, []model.Chunk{chunkOf("doc-1", 0, "hello world")}))

	found, err := st.FindDocumentByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "doc-1", found.ID)

	_, err = st.FindDocumentByHash(ctx, "missing")
	require.True(t, appErr.IsNotFound(err))
}

func TestInsertConflictOnSameHash(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-1", ContentHash: "h"}, nil))
	err := st.InsertDocument(ctx, &model.Document{ID: "doc-2", ContentHash: "h"}, nil)
	require.True(t, appErr.IsConflict(err))
}

func TestChunkHashDeduplicationAcrossDocuments(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	shared := chunkOf("doc-1", 0, "shared paragraph text")
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-1", ContentHash: "h1"}, []model.Chunk{shared}))

	// The second document carries the same chunk content; the first
	// writer's copy stays authoritative.
	dup := chunkOf("doc-2", 0, "shared paragraph text")
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-2", ContentHash: "h2"}, []model.Chunk{dup}))

	hits, err := st.FindChunksByHashes(ctx, []string{shared.ContentHash})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "doc-1", hits[0].DocumentID)
}

func TestDeleteDocumentFreesChunkHashes(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	c := chunkOf("doc-1", 0, "recyclable content")
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-1", ContentHash: "h1"}, []model.Chunk{c}))
	require.NoError(t, st.DeleteDocument(ctx, "doc-1"))

	hits, err := st.FindChunksByHashes(ctx, []string{c.ContentHash})
	require.NoError(t, err)
	require.Empty(t, hits)

	// The hash can now be claimed by a new document.
	c2 := chunkOf("doc-2", 0, "recyclable content")
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-2", ContentHash: "h2"}, []model.Chunk{c2}))
	hits, err = st.FindChunksByHashes(ctx, []string{c2.ContentHash})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "doc-2", hits[0].DocumentID)
}

func TestFindSimilarChunksRankedAndLimited(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	chunks := []model.Chunk{
		chunkOf("doc-1", 0, "distributed systems need careful coordination"),
		chunkOf("doc-1", 1, "gardening tips for the late summer season"),
	}
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-1", ContentHash: "h1"}, chunks))

	results, err := st.FindSimilarChunks(ctx, "distributed systems need careful coordination today", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, 0, results[0].ChunkIndex)
	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestListDocumentsPagination(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	for i, id := range []string{"doc-a", "doc-b", "doc-c"} {
		doc := &model.Document{ID: id, ContentHash: id + "-hash", Ctime: int64(100 + i)}
		require.NoError(t, st.InsertDocument(ctx, doc, nil))
	}

	docs, err := st.ListDocuments(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "doc-c", docs[0].ID)

	docs, err = st.ListDocuments(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "doc-a", docs[0].ID)

	docs, err = st.ListDocuments(ctx, 2, 10)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestCountChunks(t *testing.T) {
	st := NewStorage()
	ctx := context.Background()
	chunks := []model.Chunk{
		chunkOf("doc-1", 0, "first slice of content"),
		chunkOf("doc-1", 1, "second slice of content"),
	}
	require.NoError(t, st.InsertDocument(ctx, &model.Document{ID: "doc-1", ContentHash: "h1"}, chunks))

	counts, err := st.CountChunks(ctx, []string{"doc-1", "doc-unknown"})
	require.NoError(t, err)
	require.Equal(t, 2, counts["doc-1"])
	require.Equal(t, 0, counts["doc-unknown"])
}
