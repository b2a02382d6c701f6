package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/chunker"
	"github.com/veridoc/veridoc/internal/model"
	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
	"github.com/veridoc/veridoc/internal/pkg/timeutil"
	"github.com/veridoc/veridoc/internal/store/postgres"
	"github.com/veridoc/veridoc/test/testutil"
)

func resetTables(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM chunks")
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM documents")
	require.NoError(t, err)
}

func makeDocument(id, filename, text string) (*model.Document, []model.Chunk) {
	ck := chunker.New(5, 1)
	normalized := textutil.Normalize(text)
	chunks := ck.Chunk(id, normalized)
	return &model.Document{
		ID:          id,
		Filename:    filename,
		ContentHash: textutil.Hash(normalized),
		ChunkCount:  len(chunks),
		DocType:     "general",
		Ctime:       timeutil.NowUnix(),
	}, chunks
}

func TestPostgresStorageRoundTrip(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	resetTables(t, db)

	st := postgres.NewStorage(db)
	ctx := context.Background()

	doc, chunks := makeDocument("doc-1", "a.txt", "the committee approved the final thesis after review and discussion")
	require.NoError(t, st.InsertDocument(ctx, doc, chunks))

	found, err := st.FindDocumentByHash(ctx, doc.ContentHash)
	require.NoError(t, err)
	require.Equal(t, "doc-1", found.ID)
	require.Equal(t, "a.txt", found.Filename)

	hashes := make([]string, 0, len(chunks))
	for _, c := range chunks {
		hashes = append(hashes, c.ContentHash)
	}
	hits, err := st.FindChunksByHashes(ctx, hashes)
	require.NoError(t, err)
	require.Len(t, hits, len(chunks))

	counts, err := st.CountChunks(ctx, []string{"doc-1"})
	require.NoError(t, err)
	require.Equal(t, len(chunks), counts["doc-1"])
}

func TestPostgresStorageConflictOnDuplicateHash(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	resetTables(t, db)

	st := postgres.NewStorage(db)
	ctx := context.Background()

	doc, chunks := makeDocument("doc-1", "a.txt", "duplicate content wins exactly once")
	require.NoError(t, st.InsertDocument(ctx, doc, chunks))

	dup, dupChunks := makeDocument("doc-2", "b.txt", "duplicate content wins exactly once")
	err := st.InsertDocument(ctx, dup, dupChunks)
	require.ErrorIs(t, err, appErr.ErrConflict)
}

func TestPostgresStorageSharedChunkFirstWriterWins(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	resetTables(t, db)

	st := postgres.NewStorage(db)
	ctx := context.Background()

	doc1, chunks1 := makeDocument("doc-1", "a.txt", "alpha beta gamma delta")
	require.NoError(t, st.InsertDocument(ctx, doc1, chunks1))

	// Same chunk text under a different document hash: the chunk insert is
	// a silent no-op and doc-1 keeps ownership.
	doc2, chunks2 := makeDocument("doc-2", "b.txt", "ALPHA beta   gamma delta")
	doc2.ContentHash = "forced-different-hash"
	err := st.InsertDocument(ctx, doc2, chunks2)
	require.NoError(t, err)

	hits, err := st.FindChunksByHashes(ctx, []string{chunks1[0].ContentHash})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "doc-1", hits[0].DocumentID)
}

func TestPostgresStorageSimilarChunks(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	resetTables(t, db)

	st := postgres.NewStorage(db)
	ctx := context.Background()

	doc, chunks := makeDocument("doc-1", "a.txt", "distributed consensus requires a stable quorum")
	require.NoError(t, st.InsertDocument(ctx, doc, chunks))

	results, err := st.FindSimilarChunks(ctx, "distributed consensus required a stable quorums", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "doc-1", results[0].DocumentID)
	require.Greater(t, results[0].Score, 0.0)
	require.LessOrEqual(t, results[0].Score, 1.0)
}

func TestPostgresStorageDeleteCascades(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	resetTables(t, db)

	st := postgres.NewStorage(db)
	ctx := context.Background()

	doc, chunks := makeDocument("doc-1", "a.txt", "soon to be deleted content body")
	require.NoError(t, st.InsertDocument(ctx, doc, chunks))
	require.NoError(t, st.DeleteDocument(ctx, "doc-1"))

	_, err := st.FindDocumentByHash(ctx, doc.ContentHash)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	counts, err := st.CountChunks(ctx, []string{"doc-1"})
	require.NoError(t, err)
	require.Equal(t, 0, counts["doc-1"])

	require.ErrorIs(t, st.DeleteDocument(ctx, "doc-1"), appErr.ErrNotFound)
}

func TestPostgresStorageListDocuments(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	resetTables(t, db)

	st := postgres.NewStorage(db)
	ctx := context.Background()

	for _, id := range []string{"doc-a", "doc-b", "doc-c"} {
		doc, chunks := makeDocument(id, id+".txt", "unique content for "+id)
		require.NoError(t, st.InsertDocument(ctx, doc, chunks))
	}

	docs, err := st.ListDocuments(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	rest, err := st.ListDocuments(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}
