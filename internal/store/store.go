package store

import (
	"context"

	"github.com/veridoc/veridoc/internal/model"
)

// ChunkHit is one exact chunk-hash hit.
type ChunkHit struct {
	DocumentID  string
	ChunkIndex  int
	Text        string
	ContentHash string
}

// SimilarChunk is one approximate trigram hit for a query chunk.
type SimilarChunk struct {
	DocumentID string
	ChunkIndex int
	Text       string
	Score      float64
}

// Store is the query contract the matcher and ingestion path run against.
// Every operation is cancellable through ctx. Lookups return ErrNotFound
// when the key is absent; a transient backend failure surfaces as an error
// wrapping ErrStoreUnavailable and is never silently reported as "no match".
type Store interface {
	// FindDocumentByHash resolves a whole-document content hash.
	FindDocumentByHash(ctx context.Context, hash string) (*model.Document, error)
	// FindChunksByHashes is a single batched exact lookup.
	FindChunksByHashes(ctx context.Context, hashes []string) ([]ChunkHit, error)
	// FindSimilarChunks returns the top-limit lexically similar chunks for
	// one query chunk, scored in [0,1].
	FindSimilarChunks(ctx context.Context, text string, limit int) ([]SimilarChunk, error)
	// CountChunks returns the stored chunk count per document.
	CountChunks(ctx context.Context, documentIDs []string) (map[string]int, error)

	// InsertDocument writes the document and all its chunks atomically.
	// A content-hash collision on the document returns ErrConflict with no
	// partial state left behind. Chunk hashes that already exist anywhere in
	// the store are skipped: identical chunk text is persisted only for its
	// first writer.
	InsertDocument(ctx context.Context, doc *model.Document, chunks []model.Chunk) error
	// DeleteDocument removes the document and cascades to its chunks.
	DeleteDocument(ctx context.Context, documentID string) error

	GetDocument(ctx context.Context, documentID string) (*model.Document, error)
	ListDocuments(ctx context.Context, limit, offset uint) ([]model.Document, error)
}
