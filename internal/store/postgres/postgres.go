package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/pkg/dbutil"
	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
	"github.com/veridoc/veridoc/internal/store"
)

var documentColumns = []string{"id", "filename", "content_hash", "chunk_count", "doc_type", "source", "holder_name", "cert_number", "ctime"}

// Storage implements store.Store on Postgres. Exact lookups hit the unique
// hash indexes; fuzzy lookups use the pg_trgm % operator against the GIN
// trigram index on chunks.content.
type Storage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// storeErr wraps backend failures so callers can tell "store unavailable"
// apart from "no match". ErrNotFound and ErrConflict pass through untouched.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", appErr.ErrStoreUnavailable, op, err)
}

func (s *Storage) FindDocumentByHash(ctx context.Context, hash string) (*model.Document, error) {
	return s.findDocument(ctx, map[string]interface{}{"content_hash": hash})
}

func (s *Storage) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	return s.findDocument(ctx, map[string]interface{}{"id": documentID})
}

func (s *Storage) findDocument(ctx context.Context, where map[string]interface{}) (*model.Document, error) {
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := s.db.QueryRowContext(ctx, sqlStr, args...)
	var doc model.Document
	if err := row.Scan(&doc.ID, &doc.Filename, &doc.ContentHash, &doc.ChunkCount, &doc.DocType, &doc.Source, &doc.HolderName, &doc.CertNumber, &doc.Ctime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, storeErr("find document", err)
	}
	return &doc, nil
}

func (s *Storage) FindChunksByHashes(ctx context.Context, hashes []string) ([]store.ChunkHit, error) {
	if len(hashes) == 0 {
		return []store.ChunkHit{}, nil
	}
	values := make([]interface{}, 0, len(hashes))
	for _, h := range hashes {
		values = append(values, h)
	}
	where := map[string]interface{}{
		"content_hash in": values,
	}
	sqlStr, args, err := builder.BuildSelect("chunks", where, []string{"document_id", "chunk_index", "content", "content_hash"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, storeErr("find chunks by hash", err)
	}
	defer rows.Close()
	hits := make([]store.ChunkHit, 0)
	for rows.Next() {
		var hit store.ChunkHit
		if err := rows.Scan(&hit.DocumentID, &hit.ChunkIndex, &hit.Text, &hit.ContentHash); err != nil {
			return nil, storeErr("scan chunk hit", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate chunk hits", err)
	}
	return hits, nil
}

func (s *Storage) FindSimilarChunks(ctx context.Context, text string, limit int) ([]store.SimilarChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
		SELECT document_id, chunk_index, content, similarity(content, $1) AS score
		FROM chunks
		WHERE content % $1
		ORDER BY score DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, text, limit)
	if err != nil {
		return nil, storeErr("find similar chunks", err)
	}
	defer rows.Close()
	results := make([]store.SimilarChunk, 0, limit)
	for rows.Next() {
		var item store.SimilarChunk
		if err := rows.Scan(&item.DocumentID, &item.ChunkIndex, &item.Text, &item.Score); err != nil {
			return nil, storeErr("scan similar chunk", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate similar chunks", err)
	}
	return results, nil
}

func (s *Storage) CountChunks(ctx context.Context, documentIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(documentIDs))
	if len(documentIDs) == 0 {
		return counts, nil
	}
	values := make([]interface{}, 0, len(documentIDs))
	for _, id := range documentIDs {
		values = append(values, id)
	}
	where := map[string]interface{}{
		"document_id in": values,
		"_groupby":       "document_id",
	}
	sqlStr, args, err := builder.BuildSelect("chunks", where, []string{"document_id", "count(1)"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, storeErr("count chunks", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, storeErr("scan chunk count", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate chunk counts", err)
	}
	return counts, nil
}

func (s *Storage) InsertDocument(ctx context.Context, doc *model.Document, chunks []model.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin tx", err)
	}
	defer tx.Rollback()

	data := map[string]interface{}{
		"id":           doc.ID,
		"filename":     doc.Filename,
		"content_hash": doc.ContentHash,
		"chunk_count":  doc.ChunkCount,
		"doc_type":     doc.DocType,
		"source":       doc.Source,
		"holder_name":  doc.HolderName,
		"cert_number":  doc.CertNumber,
		"ctime":        doc.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return storeErr("insert document", err)
	}

	// Identical chunk text already stored elsewhere is skipped on purpose:
	// the first writer owns the chunk.
	const insertChunk = `
		INSERT INTO chunks (document_id, chunk_index, content, content_hash, word_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (content_hash) DO NOTHING
	`
	for _, c := range chunks {
		if _, err := tx.ExecContext(ctx, insertChunk, c.DocumentID, c.ChunkIndex, c.Text, c.ContentHash, c.WordCount); err != nil {
			return storeErr("insert chunk", err)
		}
	}
	if err := tx.Commit(); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return storeErr("commit", err)
	}
	return nil
}

func (s *Storage) DeleteDocument(ctx context.Context, documentID string) error {
	where := map[string]interface{}{"id": documentID}
	sqlStr, args, err := builder.BuildDelete("documents", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return storeErr("delete document", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete document", err)
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (s *Storage) ListDocuments(ctx context.Context, limit, offset uint) ([]model.Document, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, storeErr("list documents", err)
	}
	defer rows.Close()
	docs := make([]model.Document, 0)
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.ContentHash, &doc.ChunkCount, &doc.DocType, &doc.Source, &doc.HolderName, &doc.CertNumber, &doc.Ctime); err != nil {
			return nil, storeErr("scan document", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate documents", err)
	}
	return docs, nil
}
