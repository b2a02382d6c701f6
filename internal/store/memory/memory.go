package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/veridoc/veridoc/internal/model"
	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
	"github.com/veridoc/veridoc/internal/store"
)

// Storage is an in-memory chunk store using brute-force trigram similarity.
// It mirrors the Postgres store's behavior (including global chunk-hash
// deduplication) and backs the unit tests.
type Storage struct {
	mu         sync.RWMutex
	minScore   float64
	docs       map[string]*model.Document
	docByHash  map[string]string
	chunks     []model.Chunk
	chunkHash  map[string]struct{}
	failNextOp error
}

func NewStorage() *Storage {
	return &Storage{
		minScore:  0.3,
		docs:      make(map[string]*model.Document),
		docByHash: make(map[string]string),
		chunkHash: make(map[string]struct{}),
	}
}

// FailWith makes every subsequent operation return err until reset with nil.
// Used by tests to simulate an unreachable backend.
func (s *Storage) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextOp = err
}

func (s *Storage) failing() error {
	return s.failNextOp
}

func (s *Storage) FindDocumentByHash(ctx context.Context, hash string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}
	id, ok := s.docByHash[hash]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	doc := *s.docs[id]
	return &doc, nil
}

func (s *Storage) FindChunksByHashes(ctx context.Context, hashes []string) ([]store.ChunkHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		wanted[h] = struct{}{}
	}
	hits := make([]store.ChunkHit, 0)
	for _, c := range s.chunks {
		if _, ok := wanted[c.ContentHash]; ok {
			hits = append(hits, store.ChunkHit{
				DocumentID:  c.DocumentID,
				ChunkIndex:  c.ChunkIndex,
				Text:        c.Text,
				ContentHash: c.ContentHash,
			})
		}
	}
	return hits, nil
}

func (s *Storage) FindSimilarChunks(ctx context.Context, text string, limit int) ([]store.SimilarChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	query := trigrams(text)
	results := make([]store.SimilarChunk, 0)
	for _, c := range s.chunks {
		score := jaccard(query, trigrams(c.Text))
		if score < s.minScore {
			continue
		}
		results = append(results, store.SimilarChunk{
			DocumentID: c.DocumentID,
			ChunkIndex: c.ChunkIndex,
			Text:       c.Text,
			Score:      score,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Storage) CountChunks(ctx context.Context, documentIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(documentIDs))
	for _, id := range documentIDs {
		wanted[id] = struct{}{}
	}
	counts := make(map[string]int, len(documentIDs))
	for _, c := range s.chunks {
		if _, ok := wanted[c.DocumentID]; ok {
			counts[c.DocumentID]++
		}
	}
	return counts, nil
}

func (s *Storage) InsertDocument(ctx context.Context, doc *model.Document, chunks []model.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	if _, exists := s.docByHash[doc.ContentHash]; exists {
		return appErr.ErrConflict
	}
	stored := *doc
	s.docs[doc.ID] = &stored
	s.docByHash[doc.ContentHash] = doc.ID
	for _, c := range chunks {
		if _, dup := s.chunkHash[c.ContentHash]; dup {
			continue
		}
		s.chunkHash[c.ContentHash] = struct{}{}
		s.chunks = append(s.chunks, c)
	}
	return nil
}

func (s *Storage) DeleteDocument(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	doc, ok := s.docs[documentID]
	if !ok {
		return appErr.ErrNotFound
	}
	delete(s.docs, documentID)
	delete(s.docByHash, doc.ContentHash)
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.DocumentID == documentID {
			delete(s.chunkHash, c.ContentHash)
			continue
		}
		kept = append(kept, c)
	}
	s.chunks = kept
	return nil
}

func (s *Storage) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}
	doc, ok := s.docs[documentID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (s *Storage) ListDocuments(ctx context.Context, limit, offset uint) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing(); err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, *d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Ctime > docs[j].Ctime })
	if offset >= uint(len(docs)) {
		return []model.Document{}, nil
	}
	docs = docs[offset:]
	if limit > 0 && uint(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func trigrams(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
