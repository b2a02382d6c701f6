package matcher

import (
	"context"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veridoc/veridoc/internal/chunker"
	"github.com/veridoc/veridoc/internal/model"
	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
	"github.com/veridoc/veridoc/internal/store"
)

// Matcher runs the tiered matching pass: whole-document hash, then batched
// chunk-hash lookup, then per-chunk trigram lookup. The first tier that
// yields results wins; exact chunk equality is strictly stronger evidence
// than trigram similarity, so a low-scoring exact result never falls
// through to fuzzy.
type Matcher struct {
	store       store.Store
	chunker     *chunker.Chunker
	fuzzyTopK   int
	concurrency int
}

func New(st store.Store, ck *chunker.Chunker, fuzzyTopK, concurrency int) *Matcher {
	if fuzzyTopK <= 0 {
		fuzzyTopK = 5
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Matcher{store: st, chunker: ck, fuzzyTopK: fuzzyTopK, concurrency: concurrency}
}

func (m *Matcher) Match(ctx context.Context, normalized string) (*model.MatchResult, error) {
	logger := logutil.GetLogger(ctx)

	docHash := textutil.Hash(normalized)
	doc, err := m.store.FindDocumentByHash(ctx, docHash)
	if err == nil {
		logger.Info("whole-document match", zap.String("document_id", doc.ID))
		return &model.MatchResult{Tier: model.MatchTierDocument, Document: doc}, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}

	chunks := m.chunker.Chunk("", normalized)
	if len(chunks) == 0 {
		return &model.MatchResult{Tier: model.MatchTierFuzzy, Candidates: []model.MatchCandidate{}}, nil
	}

	hashes := make([]string, 0, len(chunks))
	for _, c := range chunks {
		hashes = append(hashes, c.ContentHash)
	}
	hits, err := m.store.FindChunksByHashes(ctx, hashes)
	if err != nil {
		return nil, err
	}
	if len(hits) > 0 {
		candidates := aggregateExact(hits, len(chunks))
		if err := m.attachDocumentInfo(ctx, candidates); err != nil {
			return nil, err
		}
		logger.Info("exact chunk match",
			zap.Int("submitted_chunks", len(chunks)),
			zap.Int("candidates", len(candidates)),
		)
		return &model.MatchResult{
			Tier:            model.MatchTierExactChunks,
			Candidates:      candidates,
			SubmittedChunks: len(chunks),
		}, nil
	}

	perChunk, err := m.fuzzyLookup(ctx, chunks)
	if err != nil {
		return nil, err
	}
	candidates := aggregateFuzzy(perChunk)
	if err := m.attachDocumentInfo(ctx, candidates); err != nil {
		return nil, err
	}
	logger.Info("fuzzy match pass",
		zap.Int("submitted_chunks", len(chunks)),
		zap.Int("candidates", len(candidates)),
	)
	return &model.MatchResult{
		Tier:            model.MatchTierFuzzy,
		Candidates:      candidates,
		SubmittedChunks: len(chunks),
	}, nil
}

// fuzzyLookup issues one store round-trip per chunk. The queries are
// read-only and independent, so they fan out concurrently with a bounded
// worker count to avoid hammering the store on large documents.
func (m *Matcher) fuzzyLookup(ctx context.Context, chunks []model.Chunk) ([][]store.SimilarChunk, error) {
	results := make([][]store.SimilarChunk, len(chunks))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, c := range chunks {
		g.Go(func() error {
			similar, err := m.store.FindSimilarChunks(gctx, c.Text, m.fuzzyTopK)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = similar
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// attachDocumentInfo fills each candidate's stored chunk count and filename.
// A candidate whose source document vanished mid-query keeps zero values
// rather than failing the whole match.
func (m *Matcher) attachDocumentInfo(ctx context.Context, candidates []model.MatchCandidate) error {
	if len(candidates) == 0 {
		return nil
	}
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.DocumentID)
	}
	counts, err := m.store.CountChunks(ctx, ids)
	if err != nil {
		return err
	}
	for i := range candidates {
		candidates[i].TotalChunks = counts[candidates[i].DocumentID]
		doc, err := m.store.GetDocument(ctx, candidates[i].DocumentID)
		if err != nil {
			if appErr.IsNotFound(err) {
				continue
			}
			return err
		}
		candidates[i].Filename = doc.Filename
	}
	return nil
}
