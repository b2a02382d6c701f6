package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/veridoc/veridoc/internal/analyzer"
	"github.com/veridoc/veridoc/internal/chunker"
	"github.com/veridoc/veridoc/internal/classifier"
	"github.com/veridoc/veridoc/internal/filestore"
	"github.com/veridoc/veridoc/internal/matcher"
	"github.com/veridoc/veridoc/internal/model"
	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
	"github.com/veridoc/veridoc/internal/pkg/timeutil"
	"github.com/veridoc/veridoc/internal/store"
)

const (
	StatusImported  = "imported"
	StatusDuplicate = "duplicate"
)

type IngestInput struct {
	Filename string
	Source   string
	Text     string
}

type IngestResult struct {
	Status     string `json:"status"`
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

// EvaluationReport is everything one evaluation produced: the raw match
// evidence, the extracted features and the final verdict, plus the
// supplementary analyses.
type EvaluationReport struct {
	Match       *model.MatchResult           `json:"match"`
	Features    model.FeatureSet             `json:"features"`
	Verdict     model.Verdict                `json:"verdict"`
	DocType     model.DocType                `json:"doc_type"`
	AIAnalysis  model.AIAnalysis             `json:"ai_analysis"`
	Credentials *model.CredentialInfo        `json:"credentials,omitempty"`
	Certificate *model.CertificateAssessment `json:"certificate,omitempty"`
}

// VerifyService owns the two core operations: ingesting a document into the
// corpus and evaluating a submission against it. The backing store is the
// only shared state; evaluation results are cached per content hash and the
// cache is flushed whenever the corpus changes.
type VerifyService struct {
	store     store.Store
	chunker   *chunker.Chunker
	matcher   *matcher.Matcher
	extractor *analyzer.Extractor
	archive   filestore.Store
	cache     *lru.Cache[string, *EvaluationReport]
}

func NewVerifyService(st store.Store, ck *chunker.Chunker, m *matcher.Matcher, archive filestore.Store, cacheSize int) (*VerifyService, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[string, *EvaluationReport](cacheSize)
	if err != nil {
		return nil, err
	}
	return &VerifyService{
		store:     st,
		chunker:   ck,
		matcher:   m,
		extractor: analyzer.NewExtractor(),
		archive:   archive,
		cache:     cache,
	}, nil
}

// Ingest normalizes, chunks and stores a document. Re-submitting content
// that already exists (including losing a concurrent-insert race) is a
// normal outcome reported as StatusDuplicate with the winner's document ID,
// never an error.
func (s *VerifyService) Ingest(ctx context.Context, in IngestInput) (*IngestResult, error) {
	logger := logutil.GetLogger(ctx)
	normalized := textutil.Normalize(in.Text)
	if normalized == "" {
		return nil, appErr.ErrInvalid
	}
	hash := textutil.Hash(normalized)

	if existing, err := s.store.FindDocumentByHash(ctx, hash); err == nil {
		return &IngestResult{Status: StatusDuplicate, DocumentID: existing.ID, ChunkCount: existing.ChunkCount}, nil
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}

	docID := uuid.NewString()
	chunks := s.chunker.Chunk(docID, normalized)
	docType := analyzer.DetectDocType(normalized)
	doc := &model.Document{
		ID:          docID,
		Filename:    in.Filename,
		ContentHash: hash,
		ChunkCount:  len(chunks),
		DocType:     string(docType),
		Source:      in.Source,
		Ctime:       timeutil.NowUnix(),
	}
	if docType == model.DocTypeCertificate {
		// Credential fields come from the raw text; normalization folds away
		// the capitalization the extraction patterns key on.
		creds := analyzer.ExtractCredentials(in.Text)
		doc.HolderName = creds.HolderName
		doc.CertNumber = creds.CertificateNumber
	}
	if err := s.store.InsertDocument(ctx, doc, chunks); err != nil {
		if appErr.IsConflict(err) {
			// Lost the uniqueness race: the winner's document is the result.
			winner, ferr := s.store.FindDocumentByHash(ctx, hash)
			if ferr != nil {
				return nil, ferr
			}
			return &IngestResult{Status: StatusDuplicate, DocumentID: winner.ID, ChunkCount: winner.ChunkCount}, nil
		}
		return nil, err
	}

	s.archiveText(ctx, hash, in.Text)
	s.cache.Purge()
	logger.Info("document ingested",
		zap.String("document_id", docID),
		zap.String("doc_type", doc.DocType),
		zap.Int("chunks", len(chunks)),
	)
	return &IngestResult{Status: StatusImported, DocumentID: docID, ChunkCount: len(chunks)}, nil
}

// Evaluate runs the full read path: tiered matching, feature extraction and
// classification. Empty text after normalization yields an empty fuzzy
// result and an "original" verdict without touching the store. Store
// failures propagate; they are never downgraded to "no match".
func (s *VerifyService) Evaluate(ctx context.Context, text string) (*EvaluationReport, error) {
	normalized := textutil.Normalize(text)
	if normalized == "" {
		match := &model.MatchResult{Tier: model.MatchTierFuzzy, Candidates: []model.MatchCandidate{}}
		features := s.extractor.Extract(text)
		return &EvaluationReport{
			Match:      match,
			Features:   features,
			Verdict:    classifier.Classify(match, features),
			DocType:    model.DocTypeGeneral,
			AIAnalysis: analyzer.AnalyzeGenerationPatterns(text),
		}, nil
	}

	hash := textutil.Hash(normalized)
	if report, ok := s.cache.Get(hash); ok {
		return report, nil
	}

	match, err := s.matcher.Match(ctx, normalized)
	if err != nil {
		return nil, err
	}
	features := s.extractor.Extract(text)
	docType := analyzer.DetectDocType(normalized)
	report := &EvaluationReport{
		Match:      match,
		Features:   features,
		Verdict:    classifier.Classify(match, features),
		DocType:    docType,
		AIAnalysis: analyzer.AnalyzeGenerationPatterns(text),
	}
	if docType == model.DocTypeCertificate {
		creds := analyzer.ExtractCredentials(text)
		report.Credentials = &creds
		assessment := analyzer.AssessCertificate(creds, match, s.matchSources(ctx, match))
		report.Certificate = &assessment
	}
	s.cache.Add(hash, report)
	return report, nil
}

func (s *VerifyService) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	return s.store.GetDocument(ctx, documentID)
}

func (s *VerifyService) ListDocuments(ctx context.Context, limit, offset uint) ([]model.Document, error) {
	return s.store.ListDocuments(ctx, limit, offset)
}

func (s *VerifyService) DeleteDocument(ctx context.Context, documentID string) error {
	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	s.cache.Purge()
	return nil
}

// matchSources resolves the corpus documents behind a match result so the
// certificate assessment can compare credential fields. A failed lookup is
// logged and skipped; the assessment degrades instead of failing the
// evaluation.
func (s *VerifyService) matchSources(ctx context.Context, match *model.MatchResult) []model.Document {
	if match == nil {
		return nil
	}
	if match.Tier == model.MatchTierDocument && match.Document != nil {
		return []model.Document{*match.Document}
	}
	sources := make([]model.Document, 0, len(match.Candidates))
	for _, c := range match.Candidates {
		doc, err := s.store.GetDocument(ctx, c.DocumentID)
		if err != nil {
			logutil.GetLogger(ctx).Warn("match source lookup failed",
				zap.String("document_id", c.DocumentID), zap.Error(err))
			continue
		}
		sources = append(sources, *doc)
	}
	return sources
}

// archiveText is best effort: a failed archive write is logged, not
// surfaced, because the document is already durably stored.
func (s *VerifyService) archiveText(ctx context.Context, hash, text string) {
	if s.archive == nil {
		return
	}
	reader := nopSeekCloser{strings.NewReader(text)}
	if err := s.archive.Save(ctx, hash+".txt", reader, int64(len(text))); err != nil {
		logutil.GetLogger(ctx).Warn("archive write failed", zap.String("hash", hash), zap.Error(err))
	}
}

type nopSeekCloser struct {
	*strings.Reader
}

func (nopSeekCloser) Close() error { return nil }
