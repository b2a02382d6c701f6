package model

type MatchTier string

const (
	// MatchTierDocument means the whole normalized document already exists.
	MatchTierDocument MatchTier = "document"
	// MatchTierExactChunks means one or more chunk hashes matched verbatim.
	MatchTierExactChunks MatchTier = "exact_chunks"
	// MatchTierFuzzy means only trigram-level similarity was found (or the
	// result list is empty and nothing matched at all).
	MatchTierFuzzy MatchTier = "fuzzy_trigram"
)

// MatchCandidate aggregates all hits against one source document.
type MatchCandidate struct {
	DocumentID    string  `json:"document_id"`
	Filename      string  `json:"filename"`
	MatchedChunks int     `json:"matched_chunks"`
	TotalChunks   int     `json:"total_chunks"`
	Score         float64 `json:"score"`
}

// MatchResult is the outcome of one tiered matching pass. Exactly one tier
// is populated per query; it is never persisted.
type MatchResult struct {
	Tier            MatchTier        `json:"tier"`
	Document        *Document        `json:"document,omitempty"`
	Candidates      []MatchCandidate `json:"candidates"`
	SubmittedChunks int              `json:"submitted_chunks"`
}

// TopScore returns the strongest per-document similarity in [0,1].
func (m *MatchResult) TopScore() float64 {
	if m == nil {
		return 0
	}
	if m.Tier == MatchTierDocument && m.Document != nil {
		return 1.0
	}
	if len(m.Candidates) == 0 {
		return 0
	}
	return m.Candidates[0].Score
}
