package matcher

import (
	"sort"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/store"
)

// aggregateExact groups chunk-hash hits by source document and scores each
// candidate as matchedChunks / totalSubmittedChunks. The denominator is
// always the submitter's chunk count, not the candidate's.
func aggregateExact(hits []store.ChunkHit, submitted int) []model.MatchCandidate {
	if submitted == 0 {
		return []model.MatchCandidate{}
	}
	matched := make(map[string]int)
	for _, hit := range hits {
		matched[hit.DocumentID]++
	}
	candidates := make([]model.MatchCandidate, 0, len(matched))
	for docID, count := range matched {
		candidates = append(candidates, model.MatchCandidate{
			DocumentID:    docID,
			MatchedChunks: count,
			Score:         float64(count) / float64(submitted),
		})
	}
	rank(candidates)
	return candidates
}

// aggregateFuzzy reduces per-chunk trigram hits to one candidate per source
// document scored by the mean similarity across its matched chunks. Only the
// best hit per (query chunk, document) pair counts, so a document cannot
// inflate its score with several near-identical stored chunks.
func aggregateFuzzy(perChunk [][]store.SimilarChunk) []model.MatchCandidate {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, hits := range perChunk {
		best := make(map[string]float64)
		for _, hit := range hits {
			if hit.Score > best[hit.DocumentID] {
				best[hit.DocumentID] = hit.Score
			}
		}
		for docID, score := range best {
			sums[docID] += score
			counts[docID]++
		}
	}
	candidates := make([]model.MatchCandidate, 0, len(sums))
	for docID, sum := range sums {
		candidates = append(candidates, model.MatchCandidate{
			DocumentID:    docID,
			MatchedChunks: counts[docID],
			Score:         sum / float64(counts[docID]),
		})
	}
	rank(candidates)
	return candidates
}

// rank orders candidates by score descending; equal scores break the tie on
// absolute matched-chunk count (more matched chunks is stronger evidence
// than the same ratio with fewer chunks), then document ID for stability.
func rank(candidates []model.MatchCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].MatchedChunks != candidates[j].MatchedChunks {
			return candidates[i].MatchedChunks > candidates[j].MatchedChunks
		}
		return candidates[i].DocumentID < candidates[j].DocumentID
	})
}
