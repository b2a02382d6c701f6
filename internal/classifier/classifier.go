package classifier

import (
	"fmt"
	"sort"

	"github.com/veridoc/veridoc/internal/model"
)

// Similarity thresholds are fixed configuration constants, in percent.
// Both boundaries are inclusive on the lower bound of their bucket: 30.0
// and 40.0 classify as "review required", anything above 40.0 is rejected.
const (
	RejectThreshold = 40.0
	ReviewThreshold = 30.0
)

// Per-bucket confidence reflects how certain the heuristic is for that
// bucket, not how similar the document is.
const (
	confidenceOriginal   = 97
	confidenceAcceptable = 85
	confidenceReview     = 70
	confidenceReject     = 90
)

// Feature groups contribute small, capped sub-scores to the explanation;
// textual similarity dominates the verdict.
const (
	similarityWeight = 0.6
	lexicalCap       = 10.0
	syntacticCap     = 8.0
	semanticCap      = 6.0
	stylometricCap   = 6.0
	structuralCap    = 5.0
)

// Classify combines the match result and the extracted features into a
// labeled verdict with ranked contributing factors. A whole-document exact
// match forces similarity to 100% and short-circuits the weighted
// computation: byte-identical content is always rejected.
func Classify(match *model.MatchResult, features model.FeatureSet) model.Verdict {
	similarity := match.TopScore() * 100
	if match != nil && match.Tier == model.MatchTierDocument && match.Document != nil {
		similarity = 100
	}

	verdict := bucketVerdict(similarity)
	verdict.Factors = buildFactors(similarity, match, features)
	verdict.Recommendations = recommendations(verdict.Action, match)
	verdict.Summary = summarize(verdict)
	return verdict
}

func bucketVerdict(similarity float64) model.Verdict {
	switch {
	case similarity > RejectThreshold:
		return model.Verdict{
			Label:      "plagiarism detected",
			Risk:       model.RiskCritical,
			Action:     model.ActionReject,
			Confidence: confidenceReject,
			Similarity: similarity,
		}
	case similarity >= ReviewThreshold:
		return model.Verdict{
			Label:      "review required",
			Risk:       model.RiskMedium,
			Action:     model.ActionReview,
			Confidence: confidenceReview,
			Similarity: similarity,
		}
	case similarity > 0:
		return model.Verdict{
			Label:      "acceptable",
			Risk:       model.RiskLow,
			Action:     model.ActionApprove,
			Confidence: confidenceAcceptable,
			Similarity: similarity,
		}
	default:
		return model.Verdict{
			Label:      "original",
			Risk:       model.RiskNone,
			Action:     model.ActionApprove,
			Confidence: confidenceOriginal,
			Similarity: 0,
		}
	}
}

func buildFactors(similarity float64, match *model.MatchResult, features model.FeatureSet) []model.Factor {
	factors := []model.Factor{similarityFactor(similarity, match)}

	lex := features.Lexical
	if lex.WordCount > 0 {
		contribution := capAt((1-lex.UniqueWordRatio)*15, lexicalCap)
		factors = append(factors, model.Factor{
			Name:         "vocabulary_diversity",
			Contribution: contribution,
			Severity:     severityFor(contribution, lexicalCap),
			Description: fmt.Sprintf("unique-word ratio %.2f across %d words",
				lex.UniqueWordRatio, lex.WordCount),
		})
	}

	syn := features.Syntactic
	if syn.SentenceCount > 0 {
		contribution := capAt((1-syn.ComplexRatio)*8, syntacticCap)
		factors = append(factors, model.Factor{
			Name:         "sentence_complexity",
			Contribution: contribution,
			Severity:     severityFor(contribution, syntacticCap),
			Description: fmt.Sprintf("%.0f%% of %d sentences use subordinate structure",
				syn.ComplexRatio*100, syn.SentenceCount),
		})
	}

	sem := features.Semantic
	semContribution := 0.0
	if sem.CitationCount == 0 && !sem.HasReferences {
		semContribution = semanticCap
	}
	factors = append(factors, model.Factor{
		Name:         "citation_practice",
		Contribution: semContribution,
		Severity:     severityFor(semContribution, semanticCap),
		Description: fmt.Sprintf("%d citations found, references section: %v",
			sem.CitationCount, sem.HasReferences),
	})

	sty := features.Stylometric
	styContribution := capAt(sty.PassiveRatio*4+sty.FirstPersonRate*20, stylometricCap)
	factors = append(factors, model.Factor{
		Name:         "writing_style",
		Contribution: styContribution,
		Severity:     severityFor(styContribution, stylometricCap),
		Description: fmt.Sprintf("formality %.2f, readability %.0f, passive voice %.0f%%",
			sty.FormalityScore, sty.FleschScore, sty.PassiveRatio*100),
	})

	str := features.Structural
	strContribution := 0.0
	if !str.HasSections && !str.HasAbstract {
		strContribution = structuralCap
	}
	factors = append(factors, model.Factor{
		Name:         "document_structure",
		Contribution: strContribution,
		Severity:     severityFor(strContribution, structuralCap),
		Description: fmt.Sprintf("sections: %v, abstract: %v, %d paragraphs",
			str.HasSections, str.HasAbstract, str.ParagraphCount),
	})

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Contribution > factors[j].Contribution
	})
	return factors
}

func similarityFactor(similarity float64, match *model.MatchResult) model.Factor {
	severity := "none"
	switch {
	case similarity > RejectThreshold:
		severity = "critical"
	case similarity >= ReviewThreshold:
		severity = "medium"
	case similarity > 0:
		severity = "low"
	}
	description := "no overlap with the stored corpus"
	if match != nil {
		switch {
		case match.Tier == model.MatchTierDocument && match.Document != nil:
			description = fmt.Sprintf("identical to stored document %s", match.Document.ID)
		case len(match.Candidates) > 0:
			top := match.Candidates[0]
			description = fmt.Sprintf("%s overlap with %d source document(s); strongest: %d of %d chunks against %s",
				match.Tier, len(match.Candidates), top.MatchedChunks, match.SubmittedChunks, top.DocumentID)
		}
	}
	return model.Factor{
		Name:         "textual_similarity",
		Contribution: similarity * similarityWeight,
		Severity:     severity,
		Description:  description,
	}
}

func recommendations(action model.Action, match *model.MatchResult) []string {
	switch action {
	case model.ActionReject:
		recs := []string{"do not register this document", "notify the submitter with the matching evidence"}
		if match != nil && match.Tier == model.MatchTierDocument {
			recs = append(recs, "content is byte-identical to an existing registration")
		}
		return recs
	case model.ActionReview:
		return []string{"route to manual review", "inspect the listed source documents side by side"}
	default:
		return []string{"document can be registered"}
	}
}

func summarize(verdict model.Verdict) string {
	top := verdict.Factors[0]
	return fmt.Sprintf("%s (similarity %.1f%%, confidence %d%%); dominant factor: %s — %s",
		verdict.Label, verdict.Similarity, verdict.Confidence, top.Name, top.Description)
}

func severityFor(contribution, limit float64) string {
	switch {
	case contribution >= limit*0.8:
		return "medium"
	case contribution > limit*0.4:
		return "low"
	default:
		return "none"
	}
}

func capAt(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
