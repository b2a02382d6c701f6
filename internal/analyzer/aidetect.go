package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
)

var genericTransitions = []string{
	"moreover", "furthermore", "in addition", "additionally",
	"however", "nevertheless", "on the other hand",
	"consequently", "therefore", "thus", "hence",
	"in conclusion", "to summarize", "in summary",
	"it is important to note", "it should be noted",
}

// AnalyzeGenerationPatterns scores heuristic signs of machine-generated
// text: low word-diversity entropy, uniform sentence lengths, repeated
// sentence starters, type-token ratio outside the usual human band, and
// overuse of generic transition phrases. The probability is an additive
// 0-100 heuristic score, not a calibrated model output, and it never
// changes the similarity verdict on its own.
func AnalyzeGenerationPatterns(raw string) model.AIAnalysis {
	normalized := textutil.Normalize(raw)
	words := strings.Fields(normalized)
	sentences := splitSentences(normalized)

	var indicators []model.AIIndicator
	score := 0.0

	diversity := diversityScore(words)
	if len(words) >= 10 && diversity < 40 {
		score += 25
		indicators = append(indicators, model.AIIndicator{
			Type:        "low_diversity",
			Confidence:  0.8,
			Explanation: fmt.Sprintf("word diversity %.1f/100 indicates highly predictable phrasing", diversity),
		})
	}

	uniformity := sentenceUniformity(sentences)
	if len(sentences) >= 3 && uniformity > 70 {
		score += 20
		indicators = append(indicators, model.AIIndicator{
			Type:        "uniform_structure",
			Confidence:  0.7,
			Explanation: fmt.Sprintf("sentence lengths are very uniform (%.1f%%)", uniformity),
		})
	}

	repetition := starterRepetition(sentences)
	if repetition > 40 {
		score += 20
		indicators = append(indicators, model.AIIndicator{
			Type:        "repeated_starters",
			Confidence:  0.75,
			Explanation: fmt.Sprintf("%.1f%% of sentences open with the same word", repetition),
		})
	}

	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		ttr := float64(len(unique)) / float64(len(words))
		if len(words) >= 50 && (ttr < 0.4 || ttr > 0.7) {
			score += 15
			indicators = append(indicators, model.AIIndicator{
				Type:        "unusual_vocabulary",
				Confidence:  0.65,
				Explanation: fmt.Sprintf("type-token ratio %.3f is outside the usual 0.4-0.7 band", ttr),
			})
		}
	}

	transitionDensity := transitionDensityPercent(normalized, len(words))
	if transitionDensity > 2.0 {
		score += 20
		indicators = append(indicators, model.AIIndicator{
			Type:        "generic_transitions",
			Confidence:  0.7,
			Explanation: fmt.Sprintf("generic transition phrases at %.1f%% density", transitionDensity),
		})
	}

	if score > 100 {
		score = 100
	}
	return model.AIAnalysis{
		Probability: score,
		Indicators:  indicators,
		Explanation: generationExplanation(score, indicators),
	}
}

// diversityScore normalizes word-frequency entropy to 0-100; lower values
// mean more predictable text.
func diversityScore(words []string) float64 {
	if len(words) < 10 {
		return 50
	}
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	total := float64(len(words))
	entropy := 0.0
	for _, count := range freq {
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	maxEntropy := math.Log2(float64(len(freq)))
	if maxEntropy == 0 {
		return 50
	}
	return entropy / maxEntropy * 100
}

// sentenceUniformity is 100 minus scaled length variance; high values mean
// suspiciously even sentence lengths.
func sentenceUniformity(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	lengths := make([]float64, len(sentences))
	sum := 0.0
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))
	uniformity := 100 - variance*2
	if uniformity < 0 {
		uniformity = 0
	}
	return uniformity
}

func starterRepetition(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	starters := make(map[string]int)
	maxCount := 0
	for _, s := range sentences {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		starters[fields[0]]++
		if starters[fields[0]] > maxCount {
			maxCount = starters[fields[0]]
		}
	}
	return float64(maxCount) / float64(len(sentences)) * 100
}

func transitionDensityPercent(normalized string, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	found := 0
	for _, phrase := range genericTransitions {
		if strings.Contains(normalized, phrase) {
			found++
		}
	}
	return float64(found) / float64(wordCount) * 100
}

func generationExplanation(score float64, indicators []model.AIIndicator) string {
	if score >= 60 {
		parts := make([]string, 0, 3)
		for i, ind := range indicators {
			if i == 3 {
				break
			}
			parts = append(parts, ind.Explanation)
		}
		return fmt.Sprintf("text shows machine-generation patterns (%.0f/100): %s", score, strings.Join(parts, "; "))
	}
	if score > 30 {
		return fmt.Sprintf("some generation-like patterns detected (%.0f/100), below the reporting threshold", score)
	}
	return "text shows natural writing patterns"
}
