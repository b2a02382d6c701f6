package analyzer

import (
	"regexp"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
)

// Extractor computes heuristic lexical, syntactic, semantic, stylometric and
// structural signals from submitted text. It never touches the store and
// uses no learned models; every signal is a bounded regex/count heuristic.
type Extractor struct {
	techTerms       map[string]struct{}
	formalMarkers   map[string]struct{}
	informalMarkers map[string]struct{}
	conjunctions    []string
}

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	bracketCite    = regexp.MustCompile(`\[\d+\]`)
	authorYearCite = regexp.MustCompile(`\([a-z][a-z]+(?: et al\.?)?,? (?:19|20)\d{2}\)`)
	passiveVoice   = regexp.MustCompile(`\b(?:is|are|was|were|been|being|be)\s+[a-z]+(?:ed|en)\b`)
	sectionMarker  = regexp.MustCompile(`(?:^| )(?:\d+\.\d*\s|introduction|methodology|methods|results|discussion|conclusion|references)\b`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	wordTrimSet    = ".,;:!?()[]{}\"'"
)

func NewExtractor() *Extractor {
	return &Extractor{
		techTerms: toSet(
			"algorithm", "analysis", "framework", "methodology", "hypothesis",
			"protocol", "database", "encryption", "neural", "quantum",
			"coefficient", "parameter", "implementation", "evaluation",
			"optimization", "architecture", "inference", "regression",
		),
		formalMarkers: toSet(
			"moreover", "furthermore", "consequently", "therefore", "thus",
			"hence", "accordingly", "nevertheless", "notwithstanding",
		),
		informalMarkers: toSet(
			"gonna", "wanna", "stuff", "kinda", "sorta", "basically",
			"anyway", "okay", "yeah",
		),
		conjunctions: []string{
			"because", "although", "while", "whereas", "however",
			"which", "since", "unless", "whereby",
		},
	}
}

// Extract computes the full feature set. Most signals run over normalized
// text; paragraph counting needs the original line structure, so the raw
// text is taken and normalized internally.
func (e *Extractor) Extract(raw string) model.FeatureSet {
	normalized := textutil.Normalize(raw)
	words := strings.Fields(normalized)
	sentences := splitSentences(normalized)

	return model.FeatureSet{
		Lexical:     e.lexical(words),
		Syntactic:   e.syntactic(normalized, words, sentences),
		Semantic:    e.semantic(normalized, words),
		Stylometric: e.stylometric(words, sentences),
		Structural:  e.structural(raw, normalized),
	}
}

func (e *Extractor) lexical(words []string) model.LexicalFeatures {
	f := model.LexicalFeatures{WordCount: len(words)}
	if len(words) == 0 {
		return f
	}
	unique := make(map[string]struct{}, len(words))
	totalLen := 0
	techCount := 0
	for _, w := range words {
		cleaned := strings.Trim(w, wordTrimSet)
		if cleaned == "" {
			continue
		}
		unique[cleaned] = struct{}{}
		totalLen += len([]rune(cleaned))
		if _, ok := e.techTerms[cleaned]; ok {
			techCount++
		}
	}
	f.UniqueWordRatio = float64(len(unique)) / float64(len(words))
	f.AvgWordLength = float64(totalLen) / float64(len(words))
	f.TechTermDensity = clamp01(float64(techCount) / float64(len(words)))
	return f
}

func (e *Extractor) syntactic(normalized string, words, sentences []string) model.SyntacticFeatures {
	f := model.SyntacticFeatures{SentenceCount: len(sentences)}
	if len(sentences) > 0 {
		f.AvgSentenceLength = float64(len(words)) / float64(len(sentences))
		complexCount := 0
		for _, s := range sentences {
			for _, conj := range e.conjunctions {
				if strings.Contains(s, " "+conj+" ") || strings.HasPrefix(s, conj+" ") {
					complexCount++
					break
				}
			}
		}
		f.ComplexRatio = float64(complexCount) / float64(len(sentences))
	}
	if len(normalized) > 0 {
		punct := 0
		for _, r := range normalized {
			if strings.ContainsRune(".,;:!?", r) {
				punct++
			}
		}
		f.PunctuationDensity = clamp01(float64(punct) / float64(len([]rune(normalized))))
	}
	return f
}

func (e *Extractor) semantic(normalized string, words []string) model.SemanticFeatures {
	f := model.SemanticFeatures{}
	f.CitationCount = len(bracketCite.FindAllString(normalized, -1)) +
		len(authorYearCite.FindAllString(normalized, -1))
	if len(words) > 0 {
		f.CitationDensity = clamp01(float64(f.CitationCount) / float64(len(words)))
	}
	f.HasReferences = strings.Contains(normalized, "references") ||
		strings.Contains(normalized, "bibliography")
	return f
}

func (e *Extractor) stylometric(words, sentences []string) model.StylometricFeatures {
	f := model.StylometricFeatures{FormalityScore: 0.5}
	if len(words) == 0 {
		return f
	}
	formal, informal, firstPerson, syllables := 0, 0, 0, 0
	for _, w := range words {
		cleaned := strings.Trim(w, wordTrimSet)
		if _, ok := e.formalMarkers[cleaned]; ok {
			formal++
		}
		if _, ok := e.informalMarkers[cleaned]; ok {
			informal++
		}
		switch cleaned {
		case "i", "we", "me", "my", "our", "us", "mine", "ours":
			firstPerson++
		}
		syllables += countSyllables(cleaned)
	}
	if formal+informal > 0 {
		f.FormalityScore = float64(formal) / float64(formal+informal)
	}
	f.FirstPersonRate = clamp01(float64(firstPerson) / float64(len(words)))
	if len(sentences) > 0 {
		wordsPerSentence := float64(len(words)) / float64(len(sentences))
		syllablesPerWord := float64(syllables) / float64(len(words))
		flesch := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
		if flesch < 0 {
			flesch = 0
		}
		if flesch > 100 {
			flesch = 100
		}
		f.FleschScore = flesch

		passive := 0
		for _, s := range sentences {
			if passiveVoice.MatchString(s) {
				passive++
			}
		}
		f.PassiveRatio = float64(passive) / float64(len(sentences))
	}
	return f
}

func (e *Extractor) structural(raw, normalized string) model.StructuralFeatures {
	f := model.StructuralFeatures{}
	markers := sectionMarker.FindAllString(normalized, -1)
	f.HasSections = len(markers) >= 2
	f.HasAbstract = strings.Contains(normalized, "abstract")
	f.HasConclusion = strings.Contains(normalized, "conclusion")
	if strings.TrimSpace(raw) != "" {
		f.ParagraphCount = len(paragraphSplit.Split(strings.TrimSpace(raw), -1))
	}
	return f
}

func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// countSyllables estimates syllables by counting vowel groups, minimum one
// per word. Good enough for a Flesch approximation on English text.
func countSyllables(word string) int {
	if word == "" {
		return 0
	}
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
