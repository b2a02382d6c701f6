package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_Lexical(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("the cat sat on the mat")
	require.Equal(t, 6, features.Lexical.WordCount)
	require.InDelta(t, 5.0/6.0, features.Lexical.UniqueWordRatio, 1e-9)
	require.Greater(t, features.Lexical.AvgWordLength, 0.0)
}

func TestExtract_EmptyInput(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("")
	require.Equal(t, 0, features.Lexical.WordCount)
	require.Equal(t, 0, features.Syntactic.SentenceCount)
	require.InDelta(t, 0.5, features.Stylometric.FormalityScore, 1e-9)
	require.Equal(t, 0, features.Structural.ParagraphCount)
}

func TestExtract_Citations(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("Prior work [1] and [2] disagree with (Smith et al, 2020).")
	require.Equal(t, 3, features.Semantic.CitationCount)
	require.Greater(t, features.Semantic.CitationDensity, 0.0)
}

func TestExtract_ReferencesSection(t *testing.T) {
	e := NewExtractor()
	with := e.Extract("Some findings. References: Smith 2020.")
	without := e.Extract("Some findings without any scholarly apparatus.")
	require.True(t, with.Semantic.HasReferences)
	require.False(t, without.Semantic.HasReferences)
}

func TestExtract_SyntacticComplexity(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("The test passed because the fix was correct. The build is green.")
	require.Equal(t, 2, features.Syntactic.SentenceCount)
	require.InDelta(t, 0.5, features.Syntactic.ComplexRatio, 1e-9)
}

func TestExtract_ParagraphsUseRawLineStructure(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("First paragraph here.\n\nSecond paragraph here.\n\nThird one.")
	require.Equal(t, 3, features.Structural.ParagraphCount)
}

func TestExtract_StructuralMarkers(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("Abstract\n\nIntroduction to the topic.\n\nMethodology was simple.\n\nConclusion follows.")
	require.True(t, features.Structural.HasAbstract)
	require.True(t, features.Structural.HasSections)
	require.True(t, features.Structural.HasConclusion)
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"cat", 1},
		{"hello", 2},
		{"code", 1},
		{"strength", 1},
		{"university", 5},
		{"rhythm", 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, countSyllables(tt.word), "word %q", tt.word)
	}
}

func TestExtract_FleschWithinBounds(t *testing.T) {
	e := NewExtractor()
	features := e.Extract("Reading ease must stay clamped. Short words help. Long polysyllabic constructions hinder comprehension significantly.")
	require.GreaterOrEqual(t, features.Stylometric.FleschScore, 0.0)
	require.LessOrEqual(t, features.Stylometric.FleschScore, 100.0)
}
