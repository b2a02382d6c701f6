package chunker

import (
	"strings"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/pkg/textutil"
)

const (
	DefaultWindowWords  = 600
	DefaultOverlapWords = 120
)

// Chunker splits normalized text into overlapping fixed-size word windows.
// Windows advance by window-overlap words, so any span of up to overlap
// words is fully contained in at least one window and a match crossing a
// window boundary is still caught by the adjacent window.
type Chunker struct {
	windowWords  int
	overlapWords int
}

func New(windowWords, overlapWords int) *Chunker {
	if windowWords <= 0 {
		windowWords = DefaultWindowWords
	}
	if overlapWords < 0 || overlapWords >= windowWords {
		overlapWords = windowWords / 5
	}
	return &Chunker{windowWords: windowWords, overlapWords: overlapWords}
}

// Chunk returns windows in increasing start-offset order, indexed 0..N-1
// contiguously. The final window may be shorter than the window size.
// Empty input yields an empty list.
func (c *Chunker) Chunk(documentID, normalized string) []model.Chunk {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return []model.Chunk{}
	}
	step := c.windowWords - c.overlapWords
	chunks := make([]model.Chunk, 0, (len(words)+step-1)/step)
	idx := 0
	for start := 0; start < len(words); start += step {
		end := start + c.windowWords
		if end > len(words) {
			end = len(words)
		}
		text := strings.Join(words[start:end], " ")
		chunks = append(chunks, model.Chunk{
			DocumentID:  documentID,
			ChunkIndex:  idx,
			Text:        text,
			ContentHash: textutil.Hash(text),
			WordCount:   end - start,
		})
		if end == len(words) {
			break
		}
		idx++
	}
	return chunks
}
