package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownText strips markup by walking the goldmark AST and collecting
// text segments, one line per block node.
func markdownText(raw []byte) string {
	md := goldmark.New()
	reader := text.NewReader(raw)
	doc := md.Parser().Parse(reader)

	var sb strings.Builder
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(raw))
			sb.WriteString(" ")
		case *ast.FencedCodeBlock:
			for i := 0; i < n.Lines().Len(); i++ {
				line := n.Lines().At(i)
				sb.Write(line.Value(raw))
			}
			sb.WriteString("\n")
		}
		if node.Type() == ast.TypeBlock {
			sb.WriteString("\n")
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
