package extract

import (
	"path/filepath"
	"strings"

	appErr "github.com/veridoc/veridoc/internal/pkg/errors"
)

// Text converts an uploaded file into plain text for normalization. The
// core matching pipeline only ever sees the returned text; binary format
// handling stops here.
func Text(filename string, raw []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt", ".text":
		return string(raw), nil
	case ".md", ".markdown":
		return markdownText(raw), nil
	case ".pdf":
		return pdfText(raw)
	case ".docx":
		return docxText(raw)
	default:
		return "", appErr.ErrUnsupportedFile
	}
}
