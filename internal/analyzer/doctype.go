package analyzer

import (
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

var certificateKeywords = []string{
	"certificate", "certify", "certifies", "awarded", "diploma",
	"successfully completed", "issued by", "registration no",
}

var academicKeywords = []string{
	"abstract", "references", "bibliography", "et al", "methodology",
	"hypothesis", "literature review",
}

// DetectDocType is a pure rule-based dispatcher over word count and keyword
// density. Certificates are short and dense in attestation phrasing;
// academic texts are long or carry scholarly apparatus; everything else is
// general.
func DetectDocType(normalized string) model.DocType {
	wordCount := len(strings.Fields(normalized))

	certHits := countKeywordHits(normalized, certificateKeywords)
	if certHits >= 2 && wordCount < 300 {
		return model.DocTypeCertificate
	}

	academicHits := countKeywordHits(normalized, academicKeywords)
	if academicHits >= 2 || (academicHits >= 1 && wordCount > 800) {
		return model.DocTypeAcademic
	}
	return model.DocTypeGeneral
}

func countKeywordHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}
