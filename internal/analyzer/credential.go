package analyzer

import (
	"regexp"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// Credential extraction works on the raw text: name and authority patterns
// rely on capitalization that normalization folds away.
var (
	// Case-insensitivity is scoped to the label; the captured name itself
	// must keep its capitalization.
	holderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:name|holder|awarded to|presented to)[:\s]+([A-Z][a-z]+(?: [A-Z][a-z]+)+)`),
		regexp.MustCompile(`(?i:mr\.|ms\.|mrs\.|dr\.)\s+([A-Z][a-z]+(?: [A-Z][a-z]+)+)`),
		regexp.MustCompile(`(?i:this is to certify that)\s+([A-Z][a-z]+(?: [A-Z][a-z]+)+)`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:date|issued on|awarded on)[:\s]+(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)(\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4})`),
		regexp.MustCompile(`(\d{4}[-/]\d{1,2}[-/]\d{1,2})`),
	}
	certNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:certificate|cert|serial|reg|registration) (?:no|number|#)[:\s]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)(?:number|no)[:\s]*([A-Z]{2,4}-?\d{4,8})`),
	}
	authorityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:issued by|awarded by)[:\s]+([A-Z][a-z]+(?: [A-Z][a-z]+){1,5})`),
		regexp.MustCompile(`(University of [A-Z][a-z]+)`),
		regexp.MustCompile(`((?:[A-Z][a-z]+\s+){1,3}(?:University|Institute|College|Academy))`),
	}
	qualificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(Bachelor of (?:Arts|Science|Engineering|Technology))`),
		regexp.MustCompile(`(Master of (?:Arts|Science|Engineering|Technology|Business Administration))`),
		regexp.MustCompile(`\b(B\.?S\.?|M\.?S\.?|B\.?Tech|M\.?Tech|MBA|Ph\.?D\.?)\b`),
		regexp.MustCompile(`(?i)(?:degree|diploma|certificate) (?:in|of)\s+([A-Za-z ]+)`),
	}
)

// ExtractCredentials pulls the identifying fields out of a certificate-type
// document. Missing fields stay empty; there is no failure mode.
func ExtractCredentials(raw string) model.CredentialInfo {
	return model.CredentialInfo{
		HolderName:        firstMatch(raw, holderPatterns),
		IssueDate:         firstMatch(raw, datePatterns),
		CertificateNumber: firstMatch(raw, certNumberPatterns),
		IssuingAuthority:  firstMatch(raw, authorityPatterns),
		Qualification:     firstMatch(raw, qualificationPatterns),
	}
}

func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
