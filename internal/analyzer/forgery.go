package analyzer

import (
	"fmt"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// A submission this similar to a stored certificate without being identical
// looks like a filled-in copy of the same template.
const templateReuseScore = 0.6

// AssessCertificate judges a certificate submission against the registered
// certificates the matcher found. sources are the corpus documents behind the
// match result, strongest first. The assessment never fails: with no usable
// evidence it reports no findings.
func AssessCertificate(creds model.CredentialInfo, match *model.MatchResult, sources []model.Document) model.CertificateAssessment {
	indicators := make([]string, 0, 2)
	status := model.CertStatusNoFindings
	confidence := 0.0

	for _, src := range sources {
		if src.CertNumber == "" || creds.CertificateNumber == "" {
			continue
		}
		if strings.EqualFold(src.CertNumber, creds.CertificateNumber) && holdersDiffer(src.HolderName, creds.HolderName) {
			indicators = append(indicators, fmt.Sprintf(
				"certificate number %s is already registered to a different holder", creds.CertificateNumber))
			status = model.CertStatusLikelyForged
			confidence = 0.9
			break
		}
	}

	if status == model.CertStatusNoFindings && match.Tier != model.MatchTierDocument && match.TopScore() >= templateReuseScore {
		for _, src := range sources {
			if src.DocType != string(model.DocTypeCertificate) {
				continue
			}
			if sameHolder(src.HolderName, creds.HolderName) {
				continue
			}
			indicators = append(indicators, fmt.Sprintf(
				"text closely matches registered certificate %q with different identifying fields", src.Filename))
			status = model.CertStatusSuspicious
			confidence = 0.75
			break
		}
	}

	if status == model.CertStatusNoFindings && creds.HolderName == "" && creds.CertificateNumber == "" {
		indicators = append(indicators, "neither a holder name nor a certificate number could be extracted")
		status = model.CertStatusSuspicious
		confidence = 0.6
	}

	return model.CertificateAssessment{
		Status:      status,
		Confidence:  confidence,
		Indicators:  indicators,
		Explanation: explainAssessment(status, indicators),
	}
}

// holdersDiffer requires both names present: an unextracted name is unknown,
// not different.
func holdersDiffer(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && b != "" && !strings.EqualFold(a, b)
}

func sameHolder(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

func explainAssessment(status string, indicators []string) string {
	switch status {
	case model.CertStatusLikelyForged:
		return "Credential fields conflict with a registered certificate: " + strings.Join(indicators, "; ") + "."
	case model.CertStatusSuspicious:
		return "Certificate shows irregularities that warrant manual review: " + strings.Join(indicators, "; ") + "."
	default:
		return "No forgery indicators found."
	}
}
