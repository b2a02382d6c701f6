package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/model"
)

func certSource(id, filename, holder, number string) model.Document {
	return model.Document{
		ID:         id,
		Filename:   filename,
		DocType:    string(model.DocTypeCertificate),
		HolderName: holder,
		CertNumber: number,
	}
}

func TestAssessCertificate_NumberRegisteredToDifferentHolder(t *testing.T) {
	creds := model.CredentialInfo{HolderName: "Bob Tailor", CertificateNumber: "WS-4401"}
	match := &model.MatchResult{
		Tier:       model.MatchTierExactChunks,
		Candidates: []model.MatchCandidate{{DocumentID: "doc-1", Score: 0.8}},
	}
	sources := []model.Document{certSource("doc-1", "welding.txt", "Alice Morgan", "WS-4401")}

	got := AssessCertificate(creds, match, sources)
	require.Equal(t, model.CertStatusLikelyForged, got.Status)
	require.InDelta(t, 0.9, got.Confidence, 1e-9)
	require.Len(t, got.Indicators, 1)
	require.Contains(t, got.Indicators[0], "WS-4401")
}

func TestAssessCertificate_TemplateReuseIsSuspicious(t *testing.T) {
	creds := model.CredentialInfo{HolderName: "Bob Tailor", CertificateNumber: "WS-9999"}
	match := &model.MatchResult{
		Tier:       model.MatchTierExactChunks,
		Candidates: []model.MatchCandidate{{DocumentID: "doc-1", Score: 0.75}},
	}
	sources := []model.Document{certSource("doc-1", "welding.txt", "Alice Morgan", "WS-4401")}

	got := AssessCertificate(creds, match, sources)
	require.Equal(t, model.CertStatusSuspicious, got.Status)
	require.Contains(t, got.Indicators[0], "welding.txt")
}

func TestAssessCertificate_NoExtractableFields(t *testing.T) {
	match := &model.MatchResult{Tier: model.MatchTierFuzzy, Candidates: []model.MatchCandidate{}}

	got := AssessCertificate(model.CredentialInfo{}, match, nil)
	require.Equal(t, model.CertStatusSuspicious, got.Status)
	require.InDelta(t, 0.6, got.Confidence, 1e-9)
}

func TestAssessCertificate_OwnResubmissionHasNoFindings(t *testing.T) {
	creds := model.CredentialInfo{HolderName: "Alice Morgan", CertificateNumber: "WS-4401"}
	src := certSource("doc-1", "welding.txt", "alice morgan", "ws-4401")
	match := &model.MatchResult{Tier: model.MatchTierDocument, Document: &src}

	got := AssessCertificate(creds, match, []model.Document{src})
	require.Equal(t, model.CertStatusNoFindings, got.Status)
	require.Empty(t, got.Indicators)
	require.InDelta(t, 0.0, got.Confidence, 1e-9)
}
