package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCredentials_FullCertificate(t *testing.T) {
	text := `This is to certify that John Smith
has been awarded the degree of
Bachelor of Science
Certificate No: CS-2023-0042
Issued by: Stanford University
Date: 15/06/2023`

	creds := ExtractCredentials(text)
	require.Equal(t, "John Smith", creds.HolderName)
	require.Equal(t, "CS-2023-0042", creds.CertificateNumber)
	require.Equal(t, "Stanford University", creds.IssuingAuthority)
	require.Equal(t, "Bachelor of Science", creds.Qualification)
	require.Equal(t, "15/06/2023", creds.IssueDate)
}

func TestExtractCredentials_SpelledOutDate(t *testing.T) {
	creds := ExtractCredentials("Awarded to Jane Doe on 3 March 2021 by the academy.")
	require.Equal(t, "Jane Doe", creds.HolderName)
	require.Equal(t, "3 March 2021", creds.IssueDate)
}

func TestExtractCredentials_MissingFieldsStayEmpty(t *testing.T) {
	creds := ExtractCredentials("An ordinary paragraph with no credential content at all.")
	require.Empty(t, creds.HolderName)
	require.Empty(t, creds.IssueDate)
	require.Empty(t, creds.CertificateNumber)
	require.Empty(t, creds.IssuingAuthority)
	require.Empty(t, creds.Qualification)
}
