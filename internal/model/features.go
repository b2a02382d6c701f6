package model

// FeatureSet holds all heuristic signals extracted from normalized text.
// Every value is bounded: ratios and densities live in [0,1] unless noted.
type FeatureSet struct {
	Lexical     LexicalFeatures     `json:"lexical"`
	Syntactic   SyntacticFeatures   `json:"syntactic"`
	Semantic    SemanticFeatures    `json:"semantic"`
	Stylometric StylometricFeatures `json:"stylometric"`
	Structural  StructuralFeatures  `json:"structural"`
}

type LexicalFeatures struct {
	WordCount       int     `json:"word_count"`
	UniqueWordRatio float64 `json:"unique_word_ratio"`
	AvgWordLength   float64 `json:"avg_word_length"`
	TechTermDensity float64 `json:"tech_term_density"`
}

type SyntacticFeatures struct {
	SentenceCount      int     `json:"sentence_count"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	ComplexRatio       float64 `json:"complex_ratio"`
	PunctuationDensity float64 `json:"punctuation_density"`
}

type SemanticFeatures struct {
	CitationCount   int     `json:"citation_count"`
	CitationDensity float64 `json:"citation_density"`
	HasReferences   bool    `json:"has_references"`
}

type StylometricFeatures struct {
	FormalityScore  float64 `json:"formality_score"`
	FleschScore     float64 `json:"flesch_score"` // 0-100, higher reads easier
	PassiveRatio    float64 `json:"passive_ratio"`
	FirstPersonRate float64 `json:"first_person_rate"`
}

type StructuralFeatures struct {
	HasSections    bool `json:"has_sections"`
	HasAbstract    bool `json:"has_abstract"`
	HasConclusion  bool `json:"has_conclusion"`
	ParagraphCount int  `json:"paragraph_count"`
}

type DocType string

const (
	DocTypeAcademic    DocType = "academic"
	DocTypeCertificate DocType = "certificate"
	DocTypeGeneral     DocType = "general"
)

// AIIndicator is one heuristic sign of machine-generated text.
type AIIndicator struct {
	Type        string  `json:"type"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// AIAnalysis summarizes generation-pattern heuristics. Probability is a
// 0-100 score, not a calibrated model output.
type AIAnalysis struct {
	Probability float64       `json:"probability"`
	Indicators  []AIIndicator `json:"indicators"`
	Explanation string        `json:"explanation"`
}

// Certificate assessment outcomes, ordered by severity.
const (
	CertStatusNoFindings   = "no_findings"
	CertStatusSuspicious   = "suspicious"
	CertStatusLikelyForged = "likely_forged"
)

// CertificateAssessment is the forgery judgment for a certificate-type
// submission: its extracted credential fields held against the registered
// certificates the matcher found.
type CertificateAssessment struct {
	Status      string   `json:"status"`
	Confidence  float64  `json:"confidence"`
	Indicators  []string `json:"indicators"`
	Explanation string   `json:"explanation"`
}

// CredentialInfo is the field set extracted from certificate-type documents.
type CredentialInfo struct {
	HolderName        string `json:"holder_name,omitempty"`
	IssueDate         string `json:"issue_date,omitempty"`
	CertificateNumber string `json:"certificate_number,omitempty"`
	IssuingAuthority  string `json:"issuing_authority,omitempty"`
	Qualification     string `json:"qualification,omitempty"`
}
