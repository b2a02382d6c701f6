package model

type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskCritical RiskLevel = "critical"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReview  Action = "review"
	ActionReject  Action = "reject"
)

// Factor is one contribution to the verdict, ordered strongest first.
type Factor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Severity     string  `json:"severity"`
	Description  string  `json:"description"`
}

// Verdict is the final labeled outcome of an evaluation. It is derived
// entirely from the match result and the feature set and is never persisted
// by the core.
type Verdict struct {
	Label           string    `json:"label"`
	Risk            RiskLevel `json:"risk"`
	Action          Action    `json:"action"`
	Confidence      int       `json:"confidence"`
	Similarity      float64   `json:"similarity"` // percent, 0-100
	Factors         []Factor  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
	Summary         string    `json:"summary"`
}
