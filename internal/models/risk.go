package models

// RiskLevel buckets a transaction's heuristic fraud score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskAssessment is an advisory fraud signal. It never blocks a
// transaction on its own; callers decide what to do with it.
type RiskAssessment struct {
	Level   RiskLevel `json:"riskLevel"`
	Reasons []string  `json:"reasons"`
}
