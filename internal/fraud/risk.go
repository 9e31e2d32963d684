package fraud

import (
	"math"
	"time"

	"movo/internal/models"
)

// AssessFraudRisk scores a transaction from its amount and the user's
// current transaction frequency (transactions per minute). Advisory
// only; the result never blocks a submission by itself.
func AssessFraudRisk(amount float64, perMinute int) models.RiskAssessment {
	var reasons []string
	score := 0

	if amount > RiskHighAmount {
		score += 2
		reasons = append(reasons, "High transaction amount")
	}
	if perMinute > RiskHighFrequency {
		score += 2
		reasons = append(reasons, "Multiple rapid transactions")
	}
	// Round amounts are common in fraud.
	if isMultipleOf(amount, 1000) && amount > RiskRoundAmount {
		score++
		reasons = append(reasons, "Round amount transaction")
	}
	// Streams of tiny amounts look like card testing.
	if amount < RiskSmallAmount && !math.IsNaN(amount) && perMinute > RiskSmallFrequency {
		score++
		reasons = append(reasons, "Multiple small transactions")
	}

	level := models.RiskLow
	switch {
	case score >= HighRiskScore:
		level = models.RiskHigh
	case score >= MediumRiskScore:
		level = models.RiskMedium
	}

	return models.RiskAssessment{Level: level, Reasons: reasons}
}

// CheckRateLimit reports whether enough time has passed since the last
// transaction. The caller supplies now so the gate stays pure. A zero
// last timestamp means no prior transaction and is always allowed.
func CheckRateLimit(last time.Time, minInterval time.Duration, now time.Time) bool {
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= minInterval
}
