package fraud

import (
	"testing"
	"time"

	"movo/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAssessFraudRisk(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		perMinute int
		level     models.RiskLevel
		reasons   []string
	}{
		{
			name:      "large amount and rapid fire",
			amount:    150_000,
			perMinute: 10,
			level:     models.RiskHigh,
			reasons:   []string{"High transaction amount", "Multiple rapid transactions", "Round amount transaction"},
		},
		{
			name:      "large irregular amount and rapid fire",
			amount:    150_250,
			perMinute: 10,
			level:     models.RiskHigh,
			reasons:   []string{"High transaction amount", "Multiple rapid transactions"},
		},
		{
			name:      "small ordinary payment",
			amount:    50,
			perMinute: 1,
			level:     models.RiskLow,
		},
		{
			name:      "round amount alone is medium at most",
			amount:    150_000,
			perMinute: 0,
			level:     models.RiskHigh,
			reasons:   []string{"High transaction amount", "Round amount transaction"},
		},
		{
			name:      "round amount below high threshold",
			amount:    20_000,
			perMinute: 0,
			level:     models.RiskLow,
			reasons:   []string{"Round amount transaction"},
		},
		{
			name:      "card testing pattern",
			amount:    5,
			perMinute: 3,
			level:     models.RiskLow,
			reasons:   []string{"Multiple small transactions"},
		},
		{
			name:      "frequency plus small amounts",
			amount:    5,
			perMinute: 6,
			level:     models.RiskHigh,
			reasons:   []string{"Multiple rapid transactions", "Multiple small transactions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessFraudRisk(tt.amount, tt.perMinute)
			assert.Equal(t, tt.level, got.Level)
			if tt.reasons == nil {
				assert.Empty(t, got.Reasons)
			} else {
				assert.ElementsMatch(t, tt.reasons, got.Reasons)
			}
		})
	}
}

func TestCheckRateLimit(t *testing.T) {
	now := time.Now()

	// No prior transaction is always allowed.
	assert.True(t, CheckRateLimit(time.Time{}, MinTransactionInterval, now))

	assert.False(t, CheckRateLimit(now.Add(-time.Millisecond), MinTransactionInterval, now))
	assert.True(t, CheckRateLimit(now.Add(-MinTransactionInterval-time.Millisecond), MinTransactionInterval, now))
}
