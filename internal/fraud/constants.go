package fraud

import "time"

const (
	// Airtime limits
	AirtimeLargeAmount = 1_000_000
	AirtimeRoundAmount = 50_000

	// Bill payment limits
	BillLargeAmount        = 10_000_000
	MinAccountNumberLength = 3
	MaxAccountNumberLength = 30

	// Crypto limits
	CryptoMaxAmount   = 100_000_000
	CryptoLargeAmount = 50_000
	CryptoMaxDecimals = 8

	// Risk scoring
	RiskHighAmount     = 100_000
	RiskRoundAmount    = 10_000
	RiskSmallAmount    = 10
	RiskHighFrequency  = 5
	RiskSmallFrequency = 2
	HighRiskScore      = 3
	MediumRiskScore    = 2

	// Input handling
	MaxInputLength = 255

	// MinTransactionInterval is the default gap enforced between two
	// successive transactions from the same user.
	MinTransactionInterval = 5 * time.Second
)
