// Package fraud enforces per-domain business rules before a transaction
// request reaches the transport layer. Errors block submission, warnings
// inform the user without blocking. All functions are pure: no I/O, no
// shared state, and failure is always a result value, never a panic.
package fraud

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"movo/internal/countries"
	"movo/internal/models"
)

// Validator evaluates proposed transactions. Phone/country cross checks
// are delegated to the injected phone service.
type Validator struct {
	phones countries.PhoneService
}

func NewValidator(phones countries.PhoneService) *Validator {
	return &Validator{phones: phones}
}

// ValidateAirtimeTransaction checks an airtime top-up before submission.
// A well-formed phone number from a country other than the selected one
// is a warning, not an error: foreign SIMs are legitimate.
func (v *Validator) ValidateAirtimeTransaction(phoneNumber string, amount float64, countryCode, providerCode string) models.ValidationResult {
	var errs, warnings []string

	pv := v.phones.Validate(phoneNumber, countryCode)
	if !pv.IsValid {
		errs = append(errs, pv.Error)
	} else if !v.phones.BelongsToCountry(phoneNumber, countryCode) {
		warnings = append(warnings, "Phone number appears to be from a different country than selected. This may result in delivery failure.")
	}

	errs = appendAmountErrors(errs, amount)
	if amount > AirtimeLargeAmount {
		warnings = append(warnings, "Very large transaction amount. Please verify this is intentional.")
	}
	if isMultipleOf(amount, 100) && amount > AirtimeRoundAmount {
		warnings = append(warnings, "Round number transaction - verify amount is correct")
	}

	if strings.TrimSpace(countryCode) == "" {
		errs = append(errs, "Country selection is required")
	}
	if strings.TrimSpace(providerCode) == "" {
		errs = append(errs, "Provider selection is required")
	}

	return models.NewValidationResult(errs, warnings)
}

// ValidateBillPayment checks a bill payment before submission.
func (v *Validator) ValidateBillPayment(accountNumber string, amount float64, providerCode, countryCode string) models.ValidationResult {
	var errs, warnings []string

	switch account := strings.TrimSpace(accountNumber); {
	case account == "":
		errs = append(errs, "Account number is required")
	case len(account) < MinAccountNumberLength:
		errs = append(errs, "Account number is too short")
	case len(account) > MaxAccountNumberLength:
		errs = append(errs, "Account number is too long")
	}

	if hasRepeatedDigits(accountNumber, 5) {
		warnings = append(warnings, "Account number contains repeated digits - verify this is correct")
	}
	if isAllZeros(accountNumber) {
		errs = append(errs, "Account number appears invalid")
	}

	errs = appendAmountErrors(errs, amount)
	if amount > BillLargeAmount {
		warnings = append(warnings, "Very large payment amount. Please verify before proceeding.")
	}

	if strings.TrimSpace(providerCode) == "" {
		errs = append(errs, "Provider selection is required")
	}
	if strings.TrimSpace(countryCode) == "" {
		errs = append(errs, "Country selection is required")
	}

	return models.NewValidationResult(errs, warnings)
}

// ValidateCryptoTransaction checks a crypto buy or sell. Unlike airtime
// and bills, the upper amount bound here is a hard error.
func (v *Validator) ValidateCryptoTransaction(amount float64, transactionType, countryCode string) models.ValidationResult {
	var errs, warnings []string

	errs = appendAmountErrors(errs, amount)
	if amount > CryptoMaxAmount {
		errs = append(errs, "Amount exceeds maximum limit")
	}
	if amount > CryptoLargeAmount {
		warnings = append(warnings, fmt.Sprintf("Large %s transaction. Ensure you have sufficient funds and understand the risks.", transactionType))
	}
	if decimalPlaces(amount) > CryptoMaxDecimals {
		errs = append(errs, "Too many decimal places - maximum 8 decimal places allowed")
	}

	if strings.TrimSpace(countryCode) == "" {
		errs = append(errs, "Country selection is required")
	}
	if transactionType != "buy" && transactionType != "sell" {
		errs = append(errs, "Invalid transaction type")
	}

	return models.NewValidationResult(errs, warnings)
}

// appendAmountErrors applies the amount checks shared by every domain.
func appendAmountErrors(errs []string, amount float64) []string {
	if amount <= 0 {
		errs = append(errs, "Amount must be greater than 0")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		errs = append(errs, "Invalid amount entered")
	}
	return errs
}

func isMultipleOf(amount, n float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return math.Mod(amount, n) == 0
}

// hasRepeatedDigits reports whether s contains a run of n or more
// identical consecutive digits.
func hasRepeatedDigits(s string, n int) bool {
	run := 0
	var last rune
	for _, r := range s {
		if r >= '0' && r <= '9' && r == last {
			run++
			if run >= n {
				return true
			}
			continue
		}
		last = r
		if r >= '0' && r <= '9' {
			run = 1
		} else {
			run = 0
		}
	}
	return false
}

// isAllZeros reports whether the digits of s are non-empty and all zero.
func isAllZeros(s string) bool {
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if r != '0' {
			return false
		}
		seen = true
	}
	return seen
}

// decimalPlaces counts fractional digits in the shortest decimal
// rendering of amount.
func decimalPlaces(amount float64) int {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
