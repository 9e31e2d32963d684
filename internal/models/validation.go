package models

// ValidationResult is the outcome of a local business-rule check.
// Errors block submission, warnings are advisory only.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult builds a result from the collected errors and
// warnings, keeping the IsValid/Errors invariant in one place.
func NewValidationResult(errs, warnings []string) ValidationResult {
	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// PhoneValidation is the outcome of checking a phone number against a
// country's numbering plan. Formatted holds the international rendering
// when the number is valid.
type PhoneValidation struct {
	IsValid   bool   `json:"isValid"`
	Error     string `json:"error,omitempty"`
	Formatted string `json:"formattedNumber,omitempty"`
}
