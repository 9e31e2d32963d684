package fraud

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"movo/internal/models"
)

// dangerous is the character set stripped from user input before it can
// reach the transport layer.
const dangerous = `<>"'%;()&+`

// SanitizeInput neutralizes injection-style payloads: trims, strips
// dangerous characters, collapses whitespace runs to a single space and
// truncates to MaxInputLength characters. Deterministic, total and
// idempotent.
func SanitizeInput(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(input))
	inSpace := false
	for _, r := range input {
		if strings.ContainsRune(dangerous, r) {
			continue
		}
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}

	out := []rune(b.String())
	if len(out) > MaxInputLength {
		out = out[:MaxInputLength]
	}
	return strings.TrimSpace(string(out))
}

// ValidateAndSanitizeFields sanitizes every field of a payload in one
// pass: strings go through SanitizeInput, non-finite numbers become
// errors, everything else passes through untouched.
func ValidateAndSanitizeFields(fields map[string]any) (map[string]any, models.ValidationResult) {
	sanitized := make(map[string]any, len(fields))
	var errs []string

	for key, value := range fields {
		switch v := value.(type) {
		case string:
			sanitized[key] = SanitizeInput(v)
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Sprintf("Invalid %s", key))
				continue
			}
			sanitized[key] = v
		default:
			sanitized[key] = value
		}
	}

	return sanitized, models.NewValidationResult(errs, nil)
}
