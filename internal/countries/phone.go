package countries

import (
	"strings"
	"unicode"

	"movo/internal/models"

	"github.com/nyaruka/phonenumbers"
)

// PhoneService validates, formats and attributes phone numbers. Every
// method is total: bad input produces a negative result, never a panic
// or an error. Validation sits on a user-facing path and must not crash
// the caller.
type PhoneService interface {
	Validate(number, countryCode string) models.PhoneValidation
	DetectCountry(number string) (string, bool)
	BelongsToCountry(number, countryCode string) bool
	Sanitize(number string) string
	Format(number, countryCode string) string
}

type phoneService struct{}

// NewPhoneService returns the numbering-plan backed phone service.
func NewPhoneService() PhoneService { return phoneService{} }

// cleanNumber strips whitespace, hyphens and parentheses.
func cleanNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, strings.TrimSpace(number))
}

func (phoneService) Validate(number, countryCode string) models.PhoneValidation {
	cleaned := cleanNumber(number)

	if cleaned == "" {
		return models.PhoneValidation{Error: "Phone number is required"}
	}
	if len(cleaned) < 7 {
		return models.PhoneValidation{Error: "Phone number is too short"}
	}
	if len(cleaned) > 15 {
		return models.PhoneValidation{Error: "Phone number is too long"}
	}

	parsed, err := phonenumbers.Parse(cleaned, strings.ToUpper(strings.TrimSpace(countryCode)))
	if err != nil || parsed == nil {
		return models.PhoneValidation{Error: "Invalid phone number format for this country"}
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return models.PhoneValidation{Error: "Phone number is not valid for this country"}
	}

	return models.PhoneValidation{
		IsValid:   true,
		Formatted: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
	}
}

// DetectCountry parses without a hint country and returns the numbering
// plan's best guess for the number's home region.
func (phoneService) DetectCountry(number string) (string, bool) {
	cleaned := cleanNumber(number)
	if cleaned == "" {
		return "", false
	}
	parsed, err := phonenumbers.Parse(cleaned, "")
	if err != nil || parsed == nil {
		return "", false
	}
	region := phonenumbers.GetRegionCodeForNumber(parsed)
	if region == "" || region == "ZZ" {
		return "", false
	}
	return region, true
}

// BelongsToCountry reports whether the number's detected home country
// matches countryCode. A fraud signal, not a validity check: a valid
// roaming number legitimately belongs to another country.
func (s phoneService) BelongsToCountry(number, countryCode string) bool {
	detected, ok := s.DetectCountry(number)
	return ok && detected == strings.ToUpper(strings.TrimSpace(countryCode))
}

// Sanitize strips the number down to digits only.
func (phoneService) Sanitize(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}

// Format renders the number in national format, returning the input
// unchanged when it cannot be parsed.
func (phoneService) Format(number, countryCode string) string {
	cleaned := cleanNumber(number)
	parsed, err := phonenumbers.Parse(cleaned, strings.ToUpper(strings.TrimSpace(countryCode)))
	if err != nil || parsed == nil {
		return number
	}
	return phonenumbers.Format(parsed, phonenumbers.NATIONAL)
}
