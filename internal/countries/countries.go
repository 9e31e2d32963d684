// Package countries holds the static country reference table and the
// phone number service built on top of the international numbering plan.
package countries

import (
	"sort"
	"strconv"
	"strings"

	"movo/internal/models"

	"github.com/nyaruka/phonenumbers"
)

// countryNames maps ISO 3166-1 alpha-2 codes to display names. Only
// countries present here (and in countryCurrency) are exposed.
var countryNames = map[string]string{
	"US": "United States",
	"NG": "Nigeria",
	"GB": "United Kingdom",
	"KE": "Kenya",
	"GH": "Ghana",
	"ZA": "South Africa",
	"CA": "Canada",
	"IN": "India",
	"AU": "Australia",
	"JP": "Japan",
	"DE": "Germany",
	"FR": "France",
	"BR": "Brazil",
	"MX": "Mexico",
	"CN": "China",
	"IT": "Italy",
	"ES": "Spain",
	"NL": "Netherlands",
	"SE": "Sweden",
	"CH": "Switzerland",
	"SG": "Singapore",
	"MY": "Malaysia",
	"TH": "Thailand",
	"PH": "Philippines",
	"VN": "Vietnam",
	"ID": "Indonesia",
	"PK": "Pakistan",
	"BD": "Bangladesh",
	"LK": "Sri Lanka",
	"AE": "United Arab Emirates",
	"SA": "Saudi Arabia",
	"QA": "Qatar",
	"KW": "Kuwait",
	"BH": "Bahrain",
	"OM": "Oman",
	"JO": "Jordan",
	"EG": "Egypt",
	"UG": "Uganda",
	"TZ": "Tanzania",
	"RW": "Rwanda",
	"ET": "Ethiopia",
	"SN": "Senegal",
	"CI": "Ivory Coast",
	"CM": "Cameroon",
}

var countryCurrency = map[string]string{
	"US": "USD", "GB": "GBP", "JP": "JPY", "IN": "INR", "NG": "NGN",
	"KE": "KES", "GH": "GHS", "ZA": "ZAR", "CA": "CAD", "AU": "AUD",
	"BR": "BRL", "MX": "MXN", "CN": "CNY", "DE": "EUR", "FR": "EUR",
	"IT": "EUR", "ES": "EUR", "NL": "EUR", "SE": "EUR", "CH": "CHF",
	"SG": "SGD", "MY": "MYR", "TH": "THB", "PH": "PHP", "VN": "VND",
	"ID": "IDR", "PK": "PKR", "BD": "BDT", "LK": "LKR", "AE": "AED",
	"SA": "SAR", "QA": "QAR", "KW": "KWD", "BH": "BHD", "OM": "OMR",
	"JO": "JOD", "EG": "EGP", "UG": "UGX", "TZ": "TZS", "RW": "RWF",
	"ET": "ETB", "SN": "XOF", "CI": "XOF", "CM": "XAF",
}

var currencySymbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "INR": "₹",
	"NGN": "₦", "KES": "KSh", "GHS": "₵", "ZAR": "R", "CAD": "C$",
	"AUD": "A$", "BRL": "R$", "MXN": "$", "CNY": "¥",
}

var countryFlags = map[string]string{
	"US": "🇺🇸", "GB": "🇬🇧", "JP": "🇯🇵", "IN": "🇮🇳", "NG": "🇳🇬",
	"KE": "🇰🇪", "GH": "🇬🇭", "ZA": "🇿🇦", "CA": "🇨🇦", "AU": "🇦🇺",
	"BR": "🇧🇷", "MX": "🇲🇽", "CN": "🇨🇳", "DE": "🇩🇪", "FR": "🇫🇷",
	"IT": "🇮🇹", "ES": "🇪🇸", "NL": "🇳🇱", "SE": "🇸🇪", "CH": "🇨🇭",
	"SG": "🇸🇬", "MY": "🇲🇾", "TH": "🇹🇭", "PH": "🇵🇭", "VN": "🇻🇳",
	"ID": "🇮🇩", "PK": "🇵🇰", "BD": "🇧🇩", "LK": "🇱🇰", "AE": "🇦🇪",
	"SA": "🇸🇦", "QA": "🇶🇦", "KW": "🇰🇼", "BH": "🇧🇭", "OM": "🇴🇲",
	"JO": "🇯🇴", "EG": "🇪🇬", "UG": "🇺🇬", "TZ": "🇹🇿", "RW": "🇷🇼",
	"ET": "🇪🇹", "SN": "🇸🇳", "CI": "🇨🇮", "CM": "🇨🇲",
}

// popularCodes is the quick-access list shown before the full table.
var popularCodes = []string{"US", "GB", "NG", "KE", "GH", "IN", "SG", "AU", "CA"}

func build(code string) (models.Country, bool) {
	name, ok := countryNames[code]
	if !ok {
		return models.Country{}, false
	}
	currency, ok := countryCurrency[code]
	if !ok {
		return models.Country{}, false
	}
	calling := phonenumbers.GetCountryCodeForRegion(code)
	if calling == 0 {
		return models.Country{}, false
	}
	flag, ok := countryFlags[code]
	if !ok {
		flag = "🌍"
	}
	return models.Country{
		Code:        code,
		Name:        name,
		Currency:    currency,
		Flag:        flag,
		CallingCode: "+" + strconv.Itoa(calling),
	}, true
}

// All returns every mapped country, sorted by display name.
func All() []models.Country {
	out := make([]models.Country, 0, len(countryNames))
	for code := range countryNames {
		if c, ok := build(code); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCode looks up a single country. The second return value reports
// whether the code is in the reference table.
func ByCode(code string) (models.Country, bool) {
	return build(strings.ToUpper(strings.TrimSpace(code)))
}

// CurrencySymbol returns the display symbol for a country's currency,
// falling back to the currency code, or a generic glyph for unknown
// countries.
func CurrencySymbol(code string) string {
	c, ok := ByCode(code)
	if !ok {
		return "💰"
	}
	if sym, ok := currencySymbols[c.Currency]; ok {
		return sym
	}
	return c.Currency
}

// Popular returns the quick-access countries in their fixed order.
func Popular() []models.Country {
	out := make([]models.Country, 0, len(popularCodes))
	for _, code := range popularCodes {
		if c, ok := build(code); ok {
			out = append(out, c)
		}
	}
	return out
}

// Search matches countries whose name or code contains the query,
// case-insensitively.
func Search(query string) []models.Country {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Country
	for _, c := range All() {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Code), q) {
			out = append(out, c)
		}
	}
	return out
}

// ByCurrency returns every country using the given ISO 4217 currency.
func ByCurrency(currency string) []models.Country {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	var out []models.Country
	for _, c := range All() {
		if c.Currency == currency {
			out = append(out, c)
		}
	}
	return out
}
