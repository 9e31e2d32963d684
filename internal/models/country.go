package models

// Country is one row of the static country reference table.
type Country struct {
	Code        string `json:"code"`     // ISO 3166-1 alpha-2
	Name        string `json:"name"`
	Currency    string `json:"currency"` // ISO 4217
	Flag        string `json:"flag"`
	CallingCode string `json:"callingCode"` // with leading +
}
