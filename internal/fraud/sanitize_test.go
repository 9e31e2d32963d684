package fraud

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "clean input untouched", input: "John Doe", want: "John Doe"},
		{name: "trims", input: "  hello  ", want: "hello"},
		{name: "strips script tags", input: `<script>alert('x')</script>`, want: "scriptalertx/script"},
		{name: "strips sql quotes", input: `'; DROP TABLE users; --`, want: "DROP TABLE users --"},
		{name: "collapses whitespace", input: "a \t\n  b", want: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestSanitizeInputIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  plain text  ",
		`<b>"quoted" & 'stuff';</b>`,
		strings.Repeat("x ", 400),
		"tab\tand\nnewline",
	}

	for _, input := range inputs {
		once := SanitizeInput(input)
		assert.Equal(t, once, SanitizeInput(once), "input %q", input)
	}
}

func TestSanitizeInputBounds(t *testing.T) {
	out := SanitizeInput(strings.Repeat("a", 1000))
	assert.Len(t, []rune(out), MaxInputLength)

	out = SanitizeInput(strings.Repeat(`<>"'`, 500))
	assert.Empty(t, out)

	for _, r := range SanitizeInput(`a<b>c"d'e%f;g(h)i&j+k`) {
		assert.NotContains(t, dangerous, string(r))
	}
}

func TestValidateAndSanitizeFields(t *testing.T) {
	fields := map[string]any{
		"name":   "  <b>Ada</b>  ",
		"amount": 42.5,
		"count":  3,
		"flag":   true,
	}

	sanitized, result := ValidateAndSanitizeFields(fields)
	require.True(t, result.IsValid)
	assert.Equal(t, "bAda/b", sanitized["name"])
	assert.Equal(t, 42.5, sanitized["amount"])
	assert.Equal(t, 3, sanitized["count"])
	assert.Equal(t, true, sanitized["flag"])
}

func TestValidateAndSanitizeFieldsRejectsNonFinite(t *testing.T) {
	sanitized, result := ValidateAndSanitizeFields(map[string]any{
		"amount": math.NaN(),
		"rate":   math.Inf(1),
		"ok":     1.0,
	})

	assert.False(t, result.IsValid)
	assert.ElementsMatch(t, []string{"Invalid amount", "Invalid rate"}, result.Errors)
	assert.NotContains(t, sanitized, "amount")
	assert.NotContains(t, sanitized, "rate")
	assert.Equal(t, 1.0, sanitized["ok"])
}
