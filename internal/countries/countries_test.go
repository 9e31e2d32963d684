package countries

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCode(t *testing.T) {
	c, ok := ByCode("NG")
	require.True(t, ok)
	assert.Equal(t, "Nigeria", c.Name)
	assert.Equal(t, "NGN", c.Currency)
	assert.Equal(t, "+234", c.CallingCode)
	assert.Equal(t, "🇳🇬", c.Flag)

	// Lookup is case-insensitive and trims.
	c, ok = ByCode(" ng ")
	require.True(t, ok)
	assert.Equal(t, "Nigeria", c.Name)

	_, ok = ByCode("XX")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	}))

	var found bool
	for _, c := range all {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Currency)
		assert.NotEmpty(t, c.CallingCode)
		if c.Code == "NG" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₦", CurrencySymbol("NG"))
	assert.Equal(t, "$", CurrencySymbol("US"))
	// No display symbol mapped: fall back to the currency code.
	assert.Equal(t, "OMR", CurrencySymbol("OM"))
	// Unknown country.
	assert.Equal(t, "💰", CurrencySymbol("XX"))
}

func TestPopular(t *testing.T) {
	popular := Popular()
	require.Len(t, popular, 9)
	assert.Equal(t, "US", popular[0].Code)
	assert.Equal(t, "CA", popular[len(popular)-1].Code)
}

func TestSearch(t *testing.T) {
	results := Search("nig")
	require.NotEmpty(t, results)
	assert.Equal(t, "Nigeria", results[0].Name)

	// Code matches count too.
	results = Search("gh")
	var codes []string
	for _, c := range results {
		codes = append(codes, c.Code)
	}
	assert.Contains(t, codes, "GH")

	assert.Empty(t, Search("zzzz"))
}

func TestByCurrency(t *testing.T) {
	euro := ByCurrency("EUR")
	assert.Len(t, euro, 6)

	xof := ByCurrency("xof")
	assert.Len(t, xof, 2)

	assert.Empty(t, ByCurrency("ZZZ"))
}
