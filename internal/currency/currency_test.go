package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "€", Symbol("EUR"))
	assert.Equal(t, "kr", Symbol("SEK"))
	assert.Equal(t, "£", Symbol("GBP"))
	assert.Equal(t, "$", Symbol("usd"))
	assert.Equal(t, "kr", Symbol("sek"))
	assert.Equal(t, "XYZ", Symbol("XYZ"))
	assert.Equal(t, "xyz", Symbol("xyz"))
}

func TestSymbolTableIsComplete(t *testing.T) {
	assert.Len(t, defaultTable.Symbols, 31)
	for _, code := range defaultTable.TightSymbol {
		assert.Contains(t, defaultTable.Symbols, code)
	}
	for _, code := range defaultTable.WithoutCode {
		assert.Contains(t, defaultTable.Symbols, code)
	}
}

func TestShowsCode(t *testing.T) {
	for _, code := range []string{"SEK", "USD", "NOK", "DKK", "XYZ"} {
		assert.True(t, ShowsCode(code), code)
	}
	for _, code := range []string{"EUR", "GBP", "JPY", "CNY", "eur"} {
		assert.False(t, ShowsCode(code), code)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		code  string
		want  string
	}{
		{name: "USD tight with code", value: 1000, code: "USD", want: "$1000 USD"},
		{name: "EUR tight without code", value: 1000, code: "EUR", want: "€1000"},
		{name: "SEK spaced with code", value: 1000, code: "SEK", want: "kr 1000 SEK"},
		{name: "GBP tight without code", value: 1000, code: "GBP", want: "£1000"},
		{name: "NOK spaced with code", value: 1000, code: "NOK", want: "kr 1000 NOK"},
		{name: "JPY spaced symbol but code suppressed", value: 1000, code: "JPY", want: "¥1000"},
		{name: "large numbers are not grouped", value: 1000000, code: "SEK", want: "kr 1000000 SEK"},
		{name: "decimals drop trailing zeros", value: 1000.50, code: "USD", want: "$1000.5 USD"},
		{name: "lowercase code is echoed", value: 5, code: "usd", want: "$5 usd"},
		{name: "unknown code falls back to code", value: 12, code: "XYZ", want: "XYZ 12 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.value, tt.code))
		})
	}
}

func TestPrefixSuffix(t *testing.T) {
	assert.Equal(t, "$", Prefix("USD"))
	assert.Equal(t, "€", Prefix("EUR"))
	assert.Equal(t, "kr", Prefix("NOK"))
	assert.Equal(t, " USD", Suffix("USD"))
	assert.Equal(t, "", Suffix("EUR"))
	assert.Equal(t, " SEK", Suffix("SEK"))
	assert.Equal(t, "", Suffix("GBP"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "0.01", FormatAmount(0.01))
	assert.Equal(t, "-42.25", FormatAmount(-42.25))
	assert.Equal(t, "1e+21", FormatAmount(1e21))
	assert.Equal(t, "1e-7", FormatAmount(1e-7))
	assert.Equal(t, "Infinity", FormatAmount(math.Inf(1)))
}

func TestLoadRejectsEmptyTable(t *testing.T) {
	_, err := load([]byte("symbols: {}\n"))
	require.Error(t, err)

	_, err = load([]byte("symbols: [\n"))
	require.Error(t, err)
}
