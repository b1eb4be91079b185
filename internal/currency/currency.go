// Package currency renders prices with their display symbol and code.
package currency

import (
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed symbols.yaml
var symbolsYAML []byte

type table struct {
	Symbols     map[string]string `yaml:"symbols"`
	WithoutCode []string          `yaml:"without_code"`
	TightSymbol []string          `yaml:"tight_symbol"`

	withoutCode map[string]bool
	tight       map[string]bool
}

var defaultTable = mustLoad(symbolsYAML)

func mustLoad(data []byte) *table {
	t, err := load(data)
	if err != nil {
		panic(fmt.Sprintf("currency: %v", err))
	}
	return t
}

func load(data []byte) (*table, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse symbol table: %w", err)
	}
	if len(t.Symbols) == 0 {
		return nil, fmt.Errorf("symbol table is empty")
	}
	t.withoutCode = toSet(t.WithoutCode)
	t.tight = toSet(t.TightSymbol)
	return &t, nil
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[strings.ToUpper(c)] = true
	}
	return set
}

// Symbol returns the display symbol for code, matched case-insensitively.
// Unknown codes are returned unchanged.
func Symbol(code string) string {
	if s, ok := defaultTable.Symbols[strings.ToUpper(code)]; ok {
		return s
	}
	return code
}

// ShowsCode reports whether the code is repeated after the amount.
func ShowsCode(code string) bool {
	return !defaultTable.withoutCode[strings.ToUpper(code)]
}

// Prefix is the part rendered before the amount.
func Prefix(code string) string {
	return Symbol(code)
}

// Suffix is the part rendered after the amount: " " plus the code as given,
// or empty when the code is not shown.
func Suffix(code string) string {
	if !ShowsCode(code) {
		return ""
	}
	return " " + code
}

// FormatPrice renders value in code, e.g. "$1000 USD", "€1000", "kr 1000 SEK".
// Tight symbols touch the amount; other symbols are separated by a space
// unless the code is suppressed ("¥1000").
func FormatPrice(value float64, code string) string {
	symbol := Symbol(code)
	amount := FormatAmount(value)
	if !ShowsCode(code) {
		return symbol + amount
	}
	if defaultTable.tight[strings.ToUpper(code)] {
		return symbol + amount + " " + code
	}
	return symbol + " " + amount + " " + code
}

// FormatAmount writes the shortest decimal that round-trips value, with no
// grouping and no trailing zeros: 1000, 1000.5, 0.01. Very large and very
// small magnitudes switch to exponent form (1e+21, 1e-7).
func FormatAmount(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	abs := math.Abs(value)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(value, 'g', -1, 64)
		return strings.NewReplacer("e+0", "e+", "e-0", "e-").Replace(s)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
