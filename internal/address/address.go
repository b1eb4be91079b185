// Package address parses the free-text addresses typed into the moving form.
//
// The expected shape is "<street> <number>, <postalCode>, <city>", but parsing
// is tolerant: missing segments fall back to placeholders and no input is
// rejected.
package address

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// UnknownCity is used when the input carries no city segment.
	UnknownCity = "Unknown"
	// UnknownPostalCode is used when the input carries no postal code segment.
	UnknownPostalCode = "00000"
)

var streetPattern = regexp.MustCompile(`^(.+?)\s+(\d+)`)

// Address is a parsed full address.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// Street is a street line split into its name and house number.
type Street struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// String renders the address back in its canonical comma-separated form.
func (a Address) String() string {
	return a.Street + ", " + a.PostalCode + ", " + a.City
}

// ParseFull splits text on commas. Three or more segments map to street,
// postal code and city (extra segments are ignored); two segments leave the
// city unknown; anything else becomes the street of an otherwise unknown
// address.
func ParseFull(text string) Address {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch {
	case len(parts) >= 3:
		return Address{Street: parts[0], PostalCode: parts[1], City: parts[2]}
	case len(parts) == 2:
		return Address{Street: parts[0], PostalCode: parts[1], City: UnknownCity}
	default:
		return Address{Street: strings.TrimSpace(text), PostalCode: UnknownPostalCode, City: UnknownCity}
	}
}

// ParseStreet splits "Wolfgatan 12B" into {"Wolfgatan", 12}. The first run
// of digits preceded by whitespace ends the name; anything after it is
// ignored. Without such a run the whole input is the name and the number is 0.
func ParseStreet(street string) Street {
	m := streetPattern.FindStringSubmatch(street)
	if m == nil {
		return Street{Name: street}
	}
	return Street{Name: strings.TrimSpace(m[1]), Number: parseNumber(m[2])}
}

// parseNumber saturates instead of failing on digit runs that overflow int.
func parseNumber(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
