// Package distance estimates the travel distance between two addresses
// without geocoding. Estimates are deterministic: the same pair of addresses
// always yields the same number of kilometres.
package distance

import (
	"math"
	"slices"
	"strings"
	"unicode/utf16"

	"moving_quote_backend/internal/address"
)

// MaxKm caps every estimate.
const MaxKm = 1000.0

const (
	kmPerHouseNumber  = 0.01
	maxSamePostalKm   = 2.0
	maxIntercityKm    = 500.0
	nonDigitPenalty   = 9
	hashMultiplier    = 31
	twoPow32          = int64(1) << 32
	twoPow31          = int64(1) << 31
	hashNormalization = float64(twoPow31)
)

// Rule names the branch that produced an estimate.
type Rule string

const (
	RuleIdentical      Rule = "identical"
	RuleSameStreet     Rule = "same_street"
	RuleSamePostalCode Rule = "same_postal_code"
	RuleSameCity       Rule = "same_city"
	RuleIntercity      Rule = "intercity"
)

// Estimate is a distance together with the rule that produced it.
type Estimate struct {
	Km     float64 `json:"km"`
	Rule   Rule    `json:"rule"`
	Capped bool    `json:"capped"`
}

// Between returns the estimated distance in kilometres, in [0, MaxKm].
func Between(from, to address.Address) float64 {
	return Explain(from, to).Km
}

// BetweenText parses both free-text addresses and estimates between them.
func BetweenText(from, to string) float64 {
	return Between(address.ParseFull(from), address.ParseFull(to))
}

// Explain estimates like Between and reports which rule applied.
//
// Streets and cities compare case-insensitively after trimming; postal codes
// compare after trimming only.
func Explain(from, to address.Address) Estimate {
	fromStreet := strings.ToLower(strings.TrimSpace(from.Street))
	toStreet := strings.ToLower(strings.TrimSpace(to.Street))
	fromCity := strings.ToLower(strings.TrimSpace(from.City))
	toCity := strings.ToLower(strings.TrimSpace(to.City))
	fromPostal := strings.TrimSpace(from.PostalCode)
	toPostal := strings.TrimSpace(to.PostalCode)

	if fromStreet == toStreet && fromPostal == toPostal && fromCity == toCity {
		return Estimate{Km: 0, Rule: RuleIdentical}
	}

	var (
		km   float64
		rule Rule
	)
	switch {
	case fromCity == toCity && fromPostal == toPostal:
		a, b := address.ParseStreet(fromStreet), address.ParseStreet(toStreet)
		if a.Name == b.Name {
			rule = RuleSameStreet
			km = math.Abs(float64(a.Number)-float64(b.Number)) * kmPerHouseNumber
		} else {
			rule = RuleSamePostalCode
			km = hashKm(fromStreet, toStreet, fromPostal, maxSamePostalKm)
		}
	case fromCity == toCity:
		rule = RuleSameCity
		km = postalKm(fromPostal, toPostal)
	default:
		rule = RuleIntercity
		km = hashKm(fromCity, toCity, fromPostal+toPostal, maxIntercityKm) + postalKm(fromPostal, toPostal)
	}

	if km > MaxKm {
		return Estimate{Km: MaxKm, Rule: rule, Capped: true}
	}
	return Estimate{Km: km, Rule: rule}
}

// postalKm compares two postal codes position by position from the right.
// The shorter code is left-padded with zeros. A differing position adds the
// digit difference times its weight: 1 for the last position, then 10, 50,
// and 100 for every earlier one. A differing position holding a non-digit
// adds a flat 9 times the weight.
func postalKm(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	n := max(len(ra), len(rb))
	ra, rb = padLeft(ra, n), padLeft(rb, n)

	var km float64
	for i := 0; i < n; i++ {
		pos := n - 1 - i
		ca, cb := ra[pos], rb[pos]
		if ca == cb {
			continue
		}
		units := nonDigitPenalty
		if isDigit(ca) && isDigit(cb) {
			units = abs(int(ca-'0') - int(cb-'0'))
		}
		km += float64(units) * positionWeight(i)
	}
	return km
}

func positionWeight(fromRight int) float64 {
	switch fromRight {
	case 0:
		return 1
	case 1:
		return 10
	case 2:
		return 50
	default:
		return 100
	}
}

// hashKm maps an unordered pair of strings plus a salt onto [0, maxKm].
// The pair is sorted before hashing so hashKm(a, b) == hashKm(b, a).
func hashKm(a, b, salt string, maxKm float64) float64 {
	if compareUTF16(a, b) > 0 {
		a, b = b, a
	}
	h := hash32(a + "|" + b + salt)
	return math.Abs(float64(h)) / hashNormalization * maxKm
}

// hash32 is the classic h = h*31 + c string hash over UTF-16 code units,
// wrapped to a signed 32-bit value after every step.
func hash32(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		h = wrapInt32(h*hashMultiplier + int64(c))
	}
	return h
}

// compareUTF16 orders strings by UTF-16 code units, which differs from byte
// order only for characters outside the Basic Multilingual Plane.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

func wrapInt32(v int64) int64 {
	v %= twoPow32
	if v < 0 {
		v += twoPow32
	}
	if v >= twoPow31 {
		v -= twoPow32
	}
	return v
}

func padLeft(r []rune, n int) []rune {
	if len(r) >= n {
		return r
	}
	out := make([]rune, n)
	pad := n - len(r)
	for i := 0; i < pad; i++ {
		out[i] = '0'
	}
	copy(out[pad:], r)
	return out
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
