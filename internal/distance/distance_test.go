package distance

import (
	"testing"

	"moving_quote_backend/internal/address"

	"github.com/stretchr/testify/assert"
)

func addr(street, postal, city string) address.Address {
	return address.Address{Street: street, PostalCode: postal, City: city}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to address.Address
		want     float64
	}{
		{
			name: "identical addresses",
			from: addr("Wolfgatan 1", "11021", "Stockholm"),
			to:   addr("Wolfgatan 1", "11021", "Stockholm"),
			want: 0,
		},
		{
			name: "identical after normalization",
			from: addr(" WOLFGATAN 1", "11021 ", "stockholm"),
			to:   addr("wolfgatan 1", "11021", " Stockholm "),
			want: 0,
		},
		{
			name: "one house number apart",
			from: addr("Wolfgatan 1", "11021", "Stockholm"),
			to:   addr("Wolfgatan 2", "11021", "Stockholm"),
			want: 0.01,
		},
		{
			name: "ten house numbers apart",
			from: addr("Wolfgatan 1", "11021", "Stockholm"),
			to:   addr("Wolfgatan 11", "11021", "Stockholm"),
			want: 0.1,
		},
		{
			name: "last postal digit differs",
			from: addr("Wolfgatan 1", "11021", "Stockholm"),
			to:   addr("Wolfgatan 1", "11022", "Stockholm"),
			want: 1,
		},
		{
			name: "second-to-last postal digit differs",
			from: addr("Wolfgatan 1", "11021", "Stockholm"),
			to:   addr("Wolfgatan 1", "11031", "Stockholm"),
			want: 10,
		},
		{
			name: "postal codes padded to equal length",
			from: addr("Storgatan 1", "123", "Lund"),
			to:   addr("Storgatan 1", "0124", "Lund"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Between(tt.from, tt.to))
		})
	}
}

func TestBetweenSamePostalCodeDifferentStreets(t *testing.T) {
	from := addr("Wolfgatan 1", "11021", "Stockholm")
	d1 := Between(from, addr("Birger Jarlsgatan 1", "11021", "Stockholm"))
	d2 := Between(from, addr("Drottninggatan 1", "11021", "Stockholm"))

	assert.NotEqual(t, d1, d2)
	assert.LessOrEqual(t, d1, 2.0)
	assert.LessOrEqual(t, d2, 2.0)
	assert.InDelta(t, 0.10791400820016861, d1, 1e-12)
	assert.InDelta(t, 0.531502129510045, d2, 1e-12)
}

func TestBetweenIntercity(t *testing.T) {
	d := Between(addr("Main Street 5", "12345", "City A"), addr("Oak Avenue 10", "54321", "City B"))
	assert.InDelta(t, 656.1326188277453, d, 1e-9)
	assert.Equal(t, d, Between(addr("Main Street 5", "12345", "City A"), addr("Oak Avenue 10", "54321", "City B")))
}

func TestBetweenIsCapped(t *testing.T) {
	est := Explain(addr("Street A", "00000", "City A"), addr("Street B", "99999", "City B"))
	assert.Equal(t, MaxKm, est.Km)
	assert.True(t, est.Capped)
	assert.Equal(t, RuleIntercity, est.Rule)
}

func TestExplainRules(t *testing.T) {
	base := addr("Wolfgatan 1", "11021", "Stockholm")
	assert.Equal(t, RuleIdentical, Explain(base, base).Rule)
	assert.Equal(t, RuleSameStreet, Explain(base, addr("Wolfgatan 9", "11021", "Stockholm")).Rule)
	assert.Equal(t, RuleSamePostalCode, Explain(base, addr("Kungsgatan 1", "11021", "Stockholm")).Rule)
	assert.Equal(t, RuleSameCity, Explain(base, addr("Wolfgatan 1", "11122", "Stockholm")).Rule)
	assert.Equal(t, RuleIntercity, Explain(base, addr("Wolfgatan 1", "11021", "Uppsala")).Rule)
}

func TestBetweenText(t *testing.T) {
	assert.Equal(t, 0.01, BetweenText("Wolfgatan 1, 11021, Stockholm", "Wolfgatan 2, 11021, Stockholm"))
	assert.Equal(t, 1.0, BetweenText("Wolfgatan 1, 11021, Stockholm", "Wolfgatan 1, 11022, Stockholm"))

	a, b := "Main Street 5, 12345, City A", "Oak Avenue 10, 54321, City B"
	assert.Equal(t, BetweenText(a, b), BetweenText(a, b))
}

func TestBetweenToleratesPartialInput(t *testing.T) {
	d := BetweenText("Wolfgatan", "")
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 2.0)
}

func TestPostalKm(t *testing.T) {
	assert.Equal(t, 0.0, postalKm("11021", "11021"))
	assert.Equal(t, 0.0, postalKm("123", "0123"))
	assert.Equal(t, 624.0, postalKm("12345", "54321"))
	assert.Equal(t, 2349.0, postalKm("00000", "99999"))
	assert.Equal(t, 50.0+100.0, postalKm("10000", "20100"))
}

func TestPostalKmNonDigits(t *testing.T) {
	assert.Equal(t, 9.0, postalKm("11021", "1102A"))
	assert.Equal(t, 10.0, postalKm("SW1A", "SW2A"))
	assert.Equal(t, 450.0, postalKm("SW1A", "SE1A"))
	assert.Equal(t, 0.0, postalKm("SW1A 1AA", "SW1A 1AA"))
}

func TestHashKm(t *testing.T) {
	t.Run("order independent", func(t *testing.T) {
		assert.Equal(t, hashKm("stockholm", "göteborg", "x", 500), hashKm("göteborg", "stockholm", "x", 500))
	})
	t.Run("bounded", func(t *testing.T) {
		for _, pair := range [][2]string{{"a", "b"}, {"city a", "city b"}, {"", ""}, {"ångström", "örebro"}} {
			km := hashKm(pair[0], pair[1], "11021", 2)
			assert.GreaterOrEqual(t, km, 0.0)
			assert.LessOrEqual(t, km, 2.0)
		}
	})
	t.Run("salt matters", func(t *testing.T) {
		assert.NotEqual(t, hashKm("a", "b", "1", 500), hashKm("a", "b", "2", 500))
	})
}

func TestHash32Wraps(t *testing.T) {
	assert.Equal(t, int64(0), hash32(""))
	assert.Equal(t, int64(97), hash32("a"))
	assert.Equal(t, int64(-115871784), hash32("birger jarlsgatan 1|wolfgatan 111021"))
	assert.Equal(t, int64(-2147483648), wrapInt32(1<<31))
	assert.Equal(t, int64(2147483647), wrapInt32(-(1<<31)-1))
}
