package address

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFull(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Address
	}{
		{
			name:  "ok: complete address",
			input: "Wolfgatan 1, 11021, Stockholm",
			want:  Address{Street: "Wolfgatan 1", PostalCode: "11021", City: "Stockholm"},
		},
		{
			name:  "ok: extra spaces are trimmed",
			input: "  Wolfgatan 1  ,  11021  ,  Stockholm  ",
			want:  Address{Street: "Wolfgatan 1", PostalCode: "11021", City: "Stockholm"},
		},
		{
			name:  "ok: extra segments are ignored",
			input: "Wolfgatan 1, 11021, Stockholm, Sweden",
			want:  Address{Street: "Wolfgatan 1", PostalCode: "11021", City: "Stockholm"},
		},
		{
			name:  "partial: missing city",
			input: "Wolfgatan 1, 11021",
			want:  Address{Street: "Wolfgatan 1", PostalCode: "11021", City: UnknownCity},
		},
		{
			name:  "partial: street only",
			input: "  Wolfgatan 1 ",
			want:  Address{Street: "Wolfgatan 1", PostalCode: UnknownPostalCode, City: UnknownCity},
		},
		{
			name:  "partial: empty input",
			input: "",
			want:  Address{Street: "", PostalCode: UnknownPostalCode, City: UnknownCity},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFull(tt.input))
		})
	}
}

func TestParseStreet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Street
	}{
		{name: "ok: name and number", input: "Wolfgatan 1", want: Street{Name: "Wolfgatan", Number: 1}},
		{name: "ok: multi-word name", input: "Birger Jarlsgatan 42", want: Street{Name: "Birger Jarlsgatan", Number: 42}},
		{name: "ok: letter suffix ignored", input: "Main Street 42B", want: Street{Name: "Main Street", Number: 42}},
		{name: "ok: first number wins", input: "Storgatan 3 lgh 1101", want: Street{Name: "Storgatan", Number: 3}},
		{name: "no number", input: "Street A", want: Street{Name: "Street A", Number: 0}},
		{name: "number without name", input: "42", want: Street{Name: "42", Number: 0}},
		{name: "overflowing number saturates", input: "Long 99999999999999999999999", want: Street{Name: "Long", Number: math.MaxInt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStreet(tt.input))
		})
	}
}

func TestAddressString(t *testing.T) {
	a := ParseFull("Wolfgatan 1,11021,Stockholm")
	assert.Equal(t, "Wolfgatan 1, 11021, Stockholm", a.String())
	assert.Equal(t, a, ParseFull(a.String()))
}
