package validator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.False(t, IsValidEmail("alice@example"))
	assert.False(t, IsValidEmail("alice example@x.se"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+46 70-987 65 43"))
	assert.True(t, IsValidPhoneNumber("(08) 123 4567"))
	assert.False(t, IsValidPhoneNumber("123456"))
	assert.False(t, IsValidPhoneNumber("1234567890123456"))
	assert.False(t, IsValidPhoneNumber("070 123 45 6a"))
}

func TestIsValidNumber(t *testing.T) {
	v, nan := 10.0, math.NaN()
	assert.True(t, IsValidNumber(&v, 0))
	assert.False(t, IsValidNumber(&v, 11))
	assert.False(t, IsValidNumber(&nan, 0))
	assert.False(t, IsValidNumber(nil, 0))
}

func TestStructUsesFormTags(t *testing.T) {
	type contact struct {
		Email       string `validate:"required,formemail"`
		PhoneNumber string `validate:"required,phone"`
	}

	val := New()
	require.NoError(t, val.Struct(contact{Email: "a@b.se", PhoneNumber: "0701234567"}))

	err := val.Struct(contact{Email: "nope", PhoneNumber: "12"})
	require.Error(t, err)
	assert.Equal(t, []string{"email: formemail", "phoneNumber: phone"}, FieldErrors(err))
	assert.Nil(t, FieldErrors(assert.AnError))
}
