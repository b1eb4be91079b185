package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeE164(t *testing.T) {
	assert.Equal(t, "+46701234567", NormalizeE164("070-123 45 67", ""))
	assert.Equal(t, "+46701234567", NormalizeE164("+46 70 123 45 67", "nl"))
	assert.Equal(t, "+31612345678", NormalizeE164("06 12345678", "NL"))
	assert.Equal(t, "not a number", NormalizeE164("  not a number ", "SE"))
	assert.Equal(t, "", NormalizeE164("   ", "SE"))
}

func TestIsDialable(t *testing.T) {
	assert.True(t, IsDialable("0701234567", "SE"))
	assert.False(t, IsDialable("12", "SE"))
}
