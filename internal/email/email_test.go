package email

import (
	"context"
	"testing"

	"moving_quote_backend/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffer() OfferConfirmation {
	return OfferConfirmation{
		ToEmail:        "alice@example.com",
		FirstName:      "Alice",
		LastName:       "Johnson",
		PhoneNumber:    "+46709876543",
		AddressFrom:    "Wolfgatan 1, 11021, Stockholm",
		AddressTo:      "Kungsgatan 5, 11143, Stockholm",
		DistanceKm:     41,
		LivingAreaInM2: 72.5,
		Pianos:         1,
		Packing:        true,
		FormattedPrice: "kr 12500 SEK",
	}
}

func TestRenderOfferConfirmation(t *testing.T) {
	html, err := renderEmailTemplate("offer_confirmation.html", newOfferConfirmationData(sampleOffer()))
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Alice Johnson")
	assert.Contains(t, html, "Wolfgatan 1, 11021, Stockholm")
	assert.Contains(t, html, "41.00 km")
	assert.Contains(t, html, "72.5 m²")
	assert.Contains(t, html, "kr 12500 SEK")
	assert.Contains(t, html, "We will contact you shortly")
}

func TestRenderEscapesUserInput(t *testing.T) {
	offer := sampleOffer()
	offer.FirstName = "<script>alert(1)</script>"

	html, err := renderEmailTemplate("offer_confirmation.html", newOfferConfirmationData(offer))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestNewSender(t *testing.T) {
	assert.IsType(t, NoopSender{}, NewSender(&config.Config{}))

	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, EmailFromAddress: "quotes@example.com"}
	assert.IsType(t, &SMTPSender{}, NewSender(cfg))
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, NoopSender{}.SendOfferConfirmation(context.Background(), sampleOffer()))
}

func TestBuildMessage(t *testing.T) {
	s := NewSMTPSender(&config.Config{
		SMTPHost:         "smtp.example.com",
		SMTPPort:         587,
		EmailFromName:    "MoveIt",
		EmailFromAddress: "quotes@example.com",
	})

	msg, err := s.buildMessage("alice@example.com", subjectOfferConfirmation, "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, []string{"<alice@example.com>"}, msg.GetToString())

	_, err = s.buildMessage("not an address", subjectOfferConfirmation, "<p>hi</p>")
	assert.Error(t, err)
}
