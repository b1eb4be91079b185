// Package email sends the offer confirmation e-mail to the visitor.
package email

import (
	"context"
)

// OfferConfirmation is the content of the confirmation e-mail.
type OfferConfirmation struct {
	ToEmail        string
	FirstName      string
	LastName       string
	PhoneNumber    string
	AddressFrom    string
	AddressTo      string
	DistanceKm     float64
	LivingAreaInM2 float64
	ExtraAreaInM2  float64
	Pianos         float64
	Packing        bool
	FormattedPrice string
}

// Sender delivers transactional e-mail.
type Sender interface {
	SendOfferConfirmation(ctx context.Context, offer OfferConfirmation) error
}

// NoopSender drops every message. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendOfferConfirmation(ctx context.Context, offer OfferConfirmation) error {
	return nil
}
