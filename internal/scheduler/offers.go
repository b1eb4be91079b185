package scheduler

import (
	"context"
	"fmt"

	"moving_quote_backend/internal/currency"
	"moving_quote_backend/internal/email"
	"moving_quote_backend/platform/logger"
	"moving_quote_backend/platform/phone"
)

// OfferHandler turns a submitted offer into the visitor's confirmation e-mail.
type OfferHandler struct {
	sender email.Sender
	region string
	log    *logger.Logger
}

func NewOfferHandler(sender email.Sender, phoneRegion string, log *logger.Logger) *OfferHandler {
	return &OfferHandler{sender: sender, region: phoneRegion, log: log}
}

func (h *OfferHandler) Handle(ctx context.Context, payload OfferSubmittedPayload) error {
	if payload.Email == "" {
		return fmt.Errorf("offer %s has no email", payload.SessionID)
	}

	if !phone.IsDialable(payload.PhoneNumber, h.region) {
		h.log.Warn("phone number not dialable, sending as entered", "session_id", payload.SessionID)
	}

	err := h.sender.SendOfferConfirmation(ctx, email.OfferConfirmation{
		ToEmail:        payload.Email,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		PhoneNumber:    phone.NormalizeE164(payload.PhoneNumber, h.region),
		AddressFrom:    payload.AddressFrom,
		AddressTo:      payload.AddressTo,
		DistanceKm:     payload.DistanceKm,
		LivingAreaInM2: payload.LivingAreaInM2,
		ExtraAreaInM2:  payload.ExtraAreaInM2,
		Pianos:         payload.NumbersOfPianos,
		Packing:        payload.Packing,
		FormattedPrice: currency.FormatPrice(payload.PriceValue, payload.PriceCurrency),
	})
	if err != nil {
		return fmt.Errorf("send offer confirmation: %w", err)
	}

	h.log.Info("offer confirmation sent", "session_id", payload.SessionID)
	return nil
}

// InlineNotifier runs the handler in the caller's goroutine. Used when no
// queue is configured.
type InlineNotifier struct {
	handler *OfferHandler
}

func NewInlineNotifier(handler *OfferHandler) *InlineNotifier {
	return &InlineNotifier{handler: handler}
}

func (n *InlineNotifier) NotifyOfferSubmitted(ctx context.Context, payload OfferSubmittedPayload) error {
	return n.handler.Handle(ctx, payload)
}
