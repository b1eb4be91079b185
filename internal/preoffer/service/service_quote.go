package service

import (
	"context"
	"encoding/json"
	"strings"

	"moving_quote_backend/internal/address"
	"moving_quote_backend/internal/distance"
	"moving_quote_backend/internal/preoffer/domain"
	"moving_quote_backend/internal/preoffer/transport"
	"moving_quote_backend/internal/rate"
	"moving_quote_backend/internal/scheduler"
	"moving_quote_backend/platform/apperr"
	"moving_quote_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	msgPricingFailed    = "could not calculate the price, please try again"
	msgNoQuote          = "no price has been calculated for this move yet"
	msgOfferAlreadySent = "this offer has already been submitted"
	msgFormIncomplete   = "the form is incomplete"
	msgOfferReceived    = "Thank you! We will contact you shortly."
)

type pricedSession struct {
	session domain.Session
	price   domain.Price
}

// Submit answers a price request. An unchanged form with a cached quote is
// answered from the cache without calling the rate service. Otherwise the
// rate service is called once per session and form content, however many
// requests arrive concurrently, and the quote is cached together with the
// form snapshot it was priced on. A failed call leaves the cache untouched.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*transport.SubmitQuoteResponse, error) {
	ctx = withSession(ctx, id)
	log := s.log.WithContext(ctx)

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateForSubmit(session.State); err != nil {
		return nil, err
	}

	snapshot := session.State.Snapshot()
	estimate := estimateBetween(snapshot.AddressFrom, snapshot.AddressTo)

	if session.State.CanReuseQuote() {
		price := *session.State.CachedPrice()
		log.QuoteReused(id.String(), price.Value, price.Currency)
		return &transport.SubmitQuoteResponse{
			Price:    toPriceResponse(price),
			Reused:   true,
			Distance: estimate,
			PreOffer: *toPreOfferResponse(session),
		}, nil
	}

	key, err := flightKey(id, snapshot)
	if err != nil {
		return nil, apperr.Internal("could not prepare price request", err)
	}
	// Detached so one caller going away does not fail the others sharing the call.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.price(flightCtx, id, snapshot, estimate.Km)
	})
	if err != nil {
		return nil, err
	}
	priced := v.(pricedSession)

	return &transport.SubmitQuoteResponse{
		Price:    toPriceResponse(priced.price),
		Reused:   false,
		Distance: estimate,
		PreOffer: *toPreOfferResponse(priced.session),
	}, nil
}

func (s *Service) price(ctx context.Context, id uuid.UUID, snapshot domain.Snapshot, km float64) (pricedSession, error) {
	log := s.log.WithContext(ctx)

	quote, err := s.rates.GetRate(ctx, rate.Params{
		DistanceInKm:    km,
		LivingAreaInM2:  snapshot.LivingAreaInM2,
		ExtraAreaInM2:   &snapshot.ExtraAreaInM2,
		NumbersOfPianos: &snapshot.NumbersOfPianos,
	})
	if err != nil {
		log.PricingFailed(id.String(), km, err)
		return pricedSession{}, apperr.Upstream(msgPricingFailed, err)
	}

	price := domain.Price{Value: quote.Value, Currency: quote.Currency}
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.SetEstimatedPrice(price, snapshot)
		return nil
	})
	if err != nil {
		return pricedSession{}, err
	}

	log.QuotePriced(id.String(), km, price.Value, price.Currency)
	return pricedSession{session: session, price: price}, nil
}

func (s *Service) validateForSubmit(state domain.State) error {
	var details []string
	for _, f := range state.MissingFields() {
		details = append(details, string(f)+": required")
	}
	if validator.HasValue(state.Email) && !validator.IsValidEmail(strings.TrimSpace(state.Email)) {
		details = append(details, string(domain.FieldEmail)+": invalid format")
	}
	if validator.HasValue(state.PhoneNumber) && !validator.IsValidPhoneNumber(strings.TrimSpace(state.PhoneNumber)) {
		details = append(details, string(domain.FieldPhoneNumber)+": invalid format")
	}
	if state.ExtraAreaInM2 != nil && !validator.IsValidNumber(state.ExtraAreaInM2, 0) {
		details = append(details, string(domain.FieldExtraArea)+": must not be negative")
	}
	if state.NumbersOfPianos != nil && !validator.IsValidNumber(state.NumbersOfPianos, 0) {
		details = append(details, string(domain.FieldNumbersOfPianos)+": must not be negative")
	}
	if len(details) > 0 {
		return apperr.Validation(msgFormIncomplete).WithDetails(details)
	}
	return nil
}

func flightKey(id uuid.UUID, snapshot domain.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return id.String() + "|" + string(data), nil
}

// Confirmation returns the priced move for review.
func (s *Service) Confirmation(ctx context.Context, id uuid.UUID) (*transport.ConfirmationResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	price := session.State.CachedPrice()
	snapshot := session.State.LastSubmittedSnapshot()
	if price == nil || snapshot == nil {
		return nil, apperr.Conflict(msgNoQuote)
	}

	return &transport.ConfirmationResponse{
		ID:                      session.ID,
		FirstName:               snapshot.FirstName,
		LastName:                snapshot.LastName,
		Email:                   snapshot.Email,
		PhoneNumber:             snapshot.PhoneNumber,
		AddressFrom:             snapshot.AddressFrom,
		AddressTo:               snapshot.AddressTo,
		Distance:                estimateBetween(snapshot.AddressFrom, snapshot.AddressTo),
		LivingAreaInM2:          snapshot.LivingAreaInM2,
		ExtraAreaInM2:           snapshot.ExtraAreaInM2,
		NumbersOfPianos:         snapshot.NumbersOfPianos,
		PackingAssistanceNeeded: snapshot.PackingAssistanceNeeded,
		Price:                   toPriceResponse(*price),
		IsFormDataUnchanged:     session.State.IsUnchanged(),
		OfferSubmitted:          session.OfferSubmittedAt != nil,
	}, nil
}

// SubmitOffer sends the priced move for follow-up. It needs a cached quote
// and can only happen once until the form is reset.
func (s *Service) SubmitOffer(ctx context.Context, id uuid.UUID) (*transport.OfferResponse, error) {
	ctx = withSession(ctx, id)

	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		price := session.State.CachedPrice()
		snapshot := session.State.LastSubmittedSnapshot()
		if price == nil || snapshot == nil {
			return apperr.Conflict(msgNoQuote)
		}
		if session.OfferSubmittedAt != nil {
			return apperr.Conflict(msgOfferAlreadySent)
		}

		submittedAt := s.now().UTC()
		if s.notifier != nil {
			payload := offerPayload(session.ID, *snapshot, *price, submittedAt.Unix())
			if err := s.notifier.NotifyOfferSubmitted(ctx, payload); err != nil {
				return apperr.Internal("could not submit the offer, please try again", err)
			}
		}
		session.OfferSubmittedAt = &submittedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("offer submitted")

	snapshot := session.State.LastSubmittedSnapshot()
	return &transport.OfferResponse{
		ID:          session.ID,
		FirstName:   snapshot.FirstName,
		LastName:    snapshot.LastName,
		Email:       snapshot.Email,
		Price:       toPriceResponse(*session.State.CachedPrice()),
		SubmittedAt: *session.OfferSubmittedAt,
		Message:     msgOfferReceived,
	}, nil
}

func offerPayload(id uuid.UUID, snapshot domain.Snapshot, price domain.Price, submittedAt int64) scheduler.OfferSubmittedPayload {
	return scheduler.OfferSubmittedPayload{
		SessionID:       id.String(),
		FirstName:       snapshot.FirstName,
		LastName:        snapshot.LastName,
		Email:           strings.TrimSpace(snapshot.Email),
		PhoneNumber:     snapshot.PhoneNumber,
		AddressFrom:     snapshot.AddressFrom,
		AddressTo:       snapshot.AddressTo,
		DistanceKm:      distance.BetweenText(snapshot.AddressFrom, snapshot.AddressTo),
		LivingAreaInM2:  snapshot.LivingAreaInM2,
		ExtraAreaInM2:   snapshot.ExtraAreaInM2,
		NumbersOfPianos: snapshot.NumbersOfPianos,
		Packing:         snapshot.PackingAssistanceNeeded,
		PriceValue:      price.Value,
		PriceCurrency:   price.Currency,
		SubmittedAtUnix: submittedAt,
	}
}

// EstimateDistance explains the distance between two free-text addresses.
func (s *Service) EstimateDistance(req transport.DistanceQuery) transport.DistanceResponse {
	return estimateBetween(req.From, req.To)
}

func estimateBetween(fromText, toText string) transport.DistanceResponse {
	from, to := address.ParseFull(fromText), address.ParseFull(toText)
	est := distance.Explain(from, to)
	return transport.DistanceResponse{
		From:   from,
		To:     to,
		Km:     est.Km,
		Rule:   string(est.Rule),
		Capped: est.Capped,
	}
}
