package service

import (
	"moving_quote_backend/internal/currency"
	"moving_quote_backend/internal/preoffer/domain"
	"moving_quote_backend/internal/preoffer/transport"
)

func toPriceResponse(p domain.Price) transport.PriceResponse {
	return transport.PriceResponse{
		Value:     p.Value,
		Currency:  p.Currency,
		Formatted: currency.FormatPrice(p.Value, p.Currency),
		Prefix:    currency.Prefix(p.Currency),
		Suffix:    currency.Suffix(p.Currency),
	}
}

func toPreOfferResponse(session domain.Session) *transport.PreOfferResponse {
	state := session.State

	var price *transport.PriceResponse
	if cached := state.CachedPrice(); cached != nil {
		p := toPriceResponse(*cached)
		price = &p
	}

	missing := state.MissingFields()
	if missing == nil {
		missing = []domain.Field{}
	}

	return &transport.PreOfferResponse{
		ID: session.ID,
		Form: transport.FormResponse{
			FirstName:               state.FirstName,
			LastName:                state.LastName,
			Email:                   state.Email,
			PhoneNumber:             state.PhoneNumber,
			AddressFrom:             state.AddressFrom,
			AddressTo:               state.AddressTo,
			LivingAreaInM2:          state.LivingAreaInM2,
			ExtraAreaInM2:           state.ExtraAreaInM2,
			NumbersOfPianos:         state.NumbersOfPianos,
			PackingAssistanceNeeded: state.PackingAssistanceNeeded,
		},
		ContactInfo:       state.ContactInfo(),
		Addresses:         state.Addresses(),
		MovingDetails:     state.MovingDetails(),
		RateParams:        state.RateParams(),
		IsFormValid:       len(missing) == 0,
		MissingFields:     missing,
		IsUnchanged:       state.IsUnchanged(),
		EstimatedPrice:    price,
		LastSubmittedData: state.LastSubmittedSnapshot(),
		OfferSubmittedAt:  session.OfferSubmittedAt,
		CreatedAt:         session.CreatedAt,
		UpdatedAt:         session.UpdatedAt,
	}
}
