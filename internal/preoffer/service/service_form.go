package service

import (
	"context"
	"errors"
	"fmt"

	"moving_quote_backend/internal/preoffer/domain"
	"moving_quote_backend/internal/preoffer/transport"
	"moving_quote_backend/platform/apperr"
	"moving_quote_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Create starts an empty pre-offer.
func (s *Service) Create(ctx context.Context) (*transport.PreOfferResponse, error) {
	now := s.now().UTC()
	session := domain.Session{
		ID:        uuid.New(),
		State:     domain.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("create pre-offer: %w", err)
	}
	s.log.WithContext(withSession(ctx, session.ID)).Info("pre-offer created")
	return toPreOfferResponse(session), nil
}

// Get returns the full view of a pre-offer.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.PreOfferResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// UpdateField sets one field by its wire name.
func (s *Service) UpdateField(ctx context.Context, id uuid.UUID, req transport.UpdateFieldRequest) (*transport.PreOfferResponse, error) {
	field, err := domain.ParseField(req.Field)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	value := req.Value
	if text, ok := value.(string); ok && !field.IsNumeric() {
		value = sanitize.Text(text)
	}

	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		if err := session.State.UpdateField(field, value); err != nil {
			if errors.Is(err, domain.ErrInvalidValue) || errors.Is(err, domain.ErrUnknownField) {
				return apperr.Validation(err.Error())
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// UpdateFields applies a partial update of several fields at once.
func (s *Service) UpdateFields(ctx context.Context, id uuid.UUID, req transport.PatchRequest) (*transport.PreOfferResponse, error) {
	patch := req.ToPatch(sanitize.Text)
	if err := patch.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.ApplyPatch(patch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// SetContactInfo replaces the contact step.
func (s *Service) SetContactInfo(ctx context.Context, id uuid.UUID, req transport.ContactInfoRequest) (*transport.PreOfferResponse, error) {
	info := domain.ContactInfo{
		FirstName:   sanitize.Text(req.FirstName),
		LastName:    sanitize.Text(req.LastName),
		Email:       sanitize.Text(req.Email),
		PhoneNumber: sanitize.Text(req.PhoneNumber),
	}
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.SetContactInfo(info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// SetAddresses replaces the address step.
func (s *Service) SetAddresses(ctx context.Context, id uuid.UUID, req transport.AddressesRequest) (*transport.PreOfferResponse, error) {
	addrs := domain.Addresses{
		AddressFrom: sanitize.Text(req.AddressFrom),
		AddressTo:   sanitize.Text(req.AddressTo),
	}
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.SetAddresses(addrs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// SetMovingDetails replaces the volume step.
func (s *Service) SetMovingDetails(ctx context.Context, id uuid.UUID, req transport.MovingDetailsRequest) (*transport.PreOfferResponse, error) {
	details := domain.MovingDetails{
		LivingAreaInM2:          req.LivingAreaInM2,
		ExtraAreaInM2:           req.ExtraAreaInM2,
		NumbersOfPianos:         req.NumbersOfPianos,
		PackingAssistanceNeeded: req.PackingAssistanceNeeded,
	}
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.SetMovingDetails(details)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// Reset empties the form, drops the cached quote and allows a new offer.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (*transport.PreOfferResponse, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.Reset()
		session.OfferSubmittedAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// ClearQuote drops the cached quote and keeps the form.
func (s *Service) ClearQuote(ctx context.Context, id uuid.UUID) (*transport.PreOfferResponse, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.State.ClearEstimatedPrice()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPreOfferResponse(session), nil
}

// Delete removes the session.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
