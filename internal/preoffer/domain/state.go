// Package domain holds the pre-offer form state, its reducers and the quote
// cache rules. Everything here is pure; persistence and pricing live in the
// repository and service packages.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Price is a quote returned by the rate service.
type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Snapshot is the form as it was when a quote was requested. Unset numeric
// fields are recorded as 0.
type Snapshot struct {
	FirstName               string  `json:"firstName"`
	LastName                string  `json:"lastName"`
	Email                   string  `json:"email"`
	PhoneNumber             string  `json:"phoneNumber"`
	AddressFrom             string  `json:"addressFrom"`
	AddressTo               string  `json:"addressTo"`
	LivingAreaInM2          float64 `json:"livingAreaInM2"`
	ExtraAreaInM2           float64 `json:"extraAreaInM2"`
	NumbersOfPianos         float64 `json:"numbersOfPianos"`
	PackingAssistanceNeeded bool    `json:"packingAssistanceNeeded"`
}

// State is the live pre-offer form plus its quote cache.
//
// EstimatedPrice and LastSubmitted are either both nil (no cached quote) or
// both set; only SetEstimatedPrice, ClearEstimatedPrice and Reset touch them.
type State struct {
	FirstName               string   `json:"firstName"`
	LastName                string   `json:"lastName"`
	Email                   string   `json:"email"`
	PhoneNumber             string   `json:"phoneNumber"`
	AddressFrom             string   `json:"addressFrom"`
	AddressTo               string   `json:"addressTo"`
	LivingAreaInM2          *float64 `json:"livingAreaInM2"`
	ExtraAreaInM2           *float64 `json:"extraAreaInM2"`
	NumbersOfPianos         *float64 `json:"numbersOfPianos"`
	PackingAssistanceNeeded bool     `json:"packingAssistanceNeeded"`

	EstimatedPrice *Price    `json:"estimatedPrice"`
	LastSubmitted  *Snapshot `json:"lastSubmittedData"`
}

// Session is a stored pre-offer form. OfferSubmittedAt is set once the
// visitor has sent the priced offer and cleared when the form is reset.
type Session struct {
	ID               uuid.UUID  `json:"id"`
	State            State      `json:"state"`
	OfferSubmittedAt *time.Time `json:"offerSubmittedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ContactInfo is the contact part of the form.
type ContactInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Addresses is the address part of the form.
type Addresses struct {
	AddressFrom string `json:"addressFrom"`
	AddressTo   string `json:"addressTo"`
}

// MovingDetails is the volume part of the form.
type MovingDetails struct {
	LivingAreaInM2          *float64 `json:"livingAreaInM2"`
	ExtraAreaInM2           *float64 `json:"extraAreaInM2"`
	NumbersOfPianos         *float64 `json:"numbersOfPianos"`
	PackingAssistanceNeeded bool     `json:"packingAssistanceNeeded"`
}

// RateParams are the form values the rate service prices on.
type RateParams struct {
	LivingAreaInM2  *float64 `json:"livingAreaInM2"`
	ExtraAreaInM2   *float64 `json:"extraAreaInM2"`
	NumbersOfPianos *float64 `json:"numbersOfPianos"`
}

// ContactInfo returns the contact fields.
func (s State) ContactInfo() ContactInfo {
	return ContactInfo{
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
	}
}

// Addresses returns the address fields.
func (s State) Addresses() Addresses {
	return Addresses{AddressFrom: s.AddressFrom, AddressTo: s.AddressTo}
}

// MovingDetails returns the volume fields.
func (s State) MovingDetails() MovingDetails {
	return MovingDetails{
		LivingAreaInM2:          copyNumber(s.LivingAreaInM2),
		ExtraAreaInM2:           copyNumber(s.ExtraAreaInM2),
		NumbersOfPianos:         copyNumber(s.NumbersOfPianos),
		PackingAssistanceNeeded: s.PackingAssistanceNeeded,
	}
}

// RateParams returns the numeric fields used for pricing.
func (s State) RateParams() RateParams {
	return RateParams{
		LivingAreaInM2:  copyNumber(s.LivingAreaInM2),
		ExtraAreaInM2:   copyNumber(s.ExtraAreaInM2),
		NumbersOfPianos: copyNumber(s.NumbersOfPianos),
	}
}

// IsFormValid reports whether the form can be submitted: every text field is
// non-blank and the living area is set and positive.
func (s State) IsFormValid() bool {
	return len(s.MissingFields()) == 0
}

// MissingFields lists the fields that keep the form from being valid.
func (s State) MissingFields() []Field {
	var missing []Field
	for _, f := range Fields() {
		if fieldKinds[f] != kindText {
			continue
		}
		if strings.TrimSpace(*s.textField(f)) == "" {
			missing = append(missing, f)
		}
	}
	if s.LivingAreaInM2 == nil || *s.LivingAreaInM2 <= 0 {
		missing = append(missing, FieldLivingArea)
	}
	return missing
}

// CachedPrice returns the cached quote, or nil.
func (s State) CachedPrice() *Price {
	if s.EstimatedPrice == nil {
		return nil
	}
	p := *s.EstimatedPrice
	return &p
}

// LastSubmittedSnapshot returns the snapshot the cached quote was priced on, or nil.
func (s State) LastSubmittedSnapshot() *Snapshot {
	if s.LastSubmitted == nil {
		return nil
	}
	snap := *s.LastSubmitted
	return &snap
}

// Snapshot captures the live form with unset numerics as 0.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		FirstName:               s.FirstName,
		LastName:                s.LastName,
		Email:                   s.Email,
		PhoneNumber:             s.PhoneNumber,
		AddressFrom:             s.AddressFrom,
		AddressTo:               s.AddressTo,
		LivingAreaInM2:          numberOrZero(s.LivingAreaInM2),
		ExtraAreaInM2:           numberOrZero(s.ExtraAreaInM2),
		NumbersOfPianos:         numberOrZero(s.NumbersOfPianos),
		PackingAssistanceNeeded: s.PackingAssistanceNeeded,
	}
}

// IsUnchanged reports whether the live form equals the last submitted
// snapshot. Without a snapshot it is false.
func (s State) IsUnchanged() bool {
	if s.LastSubmitted == nil {
		return false
	}
	return s.Snapshot() == *s.LastSubmitted
}

// CanReuseQuote reports whether a submit can be answered from the cache
// without calling the rate service.
func (s State) CanReuseQuote() bool {
	return s.EstimatedPrice != nil && s.IsUnchanged()
}

func numberOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func copyNumber(v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
