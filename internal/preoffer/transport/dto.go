package transport

import (
	"time"

	"moving_quote_backend/internal/address"
	"moving_quote_backend/internal/preoffer/domain"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// UpdateFieldRequest sets one form field by name.
type UpdateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

// PatchRequest updates any subset of the form fields.
type PatchRequest struct {
	FirstName               OptionalString `json:"firstName"`
	LastName                OptionalString `json:"lastName"`
	Email                   OptionalString `json:"email"`
	PhoneNumber             OptionalString `json:"phoneNumber"`
	AddressFrom             OptionalString `json:"addressFrom"`
	AddressTo               OptionalString `json:"addressTo"`
	LivingAreaInM2          OptionalNumber `json:"livingAreaInM2"`
	ExtraAreaInM2           OptionalNumber `json:"extraAreaInM2"`
	NumbersOfPianos         OptionalNumber `json:"numbersOfPianos"`
	PackingAssistanceNeeded OptionalBool   `json:"packingAssistanceNeeded"`
}

// ToPatch converts the request, passing every text value through clean.
func (r PatchRequest) ToPatch(clean func(string) string) domain.Patch {
	return domain.Patch{
		FirstName:               r.FirstName.toDomain(clean),
		LastName:                r.LastName.toDomain(clean),
		Email:                   r.Email.toDomain(clean),
		PhoneNumber:             r.PhoneNumber.toDomain(clean),
		AddressFrom:             r.AddressFrom.toDomain(clean),
		AddressTo:               r.AddressTo.toDomain(clean),
		LivingAreaInM2:          r.LivingAreaInM2.toDomain(),
		ExtraAreaInM2:           r.ExtraAreaInM2.toDomain(),
		NumbersOfPianos:         r.NumbersOfPianos.toDomain(),
		PackingAssistanceNeeded: r.PackingAssistanceNeeded.toDomain(),
	}
}

// ContactInfoRequest replaces the contact step of the form.
type ContactInfoRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,max=254,formemail"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=32,phone"`
}

// AddressesRequest replaces the address step of the form.
type AddressesRequest struct {
	AddressFrom string `json:"addressFrom" validate:"required,max=300"`
	AddressTo   string `json:"addressTo" validate:"required,max=300"`
}

// MovingDetailsRequest replaces the volume step of the form.
type MovingDetailsRequest struct {
	LivingAreaInM2          *float64 `json:"livingAreaInM2" validate:"omitempty,gt=0,lte=100000"`
	ExtraAreaInM2           *float64 `json:"extraAreaInM2" validate:"omitempty,gte=0,lte=100000"`
	NumbersOfPianos         *float64 `json:"numbersOfPianos" validate:"omitempty,gte=0,lte=100"`
	PackingAssistanceNeeded bool     `json:"packingAssistanceNeeded"`
}

// DistanceQuery estimates between two free-text addresses.
type DistanceQuery struct {
	From string `form:"from" validate:"required,max=300"`
	To   string `form:"to" validate:"required,max=300"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// PriceResponse is a quote with its display parts.
type PriceResponse struct {
	Value     float64 `json:"value"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
	Prefix    string  `json:"prefix"`
	Suffix    string  `json:"suffix"`
}

// PreOfferResponse is the full view of a session.
type PreOfferResponse struct {
	ID                uuid.UUID            `json:"id"`
	Form              FormResponse         `json:"form"`
	ContactInfo       domain.ContactInfo   `json:"contactInfo"`
	Addresses         domain.Addresses     `json:"addresses"`
	MovingDetails     domain.MovingDetails `json:"movingDetails"`
	RateParams        domain.RateParams    `json:"rateParams"`
	IsFormValid       bool                 `json:"isFormValid"`
	MissingFields     []domain.Field       `json:"missingFields"`
	IsUnchanged       bool                 `json:"isFormDataUnchanged"`
	EstimatedPrice    *PriceResponse       `json:"estimatedPrice"`
	LastSubmittedData *domain.Snapshot     `json:"lastSubmittedData"`
	OfferSubmittedAt  *time.Time           `json:"offerSubmittedAt,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// FormResponse mirrors the editable fields.
type FormResponse struct {
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
}

// SubmitQuoteResponse is the outcome of a price request.
type SubmitQuoteResponse struct {
	Price    PriceResponse    `json:"price"`
	Reused   bool             `json:"reused"`
	Distance DistanceResponse `json:"distance"`
	PreOffer PreOfferResponse `json:"preOffer"`
}

// DistanceResponse explains a distance estimate.
type DistanceResponse struct {
	From   address.Address `json:"from"`
	To     address.Address `json:"to"`
	Km     float64         `json:"km"`
	Rule   string          `json:"rule"`
	Capped bool            `json:"capped"`
}

// ConfirmationResponse is what the visitor reviews before sending the offer.
type ConfirmationResponse struct {
	ID                      uuid.UUID        `json:"id"`
	FirstName               string           `json:"firstName"`
	LastName                string           `json:"lastName"`
	Email                   string           `json:"email"`
	PhoneNumber             string           `json:"phoneNumber"`
	AddressFrom             string           `json:"addressFrom"`
	AddressTo               string           `json:"addressTo"`
	Distance                DistanceResponse `json:"distance"`
	LivingAreaInM2          float64          `json:"livingAreaInM2"`
	ExtraAreaInM2           float64          `json:"extraAreaInM2"`
	NumbersOfPianos         float64          `json:"numbersOfPianos"`
	PackingAssistanceNeeded bool             `json:"packingAssistanceNeeded"`
	Price                   PriceResponse    `json:"price"`
	IsFormDataUnchanged     bool             `json:"isFormDataUnchanged"`
	OfferSubmitted          bool             `json:"offerSubmitted"`
}

// OfferResponse acknowledges a submitted offer request.
type OfferResponse struct {
	ID          uuid.UUID     `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	Price       PriceResponse `json:"price"`
	SubmittedAt time.Time     `json:"submittedAt"`
	Message     string        `json:"message"`
}
