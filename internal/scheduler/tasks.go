package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TaskOfferSubmitted = "preoffer.offer_submitted"

// OfferSubmittedPayload carries everything the confirmation e-mail needs, so
// the worker never reads the session (which may have expired or been reset).
type OfferSubmittedPayload struct {
	SessionID       string  `json:"sessionId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phoneNumber"`
	AddressFrom     string  `json:"addressFrom"`
	AddressTo       string  `json:"addressTo"`
	DistanceKm      float64 `json:"distanceKm"`
	LivingAreaInM2  float64 `json:"livingAreaInM2"`
	ExtraAreaInM2   float64 `json:"extraAreaInM2"`
	NumbersOfPianos float64 `json:"numbersOfPianos"`
	Packing         bool    `json:"packingAssistanceNeeded"`
	PriceValue      float64 `json:"priceValue"`
	PriceCurrency   string  `json:"priceCurrency"`
	SubmittedAtUnix int64   `json:"submittedAt"`
}

func NewOfferSubmittedTask(payload OfferSubmittedPayload) (*asynq.Task, error) {
	if payload.SessionID == "" || payload.Email == "" {
		return nil, fmt.Errorf("offer task needs a session id and an email")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOfferSubmitted, data), nil
}

func ParseOfferSubmittedPayload(task *asynq.Task) (OfferSubmittedPayload, error) {
	var payload OfferSubmittedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OfferSubmittedPayload{}, err
	}
	return payload, nil
}

// offerTaskID makes a resubmitted offer for the same session and moment a no-op.
func offerTaskID(payload OfferSubmittedPayload) string {
	return fmt.Sprintf("offer:%s:%d", payload.SessionID, payload.SubmittedAtUnix)
}
