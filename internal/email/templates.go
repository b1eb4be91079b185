package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type offerConfirmationEmailData struct {
	baseEmailData
	Name           string
	PhoneNumber    string
	AddressFrom    string
	AddressTo      string
	Distance       string
	LivingArea     string
	ExtraArea      string
	Pianos         string
	Packing        string
	FormattedPrice string
}

func newOfferConfirmationData(offer OfferConfirmation) offerConfirmationEmailData {
	packing := "No"
	if offer.Packing {
		packing = "Yes"
	}
	return offerConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:      "Moving request received",
			Heading:    "Thank you for your request",
			Subheading: "We will contact you shortly to confirm the details of your move.",
		},
		Name:           offer.FirstName + " " + offer.LastName,
		PhoneNumber:    offer.PhoneNumber,
		AddressFrom:    offer.AddressFrom,
		AddressTo:      offer.AddressTo,
		Distance:       strconv.FormatFloat(offer.DistanceKm, 'f', 2, 64) + " km",
		LivingArea:     strconv.FormatFloat(offer.LivingAreaInM2, 'f', -1, 64) + " m²",
		ExtraArea:      strconv.FormatFloat(offer.ExtraAreaInM2, 'f', -1, 64) + " m²",
		Pianos:         strconv.FormatFloat(offer.Pianos, 'f', -1, 64),
		Packing:        packing,
		FormattedPrice: offer.FormattedPrice,
	}
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
