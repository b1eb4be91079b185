package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field names a form field by its wire name.
type Field string

const (
	FieldFirstName         Field = "firstName"
	FieldLastName          Field = "lastName"
	FieldEmail             Field = "email"
	FieldPhoneNumber       Field = "phoneNumber"
	FieldAddressFrom       Field = "addressFrom"
	FieldAddressTo         Field = "addressTo"
	FieldLivingArea        Field = "livingAreaInM2"
	FieldExtraArea         Field = "extraAreaInM2"
	FieldNumbersOfPianos   Field = "numbersOfPianos"
	FieldPackingAssistance Field = "packingAssistanceNeeded"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindBool
)

// fieldKinds is the closed set of editable fields. The quote cache is not in
// it, so it can never be written through a field update.
var fieldKinds = map[Field]fieldKind{
	FieldFirstName:         kindText,
	FieldLastName:          kindText,
	FieldEmail:             kindText,
	FieldPhoneNumber:       kindText,
	FieldAddressFrom:       kindText,
	FieldAddressTo:         kindText,
	FieldLivingArea:        kindNumber,
	FieldExtraArea:         kindNumber,
	FieldNumbersOfPianos:   kindNumber,
	FieldPackingAssistance: kindBool,
}

// maxTextLen bounds each text field in characters.
var maxTextLen = map[Field]int{
	FieldFirstName:   100,
	FieldLastName:    100,
	FieldEmail:       254,
	FieldPhoneNumber: 32,
	FieldAddressFrom: 300,
	FieldAddressTo:   300,
}

var (
	// ErrUnknownField is returned for field names outside the form.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when a value does not fit the field's type.
	ErrInvalidValue = errors.New("invalid value")
)

// Fields returns every editable field in form order.
func Fields() []Field {
	return []Field{
		FieldFirstName, FieldLastName, FieldEmail, FieldPhoneNumber,
		FieldAddressFrom, FieldAddressTo,
		FieldLivingArea, FieldExtraArea, FieldNumbersOfPianos, FieldPackingAssistance,
	}
}

// ParseField validates a wire field name.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if _, ok := fieldKinds[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// IsNumeric reports whether f holds a nullable number.
func (f Field) IsNumeric() bool {
	return fieldKinds[f] == kindNumber
}

// UpdateField sets a single field. Text fields take a string, the packing
// flag takes a bool, and numeric fields take a number, a numeric string, or
// nil/"" to unset. The state is left untouched on error.
func (s *State) UpdateField(field Field, value any) error {
	kind, ok := fieldKinds[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}

	switch kind {
	case kindText:
		text, ok := value.(string)
		if !ok {
			return invalid(field, "expected string")
		}
		if err := checkText(field, text); err != nil {
			return err
		}
		*s.textField(field) = text
	case kindNumber:
		n, err := toNumber(value)
		if err != nil {
			return invalid(field, err.Error())
		}
		if err := checkNumber(field, n); err != nil {
			return err
		}
		*s.numberField(field) = n
	case kindBool:
		b, ok := value.(bool)
		if !ok {
			return invalid(field, "expected boolean")
		}
		s.PackingAssistanceNeeded = b
	}
	return nil
}

func (s *State) textField(f Field) *string {
	switch f {
	case FieldFirstName:
		return &s.FirstName
	case FieldLastName:
		return &s.LastName
	case FieldEmail:
		return &s.Email
	case FieldPhoneNumber:
		return &s.PhoneNumber
	case FieldAddressFrom:
		return &s.AddressFrom
	default:
		return &s.AddressTo
	}
}

func (s *State) numberField(f Field) **float64 {
	switch f {
	case FieldLivingArea:
		return &s.LivingAreaInM2
	case FieldExtraArea:
		return &s.ExtraAreaInM2
	default:
		return &s.NumbersOfPianos
	}
}

func checkText(field Field, text string) error {
	if limit := maxTextLen[field]; utf8.RuneCountInString(text) > limit {
		return invalid(field, fmt.Sprintf("at most %d characters", limit))
	}
	return nil
}

// checkNumber rejects negative sizes and counts. Zero stays allowed while
// typing; the living area must still be positive for a valid form.
func checkNumber(field Field, n *float64) error {
	if n != nil && *n < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func invalid(field Field, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrInvalidValue, field, reason)
}

// toNumber coerces the value of a numeric field. nil and blank strings unset it.
func toNumber(value any) (*float64, error) {
	var n float64
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, errors.New("expected number")
		}
		n = f
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, errors.New("expected number")
		}
		n = f
	default:
		return nil, errors.New("expected number or null")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, errors.New("expected finite number")
	}
	return &n, nil
}
