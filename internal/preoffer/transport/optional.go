package transport

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"moving_quote_backend/internal/preoffer/domain"
)

// OptionalString records whether the key was present in the body.
type OptionalString struct {
	Value string
	Set   bool
}

func (o OptionalString) IsZero() bool {
	return !o.Set
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return fmt.Errorf("expected string, got null")
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalString) toDomain(clean func(string) string) domain.Optional[string] {
	if !o.Set {
		return domain.Optional[string]{}
	}
	return domain.Some(clean(o.Value))
}

// OptionalNumber is a nullable number that also accepts numeric strings, as
// sent by HTML number inputs. null and "" clear the field.
type OptionalNumber struct {
	Value *float64
	Set   bool
}

func (o OptionalNumber) IsZero() bool {
	return !o.Set
}

func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			o.Value = nil
			return nil
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return fmt.Errorf("expected number, got %q", raw)
		}
		o.Value = &parsed
		return nil
	}

	var parsed float64
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	o.Value = &parsed
	return nil
}

func (o OptionalNumber) toDomain() domain.Optional[*float64] {
	if !o.Set {
		return domain.Optional[*float64]{}
	}
	return domain.Some(o.Value)
}

// OptionalBool records whether the key was present in the body.
type OptionalBool struct {
	Value bool
	Set   bool
}

func (o OptionalBool) IsZero() bool {
	return !o.Set
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return fmt.Errorf("expected boolean, got null")
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalBool) toDomain() domain.Optional[bool] {
	if !o.Set {
		return domain.Optional[bool]{}
	}
	return domain.Some(o.Value)
}
