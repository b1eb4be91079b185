package domain

// Optional is a patch value that distinguishes "not sent" from a zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Patch is a partial update of form fields. Unset entries are left as they
// are; a set numeric entry with a nil Value unsets that field.
type Patch struct {
	FirstName               Optional[string]
	LastName                Optional[string]
	Email                   Optional[string]
	PhoneNumber             Optional[string]
	AddressFrom             Optional[string]
	AddressTo               Optional[string]
	LivingAreaInM2          Optional[*float64]
	ExtraAreaInM2           Optional[*float64]
	NumbersOfPianos         Optional[*float64]
	PackingAssistanceNeeded Optional[bool]
}

// New returns an empty form with no cached quote.
func New() State {
	return State{}
}

// Reset returns the form to its initial state and drops the cached quote.
func (s *State) Reset() {
	*s = New()
}

// Validate checks every set entry of p against the same bounds a single
// field update enforces.
func (p Patch) Validate() error {
	texts := []struct {
		field Field
		value Optional[string]
	}{
		{FieldFirstName, p.FirstName},
		{FieldLastName, p.LastName},
		{FieldEmail, p.Email},
		{FieldPhoneNumber, p.PhoneNumber},
		{FieldAddressFrom, p.AddressFrom},
		{FieldAddressTo, p.AddressTo},
	}
	for _, t := range texts {
		if !t.value.Set {
			continue
		}
		if err := checkText(t.field, t.value.Value); err != nil {
			return err
		}
	}

	numbers := []struct {
		field Field
		value Optional[*float64]
	}{
		{FieldLivingArea, p.LivingAreaInM2},
		{FieldExtraArea, p.ExtraAreaInM2},
		{FieldNumbersOfPianos, p.NumbersOfPianos},
	}
	for _, n := range numbers {
		if !n.value.Set {
			continue
		}
		if err := checkNumber(n.field, n.value.Value); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPatch merges every set entry of p into the form.
func (s *State) ApplyPatch(p Patch) {
	applyText(&s.FirstName, p.FirstName)
	applyText(&s.LastName, p.LastName)
	applyText(&s.Email, p.Email)
	applyText(&s.PhoneNumber, p.PhoneNumber)
	applyText(&s.AddressFrom, p.AddressFrom)
	applyText(&s.AddressTo, p.AddressTo)
	applyNumber(&s.LivingAreaInM2, p.LivingAreaInM2)
	applyNumber(&s.ExtraAreaInM2, p.ExtraAreaInM2)
	applyNumber(&s.NumbersOfPianos, p.NumbersOfPianos)
	if p.PackingAssistanceNeeded.Set {
		s.PackingAssistanceNeeded = p.PackingAssistanceNeeded.Value
	}
}

func applyText(dst *string, v Optional[string]) {
	if v.Set {
		*dst = v.Value
	}
}

func applyNumber(dst **float64, v Optional[*float64]) {
	if v.Set {
		*dst = copyNumber(v.Value)
	}
}

// SetContactInfo replaces the four contact fields.
func (s *State) SetContactInfo(c ContactInfo) {
	s.FirstName = c.FirstName
	s.LastName = c.LastName
	s.Email = c.Email
	s.PhoneNumber = c.PhoneNumber
}

// SetAddresses replaces both addresses.
func (s *State) SetAddresses(a Addresses) {
	s.AddressFrom = a.AddressFrom
	s.AddressTo = a.AddressTo
}

// SetMovingDetails replaces the volume fields.
func (s *State) SetMovingDetails(m MovingDetails) {
	s.LivingAreaInM2 = copyNumber(m.LivingAreaInM2)
	s.ExtraAreaInM2 = copyNumber(m.ExtraAreaInM2)
	s.NumbersOfPianos = copyNumber(m.NumbersOfPianos)
	s.PackingAssistanceNeeded = m.PackingAssistanceNeeded
}

// SetEstimatedPrice stores a quote together with the snapshot it was priced on.
func (s *State) SetEstimatedPrice(price Price, submitted Snapshot) {
	s.EstimatedPrice = &price
	s.LastSubmitted = &submitted
}

// ClearEstimatedPrice drops the cached quote.
func (s *State) ClearEstimatedPrice() {
	s.EstimatedPrice = nil
	s.LastSubmitted = nil
}
