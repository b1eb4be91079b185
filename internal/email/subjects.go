package email

const (
	subjectOfferConfirmation = "We received your moving request"
)
