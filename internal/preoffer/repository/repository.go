// Package repository stores pre-offer sessions.
package repository

import (
	"context"

	"moving_quote_backend/internal/preoffer/domain"
	"moving_quote_backend/platform/apperr"

	"github.com/google/uuid"
)

const sessionNotFoundMsg = "pre-offer not found"

// Repository persists sessions for the lifetime of a visitor's form.
// Get returns an apperr.KindNotFound error for unknown or expired sessions.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func notFound() error {
	return apperr.NotFound(sessionNotFoundMsg)
}
