package repository

import (
	"context"

	"github.com/fastygo/focus/domain"
)

// SessionRepository stores login sessions keyed by the token's sid claim.
// Save derives the record lifetime from session.ExpiresAt; Get returns
// domain.ErrSessionNotFound once the record is gone.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
