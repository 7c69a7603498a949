package repository

import (
	"context"

	"github.com/fastygo/focus/domain"
)

type JournalFilter struct {
	UserID string
	Limit  int
	Offset int
}

type JournalRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Journal, error)
	List(ctx context.Context, filter JournalFilter) ([]domain.Journal, error)
	Create(ctx context.Context, journal *domain.Journal) (*domain.Journal, error)
	Update(ctx context.Context, journal *domain.Journal) error
	Delete(ctx context.Context, userID, id string) error
}
