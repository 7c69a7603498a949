package journal

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/validate"
	"github.com/fastygo/focus/repository"
	"github.com/fastygo/focus/usecase"
)

type UseCase struct {
	journals repository.JournalRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

// Input carries the editable journal fields.
type Input struct {
	Title   string
	Content string
	Tag     string
}

func New(journals repository.JournalRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		journals: journals,
		buffer:   buffer,
		logger:   logger,
	}
}

func (uc *UseCase) ListJournals(ctx context.Context, filter repository.JournalFilter) ([]domain.Journal, error) {
	return uc.journals.List(ctx, filter)
}

func (uc *UseCase) CreateJournal(ctx context.Context, userID string, in Input) (*domain.Journal, error) {
	if err := validate.JournalTitle(in.Title); err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, err.Error())
	}
	journal := &domain.Journal{
		UserID:  userID,
		Title:   in.Title,
		Content: in.Content,
		Tag:     strings.TrimSpace(in.Tag),
	}
	created, err := uc.journals.Create(ctx, journal)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, journal) {
			return journal, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateJournal(ctx context.Context, userID, id string, in Input) (*domain.Journal, error) {
	if err := validate.JournalTitle(in.Title); err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, err.Error())
	}
	journal, err := uc.journals.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	journal.Title = in.Title
	journal.Content = in.Content
	journal.Tag = strings.TrimSpace(in.Tag)

	if err := uc.journals.Update(ctx, journal); err != nil {
		if errors.Is(err, domain.ErrJournalNotFound) {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, journal) {
			return journal, nil
		}
		return nil, err
	}
	return journal, nil
}

func (uc *UseCase) DeleteJournal(ctx context.Context, userID, id string) error {
	if err := uc.journals.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrJournalNotFound) {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Journal{ID: id, UserID: userID}) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, journal *domain.Journal) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferJournal(ctx, operation, journal); err != nil {
		uc.logger.Error("failed to buffer journal operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("journal operation buffered", zap.String("operation", operation), zap.String("journal_id", journal.ID))
	return true
}
