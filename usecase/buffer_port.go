package usecase

import (
	"context"

	"github.com/fastygo/focus/domain"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferJournal(ctx context.Context, operation string, journal *domain.Journal) error
}
