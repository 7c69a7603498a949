package services

import (
	"context"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/internal/infrastructure/buffer"
	"github.com/fastygo/focus/usecase"
)

// BufferBridge lets the task and journal use cases hand writes to the
// processor without knowing about bbolt.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	w, err := buffer.TaskWrite(buffer.Operation(operation), task)
	if err != nil {
		return err
	}
	return b.processor.Submit(ctx, w)
}

func (b *BufferBridge) BufferJournal(ctx context.Context, operation string, journal *domain.Journal) error {
	w, err := buffer.JournalWrite(buffer.Operation(operation), journal)
	if err != nil {
		return err
	}
	return b.processor.Submit(ctx, w)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
