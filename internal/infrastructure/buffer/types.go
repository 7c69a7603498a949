package buffer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fastygo/focus/domain"
)

type Entity string

const (
	EntityTask    Entity = "task"
	EntityJournal Entity = "journal"
)

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

func (o Operation) valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// Write is a task or journal mutation that could not reach Postgres. The
// payload is the full record as the use case last saw it.
type Write struct {
	Seq       uint64          `json:"-"`
	UserID    string          `json:"user_id"`
	Entity    Entity          `json:"entity"`
	Operation Operation       `json:"operation"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	QueuedAt  time.Time       `json:"queued_at"`
}

func TaskWrite(op Operation, task *domain.Task) (Write, error) {
	if task == nil {
		return Write{}, domain.ErrInvalidPayload
	}
	return newWrite(EntityTask, op, task.UserID, task)
}

func JournalWrite(op Operation, journal *domain.Journal) (Write, error) {
	if journal == nil {
		return Write{}, domain.ErrInvalidPayload
	}
	return newWrite(EntityJournal, op, journal.UserID, journal)
}

func newWrite(entity Entity, op Operation, userID string, record any) (Write, error) {
	if !op.valid() {
		return Write{}, fmt.Errorf("unsupported operation %q", op)
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return Write{}, err
	}
	return Write{UserID: userID, Entity: entity, Operation: op, Payload: payload}, nil
}

// Task decodes the payload of a task write.
func (w Write) Task() (*domain.Task, error) {
	if w.Entity != EntityTask {
		return nil, fmt.Errorf("write %d holds a %s, not a task", w.Seq, w.Entity)
	}
	var task domain.Task
	if err := json.Unmarshal(w.Payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Journal decodes the payload of a journal write.
func (w Write) Journal() (*domain.Journal, error) {
	if w.Entity != EntityJournal {
		return nil, fmt.Errorf("write %d holds a %s, not a journal", w.Seq, w.Entity)
	}
	var journal domain.Journal
	if err := json.Unmarshal(w.Payload, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}
