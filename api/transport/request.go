package transport

import (
	"bytes"

	"github.com/fastygo/focus/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskRequest is the body of POST and PUT /api/tasks. PUT is partial, so
// every field tracks whether it was present.
type TaskRequest struct {
	Text     *string          `json:"text"`
	Deadline OptionalDate     `json:"deadline"`
	Quadrant *domain.Quadrant `json:"quadrant"`
}

// Patch converts the request into a partial update.
func (r TaskRequest) Patch() domain.TaskPatch {
	patch := domain.TaskPatch{Text: r.Text, Quadrant: r.Quadrant}
	if r.Deadline.Set {
		due := r.Deadline.Value
		patch.Deadline = &due
	}
	return patch
}

// OptionalDate distinguishes an absent deadline from an explicit null. A
// zero Value with Set means "clear the deadline".
type OptionalDate struct {
	Set   bool
	Value domain.Date
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(bytes.TrimSpace(data))
}

// Ptr returns the deadline as stored on a task.
func (o OptionalDate) Ptr() *domain.Date {
	if o.Value.IsZero() {
		return nil
	}
	due := o.Value
	return &due
}

// JournalRequest carries user_id for compatibility with older clients. The
// server always uses the authenticated user instead.
type JournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
	UserID  string `json:"user_id,omitempty"`
}
