package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD as well as full RFC3339 timestamps.
func ParseDate(value string) (Date, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a user-owned item placed in one quadrant of the matrix.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Text      string    `json:"text"`
	Deadline  *Date     `json:"deadline"`
	Quadrant  Quadrant  `json:"quadrant"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasDeadline reports whether a due date is set.
func (t *Task) HasDeadline() bool {
	return t != nil && t.Deadline != nil && !t.Deadline.IsZero()
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Text     *string
	Deadline *Date
	Quadrant *Quadrant
}

// Apply copies the set fields of the patch onto the task.
func (p TaskPatch) Apply(task *Task) {
	if task == nil {
		return
	}
	if p.Text != nil {
		task.Text = *p.Text
	}
	if p.Deadline != nil {
		if p.Deadline.IsZero() {
			task.Deadline = nil
		} else {
			due := *p.Deadline
			task.Deadline = &due
		}
	}
	if p.Quadrant != nil {
		task.Quadrant = *p.Quadrant
	}
}
