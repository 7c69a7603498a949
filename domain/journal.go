package domain

import (
	"fmt"
	"strings"
	"time"
)

// Journal is a titled, optionally tagged note owned by a user.
type Journal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchesTag reports whether the journal tag contains query, ignoring case.
// An empty query matches everything.
func (j Journal) MatchesTag(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(j.Tag), strings.ToLower(query))
}

// FormatDay renders a timestamp as D/M/YYYY in local time.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.Local()
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
