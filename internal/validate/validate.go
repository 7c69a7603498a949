// Package validate holds the form rules shared by the CLI and the server.
package validate

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxUsernameLength     = 20
	MaxJournalTitleLength = 20
	MinPasswordLength     = 8
	MinPasswordDigits     = 2
	MaxTimerMinutes       = 180

	passwordSpecials = "@$!%*?&"
)

// Error is a user-facing validation message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Registration collects the fields of the sign-up form.
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Check applies the sign-up rules in form order and reports the first failure.
func (r Registration) Check() error {
	if utf8.RuneCountInString(r.Username) > MaxUsernameLength {
		return newError("username", "Username must be no more than 20 characters")
	}
	if r.Username == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return newError("", "All fields are required")
	}
	if !StrongPassword(r.Password) {
		return newError("password", "Password must be at least 8 characters long, contain at least 2 numbers, and one special character")
	}
	if r.Password != r.ConfirmPassword {
		return newError("confirmPassword", "Passwords do not match")
	}
	return nil
}

// StrongPassword requires at least eight characters from [A-Za-z0-9@$!%*?&],
// including a letter, a run of two or more consecutive digits and one
// special character.
func StrongPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}
	var letters, specials, run, longestRun int
	for _, r := range password {
		if r >= '0' && r <= '9' {
			run++
			longestRun = max(longestRun, run)
			continue
		}
		run = 0
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters++
		case strings.ContainsRune(passwordSpecials, r):
			specials++
		default:
			return false
		}
	}
	return letters > 0 && longestRun >= MinPasswordDigits && specials > 0
}

// TaskText rejects blank task text.
func TaskText(text string) error {
	if strings.TrimSpace(text) == "" {
		return newError("text", "Please enter a task before adding")
	}
	return nil
}

// JournalTitle requires 1-20 characters.
func JournalTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n == 0 || utf8.RuneCountInString(title) > MaxJournalTitleLength {
		return newError("title", "Title must be 1-20 characters")
	}
	return nil
}

// TimerDuration validates a custom countdown and returns its length in seconds.
func TimerDuration(minutes, seconds int) (int, error) {
	total := minutes*60 + seconds
	if minutes < 0 || seconds < 0 || total <= 0 || minutes > MaxTimerMinutes || total > MaxTimerMinutes*60 {
		return 0, newError("duration", "Please enter a valid time (up to 180 minutes).")
	}
	return total, nil
}
