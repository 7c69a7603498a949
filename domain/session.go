package domain

import "time"

// Session is one login. The token's sid claim names it; deleting it on
// logout revokes the token before the JWT itself expires.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session is live at now and owned by userID.
func (s *Session) Valid(userID string, now time.Time) bool {
	return s != nil && s.UserID == userID && !s.IsExpired(now)
}

func (s *Session) IsExpired(now time.Time) bool {
	if s == nil {
		return true
	}
	if now.IsZero() {
		now = time.Now()
	}
	return !s.ExpiresAt.After(now)
}
