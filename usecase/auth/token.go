package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claim names shared with the JWT middleware.
const (
	ClaimUserID    = "user_id"
	ClaimUsername  = "username"
	ClaimSessionID = "sid"
)

// TokenIssuer signs HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL is the lifetime of issued tokens and of their server-side session.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

func (i *TokenIssuer) Issue(userID, username, sessionID string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		ClaimUserID:    userID,
		ClaimUsername:  username,
		ClaimSessionID: sessionID,
		"iss":          i.issuer,
		"iat":          now.Unix(),
		"exp":          now.Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
