package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenDisplay carries display-only claims peeked from the bearer token.
type TokenDisplay struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekToken extracts claims from the session token without verifying the
// signature. The gateway never validates tokens (the inventory API rejects
// expired or forged ones on every call), but the expiry is still useful to
// show on the account strip.
func PeekToken(token string) (TokenDisplay, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenDisplay{}, false
	}

	var out TokenDisplay
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}
