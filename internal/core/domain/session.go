package domain

import (
	"time"

	"golang.org/x/oauth2"
)

// Session is the bearer credential held after a successful login.
// The engine never inspects the token beyond presence and expiry; issuing
// and refreshing tokens is the server's concern.
type Session struct {
	// Username is the account the session was issued to.
	Username string `json:"username"`
	// Token is the bearer credential as issued by the login endpoint.
	Token oauth2.Token `json:"token"`
	// CreatedAt is when the session was stored on this device.
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session holds a usable bearer token.
func (s *Session) Valid() bool {
	if s == nil || s.Token.AccessToken == "" {
		return false
	}
	if s.Token.Expiry.IsZero() {
		return true
	}
	return time.Now().Before(s.Token.Expiry)
}
