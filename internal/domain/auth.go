package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for an organizer.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the organizer it was issued to.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
