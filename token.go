package storefront

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenInfo is what the client can read from a bearer token without the
// signing key. It is informational only, the API stays the authority.
type TokenInfo struct {
	Subject   string     `json:"subject,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the token carried an expiry in the past
func (t *TokenInfo) Expired() bool {
	return t.ExpiredAt(time.Now())
}

// ExpiredAt reports whether the token is expired at now
func (t *TokenInfo) ExpiredAt(now time.Time) bool {
	if t == nil || t.ExpiresAt == nil {
		return false
	}
	return !now.Before(*t.ExpiresAt)
}

// ParseTokenInfo decodes the claims of a JWT without verifying it. Opaque
// tokens yield ErrTokenMalformed.
func ParseTokenInfo(raw string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		clone := ErrTokenMalformed.Clone()
		if clone == nil {
			return nil, err
		}
		clone.Source = err
		return nil, clone
	}

	info := &TokenInfo{}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		info.Subject = sub
	} else if id, ok := claims["id"].(string); ok {
		info.Subject = id
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		info.IssuedAt = &t
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid expiration claim")
	}
	if exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}

	return info, nil
}
