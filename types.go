package storefront

import (
	"context"
	"fmt"
)

// Logger is the structured logger used across the package. Args are
// key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds session layer options
type Config interface {
	GetAPIBaseURL() string
	GetTokenKey() string
	GetHomeRoute() string
	GetAdminRole() string
}

// API is the remote storefront API consumed by the auth actions.
type API interface {
	Signup(ctx context.Context, payload SignupPayload) (*AuthResponse, error)
	Login(ctx context.Context, credentials Credentials) (*AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*User, error)
	UpdateMe(ctx context.Context, update ProfileUpdate) (*User, error)
}

// TokenSource provides the bearer token for outgoing requests
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// TokenStore is durable client storage for the bearer token.
// Get returns an empty string and no error when no token is stored.
type TokenStore interface {
	TokenSource
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

type defLogger struct{}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Print("[DBG] STOREFRONT " + line(msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Print("[INF] STOREFRONT " + line(msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Print("[WRN] STOREFRONT " + line(msg, args))
}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Print("[ERR] STOREFRONT " + line(msg, args))
}

func line(msg string, args []any) string {
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			msg += fmt.Sprintf(" %v=%v", args[i], args[i+1])
		} else {
			msg += fmt.Sprintf(" %v", args[i])
		}
	}
	return newline(msg)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
