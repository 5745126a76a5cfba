package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/config"
	"github.com/goliatone/go-storefront/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	user *storefront.User
	err  error
}

func (s stubAPI) Signup(context.Context, storefront.SignupPayload) (*storefront.AuthResponse, error) {
	return nil, s.err
}

func (s stubAPI) Login(context.Context, storefront.Credentials) (*storefront.AuthResponse, error) {
	return &storefront.AuthResponse{Token: "tok-1", User: s.user}, s.err
}

func (s stubAPI) Logout(context.Context) error { return s.err }

func (s stubAPI) Me(context.Context) (*storefront.User, error) { return s.user, s.err }

func (s stubAPI) UpdateMe(context.Context, storefront.ProfileUpdate) (*storefront.User, error) {
	return s.user, s.err
}

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Token.Driver = tokenstore.DriverMemory
	cfg.Log.Level = "error"
	return cfg
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"login", "signup", "logout", "whoami", "profile", "status", "serve"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRoot_Help(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"login", "--help"})

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, flag := range []string{"--email", "--password", "--config", "--api-url", "--token-driver"} {
		assert.True(t, strings.Contains(output, flag), "help missing %q", flag)
	}
}

func TestWireDeps_RestoreAndStatus(t *testing.T) {
	ctx := context.Background()
	admin := &storefront.User{ID: "u1", Role: storefront.RoleAdmin}

	d, err := wireDeps(ctx, memoryConfig(t), stubAPI{user: admin})
	require.NoError(t, err)
	defer d.close()

	exp := time.Now().Add(time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, d.tokens.Set(ctx, token))

	status := collectStatus(ctx, d, time.Now())

	assert.Equal(t, tokenstore.DriverMemory, status.Driver)
	assert.True(t, status.HasToken)
	require.NotNil(t, status.Token)
	assert.Equal(t, "u1", status.Token.Subject)
	assert.False(t, status.TokenExpired)
	assert.Equal(t, "authenticated", status.Restore)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "admin", status.Role)
	assert.Equal(t, "allow", status.AdminAccess)
}

func TestWireDeps_StatusWithoutToken(t *testing.T) {
	ctx := context.Background()

	d, err := wireDeps(ctx, memoryConfig(t), stubAPI{})
	require.NoError(t, err)
	defer d.close()

	status := collectStatus(ctx, d, time.Now())
	assert.False(t, status.HasToken)
	assert.Nil(t, status.Token)
	assert.Equal(t, "no-token", status.Restore)
	assert.False(t, status.Authenticated)
	assert.Equal(t, "redirect", status.AdminAccess)
}

func TestDescribeFailure(t *testing.T) {
	err := describeFailure(&storefront.ActionError{
		Action:  storefront.ActionLogin,
		Message: "Invalid credentials",
	})
	assert.EqualError(t, err, "Invalid credentials")

	err = describeFailure(&storefront.ActionError{
		Action: storefront.ActionSignup,
		Kind:   storefront.FailureValidation,
		Fields: map[string]string{"name": storefront.MsgNameTooShort},
	})
	assert.EqualError(t, err, "auth/signup: name: "+storefront.MsgNameTooShort)
}

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:8080", true},
		{"localhost:8080", true},
		{"[::1]:8080", true},
		{":8080", false},
		{"0.0.0.0:8080", false},
		{"192.168.1.10:8080", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, isLoopback(tt.addr))
		})
	}
}

func TestDefaultServeAddrIsLoopback(t *testing.T) {
	assert.True(t, isLoopback(config.Defaults().Server.Addr))
}

func TestServe_HelpDescribesSharedSession(t *testing.T) {
	assert.Contains(t, NewServeCmd().Long, "127.0.0.1")
}
