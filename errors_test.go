package storefront_test

import (
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := &storefront.APIError{StatusCode: 500}
	assert.Equal(t, "request failed with status code 500", err.Error())
	assert.False(t, err.HasFieldErrors())

	err = &storefront.APIError{StatusCode: 401, Message: "Invalid credentials"}
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.ErrorIs(t, fmt.Errorf("login: %w", err), storefront.ErrUnauthorized)

	forbidden := &storefront.APIError{StatusCode: 403}
	assert.NotErrorIs(t, forbidden, storefront.ErrUnauthorized)
}

func TestActionError(t *testing.T) {
	validation := &storefront.ActionError{
		Action: storefront.ActionSignup,
		Kind:   storefront.FailureValidation,
		Fields: map[string]string{
			"password": storefront.MsgPasswordTooShort,
			"email":    storefront.MsgInvalidEmail,
		},
		Err: storefront.ErrValidation,
	}

	assert.Equal(t, storefront.MsgInvalidEmail, validation.FirstMessage())
	assert.Equal(t, "auth/signup: email: "+storefront.MsgInvalidEmail+"; password: "+storefront.MsgPasswordTooShort, validation.Error())
	assert.True(t, storefront.IsValidation(validation))
	assert.ErrorIs(t, validation, storefront.ErrValidation)

	message := &storefront.ActionError{Action: storefront.ActionLogin, Message: "Invalid credentials"}
	assert.Equal(t, "auth/login: Invalid credentials", message.Error())
	assert.False(t, storefront.IsValidation(message))

	got, ok := storefront.AsActionError(fmt.Errorf("wrapped: %w", message))
	require.True(t, ok)
	assert.Same(t, message, got)

	_, ok = storefront.AsActionError(errors.New("plain"))
	assert.False(t, ok)
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")
	err := storefront.TransportError(cause)

	assert.True(t, storefront.IsTransportError(err))
	assert.False(t, storefront.IsTransportError(cause))

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, cause.Error(), richErr.Message)
	assert.Equal(t, goerrors.CategoryOperation, richErr.Category)
}
