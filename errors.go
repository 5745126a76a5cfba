package storefront

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// User facing messages
const (
	MsgNameTooShort        = "Name must be at least 2 characters long"
	MsgInvalidEmail        = "Please provide a valid email address"
	MsgPasswordTooShort    = "Password must be at least 8 characters long"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgCredentialsRequired = "Email and password are required"
	MsgSignupFailed        = "Signup failed"
	MsgLoginFailed         = "Login failed"
	MsgLogoutFailed        = "Logout failed"
	MsgProfileUpdateFailed = "Profile update failed"
)

// Text codes of the package sentinels
const (
	TextCodeValidation      = "VALIDATION_FAILED"
	TextCodeCredentials     = "CREDENTIALS_REQUIRED"
	TextCodeTokenStore      = "TOKEN_STORE_FAILED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeTransportFailed = "TRANSPORT_FAILED"
	TextCodeUnauthorized    = "UNAUTHORIZED"
)

// ErrValidation is the cause of every field validation failure
var ErrValidation = goerrors.New("validation failed", goerrors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrRequiredCredentials is returned by login when email or password is empty
var ErrRequiredCredentials = goerrors.New(MsgCredentialsRequired, goerrors.CategoryBadInput).
	WithTextCode(TextCodeCredentials).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenStore wraps failures of the durable token storage
var ErrTokenStore = goerrors.New("token storage failed", goerrors.CategoryInternal).
	WithTextCode(TextCodeTokenStore).
	WithCode(goerrors.CodeInternal)

// ErrTokenMalformed is returned when a stored token can not be decoded
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTransport marks requests that never produced an API response
var ErrTransport = goerrors.New("request could not be completed", goerrors.CategoryOperation).
	WithTextCode(TextCodeTransportFailed).
	WithCode(goerrors.CodeInternal)

// ErrUnauthorized matches API answers with status 401
var ErrUnauthorized = goerrors.New("session is not authorized", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// APIError is a request the server answered with a non 2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Errors     map[string]string
}

func (e *APIError) Error() string {
	if e == nil {
		return "api error"
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 answer
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e != nil && e.StatusCode == http.StatusUnauthorized
}

// HasFieldErrors reports whether the payload carried field level errors
func (e *APIError) HasFieldErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// FailureKind tags the shape of an action failure
type FailureKind int

const (
	// FailureMessage carries a single human readable message
	FailureMessage FailureKind = iota
	// FailureValidation carries field keyed messages
	FailureValidation
)

func (k FailureKind) String() string {
	if k == FailureValidation {
		return "validation"
	}
	return "message"
}

// ActionError is the normalized failure of an auth action.
type ActionError struct {
	Action  ActionType
	Kind    FailureKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Kind == FailureValidation {
		parts := make([]string, 0, len(e.Fields))
		for _, k := range orderedFields(e.Fields) {
			parts = append(parts, k+": "+e.Fields[k])
		}
		return fmt.Sprintf("%s: %s", e.Action, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// FirstMessage is what forms display inline
func (e *ActionError) FirstMessage() string {
	if e.Kind == FailureValidation {
		if keys := orderedFields(e.Fields); len(keys) > 0 {
			return e.Fields[keys[0]]
		}
	}
	return e.Message
}

// IsValidation reports whether err is a field validation failure
func IsValidation(err error) bool {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Kind == FailureValidation
	}
	return false
}

// AsActionError extracts the action failure from err
func AsActionError(err error) (*ActionError, bool) {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr, true
	}
	return nil, false
}

func validationFailure(action ActionType, fields map[string]string, cause error) *ActionError {
	return &ActionError{
		Action: action,
		Kind:   FailureValidation,
		Fields: fields,
		Err:    cause,
	}
}

func messageFailure(action ActionType, msg string, cause error) *ActionError {
	return &ActionError{
		Action:  action,
		Kind:    FailureMessage,
		Message: msg,
		Err:     cause,
	}
}

// apiMessage returns the server provided message, if any.
func apiMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// errorMessage returns the server message or, failing that, the message of
// the error itself.
func errorMessage(err error) string {
	if msg := apiMessage(err); msg != "" {
		return msg
	}
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return err.Error()
}

var fieldOrder = map[string]int{
	"name":            0,
	"email":           1,
	"password":        2,
	"passwordConfirm": 3,
}

func orderedFields(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := fieldOrder[keys[i]]
		oj, jok := fieldOrder[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// TransportError clones ErrTransport around the failed request error.
func TransportError(err error) error {
	clone := ErrTransport.Clone()
	if clone == nil {
		return err
	}
	if err != nil {
		clone.Message = err.Error()
		clone.Source = err
	}
	return clone
}

// IsTransportError reports whether err never reached the API
func IsTransportError(err error) bool {
	return hasTextCode(err, TextCodeTransportFailed)
}

// IsRequiredCredentials reports whether err is a missing email or password
func IsRequiredCredentials(err error) bool {
	return hasTextCode(err, TextCodeCredentials)
}

func hasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == code
	}
	return false
}
