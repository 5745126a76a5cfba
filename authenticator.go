package storefront

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Auther runs the async auth actions against the remote API and mirrors
// every outcome into the session store.
type Auther struct {
	api          API
	tokens       TokenStore
	store        *SessionStore
	logger       Logger
	activitySink ActivitySink
}

// NewAuther returns a new Auther
func NewAuther(api API, tokens TokenStore, store *SessionStore) *Auther {
	if store == nil {
		store = NewSessionStore()
	}
	return &Auther{
		api:          api,
		tokens:       tokens,
		store:        store,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (a *Auther) WithActivitySink(sink ActivitySink) *Auther {
	a.activitySink = normalizeActivitySink(sink)
	return a
}

// Store returns the session store the actions write to
func (a *Auther) Store() *SessionStore {
	return a.store
}

// Signup validates the payload, creates the account and persists the token.
// Validation failures never reach the API.
func (a *Auther) Signup(ctx context.Context, payload SignupPayload) (*User, error) {
	ctx, reqID := ensureRequestID(ctx)
	a.store.Dispatch(Pending(ActionSignup, reqID))

	if err := payload.Validate(); err != nil {
		fields := FormatValidationErrorToMap(err)
		a.logger.Debug("signup validation failed", "request_id", reqID, "fields", len(fields))
		return nil, a.reject(ctx, reqID, ActivityEventSignupFailure, validationFailure(ActionSignup, fields, ErrValidation))
	}

	resp, err := a.api.Signup(ctx, payload)
	if err != nil {
		a.logger.Error("signup request failed", "request_id", reqID, "error", err)

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.HasFieldErrors() {
			return nil, a.reject(ctx, reqID, ActivityEventSignupFailure, validationFailure(ActionSignup, copyFields(apiErr.Errors), err))
		}

		msg := apiMessage(err)
		if msg == "" {
			msg = MsgSignupFailed
		}
		return nil, a.reject(ctx, reqID, ActivityEventSignupFailure, messageFailure(ActionSignup, msg, err))
	}

	user, failure := a.persistCredentials(ctx, ActionSignup, resp, MsgSignupFailed)
	if failure != nil {
		return nil, a.reject(ctx, reqID, ActivityEventSignupFailure, failure)
	}

	a.store.Dispatch(Fulfilled(ActionSignup, reqID, user))
	recordActivity(ctx, a.activitySink, a.logger, ActivityEvent{
		EventType: ActivityEventSignupSuccess,
		UserID:    user.ID,
		RequestID: reqID,
		Metadata:  map[string]any{"email": user.Email},
	})

	return user.Clone(), nil
}

// Login exchanges credentials for a token. Only presence of both fields is
// checked before the request.
func (a *Auther) Login(ctx context.Context, credentials Credentials) (*User, error) {
	ctx, reqID := ensureRequestID(ctx)
	a.store.Dispatch(Pending(ActionLogin, reqID))

	if err := credentials.Validate(); err != nil {
		return nil, a.reject(ctx, reqID, ActivityEventLoginFailure, messageFailure(ActionLogin, MsgCredentialsRequired, err))
	}

	resp, err := a.api.Login(ctx, credentials)
	if err != nil {
		a.logger.Error("login request failed", "request_id", reqID, "error", err)

		msg := errorMessage(err)
		if msg == "" {
			msg = MsgLoginFailed
		}
		return nil, a.reject(ctx, reqID, ActivityEventLoginFailure, messageFailure(ActionLogin, msg, err))
	}

	user, failure := a.persistCredentials(ctx, ActionLogin, resp, MsgLoginFailed)
	if failure != nil {
		return nil, a.reject(ctx, reqID, ActivityEventLoginFailure, failure)
	}

	a.store.Dispatch(Fulfilled(ActionLogin, reqID, user))
	recordActivity(ctx, a.activitySink, a.logger, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		UserID:    user.ID,
		RequestID: reqID,
		Metadata:  map[string]any{"email": user.Email},
	})

	return user.Clone(), nil
}

// Logout asks the API to end the session and always drops the local token
// and identity, whatever the API answered.
func (a *Auther) Logout(ctx context.Context) error {
	ctx, reqID := ensureRequestID(ctx)

	var userID string
	if current := a.store.State().User; current != nil {
		userID = current.ID
	}

	a.store.Dispatch(Pending(ActionLogout, reqID))

	apiErr := a.api.Logout(ctx)
	if apiErr != nil {
		a.logger.Warn("logout request failed, clearing local session", "request_id", reqID, "error", apiErr)
	}

	if err := a.removeToken(ctx); err != nil {
		a.logger.Error("logout could not remove token", "request_id", reqID, "error", err)
	}

	if apiErr != nil {
		msg := apiMessage(apiErr)
		if msg == "" {
			msg = MsgLogoutFailed
		}
		failure := messageFailure(ActionLogout, msg, apiErr)
		a.store.Dispatch(Rejected(ActionLogout, reqID, failure))
		recordActivity(ctx, a.activitySink, a.logger, ActivityEvent{
			EventType: ActivityEventLogoutFailure,
			UserID:    userID,
			RequestID: reqID,
			Metadata:  map[string]any{"error": msg},
		})
		return failure
	}

	a.store.Dispatch(Fulfilled(ActionLogout, reqID, nil))
	recordActivity(ctx, a.activitySink, a.logger, ActivityEvent{
		EventType: ActivityEventLogoutSuccess,
		UserID:    userID,
		RequestID: reqID,
	})

	return nil
}

// UpdateProfile sends the profile fields as given, there is no client side
// validation.
func (a *Auther) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	ctx, reqID := ensureRequestID(ctx)
	a.store.Dispatch(Pending(ActionUpdateProfile, reqID))

	user, err := a.api.UpdateMe(ctx, update)
	if err == nil && user == nil {
		err = goerrors.New("profile update returned no user", goerrors.CategoryInternal)
	}

	if err != nil {
		a.logger.Error("profile update failed", "request_id", reqID, "error", err)

		msg := apiMessage(err)
		if msg == "" {
			msg = MsgProfileUpdateFailed
		}
		return nil, a.reject(ctx, reqID, ActivityEventProfileUpdateFailure, messageFailure(ActionUpdateProfile, msg, err))
	}

	a.store.Dispatch(Fulfilled(ActionUpdateProfile, reqID, user))
	recordActivity(ctx, a.activitySink, a.logger, ActivityEvent{
		EventType: ActivityEventProfileUpdated,
		UserID:    user.ID,
		RequestID: reqID,
	})

	return user.Clone(), nil
}

// ClearError clears the error message and the field errors
func (a *Auther) ClearError() {
	a.store.ClearError()
}

// ClearValidationErrors clears the field errors
func (a *Auther) ClearValidationErrors() {
	a.store.ClearValidationErrors()
}

func (a *Auther) reject(ctx context.Context, reqID string, event ActivityEventType, failure *ActionError) error {
	a.store.Dispatch(Rejected(failure.Action, reqID, failure))

	meta := map[string]any{"kind": failure.Kind.String()}
	if failure.Kind == FailureValidation {
		meta["fields"] = copyFields(failure.Fields)
	} else {
		meta["error"] = failure.Message
	}

	recordActivity(ctx, a.activitySink, a.logger, ActivityEvent{
		EventType: event,
		RequestID: reqID,
		Metadata:  meta,
	})

	return failure
}

// persistCredentials stores the token of a successful exchange. The session
// is only marked authenticated once the token is durable.
func (a *Auther) persistCredentials(ctx context.Context, action ActionType, resp *AuthResponse, fallback string) (*User, *ActionError) {
	if resp == nil || resp.User == nil || resp.Token == "" {
		err := goerrors.New("credential exchange returned no token or user", goerrors.CategoryInternal)
		return nil, messageFailure(action, fallback, err)
	}

	if err := a.tokens.Set(ctx, resp.Token); err != nil {
		a.logger.Error("failed to persist token", "action", action, "error", err)
		return nil, messageFailure(action, fallback, wrapTokenStore(err))
	}

	return resp.User.Clone(), nil
}

func (a *Auther) removeToken(ctx context.Context) error {
	if err := a.tokens.Remove(ctx); err != nil {
		return wrapTokenStore(err)
	}
	return nil
}

func wrapTokenStore(err error) error {
	clone := ErrTokenStore.Clone()
	if clone == nil {
		return err
	}
	clone.Source = err
	return clone.WithMetadata(map[string]any{"error": err.Error()})
}

func copyFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
