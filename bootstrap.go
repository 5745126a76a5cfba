package storefront

import (
	"context"
	"errors"
	"sync"
)

// RestoreOutcome describes what a restore did
type RestoreOutcome int

const (
	// RestoreSkipped means a previous call already ran the restore
	RestoreSkipped RestoreOutcome = iota
	// RestoreNoToken means nothing was stored, no request was made
	RestoreNoToken
	// RestoreAuthenticated means the stored token resolved to a user
	RestoreAuthenticated
	// RestoreInvalidated means the stored token was rejected and removed
	RestoreInvalidated
)

func (o RestoreOutcome) String() string {
	switch o {
	case RestoreNoToken:
		return "no-token"
	case RestoreAuthenticated:
		return "authenticated"
	case RestoreInvalidated:
		return "invalidated"
	default:
		return "skipped"
	}
}

// Restorer repopulates the session from a persisted token. It runs at most
// once per instance.
type Restorer struct {
	api          API
	tokens       TokenStore
	store        *SessionStore
	logger       Logger
	activitySink ActivitySink
	once         sync.Once
	outcome      RestoreOutcome
}

// NewRestorer returns a new Restorer
func NewRestorer(api API, tokens TokenStore, store *SessionStore) *Restorer {
	return &Restorer{
		api:          api,
		tokens:       tokens,
		store:        store,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (r *Restorer) WithLogger(logger Logger) *Restorer {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithActivitySink configures an ActivitySink for restore events.
func (r *Restorer) WithActivitySink(sink ActivitySink) *Restorer {
	r.activitySink = normalizeActivitySink(sink)
	return r
}

// Restore runs the bootstrap the first time it is called. Later calls
// return RestoreSkipped. Failures are logged, never returned.
func (r *Restorer) Restore(ctx context.Context) RestoreOutcome {
	outcome := RestoreSkipped
	r.once.Do(func() {
		outcome = r.restore(ctx)
		r.outcome = outcome
	})
	return outcome
}

// Outcome returns the result of the restore that already ran
func (r *Restorer) Outcome() RestoreOutcome {
	return r.outcome
}

func (r *Restorer) restore(ctx context.Context) RestoreOutcome {
	ctx, reqID := ensureRequestID(ctx)

	token, err := r.tokens.Get(ctx)
	if err != nil {
		r.logger.Error("restore could not read token", "request_id", reqID, "error", err)
		return RestoreNoToken
	}

	if token == "" {
		r.logger.Debug("restore found no token", "request_id", reqID)
		return RestoreNoToken
	}

	if info, err := ParseTokenInfo(token); err == nil && info.Expired() {
		r.logger.Debug("restoring with expired token", "request_id", reqID, "expires_at", info.ExpiresAt)
	}

	user, err := r.api.Me(ctx)
	if err == nil && user == nil {
		err = ErrTokenMalformed
	}

	if err != nil {
		r.logger.Error("restore failed, removing token", "request_id", reqID, "error", err)
		if rmErr := r.tokens.Remove(ctx); rmErr != nil {
			r.logger.Error("restore could not remove token", "request_id", reqID, "error", rmErr)
		}
		recordActivity(ctx, r.activitySink, r.logger, ActivityEvent{
			EventType: ActivityEventSessionInvalidated,
			RequestID: reqID,
			Metadata: map[string]any{
				"error":        err.Error(),
				"unauthorized": errors.Is(err, ErrUnauthorized),
			},
		})
		return RestoreInvalidated
	}

	r.store.SetUser(user)
	recordActivity(ctx, r.activitySink, r.logger, ActivityEvent{
		EventType: ActivityEventSessionRestored,
		UserID:    user.ID,
		RequestID: reqID,
	})

	return RestoreAuthenticated
}
