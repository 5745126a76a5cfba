package storefront

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventSignupSuccess        ActivityEventType = "auth.signup.success"
	ActivityEventSignupFailure        ActivityEventType = "auth.signup.failure"
	ActivityEventLoginSuccess         ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure         ActivityEventType = "auth.login.failure"
	ActivityEventLogoutSuccess        ActivityEventType = "auth.logout.success"
	ActivityEventLogoutFailure        ActivityEventType = "auth.logout.failure"
	ActivityEventProfileUpdated       ActivityEventType = "user.profile.updated"
	ActivityEventProfileUpdateFailure ActivityEventType = "user.profile.failure"
	ActivityEventSessionRestored      ActivityEventType = "auth.session.restored"
	ActivityEventSessionInvalidated   ActivityEventType = "auth.session.invalidated"
)

// ActivityEvent captures what happened to the client session.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	RequestID  string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

// recordActivity is best effort, sink errors are only logged.
func recordActivity(ctx context.Context, sink ActivitySink, logger Logger, event ActivityEvent) {
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := normalizeActivitySink(sink).Record(ctx, event); err != nil {
		logger.Warn("activity sink record error", "event", event.EventType, "error", err)
	}
}
