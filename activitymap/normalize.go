package activitymap

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-storefront"
)

const (
	// MetadataKeyRequestID stores the request id of the action that emitted the event.
	MetadataKeyRequestID = "request_id"
	// MetadataKeyOutcome stores whether the action succeeded.
	MetadataKeyOutcome = "outcome"
)

const (
	defaultChannel    = "storefront"
	defaultObjectType = "session"
	defaultActorID    = "anonymous"
)

// Normalized is a transport-agnostic activity shape for downstream systems.
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type,omitempty"`
	ObjectID   string         `json:"object_id,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Option customizes normalization behavior.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	channel       string
	objectType    string
	actorFallback string
}

// Normalize converts a storefront.ActivityEvent into the generic shape. The
// object is the session the event belongs to, keyed by request id.
func Normalize(event storefront.ActivityEvent, opts ...Option) Normalized {
	options := defaultNormalizeOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return Normalized{
		ActorID:    firstNonEmpty(strings.TrimSpace(event.UserID), options.actorFallback),
		Verb:       string(event.EventType),
		ObjectType: options.objectType,
		ObjectID:   strings.TrimSpace(event.RequestID),
		Channel:    options.channel,
		Metadata:   normalizeMetadata(event),
		OccurredAt: occurredAt,
	}
}

// Sink adapts fn into a storefront.ActivitySink that normalizes every event.
func Sink(fn func(context.Context, Normalized) error, opts ...Option) storefront.ActivitySink {
	return storefront.ActivitySinkFunc(func(ctx context.Context, event storefront.ActivityEvent) error {
		return fn(ctx, Normalize(event, opts...))
	})
}

// WithDefaultChannel sets the channel for normalized records.
func WithDefaultChannel(channel string) Option {
	return func(opts *normalizeOptions) {
		opts.channel = strings.TrimSpace(channel)
	}
}

// WithDefaultObjectType sets the object type for normalized records.
func WithDefaultObjectType(objectType string) Option {
	return func(opts *normalizeOptions) {
		opts.objectType = strings.TrimSpace(objectType)
	}
}

// WithActorFallback sets the actor id used for events without a user.
func WithActorFallback(actorID string) Option {
	return func(opts *normalizeOptions) {
		opts.actorFallback = strings.TrimSpace(actorID)
	}
}

func defaultNormalizeOptions() normalizeOptions {
	return normalizeOptions{
		channel:       defaultChannel,
		objectType:    defaultObjectType,
		actorFallback: defaultActorID,
	}
}

func normalizeMetadata(event storefront.ActivityEvent) map[string]any {
	metadata := make(map[string]any, len(event.Metadata)+2)
	for key, value := range event.Metadata {
		metadata[key] = value
	}

	if id := strings.TrimSpace(event.RequestID); id != "" {
		if _, exists := metadata[MetadataKeyRequestID]; !exists {
			metadata[MetadataKeyRequestID] = id
		}
	}

	metadata[MetadataKeyOutcome] = outcome(event.EventType)
	return metadata
}

func outcome(eventType storefront.ActivityEventType) string {
	switch {
	case strings.HasSuffix(string(eventType), ".failure"),
		eventType == storefront.ActivityEventSessionInvalidated:
		return "failure"
	default:
		return "success"
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
