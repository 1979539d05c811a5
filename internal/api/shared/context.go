package shared

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/adboard/adboard-api/internal/authz"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// UserIDContextKey is the context key for the authenticated user id
	UserIDContextKey ContextKey = "userID"

	// UserRoleContextKey is the context key for the authenticated user's role
	UserRoleContextKey ContextKey = "userRole"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// WithActor stores the authenticated user in ctx.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, actor.ID)
	return context.WithValue(ctx, UserRoleContextKey, actor.Role)
}

// ActorFromContext returns the authenticated user, or the anonymous actor
// when the request carried no valid token.
func ActorFromContext(ctx context.Context) authz.Actor {
	id, ok := ctx.Value(UserIDContextKey).(int64)
	if !ok || id <= 0 {
		return authz.Actor{}
	}
	role, _ := ctx.Value(UserRoleContextKey).(domain.Role)
	return authz.Actor{ID: id, Role: role}
}

// SetTraceID adds a new trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns 32 hex characters from a random UUID. If the
// random source fails it falls back to a time-based UUID, never a static
// value.
func generateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "time-based generation")
		id, err = uuid.NewUUID()
		if err != nil {
			return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
		}
	}
	return hex.EncodeToString(id[:])
}
