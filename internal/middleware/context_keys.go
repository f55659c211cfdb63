package middleware

import "context"

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey = contextKey("logger")
	actorKey  = contextKey("actorID")
)

// GetActorFromCtx retrieves the opaque acting identity from the context.
// The engine does not interpret it; it is only recorded into audit fields
// and entry metadata. Returns the actor and whether one was present.
func GetActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}

// WithActor returns a context carrying the given acting identity.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey, actorID)
}
