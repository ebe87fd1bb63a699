// Package requestctx carries authenticated actor identity through contexts.
package requestctx

import "context"

type actorContextKey struct{}

// Marketplace roles carried on the actor identity.
const (
	RolePlayer = "player"
	RoleAgent  = "agent"
	RoleAdmin  = "admin"
)

// Actor identifies the authenticated caller of a request.
type Actor struct {
	UserID string
	Role   string
}

// WithActor stores the actor identity in context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor identity stored in context.
func ActorFromContext(ctx context.Context) Actor {
	if ctx == nil {
		return Actor{}
	}
	value, _ := ctx.Value(actorContextKey{}).(Actor)
	return value
}

// UserIDFromContext returns the authenticated user identifier, if any.
func UserIDFromContext(ctx context.Context) string {
	return ActorFromContext(ctx).UserID
}
