package user

import "context"

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       Role
}

func (a Actor) Can(p Permission) bool {
	return HasPermission(a.Role, p)
}

// IsEmployeeOnly reports whether the caller may only act on their own records.
func (a Actor) IsEmployeeOnly() bool {
	return a.Role == RoleEmployee
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the caller stored by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
