package middleware

import "context"

// ContextKey is the type of request context keys set by this package.
type ContextKey string

const (
	UserIDCtxKey   = ContextKey("user_id")
	UserRoleCtxKey = ContextKey("user_role")
)

// RoleAnonymous is the role of requests without a bearer token.
const RoleAnonymous = "anonymous"

func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDCtxKey).(string)
	return id
}

// Role returns the caller's role, RoleAnonymous when unauthenticated.
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleCtxKey).(string); ok && role != "" {
		return role
	}
	return RoleAnonymous
}
