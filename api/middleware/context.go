package middleware

import "context"

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleIDKey
	requestIDKey
)

func int64From(ctx context.Context, key ctxKey) int64 {
	if ctx == nil {
		return 0
	}
	v, _ := ctx.Value(key).(int64)
	return v
}

func with(ctx context.Context, key ctxKey, value any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

// UserIDFromContext returns the authenticated user id, or 0 for anonymous requests.
func UserIDFromContext(ctx context.Context) int64 { return int64From(ctx, userIDKey) }

// RoleIDFromContext returns the caller's role id from the access token.
func RoleIDFromContext(ctx context.Context) int64 { return int64From(ctx, roleIDKey) }

func WithUserID(ctx context.Context, userID int64) context.Context {
	return with(ctx, userIDKey, userID)
}

func WithRoleID(ctx context.Context, roleID int64) context.Context {
	return with(ctx, roleIDKey, roleID)
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
