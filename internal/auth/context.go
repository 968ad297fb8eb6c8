package auth

import (
	"context"
	"strings"
)

type ctxKey string

const accountIDKey ctxKey = "auth_account_id"

// ContextWithAccount stores the authenticated account identifier in the
// context for the duration of one request.
func ContextWithAccount(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, strings.TrimSpace(accountID))
}

// AccountIDFromContext extracts the authenticated account identifier, if
// any, from the context.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(accountIDKey).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
