package middleware

import (
	"context"

	"github.com/mossxapp/mossx-backend/pkg/identity"
)

type contextKey string

const (
	ctxUserID  contextKey = "user_id"
	ctxProfile contextKey = "profile"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func ProfileFromContext(ctx context.Context) identity.Profile {
	if ctx == nil {
		return identity.Profile{}
	}
	if v, ok := ctx.Value(ctxProfile).(identity.Profile); ok {
		return v
	}
	return identity.Profile{}
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithProfile injects the verified identity claims for downstream handlers.
func WithProfile(ctx context.Context, profile identity.Profile) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxProfile, profile)
}
