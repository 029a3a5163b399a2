// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, JWT token generation and validation, and file size
// formatting.
package utils

import (
	"context"

	"github.com/MKhiriev/med-cms/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserCtxKey is the key under which the authenticated *models.User is
	// stored by the auth middleware.
	UserCtxKey = contextKey("user")

	// TokenCtxKey holds the parsed bearer models.Token of the request.
	TokenCtxKey = contextKey("token")

	// LocaleCtxKey holds the resolved request locale.
	LocaleCtxKey = contextKey("locale")
)

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// Returns ok == false when the value is missing, nil or of another type.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*models.User)
	return user, ok && user != nil
}

// GetUserIDFromContext retrieves the authenticated user's identifier.
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// WithToken returns a copy of ctx carrying the parsed bearer token.
func WithToken(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetTokenFromContext retrieves the parsed bearer token.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}

// WithLocale returns a copy of ctx carrying locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, LocaleCtxKey, locale)
}

// GetLocaleFromContext returns the request locale or [models.DefaultLocale].
func GetLocaleFromContext(ctx context.Context) string {
	locale, ok := ctx.Value(LocaleCtxKey).(string)
	if !ok || locale == "" {
		return models.DefaultLocale
	}
	return locale
}
