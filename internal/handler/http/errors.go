// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the HTTP layer itself. Callers can match against
// them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrUnauthenticated is returned by the role gates when no user was
	// loaded by the auth middleware.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAdminOnly and ErrSpecialistOnly are returned by the role gates for an
	// authenticated user without the required role.
	ErrAdminOnly      = errors.New("access denied: administrator role required")
	ErrSpecialistOnly = errors.New("access denied: specialist role required")

	ErrInvalidJSON        = errors.New("invalid JSON was passed")
	ErrInvalidRouteParam  = errors.New("invalid route parameter")
	ErrInvalidMultipart   = errors.New("invalid multipart form")
	ErrTooManyRequests    = errors.New("too many login attempts, try again later")
	ErrCrossOriginRequest = errors.New("cross-origin request rejected")
	ErrRouteNotFound      = errors.New("route not found")
)
