// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the med-cms REST API.
//
// [ServerAdapter] hides the transport from the command-line client. The HTTP
// implementation ([NewHTTPServerAdapter]) decodes the response envelope and
// maps error responses to the sentinel values in errors.go, so callers can
// use [errors.Is] (e.g. [ErrUnauthorized] for 401) and [errors.As] with
// [*APIError] for field-level validation messages.
package adapter

import (
	"context"

	"github.com/MKhiriev/med-cms/models"
)

// ServerAdapter talks to a med-cms server. Authenticated calls send the
// bearer token set by Login or SetToken.
type ServerAdapter interface {
	SetToken(token string)
	Token() string

	Health(ctx context.Context) (models.Health, error)
	Version(ctx context.Context) (string, error)

	// Login authenticates and stores the issued token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)

	// Logout revokes the stored token on the server and forgets it.
	Logout(ctx context.Context) error

	Me(ctx context.Context) (models.UserSummary, error)

	CheckIdentificationNumber(ctx context.Context, number string) (models.IdentificationNumberCheck, error)

	ListIdentificationNumbers(ctx context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error)
	IdentificationNumberReport(ctx context.Context) (models.IdentificationNumberReport, error)
	CreateIdentificationNumberBatch(ctx context.Context, req models.BatchRequest) (models.BatchResult, error)
	ReleaseIdentificationNumber(ctx context.Context, id int64) (models.IdentificationNumber, error)
	ToggleIdentificationNumber(ctx context.Context, id int64) (models.IdentificationNumber, error)
}
