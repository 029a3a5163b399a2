// Package http implements the REST API of the portal under /api/v1.
//
// Every JSON response uses one envelope: {"success", "data" or "message"},
// plus "errors" for validation failures and "pagination", "stats" or
// "meta" on listings. Service errors are mapped to statuses through a single
// table in errors_mapper.go.
//
// Middleware resolves the request locale, attaches a trace-ID logger, logs
// and counts every request, authenticates bearer tokens and gates the
// specialist and admin areas by role. The public auth endpoints are guarded
// against cross-origin browser requests, and login is rate limited per
// client IP.
package http
