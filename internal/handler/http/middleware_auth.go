package http

import (
	"net/http"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header and hands it
// to [service.AuthService.Authenticate], which checks signature, issuer,
// expiry and revocation and loads the token's user. On success the user and
// the parsed token are stored in the request context via [utils.WithUser]
// and [utils.WithToken].
//
// Every rejection answers 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		user, token, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("authentication failed")
			writeError(w, r, err)
			return
		}

		ctx = utils.WithUser(ctx, &user)
		ctx = utils.WithToken(ctx, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole builds a gate that answers 401 without a loaded user and 403
// when allowed rejects the user.
func requireRole(allowed func(models.User) bool, denied error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := currentUser(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if !allowed(user) {
				logger.FromRequest(r).Warn().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("role gate refused request")
				writeError(w, r, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAdmin admits users that can access the admin area.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return requireRole(models.User.CanAccessAdmin, ErrAdminOnly)(next)
}

// requireSpecialist admits users that can access the specialist profile.
func (h *Handler) requireSpecialist(next http.Handler) http.Handler {
	return requireRole(models.User.CanAccessProfile, ErrSpecialistOnly)(next)
}
