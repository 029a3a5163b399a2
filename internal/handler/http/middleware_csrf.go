package http

import (
	"net/http"

	csrf "filippo.io/csrf/gorilla"

	"github.com/MKhiriev/med-cms/internal/logger"
)

// withCrossOriginProtection rejects cross-origin browser requests to the
// public auth endpoints using Fetch metadata. Hosts listed in
// Security.TrustedOrigins (e.g. the SPA host) are allowed.
func (h *Handler) withCrossOriginProtection(next http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(crossOriginRejected)),
	}
	if len(h.security.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(h.security.TrustedOrigins))
	}

	return csrf.Protect([]byte(h.security.CSRFKey), opts...)(next)
}

func crossOriginRejected(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}

	logger.FromRequest(r).Warn().
		Str("reason", reason).
		Str("origin", r.Header.Get("Origin")).
		Str("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")).
		Msg("cross-origin request rejected")

	writeError(w, r, ErrCrossOriginRequest)
}
