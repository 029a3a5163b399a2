package http

import (
	"net/http"

	"github.com/MKhiriev/med-cms/internal/utils"
)

// withLocale resolves the content locale from the "locale" query parameter
// or the Accept-Language header and stores it in the request context.
func (h *Handler) withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := h.locales.Resolve(r.URL.Query().Get("locale"), r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", locale)
		next.ServeHTTP(w, r.WithContext(utils.WithLocale(r.Context(), locale)))
	})
}
