package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(serverVersion)); err != nil {
		h.logger.Err(err).Str("func", "getServerVersion").Msg("error writing version")
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeEnvelopeRaw(w, r, http.StatusOK, h.services.AppInfoService.Health(r.Context()))
}
