package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/med-cms/models"
)

func (h *Handler) contentIndex(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	locale := requestLocale(r)
	content, err := h.services.ContentService.GetAll(r.Context(), user, locale)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeEnvelope(w, r, http.StatusOK, envelope{
		Success: true,
		Data:    content,
		Meta:    h.services.ContentService.Meta(locale),
	})
}

func (h *Handler) contentByType(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := models.ContentType(chi.URLParam(r, "type"))
	content, err := h.services.ContentService.GetByType(r.Context(), user, contentType, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, content)
}
