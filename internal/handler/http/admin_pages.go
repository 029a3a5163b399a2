package http

import (
	"net/http"

	"github.com/MKhiriev/med-cms/models"
)

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	var req models.PageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.PageService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusCreated, "Page created", page)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.PageRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.PageService.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Page updated", page)
}

func (h *Handler) deletePage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PageService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Page deleted", nil)
}
