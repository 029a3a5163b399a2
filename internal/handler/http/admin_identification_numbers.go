package http

import (
	"net/http"

	"github.com/MKhiriev/med-cms/models"
)

func (h *Handler) listIdentificationNumbers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.IdentificationNumberFilter{
		Status:    models.IdentificationNumberStatus(query.Get("status")),
		Search:    query.Get("search"),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
		Page:      queryInt(r, "page"),
		PerPage:   queryInt(r, "per_page"),
	}

	page, err := h.services.IdentificationNumberService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeEnvelope(w, r, http.StatusOK, envelope{
		Success:    true,
		Data:       page.Items,
		Pagination: &page.Pagination,
		Stats:      page.Stats,
	})
}

func (h *Handler) identificationNumberStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.IdentificationNumberService.Report(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, report)
}

func (h *Handler) getIdentificationNumber(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	number, err := h.services.IdentificationNumberService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, number)
}

func (h *Handler) createIdentificationNumber(w http.ResponseWriter, r *http.Request) {
	var req models.IdentificationNumberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	number, err := h.services.IdentificationNumberService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusCreated, "Identification number created", number)
}

func (h *Handler) updateIdentificationNumber(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.IdentificationNumberRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	number, err := h.services.IdentificationNumberService.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Identification number updated", number)
}

func (h *Handler) deleteIdentificationNumber(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.IdentificationNumberService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Identification number deleted", nil)
}

func (h *Handler) createIdentificationNumberBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.IdentificationNumberService.CreateBatch(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Identification numbers created", result)
}

func (h *Handler) releaseIdentificationNumber(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	number, user, err := h.services.IdentificationNumberService.Release(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Identification number released"
	if user != nil {
		message += " from user " + user.FullName
	}
	writeMessage(w, r, http.StatusOK, message, number)
}

func (h *Handler) toggleIdentificationNumber(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	number, err := h.services.IdentificationNumberService.ToggleStatus(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Identification number deactivated"
	if number.IsActive {
		message = "Identification number activated"
	}
	writeMessage(w, r, http.StatusOK, message, number)
}
