package http

import (
	"net/http"

	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Login successful", result)
}

func (h *Handler) registerSpecialist(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterSpecialistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.RegisterSpecialist(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusCreated, "Specialist registered successfully", result)
}

func (h *Handler) checkID(w http.ResponseWriter, r *http.Request) {
	var req models.CheckIDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	check, err := h.services.AuthService.CheckIdentificationNumber(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Identification number is available", check)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrUnauthenticated)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, map[string]models.UserSummary{"user": user.Summary()})
}
