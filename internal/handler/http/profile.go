package http

import (
	"net/http"

	"github.com/MKhiriev/med-cms/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.services.ProfileService.GetProfile(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, map[string]models.Profile{"profile": profile})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateProfileRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.services.ProfileService.UpdateProfile(r.Context(), user, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Profile updated successfully", map[string]models.UserSummary{"profile": summary})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ChangePasswordRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.ProfileService.ChangePassword(r.Context(), user, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	activity, err := h.services.ProfileService.GetActivity(r.Context(), user, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, activity)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, h.services.ProfileService.GetSettings(r.Context(), user))
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SettingsRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := h.services.ProfileService.UpdateSettings(r.Context(), user, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "Settings updated successfully", settings)
}
