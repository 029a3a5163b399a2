package http

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

func (h *Handler) filesByType(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := models.ContentType(chi.URLParam(r, "contentType"))
	files, err := h.services.FileService.ListByType(r.Context(), user, contentType, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, files)
}

func (h *Handler) filesIndex(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	files, err := h.services.FileService.ListAll(r.Context(), user, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, files)
}

func (h *Handler) fileStats(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.services.FileService.Stats(r.Context(), user, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, stats)
}

func (h *Handler) fileInfo(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fileID, err := idParam(r, "file")
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := h.services.FileService.Info(r.Context(), user, fileID, requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, info)
}

// downloadFile streams the stored file as an attachment named after the
// original upload.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fileID, err := idParam(r, "file")
	if err != nil {
		writeError(w, r, err)
		return
	}

	download, err := h.services.FileService.Download(r.Context(), user, fileID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer download.Body.Close()

	file := download.File
	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName}))
	w.Header().Set("Content-Length", strconv.FormatInt(download.Size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, download.Body); err != nil {
		log.Err(err).Str("func", "*Handler.downloadFile").Int64("file_id", file.ID).Msg("error streaming file")
	}
}
