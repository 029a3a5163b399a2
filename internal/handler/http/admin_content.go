package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/med-cms/internal/service"
	"github.com/MKhiriev/med-cms/models"
)

const (
	// multipartMemory is the part of an upload kept in memory; the rest is
	// spooled to temporary files.
	multipartMemory = 8 << 20

	// multipartOverhead is allowed on top of the file size for the other
	// form fields and part headers.
	multipartOverhead = 1 << 20
)

func (h *Handler) createContent(w http.ResponseWriter, r *http.Request) {
	var req models.ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	content, err := h.services.ContentService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusCreated, "Specialist content created", content)
}

// uploadFile accepts a multipart form with a "file" part and optional
// display_name[<locale>] and description[<locale>] fields.
func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	contentID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	}
	if err = r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, service.ErrFileTooLarge)
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidMultipart, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidMultipart, err))
		return
	}
	defer file.Close()

	upload := models.FileUpload{
		ContentID:    contentID,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		DisplayName:  formTranslatable(r, "display_name"),
		Description:  formTranslatable(r, "description"),
	}

	created, err := h.services.FileService.Upload(r.Context(), upload, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusCreated, "File uploaded", created)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.FileService.Delete(r.Context(), fileID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, r, http.StatusOK, "File deleted", nil)
}

// formTranslatable collects name[<locale>] form fields. A plain name field
// is taken as the default-locale text.
func formTranslatable(r *http.Request, name string) models.Translatable {
	out := models.Translatable{}
	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		if key == name {
			out[models.DefaultLocale] = values[0]
			continue
		}
		locale, ok := strings.CutPrefix(key, name+"[")
		if !ok {
			continue
		}
		if locale, ok = strings.CutSuffix(locale, "]"); ok && models.IsSupportedLocale(locale) {
			out[locale] = values[0]
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
