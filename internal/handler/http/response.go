package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/service"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

const invalidDataMessage = "The given data was invalid."

// envelope is the body of every JSON response.
type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Stats      any                 `json:"stats,omitempty"`
	Meta       any                 `json:"meta,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeEnvelope").Msg("error writing response")
	}
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeEnvelope(w, r, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	writeEnvelope(w, r, status, envelope{Success: true, Message: message, Data: data})
}

// writeError answers with the status mapped from err. Validation failures
// carry their field messages; server errors are logged with the full chain.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, message := classifyError(err)

	body := envelope{Success: false, Message: message}

	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		body.Errors = vErr.Fields
		body.Message = invalidDataMessage
		if errors.Is(err, service.ErrWrongPassword) {
			body.Message = service.ErrWrongPassword.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request refused")
	}

	writeEnvelope(w, r, status, body)
}

// writeEnvelopeRaw writes a payload that already has the envelope shape.
func writeEnvelopeRaw(w http.ResponseWriter, r *http.Request, status int, body any) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeEnvelopeRaw").Msg("error writing response")
	}
}
