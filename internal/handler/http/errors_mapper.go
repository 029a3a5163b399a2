package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/med-cms/internal/service"
	"github.com/MKhiriev/med-cms/internal/validators"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusTable is matched top to bottom, so a wrapping sentinel must be
// listed before the errors it wraps: registration refusals wrap
// ErrIdentificationNumberNotFound but answer 400, not 404.
var errorStatusTable = []errorStatus{
	{service.ErrRegistrationNumberInvalid, http.StatusBadRequest},

	{validators.ErrValidation, http.StatusUnprocessableEntity},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrIdentificationNumberUsed, http.StatusBadRequest},
	{service.ErrIdentificationNumberInactive, http.StatusBadRequest},
	{service.ErrIdentificationNumberNotInUse, http.StatusBadRequest},
	{service.ErrCannotDeleteUsedNumber, http.StatusBadRequest},
	{service.ErrBatchTooLarge, http.StatusBadRequest},
	{service.ErrContentAlreadyExists, http.StatusBadRequest},
	{service.ErrInvalidContentType, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidMultipart, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenRevoked, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrUnauthenticated, http.StatusUnauthorized},

	{service.ErrAccountInactive, http.StatusForbidden},
	{service.ErrFileAccessDenied, http.StatusForbidden},
	{ErrAdminOnly, http.StatusForbidden},
	{ErrSpecialistOnly, http.StatusForbidden},
	{ErrCrossOriginRequest, http.StatusForbidden},

	{service.ErrIdentificationNumberNotFound, http.StatusNotFound},
	{service.ErrSpecialistNotFound, http.StatusNotFound},
	{service.ErrContentNotFound, http.StatusNotFound},
	{service.ErrFileNotFound, http.StatusNotFound},
	{service.ErrFileInactive, http.StatusNotFound},
	{service.ErrStoredFileNotFound, http.StatusNotFound},
	{service.ErrPageNotFound, http.StatusNotFound},
	{ErrInvalidRouteParam, http.StatusNotFound},
	{ErrRouteNotFound, http.StatusNotFound},

	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{ErrTooManyRequests, http.StatusTooManyRequests},
}

// classifyError returns the response status for err and the client-facing
// message: the matched sentinel's text, or the full error text for
// unclassified failures.
func classifyError(err error) (int, string) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status, e.target.Error()
		}
	}
	return http.StatusInternalServerError, err.Error()
}
