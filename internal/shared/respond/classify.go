package respond

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/quytt2702/authapi/internal/shared/apperr"
)

// Classification is the boundary mapping of a failure: stable code, HTTP
// status, optional message override and structured field errors.
type Classification struct {
	Code    string
	Status  int
	Message string
	Fields  []apperr.FieldError
}

// Classify maps an internal failure to its response classification.
// Dispatch order matters, first match wins.
func Classify(err error) Classification {
	var (
		domainErr     *apperr.Error
		validationErr *apperr.ValidationError
		httpErr       *apperr.HTTPError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.Is(err, apperr.ErrUnauthenticated),
		errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrTokenInvalid),
		errors.Is(err, apperr.ErrTokenExpired):
		return Classification{Code: apperr.CodeUnauthenticated, Status: http.StatusUnauthorized}

	case errors.As(err, &validationErr):
		return Classification{
			Code:   apperr.CodeValidation,
			Status: http.StatusUnprocessableEntity,
			Fields: validationErr.Fields,
		}

	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return Classification{Code: apperr.CodeNotFound, Status: http.StatusNotFound}

	case errors.As(err, &domainErr):
		status := domainErr.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return Classification{
			Code:    domainErr.Code,
			Status:  status,
			Message: domainErr.Message,
			Fields:  domainErr.Fields,
		}

	case errors.Is(err, apperr.ErrMaintenance):
		return Classification{Code: apperr.CodeMaintenance, Status: http.StatusServiceUnavailable}

	case errors.Is(err, apperr.ErrRateLimited):
		return Classification{Code: apperr.CodeRateLimited, Status: http.StatusTooManyRequests}

	case errors.Is(err, apperr.ErrPayloadTooLarge), errors.As(err, &maxBytesErr):
		return Classification{Code: apperr.CodePayloadTooLarge, Status: http.StatusRequestEntityTooLarge}

	case errors.Is(err, apperr.ErrForbidden):
		return Classification{Code: apperr.CodeForbidden, Status: http.StatusForbidden}

	case errors.Is(err, apperr.ErrMethodNotAllowed):
		return Classification{Code: apperr.CodeMethodNotAllowed, Status: http.StatusMethodNotAllowed}

	case errors.As(err, &httpErr):
		return Classification{Code: statusCode(httpErr.Status), Status: httpErr.Status}
	}

	return Classification{Code: apperr.CodeInternal, Status: http.StatusInternalServerError}
}
