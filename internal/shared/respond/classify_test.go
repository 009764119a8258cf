package respond

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/quytt2702/authapi/internal/shared/apperr"
)

func TestClassifyDispatchTable(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"unauthenticated", apperr.ErrUnauthenticated, "ERROR-0401", 401},
		{"invalid credentials", apperr.ErrInvalidCredentials, "ERROR-0401", 401},
		{"token invalid", apperr.ErrTokenInvalid, "ERROR-0401", 401},
		{"token expired", apperr.ErrTokenExpired, "ERROR-0401", 401},
		{"wrapped unauthenticated", fmt.Errorf("gate: %w", apperr.ErrUnauthenticated), "ERROR-0401", 401},
		{"not found", apperr.ErrNotFound, "ERROR-0404", 404},
		{"no rows", pgx.ErrNoRows, "ERROR-0404", 404},
		{"maintenance", apperr.ErrMaintenance, "ERROR-0503", 503},
		{"rate limited", apperr.ErrRateLimited, "ERROR-0429", 429},
		{"payload too large", apperr.ErrPayloadTooLarge, "ERROR-0413", 413},
		{"max bytes", &http.MaxBytesError{Limit: 10}, "ERROR-0413", 413},
		{"forbidden", apperr.ErrForbidden, "ERROR-0403", 403},
		{"method not allowed", apperr.ErrMethodNotAllowed, "ERROR-0405", 405},
		{"generic http", &apperr.HTTPError{Status: 418}, "ERROR-0418", 418},
		{"unclassified", errors.New("boom"), "ERROR-0500", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.err)
			assert.Equal(t, tt.wantCode, c.Code)
			assert.Equal(t, tt.wantStatus, c.Status)
			assert.Empty(t, c.Fields)
		})
	}
}

func TestClassifyValidationError(t *testing.T) {
	err := &apperr.ValidationError{Fields: []apperr.FieldError{
		{Pointer: "email", Detail: "The email field is required."},
		{Pointer: "email", Detail: "The email must be a valid email address."},
	}}

	c := Classify(err)
	assert.Equal(t, "ERROR-0422", c.Code)
	assert.Equal(t, 422, c.Status)
	// one entry per field per broken rule
	assert.Len(t, c.Fields, 2)
}

func TestClassifyDomainError(t *testing.T) {
	err := apperr.New("ERROR-PASSWORD-0001")

	c := Classify(err)
	assert.Equal(t, "ERROR-PASSWORD-0001", c.Code)
	assert.Equal(t, 400, c.Status)
}

func TestClassifyDomainErrorWithStatusAndFields(t *testing.T) {
	err := apperr.New("ERROR-CUSTOM-0002").
		WithStatus(409).
		WithMessage("Conflicting state.").
		WithFields(apperr.FieldError{Pointer: "name"})

	c := Classify(err)
	assert.Equal(t, "ERROR-CUSTOM-0002", c.Code)
	assert.Equal(t, 409, c.Status)
	assert.Equal(t, "Conflicting state.", c.Message)
	assert.Len(t, c.Fields, 1)
}

func TestClassifyWrappedDomainError(t *testing.T) {
	err := fmt.Errorf("service: %w", apperr.New("ERROR-CUSTOM-0003"))

	c := Classify(err)
	assert.Equal(t, "ERROR-CUSTOM-0003", c.Code)
}

func TestLocalizerFallsBackToInternal(t *testing.T) {
	assert.Equal(t, "A system error has occurred.", DefaultLocalizer.Message("ERROR-NOPE"))
	assert.Equal(t, "The given data was invalid.", DefaultLocalizer.Message(apperr.CodeValidation))
}
