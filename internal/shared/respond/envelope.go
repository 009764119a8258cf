package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/config"
)

type (
	// Envelope is the uniform JSON wrapper for every API response.
	Envelope struct {
		Status  int                 `json:"status"`
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    any                 `json:"data"`
		Errors  []apperr.FieldError `json:"errors"`
		Meta    map[string]any      `json:"meta"`
	}

	// Responder builds and writes envelopes at the HTTP boundary.
	Responder struct {
		localizer Localizer
		debug     bool
	}
)

const defaultSuccessMessage = "Request processed successfully."

// NewResponder wires the default localizer. Debug detail is attached to
// responses only outside production.
func NewResponder(cfg *config.Config) *Responder {
	return &Responder{
		localizer: DefaultLocalizer,
		debug:     cfg.Debug && !cfg.IsEnvProd(),
	}
}

// Success writes a 200 envelope around data. An empty message falls back to
// the generic success message.
func (rsp *Responder) Success(w http.ResponseWriter, r *http.Request, data any, message string) {
	rsp.SuccessStatus(w, r, http.StatusOK, data, message)
}

// SuccessStatus is Success with an explicit HTTP status.
func (rsp *Responder) SuccessStatus(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	if message == "" {
		message = defaultSuccessMessage
	}
	rsp.write(w, r, Envelope{
		Status:  status,
		Success: true,
		Message: message,
		Data:    data,
		Errors:  []apperr.FieldError{},
		Meta:    metaFrom(r.Context()),
	})
}

// Error classifies the failure and writes the matching error envelope.
// Nothing below this boundary formats a response.
func (rsp *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	c := Classify(err)

	message := c.Message
	if message == "" {
		message = rsp.localizer.Message(c.Code)
	}

	fields := c.Fields
	if fields == nil {
		fields = []apperr.FieldError{}
	}

	meta := metaFrom(r.Context())
	meta["error_code"] = c.Code
	if rsp.debug {
		meta["debug"] = err.Error()
	}

	rsp.write(w, r, Envelope{
		Status:  c.Status,
		Success: false,
		Message: message,
		Data:    nil,
		Errors:  fields,
		Meta:    meta,
	})
}

func (rsp *Responder) write(w http.ResponseWriter, r *http.Request, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode response envelope")
	}
}
