package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/config"
)

type envelopeBody struct {
	Status  int                 `json:"status"`
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []apperr.FieldError `json:"errors"`
	Meta    map[string]any      `json:"meta"`
}

func newTestResponder() *Responder {
	return NewResponder(&config.Config{})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var env envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newRequestWithMeta() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(WithMeta(req.Context()))
}

func TestSuccessEnvelope(t *testing.T) {
	rsp := newTestResponder()
	req := newRequestWithMeta()
	AddMeta(req.Context(), "pagination", map[string]any{"page": 1})

	rec := httptest.NewRecorder()
	rsp.Success(rec, req, map[string]string{"hello": "world"}, "All good.")

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.True(t, env.Success)
	assert.Equal(t, "All good.", env.Message)
	assert.JSONEq(t, `{"hello":"world"}`, string(env.Data))
	assert.Empty(t, env.Errors)
	assert.Contains(t, env.Meta, "pagination")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestSuccessDefaultMessage(t *testing.T) {
	rsp := newTestResponder()
	rec := httptest.NewRecorder()
	rsp.Success(rec, newRequestWithMeta(), nil, "")

	env := decodeEnvelope(t, rec)
	assert.Equal(t, defaultSuccessMessage, env.Message)
}

func TestErrorEnvelopeInvariants(t *testing.T) {
	rsp := newTestResponder()
	rec := httptest.NewRecorder()
	rsp.Error(rec, newRequestWithMeta(), apperr.ErrInvalidCredentials)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, env.Status)
	assert.False(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
	assert.Empty(t, env.Errors)
	assert.Equal(t, "ERROR-0401", env.Meta["error_code"])
	assert.Equal(t, "Authenticate Error.", env.Message)
}

func TestErrorEnvelopeValidationFields(t *testing.T) {
	rsp := newTestResponder()
	rec := httptest.NewRecorder()
	rsp.Error(rec, newRequestWithMeta(), &apperr.ValidationError{Fields: []apperr.FieldError{
		{Title: "The email field is invalid.", Detail: "The email field is required.", Pointer: "email"},
		{Title: "The password field is invalid.", Detail: "The password field is required.", Pointer: "password"},
	}})

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Status)
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "email", env.Errors[0].Pointer)
	assert.Equal(t, "password", env.Errors[1].Pointer)
}

func TestErrorEnvelopeDebugDetail(t *testing.T) {
	rsp := NewResponder(&config.Config{Debug: true, Environment: "dev"})
	rec := httptest.NewRecorder()
	rsp.Error(rec, newRequestWithMeta(), assert.AnError)

	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Meta, "debug")

	prodRsp := NewResponder(&config.Config{Debug: false})
	prodRec := httptest.NewRecorder()
	prodRsp.Error(prodRec, newRequestWithMeta(), assert.AnError)
	assert.NotContains(t, decodeEnvelope(t, prodRec).Meta, "debug")
}

func TestMetaDoesNotLeakBetweenRequests(t *testing.T) {
	rsp := newTestResponder()

	first := newRequestWithMeta()
	AddMeta(first.Context(), "first", true)

	second := newRequestWithMeta()
	rec := httptest.NewRecorder()
	rsp.Success(rec, second, nil, "")

	env := decodeEnvelope(t, rec)
	assert.NotContains(t, env.Meta, "first")
}

func TestMetaConcurrentRequestsIsolated(t *testing.T) {
	rsp := newTestResponder()

	var wg sync.WaitGroup
	envs := make([]envelopeBody, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := newRequestWithMeta()
			AddMeta(req.Context(), "index", i)
			rec := httptest.NewRecorder()
			rsp.Success(rec, req, nil, "")

			var env envelopeBody
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Error(err)
				return
			}
			envs[i] = env
		}(i)
	}
	wg.Wait()

	for i, env := range envs {
		assert.EqualValues(t, i, env.Meta["index"])
	}
}

func TestAddMetaWithoutRegistryIsNoop(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	AddMeta(req.Context(), "ignored", true)

	rsp := newTestResponder()
	rec := httptest.NewRecorder()
	rsp.Success(rec, req, nil, "")

	env := decodeEnvelope(t, rec)
	assert.NotContains(t, env.Meta, "ignored")
}
