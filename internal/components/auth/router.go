package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/time/rate"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/config"
	"github.com/quytt2702/authapi/internal/shared/middleware"
	"github.com/quytt2702/authapi/internal/shared/respond"
)

type (
	Router struct {
		service  servicer
		rsp      *respond.Responder
		validate *validator.Validate
	}
)

// NewRouter assembles the auth endpoints. Login sits behind a per-client
// throttle; me, logout and change-password sit behind the bearer gate.
// Refresh validates the token itself so the grace window can apply.
func NewRouter(service servicer, tokens *TokenManager, deny *Denylist, rsp *respond.Responder, cfg *config.Config) chi.Router {
	r := &Router{
		service:  service,
		rsp:      rsp,
		validate: NewValidate(),
	}
	return r.Routes(tokens, deny, cfg)
}

func (rt *Router) Routes(tokens *TokenManager, deny *Denylist, cfg *config.Config) chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Throttle(rate.Limit(cfg.LoginRate), cfg.LoginBurst, rt.rsp)).
		Post("/login", rt.Login)
	router.Post("/refresh", rt.Refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(NewGate(tokens, deny, rt.rsp))
		protected.Get("/me", rt.Me)
		protected.Post("/logout", rt.Logout)
		protected.Post("/change-password", rt.ChangePassword)
	})

	return router
}

func (rt *Router) Login(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body LoginRequest
	if err := rt.decode(req, &body); err != nil {
		rt.rsp.Error(w, req, err)
		return
	}

	logger.Debug().Str("email", body.Email).Msg("Login attempt")

	token, err := rt.service.Login(ctx, body)
	if err != nil {
		logger.Warn().Err(err).Str("email", body.Email).Msg("Login failed")
		rt.rsp.Error(w, req, err)
		return
	}

	rt.rsp.Success(w, req, token, "Logged in successfully.")
}

func (rt *Router) Refresh(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	token := bearerToken(req)
	if token == "" {
		rt.rsp.Error(w, req, apperr.ErrUnauthenticated)
		return
	}

	fresh, err := rt.service.Refresh(ctx, token)
	if err != nil {
		hlog.FromRequest(req).Warn().Err(err).Msg("Token refresh rejected")
		rt.rsp.Error(w, req, err)
		return
	}

	rt.rsp.Success(w, req, fresh, "Token refreshed successfully.")
}

func (rt *Router) Me(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	u, err := rt.service.Me(ctx, IdentityFromContext(ctx))
	if err != nil {
		rt.rsp.Error(w, req, err)
		return
	}

	rt.rsp.Success(w, req, u, "User profile retrieved successfully.")
}

func (rt *Router) Logout(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	if err := rt.service.Logout(ctx, TokenFromContext(ctx)); err != nil {
		rt.rsp.Error(w, req, err)
		return
	}

	rt.rsp.Success(w, req, nil, "Logged out successfully.")
}

func (rt *Router) ChangePassword(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body ChangePasswordRequest
	if err := rt.decode(req, &body); err != nil {
		rt.rsp.Error(w, req, err)
		return
	}

	if err := rt.service.ChangePassword(ctx, IdentityFromContext(ctx), body); err != nil {
		rt.rsp.Error(w, req, err)
		return
	}

	rt.rsp.Success(w, req, nil, "Password changed successfully.")
}

// decode reads and validates a JSON body. Oversized bodies keep their
// MaxBytesError identity so the boundary maps them to 413.
func (rt *Router) decode(req *http.Request, dst any) error {
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return apperr.New(apperr.CodeBadRequest).WithStatus(http.StatusBadRequest).Wrap(err)
	}
	return validateStruct(rt.validate, dst)
}
