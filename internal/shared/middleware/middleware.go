package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/time/rate"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/respond"
)

// Meta installs a fresh per-request metadata registry in the context so the
// response envelope never leaks entries across concurrent requests.
func Meta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(respond.WithMeta(r.Context())))
	})
}

// Maintenance short-circuits every request with a 503 envelope while the
// maintenance flag is set.
func Maintenance(enabled bool, rsp *respond.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enabled {
				rsp.Error(w, r, apperr.ErrMaintenance)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimit caps request body size. Oversized bodies surface as
// *http.MaxBytesError at decode time and classify to 413.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Throttle applies a per-client token bucket keyed by remote host. Buckets
// live for the process lifetime; a steady attacker gets 429 envelopes.
func Throttle(limit rate.Limit, burst int, rsp *respond.Responder) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := buckets[key]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			buckets[key] = limiter
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(clientKey(r)).Allow() {
				hlog.FromRequest(r).Warn().Str("client", clientKey(r)).Msg("Request throttled")
				rsp.Error(w, r, apperr.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recoverer converts panics into 500 envelopes. In production the Sentry
// handler sits outside this one and injects the hub we report the panic to.
func Recoverer(rsp *respond.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
						hub.Recover(rec)
					}
					hlog.FromRequest(r).Error().Interface("panic", rec).Msg("Recovered from handler panic")
					rsp.Error(w, r, apperr.New(apperr.CodeInternal).WithStatus(http.StatusInternalServerError))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
