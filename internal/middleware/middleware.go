package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type contextKey string

const (
	actorKey contextKey = "actor"

	// HeaderUser names the acting user. Authentication happens upstream.
	HeaderUser = "X-User"
)

// Options configures the shared HTTP middleware stack.
type Options struct {
	Timeout        time.Duration
	RPS            float64
	Burst          int
	AllowedOrigins []string
}

// Stack returns the middleware applied to every HTTP route, outermost first.
func Stack(log *zerolog.Logger, opts Options) []func(http.Handler) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	stack := []func(http.Handler) http.Handler{
		chimw.RequestID,
		Logger(log),
		chimw.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", HeaderUser, chimw.RequestIDHeader},
			MaxAge:         300,
		}),
	}
	if opts.Timeout > 0 {
		stack = append(stack, chimw.Timeout(opts.Timeout))
	}
	return append(stack, RateLimit(opts.RPS, opts.Burst))
}

// GetRequestID returns the id assigned by chi's RequestID middleware.
func GetRequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// Actor stores the acting username from the X-User header.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(HeaderUser))
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor returns the acting username, or "".
func GetActor(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}

// Logger writes one zerolog access line per request.
func Logger(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				event := log.Info()
				if status >= http.StatusInternalServerError {
					event = log.Error()
				}
				event.
					Str("request_id", GetRequestID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("HTTP request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// RateLimit applies a shared token bucket. rps <= 0 disables it.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}
