package common

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"socialhub/internal/logger"
	"socialhub/internal/metrics"
)

// TokenValidator parses a bearer token into claims.
type TokenValidator interface {
	ValidToken(token string) (*Claims, error)
}

// AccountChecker confirms that the principal behind a valid token may still act.
type AccountChecker interface {
	CheckAccount(ctx context.Context, p Principal) error
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestIDMiddleware reuses X-Request-ID or assigns a fresh UUID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), requestID)))
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware writes one access log line per request and records Prometheus metrics.
func LoggingMiddleware(next http.Handler) http.Handler {
	m := metrics.Get()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		elapsed := time.Since(start)
		statusStr := strconv.Itoa(rec.status)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, statusStr).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route, statusStr).Observe(elapsed.Seconds())

		logger.Log.Info("http request",
			logger.WithRequestID(RequestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			logger.WithStatus(rec.status),
			zap.Duration("duration", elapsed),
		)
	})
}

// AuthMiddleware attaches the bearer token's principal to the request context.
// Requests without a token pass through anonymously; a bad token is rejected.
func AuthMiddleware(tv TokenValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, ErrUnauthorized)
				return
			}

			claims, err := tv.ValidToken(parts[1])
			if err != nil {
				WriteError(w, r, ErrUnauthorized)
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{
				ID:       claims.PrincipalID,
				Kind:     claims.Kind,
				ModLevel: claims.ModLevel,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActiveAccountMiddleware re-checks the account of every authenticated request,
// so suspensions and deletions take effect before the token expires. It must run
// after AuthMiddleware.
func ActiveAccountMiddleware(ac AccountChecker) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if ok {
				if err := ac.CheckAccount(r.Context(), p); err != nil {
					WriteError(w, r, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests that are not made by an authenticated user.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return requireKind(KindUser, next)
}

// RequireModerator rejects requests that are not made by an authenticated moderator.
func RequireModerator(next http.HandlerFunc) http.HandlerFunc {
	return requireKind(KindModerator, next)
}

func requireKind(kind PrincipalKind, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, r, ErrUnauthorized)
			return
		}
		if p.Kind != kind {
			WriteError(w, r, ErrForbidden)
			return
		}
		next(w, r)
	}
}
