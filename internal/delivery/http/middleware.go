package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"messages/internal/entity"
	"messages/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const CallerContextKey contextKey = "caller"

// TokenValidator resolves a bearer token to the caller it was issued for.
type TokenValidator interface {
	ValidateAccessToken(token string) (entity.Caller, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, Response{Message: "authorization header required"})
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeJSON(w, http.StatusUnauthorized, Response{Message: "invalid authorization header format"})
			return
		}

		caller, err := m.validator.ValidateAccessToken(parts[1])
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, Response{Message: "invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), CallerContextKey, caller)
		ctx = context.WithValue(ctx, logger.UserIdKey, caller.Id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CallerFromContext(ctx context.Context) (entity.Caller, bool) {
	caller, ok := ctx.Value(CallerContextKey).(entity.Caller)
	return caller, ok
}

// RequestId propagates X-Request-Id, generating one when the client sent none.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get("X-Request-Id")
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestId)
		ctx := context.WithValue(r.Context(), logger.RequestIdKey, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestLogger(l *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			l.WithContext(r.Context()).Info("[messages]: request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}
