package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTValidator defines the interface for validating session tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	Username string
	Role     string
}

type contextKeyOperator struct{}
type contextKeyRole struct{}

// ContextKeyOperator is exported for use in handlers.
var (
	ContextKeyOperator = contextKeyOperator{}
	ContextKeyRole     = contextKeyRole{}
)

// GetOperator retrieves the authenticated operator username from the context.
func GetOperator(ctx context.Context) string {
	operator, ok := ctx.Value(ContextKeyOperator).(string)
	if !ok {
		return ""
	}
	return operator
}

// GetRole retrieves the session role from the context.
func GetRole(ctx context.Context) string {
	role, ok := ctx.Value(ContextKeyRole).(string)
	if !ok {
		return ""
	}
	return role
}

// RequireAuth gates mutating routes behind a valid admin session token.
// This check is advisory: the registry's own access control remains the
// authoritative gate, since the session store and the admin set are
// maintained independently and can drift.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			after, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeAuthError(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(after)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeAuthError(w, "Invalid or expired token")
				return
			}

			if claims.Role != "admin" {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - insufficient role",
					"role", claims.Role,
					"request_id", GetRequestID(ctx),
				)
				writeAuthError(w, "Admin session required")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, ContextKeyOperator, claims.Username)
			ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
