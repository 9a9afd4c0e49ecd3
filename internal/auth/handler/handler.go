package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"certledger/internal/jwttoken"
	"certledger/internal/platform/middleware"
	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/platform/httputil"
)

// Service defines the operator login operations the handler needs.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, token string) (*jwttoken.Claims, error)
}

// Handler exposes the operator session endpoints.
type Handler struct {
	logger *slog.Logger
	auth   Service
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, auth: auth}
}

// Register mounts the auth routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/login", h.handleLogin)
	r.Post("/api/auth/verify", h.handleVerify)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    userInfo `json:"user"`
}

type userInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "login failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "login failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User:    userInfo{Username: req.Username, Role: "admin"},
	})
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid bool     `json:"valid"`
	User  userInfo `json:"user"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	claims, err := h.auth.Verify(r.Context(), req.Token)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusUnauthorized, map[string]any{
			"valid": false,
			"error": "invalid token",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, verifyResponse{
		Valid: true,
		User:  userInfo{Username: claims.Username, Role: claims.Role},
	})
}
