// Package handler is the thin HTTP layer over the registry service. It
// delegates to the service without embedding registry logic so transport
// concerns stay isolated.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"certledger/internal/platform/middleware"
	"certledger/internal/registry/cache"
	"certledger/internal/registry/models"
	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/platform/httputil"
)

//go:generate mockgen -destination=mocks/service_mock.go -package=mocks certledger/internal/registry/handler Service

// Service defines the registry operations the handler needs.
type Service interface {
	Issue(ctx context.Context, caller models.Identity, holderName, subjectName, fingerprint string, holder models.Identity) (int64, error)
	Revoke(ctx context.Context, caller models.Identity, id int64) error
	VerifyByID(ctx context.Context, id int64) (bool, *models.Certificate, error)
	VerifyByFingerprint(ctx context.Context, fingerprint string) (bool, *models.Certificate, error)
	DetailsOf(ctx context.Context, id int64) (*models.Certificate, error)
	CertificatesOf(ctx context.Context, holder models.Identity) ([]int64, error)
	TotalCount(ctx context.Context) (int64, error)
	IsAdmin(ctx context.Context, identity models.Identity) (bool, error)
	SetAdmin(ctx context.Context, caller, identity models.Identity, enabled bool) error
	Owner() models.Identity
}

// callerHeader names the wallet identity an operator acts as. The registry's
// access control decides whether that identity may mutate anything.
const callerHeader = "X-Caller-Identity"

// Handler handles certificate registry endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     Service
	cache        *cache.Verification
	jwtValidator middleware.JWTValidator
}

// Option configures the Handler.
type Option func(*Handler)

// WithCache enables the Redis verification cache on the read path.
func WithCache(c *cache.Verification) Option {
	return func(h *Handler) { h.cache = c }
}

func New(registry Service, jwtValidator middleware.JWTValidator, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:       logger,
		registry:     registry,
		jwtValidator: jwtValidator,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the registry routes. Mutating routes sit behind the admin
// session gate; verification and lookup routes are public.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/registry/info", h.handleInfo)
	r.Get("/api/certificates/verify", h.handleVerifyByFingerprint)
	r.Get("/api/certificates/{id}", h.handleDetails)
	r.Get("/api/certificates/{id}/verify", h.handleVerifyByID)
	r.Get("/api/holders/{identity}/certificates", h.handleCertificatesOf)
	r.Get("/api/admins/{identity}", h.handleIsAdmin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/api/certificates", h.handleIssue)
		r.Post("/api/certificates/{id}/revoke", h.handleRevoke)
		r.Put("/api/admins/{identity}", h.handleSetAdmin)
	})
}

type issueRequest struct {
	HolderName  string `json:"holder_name"`
	SubjectName string `json:"subject_name"`
	Fingerprint string `json:"fingerprint"`
	Holder      string `json:"holder"`
}

type issueResponse struct {
	ID int64 `json:"id"`
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	caller := models.Identity(r.Header.Get(callerHeader))
	id, err := h.registry.Issue(ctx, caller, req.HolderName, req.SubjectName, req.Fingerprint, models.Identity(req.Holder))
	if err != nil {
		h.writeServiceError(ctx, w, "issue certificate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, issueResponse{ID: id})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.certificateID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := models.Identity(r.Header.Get(callerHeader))
	if err := h.registry.Revoke(ctx, caller, id); err != nil {
		h.writeServiceError(ctx, w, "revoke certificate", err)
		return
	}

	if h.cache != nil {
		if cert, err := h.registry.DetailsOf(ctx, id); err == nil {
			h.cache.Invalidate(ctx, id, cert.Fingerprint)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

type verifyResponse struct {
	IsValid     bool                `json:"is_valid"`
	Certificate *models.Certificate `json:"certificate"`
}

func (h *Handler) handleVerifyByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.certificateID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if h.cache != nil {
		if entry, ok := h.cache.GetByID(ctx, id); ok {
			httputil.WriteJSON(w, http.StatusOK, verifyResponse(*entry))
			return
		}
	}

	isValid, cert, err := h.registry.VerifyByID(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "verify certificate", err)
		return
	}
	h.storeInCache(ctx, isValid, cert)
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{IsValid: isValid, Certificate: cert})
}

func (h *Handler) handleVerifyByFingerprint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fingerprint := r.URL.Query().Get("fingerprint")
	if fingerprint == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "fingerprint query parameter required"))
		return
	}

	if h.cache != nil {
		if entry, ok := h.cache.GetByFingerprint(ctx, fingerprint); ok {
			httputil.WriteJSON(w, http.StatusOK, verifyResponse(*entry))
			return
		}
	}

	isValid, cert, err := h.registry.VerifyByFingerprint(ctx, fingerprint)
	if err != nil {
		h.writeServiceError(ctx, w, "verify certificate by fingerprint", err)
		return
	}
	h.storeInCache(ctx, isValid, cert)
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{IsValid: isValid, Certificate: cert})
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.certificateID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cert, err := h.registry.DetailsOf(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "fetch certificate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cert)
}

func (h *Handler) handleCertificatesOf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	holder := models.Identity(chi.URLParam(r, "identity"))
	ids, err := h.registry.CertificatesOf(ctx, holder)
	if err != nil {
		h.writeServiceError(ctx, w, "list certificates", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"certificate_ids": ids})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.registry.TotalCount(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "count certificates", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"owner":              h.registry.Owner(),
		"total_certificates": count,
	})
}

func (h *Handler) handleIsAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := models.Identity(chi.URLParam(r, "identity"))
	isAdmin, err := h.registry.IsAdmin(ctx, identity)
	if err != nil {
		h.writeServiceError(ctx, w, "check admin", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"identity": identity,
		"is_admin": isAdmin,
	})
}

type setAdminRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) handleSetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	caller := models.Identity(r.Header.Get(callerHeader))
	identity := models.Identity(chi.URLParam(r, "identity"))
	if err := h.registry.SetAdmin(ctx, caller, identity, req.Enabled); err != nil {
		h.writeServiceError(ctx, w, "set admin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) certificateID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id")
	}
	return id, nil
}

func (h *Handler) storeInCache(ctx context.Context, isValid bool, cert *models.Certificate) {
	if h.cache != nil && cert != nil {
		h.cache.Store(ctx, &cache.Entry{IsValid: isValid, Certificate: cert})
	}
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	if dErrors.GetCode(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+action,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to "+action))
		return
	}
	httputil.WriteError(w, err)
}
