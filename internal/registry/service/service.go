// Package service exposes the public operation surface of the certificate
// registry. It composes access control, the record store and the event
// publisher, and fixes the authorization and validation order for every
// operation: the role gate always runs before argument checks, so an
// unauthorized caller is rejected regardless of argument validity.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"certledger/internal/registry/access"
	"certledger/internal/registry/events"
	registrymetrics "certledger/internal/registry/metrics"
	"certledger/internal/registry/models"
	"certledger/internal/registry/store"
	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/platform/sentinel"
)

// Registry is the authorization-gated ledger of certificates. One instance
// exists per deployment; pass it by handle to the transport layer.
type Registry struct {
	access  *access.Control
	store   store.Store
	events  events.Publisher
	metrics *registrymetrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Registry.
type Option func(*Registry)

func WithPublisher(p events.Publisher) Option {
	return func(r *Registry) { r.events = p }
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithClock overrides issuance timestamping, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func New(ac *access.Control, st store.Store, opts ...Option) *Registry {
	r := &Registry{
		access: ac,
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.events == nil {
		r.events = events.NewLogPublisher(r.logger)
	}
	return r
}

// Owner returns the registry owner identity.
func (r *Registry) Owner() models.Identity {
	return r.access.Owner()
}

// Issue creates a certificate for holder and returns its new id.
// Fails with forbidden for unauthorized callers, validation errors for bad
// fields, and conflict when the fingerprint was ever issued before.
func (r *Registry) Issue(ctx context.Context, caller models.Identity, holderName, subjectName, fingerprint string, holder models.Identity) (int64, error) {
	if err := r.requireAuthorized(ctx, caller); err != nil {
		return 0, err
	}

	cert, err := models.NewCertificate(holderName, subjectName, fingerprint, holder, caller, r.now())
	if err != nil {
		return 0, err
	}

	id, err := r.store.Create(ctx, cert)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return 0, dErrors.New(dErrors.CodeConflict, "certificate with this fingerprint already exists")
		case errors.Is(err, sentinel.ErrCapacity):
			return 0, dErrors.New(dErrors.CodeCapacityExceeded, "certificate id space exhausted")
		default:
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store certificate")
		}
	}

	r.emit(ctx, events.CertificateIssued(cert))
	if r.metrics != nil {
		r.metrics.IncrementIssued()
	}
	return id, nil
}

// Revoke permanently invalidates a certificate. The transition is one way;
// a second revocation fails with conflict.
func (r *Registry) Revoke(ctx context.Context, caller models.Identity, id int64) error {
	if err := r.requireAuthorized(ctx, caller); err != nil {
		return err
	}

	if err := r.store.Revoke(ctx, id); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.New(dErrors.CodeNotFound, "invalid certificate id")
		case errors.Is(err, sentinel.ErrInvalidState):
			return dErrors.New(dErrors.CodeConflict, "certificate already revoked")
		default:
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke certificate")
		}
	}

	r.emit(ctx, events.CertificateRevoked(id, caller))
	if r.metrics != nil {
		r.metrics.IncrementRevoked()
	}
	return nil
}

// VerifyByID reports whether the certificate is currently valid, along with
// its full record. Public.
func (r *Registry) VerifyByID(ctx context.Context, id int64) (bool, *models.Certificate, error) {
	cert, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.observeVerification("not_found")
			return false, nil, dErrors.New(dErrors.CodeNotFound, "invalid certificate id")
		}
		return false, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	r.observeVerificationOutcome(cert)
	return cert.IsValid(), cert, nil
}

// VerifyByFingerprint verifies by exact document fingerprint. Public.
func (r *Registry) VerifyByFingerprint(ctx context.Context, fingerprint string) (bool, *models.Certificate, error) {
	cert, err := r.store.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.observeVerification("not_found")
			return false, nil, dErrors.New(dErrors.CodeNotFound, "certificate not found")
		}
		return false, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	r.observeVerificationOutcome(cert)
	return cert.IsValid(), cert, nil
}

// DetailsOf returns the certificate snapshot for id. Public.
func (r *Registry) DetailsOf(ctx context.Context, id int64) (*models.Certificate, error) {
	cert, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invalid certificate id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return cert, nil
}

// CertificatesOf returns the ids issued to holder in issuance order. A
// holder with none gets an empty slice, not an error. Public.
func (r *Registry) CertificatesOf(ctx context.Context, holder models.Identity) ([]int64, error) {
	if holder.IsNull() {
		return []int64{}, nil
	}
	ids, err := r.store.ListByHolder(ctx, holder)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list certificates")
	}
	return ids, nil
}

// TotalCount returns the total number of certificates ever issued. Public.
func (r *Registry) TotalCount(ctx context.Context) (int64, error) {
	count, err := r.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count certificates")
	}
	return count, nil
}

// IsAdmin reports effective admin membership. Public.
func (r *Registry) IsAdmin(ctx context.Context, identity models.Identity) (bool, error) {
	return r.access.IsAdmin(ctx, identity)
}

// SetAdmin grants or revokes admin privilege. Owner only.
func (r *Registry) SetAdmin(ctx context.Context, caller, identity models.Identity, enabled bool) error {
	if err := r.access.SetAdmin(ctx, caller, identity, enabled); err != nil {
		return err
	}
	r.emit(ctx, events.AdminUpdated(identity, enabled, caller))
	if r.metrics != nil {
		r.metrics.IncrementAdminUpdates()
	}
	return nil
}

func (r *Registry) requireAuthorized(ctx context.Context, caller models.Identity) error {
	authorized, err := r.access.IsAuthorized(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check authorization")
	}
	if !authorized {
		return dErrors.New(dErrors.CodeForbidden, "not authorized: admin access required")
	}
	return nil
}

// emit publishes an event for a mutation that already committed. Delivery
// failures are logged, not surfaced: the ledger state is the source of
// truth and must not be reported as failed once committed.
func (r *Registry) emit(ctx context.Context, event events.Event) {
	if err := r.events.Emit(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "failed to publish registry event",
			"type", event.Type,
			"certificate_id", event.CertificateID,
			"error", err,
		)
	}
}

func (r *Registry) observeVerificationOutcome(cert *models.Certificate) {
	if cert.IsValid() {
		r.observeVerification("valid")
	} else {
		r.observeVerification("revoked")
	}
}

func (r *Registry) observeVerification(outcome string) {
	if r.metrics != nil {
		r.metrics.ObserveVerification(outcome)
	}
}
