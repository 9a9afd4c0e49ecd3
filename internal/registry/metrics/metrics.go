package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the certificate registry.
type Metrics struct {
	CertificatesIssued  prometheus.Counter
	CertificatesRevoked prometheus.Counter
	AdminUpdates        prometheus.Counter
	Verifications       *prometheus.CounterVec
}

// New creates and registers all registry metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		CertificatesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_certificates_issued_total",
			Help: "Total number of certificates issued",
		}),
		CertificatesRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_certificates_revoked_total",
			Help: "Total number of certificates revoked",
		}),
		AdminUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_admin_updates_total",
			Help: "Total number of admin grant/revoke operations",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certledger_verifications_total",
			Help: "Total number of verification lookups by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementIssued() {
	m.CertificatesIssued.Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.CertificatesRevoked.Inc()
}

func (m *Metrics) IncrementAdminUpdates() {
	m.AdminUpdates.Inc()
}

// ObserveVerification records a verification outcome: "valid", "revoked" or
// "not_found".
func (m *Metrics) ObserveVerification(outcome string) {
	m.Verifications.WithLabelValues(outcome).Inc()
}
