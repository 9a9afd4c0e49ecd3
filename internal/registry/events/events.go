// Package events defines the observable registry events and their publishers.
//
// Exactly one event is emitted per successful mutating operation, never on
// failure. Subscribers consume the JSON-encoded records from Kafka; when no
// broker is configured the service falls back to a logging sink.
package events

import (
	"context"
	"time"

	"certledger/internal/registry/models"
)

// Type names an observable registry event.
type Type string

const (
	TypeAdminUpdated       Type = "admin_updated"
	TypeCertificateIssued  Type = "certificate_issued"
	TypeCertificateRevoked Type = "certificate_revoked"
)

// Event is emitted from the registry service to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Certificate events.
	CertificateID int64           `json:"certificate_id,omitempty"`
	Holder        models.Identity `json:"holder,omitempty"`
	HolderName    string          `json:"holder_name,omitempty"`
	SubjectName   string          `json:"subject_name,omitempty"`
	Fingerprint   string          `json:"fingerprint,omitempty"`
	IssuedAt      time.Time       `json:"issued_at,omitzero"`

	// Admin events.
	Admin   models.Identity `json:"admin,omitempty"`
	Enabled bool            `json:"enabled,omitempty"`

	// Actor is the identity that performed the operation
	// (issuer, revoker, or owner).
	Actor models.Identity `json:"actor"`
}

// Publisher delivers registry events to subscribers.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
	Close() error
}

// CertificateIssued builds the issuance event from a stored certificate.
func CertificateIssued(cert *models.Certificate) Event {
	return Event{
		Type:          TypeCertificateIssued,
		CertificateID: cert.ID,
		Holder:        cert.Holder,
		HolderName:    cert.HolderName,
		SubjectName:   cert.SubjectName,
		Fingerprint:   cert.Fingerprint,
		IssuedAt:      cert.IssuedAt,
		Actor:         cert.IssuedBy,
	}
}

// CertificateRevoked builds the revocation event.
func CertificateRevoked(id int64, revokedBy models.Identity) Event {
	return Event{
		Type:          TypeCertificateRevoked,
		CertificateID: id,
		Actor:         revokedBy,
	}
}

// AdminUpdated builds the admin membership event.
func AdminUpdated(admin models.Identity, enabled bool, owner models.Identity) Event {
	return Event{
		Type:    TypeAdminUpdated,
		Admin:   admin,
		Enabled: enabled,
		Actor:   owner,
	}
}
