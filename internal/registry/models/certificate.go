package models

import (
	"strings"
	"time"

	dErrors "certledger/pkg/domain-errors"
)

// Identity is an opaque account identity supplied by the wallet layer.
// The registry only compares identities; it never inspects their format.
// The zero value is the reserved null identity and is always invalid as a
// holder or admin target.
type Identity string

// NullIdentity is the reserved sentinel that no certificate or admin entry
// may carry.
const NullIdentity Identity = ""

func (i Identity) IsNull() bool {
	return strings.TrimSpace(string(i)) == ""
}

func (i Identity) String() string {
	return string(i)
}

// Status is the certificate lifecycle state.
//
// Transitions: StatusValid -> StatusRevoked, exactly once, one way.
type Status string

const (
	StatusValid   Status = "valid"
	StatusRevoked Status = "revoked"
)

// Certificate is the aggregate root for one issued credential.
//
// Invariants:
//   - ID is positive and assigned by the store, never reused or reassigned
//   - HolderName, SubjectName and Fingerprint are non-empty
//   - Fingerprint is unique across the full history of certificates,
//     revoked ones included
//   - Holder and IssuedBy are non-null identities
//   - Status only ever moves StatusValid -> StatusRevoked
//   - IssuedAt and IssuedBy are immutable after issuance
type Certificate struct {
	ID          int64     `json:"id"`
	HolderName  string    `json:"holder_name"`
	SubjectName string    `json:"subject_name"`
	Fingerprint string    `json:"fingerprint"`
	Holder      Identity  `json:"holder"`
	IssuedAt    time.Time `json:"issued_at"`
	Status      Status    `json:"status"`
	IssuedBy    Identity  `json:"issued_by"`
}

// NewCertificate validates issuance fields and builds a certificate pending
// id assignment by the store. Fields are checked in a fixed order so callers
// always see the first violation: holder name, subject name, fingerprint,
// holder identity.
func NewCertificate(holderName, subjectName, fingerprint string, holder Identity, issuedBy Identity, issuedAt time.Time) (*Certificate, error) {
	holderName = strings.TrimSpace(holderName)
	subjectName = strings.TrimSpace(subjectName)
	fingerprint = strings.TrimSpace(fingerprint)

	if holderName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "holder name cannot be empty")
	}
	if subjectName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "subject name cannot be empty")
	}
	if fingerprint == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "fingerprint cannot be empty")
	}
	if holder.IsNull() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid holder identity")
	}

	return &Certificate{
		HolderName:  holderName,
		SubjectName: subjectName,
		Fingerprint: fingerprint,
		Holder:      holder,
		IssuedAt:    issuedAt,
		Status:      StatusValid,
		IssuedBy:    issuedBy,
	}, nil
}

func (c *Certificate) IsValid() bool {
	return c.Status == StatusValid
}

// CanRevoke checks the one-way transition precondition. Use with
// ApplyRevocation inside a store Execute callback so the check and the
// mutation happen under the same lock.
func (c *Certificate) CanRevoke() error {
	if c.Status == StatusRevoked {
		return dErrors.New(dErrors.CodeInvariantViolation, "certificate already revoked")
	}
	return nil
}

// ApplyRevocation transitions the certificate to revoked. Call CanRevoke
// first to validate the transition.
func (c *Certificate) ApplyRevocation() {
	c.Status = StatusRevoked
}
