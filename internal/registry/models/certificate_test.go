package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "certledger/pkg/domain-errors"
)

func TestNewCertificate_ValidationOrder(t *testing.T) {
	issuedAt := time.Now()

	tests := []struct {
		name        string
		holderName  string
		subjectName string
		fingerprint string
		holder      Identity
		wantMsg     string
	}{
		{"empty holder name reported first", "", "", "", NullIdentity, "holder name cannot be empty"},
		{"empty subject name reported second", "Alice Smith", "", "", NullIdentity, "subject name cannot be empty"},
		{"empty fingerprint reported third", "Alice Smith", "Distributed Systems", "", NullIdentity, "fingerprint cannot be empty"},
		{"null holder reported last", "Alice Smith", "Distributed Systems", "QmHash1", NullIdentity, "invalid holder identity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCertificate(tt.holderName, tt.subjectName, tt.fingerprint, tt.holder, "issuer-1", issuedAt)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewCertificate_TrimsAndDefaults(t *testing.T) {
	issuedAt := time.Now()

	cert, err := NewCertificate("  Alice Smith  ", " Distributed Systems ", " QmHash1 ", "holder-1", "issuer-1", issuedAt)
	require.NoError(t, err)

	assert.Equal(t, "Alice Smith", cert.HolderName)
	assert.Equal(t, "Distributed Systems", cert.SubjectName)
	assert.Equal(t, "QmHash1", cert.Fingerprint)
	assert.Equal(t, StatusValid, cert.Status)
	assert.True(t, cert.IsValid())
	assert.Equal(t, issuedAt, cert.IssuedAt)
	assert.Equal(t, Identity("issuer-1"), cert.IssuedBy)
	assert.Zero(t, cert.ID, "id is assigned by the store, not the constructor")
}

func TestCertificate_RevocationIsOneWay(t *testing.T) {
	cert, err := NewCertificate("Alice", "Course", "QmHash1", "holder-1", "issuer-1", time.Now())
	require.NoError(t, err)

	require.NoError(t, cert.CanRevoke())
	cert.ApplyRevocation()
	assert.False(t, cert.IsValid())

	err = cert.CanRevoke()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestIdentity_Null(t *testing.T) {
	assert.True(t, NullIdentity.IsNull())
	assert.True(t, Identity("   ").IsNull())
	assert.False(t, Identity("0xabc").IsNull())
}
