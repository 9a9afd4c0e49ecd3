package registry_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "certledger/internal/auth/handler"
	authservice "certledger/internal/auth/service"
	"certledger/internal/jwttoken"
	"certledger/internal/platform/logger"
	"certledger/internal/registry/access"
	"certledger/internal/registry/events"
	reghandler "certledger/internal/registry/handler"
	"certledger/internal/registry/service"
	"certledger/internal/registry/store"
	"certledger/pkg/testutil"
)

// newStack wires the full HTTP surface over in-memory stores, the same
// composition cmd/server performs without Postgres, Redis, or Kafka
// configured.
func newStack(t *testing.T) (http.Handler, *events.MemoryPublisher) {
	t.Helper()

	log := logger.New()

	control, err := access.New("0xowner", access.NewInMemoryAdminStore())
	require.NoError(t, err)

	publisher := events.NewMemoryPublisher()
	registry := service.New(control, store.NewInMemory(), service.WithPublisher(publisher))

	tokens := jwttoken.NewService("test-signing-key", "certledger", "certledger-api")
	hash, err := authservice.HashPassword("admin123")
	require.NoError(t, err)
	auth := authservice.New("admin", hash, tokens, log)

	router := chi.NewRouter()
	authhandler.New(auth, log).Register(router)
	reghandler.New(registry, auth, log).Register(router)
	return router, publisher
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}))
	testutil.AssertStatusOK(t, rr)

	type loginResponse struct {
		Token string `json:"token"`
	}
	return testutil.UnmarshalResponse[loginResponse](t, rr).Token
}

func asAdmin(req *http.Request, token string, caller string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Caller-Identity", caller)
	return req
}

func TestCertificateLifecycle(t *testing.T) {
	router, publisher := newStack(t)
	token := login(t, router)

	issueBody := map[string]string{
		"holder_name":  "Alice Smith",
		"subject_name": "Distributed Systems",
		"fingerprint":  "QmLifecycle",
		"holder":       "0xholder",
	}

	testutil.Given(t, "an issued certificate", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPost, "/api/certificates", issueBody), token, "0xowner"))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		testutil.AssertJSONContains(t, rr, "id", float64(1))
	})

	testutil.When(t, "the certificate is verified", func(t *testing.T) {
		byID := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/certificates/1/verify"))
		testutil.AssertStatusOK(t, byID)
		testutil.AssertJSONContains(t, byID, "is_valid", true)

		byFP := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/certificates/verify?fingerprint=QmLifecycle"))
		testutil.AssertStatusOK(t, byFP)
		assert.JSONEq(t, byID.Body.String(), byFP.Body.String())
	})

	testutil.When(t, "the fingerprint is reused", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPost, "/api/certificates", issueBody), token, "0xowner"))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	testutil.When(t, "the certificate is revoked", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewRequest(t, http.MethodPost, "/api/certificates/1/revoke"), token, "0xowner"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	testutil.Then(t, "verification reports it invalid with full details", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/certificates/1/verify"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "is_valid", false)
		assert.Contains(t, rr.Body.String(), `"holder_name":"Alice Smith"`)
	})

	testutil.Then(t, "the fingerprint stays burned", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPost, "/api/certificates", issueBody), token, "0xowner"))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	testutil.Then(t, "one event was emitted per mutation", func(t *testing.T) {
		emitted := publisher.Events()
		require.Len(t, emitted, 2)
		assert.Equal(t, events.TypeCertificateIssued, emitted[0].Type)
		assert.Equal(t, events.TypeCertificateRevoked, emitted[1].Type)
	})
}

func TestAdminDelegation(t *testing.T) {
	router, _ := newStack(t)
	token := login(t, router)

	testutil.Given(t, "the owner grants an admin", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPut, "/api/admins/0xdelegate", map[string]bool{"enabled": true}),
			token, "0xowner"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)

		check := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/admins/0xdelegate"))
		testutil.AssertStatusOK(t, check)
		testutil.AssertJSONContains(t, check, "is_admin", true)
	})

	testutil.When(t, "the delegate issues a certificate", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPost, "/api/certificates", map[string]string{
				"holder_name":  "Bob",
				"subject_name": "Algorithms",
				"fingerprint":  "QmDelegate",
				"holder":       "0xholder2",
			}), token, "0xdelegate"))
		testutil.AssertStatus(t, rr, http.StatusCreated)
	})

	testutil.When(t, "the delegate tries to grant admins", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPut, "/api/admins/0xother", map[string]bool{"enabled": true}),
			token, "0xdelegate"))
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})

	testutil.Then(t, "an unknown wallet cannot issue even with a session", func(t *testing.T) {
		rr := testutil.DoRequest(router, asAdmin(
			testutil.NewJSONRequest(t, http.MethodPost, "/api/certificates", map[string]string{
				"holder_name":  "Eve",
				"subject_name": "Algorithms",
				"fingerprint":  "QmEve",
				"holder":       "0xholder3",
			}), token, "0xstranger"))
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})

	testutil.Then(t, "registry info reflects the issued certificates", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/registry/info"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "owner", "0xowner")
		testutil.AssertJSONContains(t, rr, "total_certificates", float64(1))
	})
}
