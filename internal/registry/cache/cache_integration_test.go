//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certledger/internal/platform/logger"
	platformredis "certledger/internal/platform/redis"
	"certledger/internal/registry/cache"
	"certledger/internal/registry/models"
	"certledger/pkg/testutil/containers"
)

type VerificationCacheSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	client *platformredis.Client
	cache  *cache.Verification
	ctx    context.Context
}

func (s *VerificationCacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(s.redis.URL)
	s.Require().NoError(err)
	s.Require().NotNil(client)
	s.client = client
	s.T().Cleanup(func() { _ = client.Close() })

	s.cache = cache.NewVerification(client, time.Minute, logger.New())
}

func (s *VerificationCacheSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(s.ctx).Err())
}

func TestVerificationCacheSuite(t *testing.T) {
	suite.Run(t, new(VerificationCacheSuite))
}

func (s *VerificationCacheSuite) entry(id int64, fingerprint string, valid bool) *cache.Entry {
	return &cache.Entry{
		IsValid: valid,
		Certificate: &models.Certificate{
			ID:          id,
			HolderName:  "Alice",
			SubjectName: "Algorithms",
			Fingerprint: fingerprint,
			Holder:      "0xholder",
			IssuedAt:    time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
			Status:      models.StatusValid,
			IssuedBy:    "0xowner",
		},
	}
}

func (s *VerificationCacheSuite) TestStoreServesBothKeys() {
	s.cache.Store(s.ctx, s.entry(7, "QmHash", true))

	byID, ok := s.cache.GetByID(s.ctx, 7)
	s.Require().True(ok)
	s.True(byID.IsValid)
	s.Equal("Alice", byID.Certificate.HolderName)

	byFP, ok := s.cache.GetByFingerprint(s.ctx, "QmHash")
	s.Require().True(ok)
	s.Equal(byID, byFP)
}

func (s *VerificationCacheSuite) TestMissOnUnknownKeys() {
	_, ok := s.cache.GetByID(s.ctx, 404)
	s.False(ok)

	_, ok = s.cache.GetByFingerprint(s.ctx, "QmUnknown")
	s.False(ok)
}

func (s *VerificationCacheSuite) TestInvalidateDropsBothKeys() {
	s.cache.Store(s.ctx, s.entry(7, "QmHash", true))

	s.cache.Invalidate(s.ctx, 7, "QmHash")

	_, ok := s.cache.GetByID(s.ctx, 7)
	s.False(ok)
	_, ok = s.cache.GetByFingerprint(s.ctx, "QmHash")
	s.False(ok)
}

func (s *VerificationCacheSuite) TestEntriesExpire() {
	short := cache.NewVerification(s.client, 100*time.Millisecond, logger.New())
	short.Store(s.ctx, s.entry(7, "QmHash", true))

	_, ok := short.GetByID(s.ctx, 7)
	s.Require().True(ok)

	s.Eventually(func() bool {
		_, ok := short.GetByID(s.ctx, 7)
		return !ok
	}, 2*time.Second, 50*time.Millisecond)
}
