// Package cache provides a Redis read-through cache for verification
// lookups. Entries carry a short TTL to bound retention of registry data;
// revocation invalidates eagerly so a revoked certificate is never reported
// valid for a full TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"certledger/internal/platform/redis"
	"certledger/internal/registry/models"
)

// Entry is the cached verification result.
type Entry struct {
	IsValid     bool                `json:"is_valid"`
	Certificate *models.Certificate `json:"certificate"`
}

// Verification caches verification responses keyed by certificate id and by
// fingerprint. All cache failures are fail-open: a miss is returned and the
// caller consults the registry.
type Verification struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewVerification(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Verification {
	return &Verification{client: client, ttl: ttl, logger: logger}
}

func idKey(id int64) string {
	return "certledger:verify:id:" + strconv.FormatInt(id, 10)
}

func fingerprintKey(fp string) string {
	return "certledger:verify:fp:" + fp
}

// GetByID returns the cached entry for a certificate id, if present.
func (v *Verification) GetByID(ctx context.Context, id int64) (*Entry, bool) {
	return v.get(ctx, idKey(id))
}

// GetByFingerprint returns the cached entry for a fingerprint, if present.
func (v *Verification) GetByFingerprint(ctx context.Context, fp string) (*Entry, bool) {
	return v.get(ctx, fingerprintKey(fp))
}

// Store caches the verification result under both its keys.
func (v *Verification) Store(ctx context.Context, entry *Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	pipe := v.client.Pipeline()
	pipe.Set(ctx, idKey(entry.Certificate.ID), payload, v.ttl)
	pipe.Set(ctx, fingerprintKey(entry.Certificate.Fingerprint), payload, v.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		v.logger.DebugContext(ctx, "verification cache store failed", "error", err)
	}
}

// Invalidate drops both keys for a certificate, called on revocation.
func (v *Verification) Invalidate(ctx context.Context, id int64, fingerprint string) {
	if err := v.client.Del(ctx, idKey(id), fingerprintKey(fingerprint)).Err(); err != nil {
		v.logger.WarnContext(ctx, "verification cache invalidation failed",
			"certificate_id", id,
			"error", err,
		)
	}
}

func (v *Verification) get(ctx context.Context, key string) (*Entry, bool) {
	payload, err := v.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			v.logger.DebugContext(ctx, "verification cache read failed", "error", err)
		}
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		v.logger.DebugContext(ctx, "verification cache decode failed", "error", fmt.Errorf("unmarshal entry: %w", err))
		return nil, false
	}
	return &entry, true
}
