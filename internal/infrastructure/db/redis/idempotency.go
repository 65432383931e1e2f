package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour

	// pendingMarker holds a claimed key until the create it guards finishes.
	pendingMarker = "pending"
	claimAttempts = 2
)

// releaseIfEquals deletes KEYS[1] only while it still holds ARGV[1].
var releaseIfEquals = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore maps client-supplied Idempotency-Key values to the
// candidate they created. Keys are namespaced per owner so two users can
// reuse the same key.
// Key format: idem:<owner_id>:<key>
// Value: "pending" while the create runs, then the candidate id.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps the given Redis client. A non-positive ttl falls
// back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim reserves key with SETNX. When another request already holds it,
// claimed is false and candidateID is what that request stored, empty while
// it is still running.
func (s *IdempotencyStore) Claim(ctx context.Context, ownerID, key string) (bool, string, error) {
	k := s.key(ownerID, key)
	for i := 0; i < claimAttempts; i++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
		if err != nil {
			return false, "", fmt.Errorf("idempotency claim: %w", err)
		}
		if ok {
			return true, "", nil
		}

		held, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// Expired or released between SETNX and GET.
			continue
		}
		if err != nil {
			return false, "", fmt.Errorf("idempotency claim: %w", err)
		}
		return false, fromStored(held), nil
	}
	return false, "", nil
}

// Complete points a claimed key at the candidate it produced.
func (s *IdempotencyStore) Complete(ctx context.Context, ownerID, key, candidateID string) error {
	if err := s.client.Set(ctx, s.key(ownerID, key), candidateID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops key if it still holds value. An empty value releases a
// pending claim.
func (s *IdempotencyStore) Release(ctx context.Context, ownerID, key, value string) error {
	if err := releaseIfEquals.Run(ctx, s.client, []string{s.key(ownerID, key)}, toStored(value)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(ownerID, key string) string {
	return fmt.Sprintf("idem:%s:%s", ownerID, key)
}

func toStored(candidateID string) string {
	if candidateID == "" {
		return pendingMarker
	}
	return candidateID
}

func fromStored(v string) string {
	if v == pendingMarker {
		return ""
	}
	return v
}
