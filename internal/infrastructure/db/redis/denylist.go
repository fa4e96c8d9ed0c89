package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campus/student-registration/internal/core/domain"
)

// Denylist records revoked token ids until they would have expired anyway.
// Key format: revoked:<token_id>
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Add marks id as revoked for ttl. A non-positive ttl is a no-op since the
// token is already expired.
func (d *Denylist) Add(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(id), "1", ttl).Err(); err != nil {
		return domain.StoreError("deny token", err)
	}
	return nil
}

// Contains reports whether id has been revoked.
func (d *Denylist) Contains(ctx context.Context, id string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(id)).Result()
	if err != nil {
		return false, domain.StoreError("check denylist", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(id string) string {
	return fmt.Sprintf("revoked:%s", id)
}
