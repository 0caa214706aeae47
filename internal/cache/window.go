// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowKeyPrefix namespaces the counters in Valkey.
const windowKeyPrefix = "folio:window:"

// WindowCounter counts events per key in fixed time windows stored in
// Valkey, so every console instance shares the same counts.
type WindowCounter struct {
	client *redis.Client
	scope  string
}

// NewWindowCounter creates a counter. scope separates unrelated counters
// ("login", "upload") sharing one Valkey.
func NewWindowCounter(client *redis.Client, scope string) *WindowCounter {
	return &WindowCounter{client: client, scope: scope}
}

// Hit records one event for key and returns the number of events in the
// current window, this one included. The window starts with the first hit
// and lasts for window.
func (c *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := windowKeyPrefix + c.scope + ":" + key

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("window hit %s: %w", k, err)
	}
	return incr.Val(), nil
}

// Reset clears the count for key, e.g. after a successful login.
func (c *WindowCounter) Reset(ctx context.Context, key string) error {
	k := windowKeyPrefix + c.scope + ":" + key
	if err := c.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("window reset %s: %w", k, err)
	}
	return nil
}
