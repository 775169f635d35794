// Package redis builds the client backing the verification reclaim cache
// and the login nonce store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to addr and verifies the connection with a ping. It
// panics on failure: a configured-but-unreachable redis is a deployment
// error, while an unconfigured one simply disables the caches upstream.
func NewClient(addr string) *redis.Client {
	options := &redis.Options{
		Addr:            addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cmd := client.Ping(ctx); cmd.Err() != nil {
		panic(cmd.Err())
	}

	return client
}
