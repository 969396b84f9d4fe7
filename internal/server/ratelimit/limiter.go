// Package ratelimit limits share-link redemption attempts per client. Two
// implementations are provided: a Redis-backed sliding window for
// multi-instance deployments and an in-process fixed window for
// single-node runs and tests.
package ratelimit

import "context"

// Limiter decides whether a request identified by key (typically a client
// IP) is allowed right now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
