package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"databowl-gateway/pkg/config"
)

const (
	keyPrefix = "databowl:lead:"

	statePending = "pending"
	stateDone    = "done"
)

// Reservation is the outcome of claiming an idempotency key.
type Reservation int

const (
	// Reserved means the caller owns the key and must Complete or Release it.
	Reserved Reservation = iota
	// InFlight means another submission holds the key and has not finished.
	InFlight
	// Completed means a submission with this key was accepted upstream.
	Completed
)

func (r Reservation) String() string {
	switch r {
	case Reserved:
		return "reserved"
	case InFlight:
		return "in_flight"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Ledger remembers which lead submissions are in flight or done, so a
// repeated POST with the same idempotency key is not forwarded twice.
type Ledger interface {
	// Reserve claims key as pending, or reports who holds it.
	Reserve(ctx context.Context, key string) (Reservation, error)
	// Complete marks a reserved key as accepted upstream.
	Complete(ctx context.Context, key string) error
	// Release drops a claim after a failed submission.
	Release(ctx context.Context, key string) error
	Close() error
}

// RedisLedger keeps reservations in Redis. A key is written as pending with
// SET NX and a short TTL, then switched to done with SET XX and the dedupe TTL.
type RedisLedger struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewRedisLedger creates a ledger backed by a new Redis client.
func NewRedisLedger(cfg config.RedisConfig) *RedisLedger {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisLedger{client: rdb, ttl: cfg.DedupeTTL, pendingTTL: cfg.PendingTTL}
}

// Ping tests the Redis connection
func (l *RedisLedger) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (l *RedisLedger) Reserve(ctx context.Context, key string) (Reservation, error) {
	// The second pass covers a key that expired between SET NX and GET.
	for i := 0; i < 2; i++ {
		ok, err := l.client.SetNX(ctx, keyPrefix+key, statePending, l.pendingTTL).Result()
		if err != nil {
			return Reserved, fmt.Errorf("error reserving lead key: %w", err)
		}
		if ok {
			return Reserved, nil
		}

		state, err := l.client.Get(ctx, keyPrefix+key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return Reserved, fmt.Errorf("error reading lead key: %w", err)
		}
		if state == stateDone {
			return Completed, nil
		}
		return InFlight, nil
	}
	return InFlight, nil
}

func (l *RedisLedger) Complete(ctx context.Context, key string) error {
	if err := l.client.SetXX(ctx, keyPrefix+key, stateDone, l.ttl).Err(); err != nil {
		return fmt.Errorf("error completing lead key: %w", err)
	}
	return nil
}

func (l *RedisLedger) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("error releasing lead key: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (l *RedisLedger) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// NoopLedger accepts every reservation. Used when Redis is not configured.
type NoopLedger struct{}

func (NoopLedger) Reserve(context.Context, string) (Reservation, error) { return Reserved, nil }
func (NoopLedger) Complete(context.Context, string) error               { return nil }
func (NoopLedger) Release(context.Context, string) error                { return nil }
func (NoopLedger) Close() error                                         { return nil }
