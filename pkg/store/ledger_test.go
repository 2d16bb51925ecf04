package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"databowl-gateway/pkg/config"
)

func newTestLedger(t *testing.T) (*RedisLedger, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	l := NewRedisLedger(config.RedisConfig{Address: mr.Addr(), DedupeTTL: time.Hour, PendingTTL: time.Minute})
	t.Cleanup(func() { _ = l.Close() })
	return l, mr
}

func TestRedisLedger_PendingThenDone(t *testing.T) {
	l, mr := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Ping(ctx))

	got, err := l.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Reserved, got)
	assert.Equal(t, statePending, mustGet(t, mr, "abc"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"abc"))

	got, err = l.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, InFlight, got)

	require.NoError(t, l.Complete(ctx, "abc"))
	assert.Equal(t, stateDone, mustGet(t, mr, "abc"))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"abc"))

	got, err = l.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Completed, got)

	got, err = l.Reserve(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, Reserved, got)
}

func TestRedisLedger_Release(t *testing.T) {
	l, mr := newTestLedger(t)
	ctx := context.Background()

	got, err := l.Reserve(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, Reserved, got)

	require.NoError(t, l.Release(ctx, "abc"))
	assert.False(t, mr.Exists(keyPrefix+"abc"))

	got, err = l.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Reserved, got)
}

func TestRedisLedger_CompleteAfterExpiryIsNoop(t *testing.T) {
	l, mr := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Reserve(ctx, "abc")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	require.NoError(t, l.Complete(ctx, "abc"))
	assert.False(t, mr.Exists(keyPrefix+"abc"))
}

func TestRedisLedger_Expiry(t *testing.T) {
	l, mr := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Reserve(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, l.Complete(ctx, "abc"))

	mr.FastForward(2 * time.Hour)

	got, err := l.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Reserved, got)
}

func TestRedisLedger_Unavailable(t *testing.T) {
	l, mr := newTestLedger(t)
	mr.Close()

	_, err := l.Reserve(context.Background(), "abc")
	assert.Error(t, err)
}

func TestNoopLedger(t *testing.T) {
	var l Ledger = NoopLedger{}
	for i := 0; i < 2; i++ {
		got, err := l.Reserve(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, Reserved, got)
	}
	assert.NoError(t, l.Complete(context.Background(), "abc"))
	assert.NoError(t, l.Release(context.Background(), "abc"))
	assert.NoError(t, l.Close())
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(keyPrefix + key)
	require.NoError(t, err)
	return v
}
