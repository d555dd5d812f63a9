package lock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"director", "unit:A", "unit:B"}, sortedKeys([]string{"unit:B", "", "director", "unit:A", "unit:B"}))
}

func exerciseMutualExclusion(t *testing.T, l Locker) {
	t.Helper()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			release, err := l.Acquire(ctx, "unit:U1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestMemoryLocker_MutualExclusion(t *testing.T) {
	exerciseMutualExclusion(t, NewMemoryLocker())
}

func TestMemoryLocker_TimeoutReleasesPartialHold(t *testing.T) {
	l := NewMemoryLocker()
	release, err := l.Acquire(context.Background(), "unit:B")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "unit:A", "unit:B")
	require.ErrorIs(t, err, ErrTimeout)

	// unit:A must have been given back after the failed attempt.
	again, err := l.Acquire(context.Background(), "unit:A")
	require.NoError(t, err)
	again()
	release()
	release() // double release is harmless
}

func (l *MemoryLocker) liveSlots() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func TestMemoryLocker_DropsIdleSlots(t *testing.T) {
	l := NewMemoryLocker()
	for i := 0; i < 50; i++ {
		release, err := l.Acquire(context.Background(), "director", fmt.Sprintf("unit:U%d", i), fmt.Sprintf("officer:P%d", i))
		require.NoError(t, err)
		release()
	}
	assert.Zero(t, l.liveSlots())

	held, err := l.Acquire(context.Background(), "unit:B")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "unit:A", "unit:B")
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, l.liveSlots())

	// A waiter keeps the slot alive until it gets the lock and lets go.
	got := make(chan Release)
	go func() {
		r, err := l.Acquire(context.Background(), "unit:B")
		if assert.NoError(t, err) {
			got <- r
		}
	}()
	require.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		s, ok := l.slots["unit:B"]
		return ok && s.refs == 2
	}, time.Second, 5*time.Millisecond)
	held()
	(<-got)()
	assert.Zero(t, l.liveSlots())
}

func newRedisLocker(t *testing.T) (*miniredis.Miniredis, *RedisLocker) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisLocker(client, "roster:lock:", 5*time.Second, zap.NewNop())
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	_, l := newRedisLocker(t)
	exerciseMutualExclusion(t, l)
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	mr, l := newRedisLocker(t)

	release, err := l.Acquire(context.Background(), "director", "unit:U1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("roster:lock:director"))
	assert.True(t, mr.Exists("roster:lock:unit:U1"))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "director")
	require.ErrorIs(t, err, ErrTimeout)

	release()
	assert.False(t, mr.Exists("roster:lock:director"))
	assert.False(t, mr.Exists("roster:lock:unit:U1"))
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	mr, l := newRedisLocker(t)

	release, err := l.Acquire(context.Background(), "unit:U2")
	require.NoError(t, err)

	// Simulate expiry and takeover by another instance.
	require.NoError(t, mr.Set("roster:lock:unit:U2", "someone-else"))
	release()

	got, err := mr.Get("roster:lock:unit:U2")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
