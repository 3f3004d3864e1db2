package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu      sync.Mutex
	values  map[string]string
	setErr  error
	evalErr error
	setNX   int
	evals   int
}

func newFakeRedis() *fakeRedis { return &fakeRedis{values: map[string]string{}} }

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setNX++
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

// EvalSha runs the owner compare-and-delete the release script performs.
func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals++
	if f.evalErr != nil {
		return redis.NewCmdResult(nil, f.evalErr)
	}
	if v, ok := f.values[keys[0]]; ok && v == args[0] {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) Eval(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, "", keys, args...)
}

func (f *fakeRedis) EvalRO(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, "", keys, args...)
}

func (f *fakeRedis) EvalShaRO(ctx context.Context, sha string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, sha, keys, args...)
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func (f *fakeRedis) set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.values[key]
	return ok
}

func TestParcelKey(t *testing.T) {
	require.Equal(t, "parcel:abc", ParcelKey("abc"))
}

func TestNewRedis_RequiresClient(t *testing.T) {
	_, err := NewRedis(nil, time.Second)
	require.Error(t, err)
}

func TestRedis_AcquireRelease(t *testing.T) {
	store := newFakeRedis()
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)

	release, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)
	require.True(t, store.has("parcel:1"))

	require.NoError(t, release(context.Background()))
	require.False(t, store.has("parcel:1"))
}

func TestRedis_WaitsForHolder(t *testing.T) {
	store := newFakeRedis()
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)
	l.retry = time.Millisecond

	first, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := l.Acquire(context.Background(), "parcel:1")
		if err == nil {
			_ = second(context.Background())
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire must wait for the first release")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, first(context.Background()))
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire did not proceed after release")
	}
}

func TestRedis_AcquireContextDone(t *testing.T) {
	store := newFakeRedis()
	store.set("parcel:1", "someone-else")
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)
	l.retry = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "parcel:1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedis_SetNXError(t *testing.T) {
	store := newFakeRedis()
	store.setErr = errors.New("conn refused")
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)

	_, err = l.Acquire(context.Background(), "parcel:1")
	require.ErrorContains(t, err, "conn refused")
}

func TestRedis_ReleaseKeepsForeignOwner(t *testing.T) {
	store := newFakeRedis()
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)

	release, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)

	// the TTL expired and another process took over
	store.set("parcel:1", "other-owner")

	require.NoError(t, release(context.Background()))
	require.True(t, store.has("parcel:1"))
}

func TestRedis_ReleaseIsSingleScriptCall(t *testing.T) {
	store := newFakeRedis()
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)

	release, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)
	require.NoError(t, release(context.Background()))
	require.Equal(t, 1, store.evals)
	require.False(t, store.has("parcel:1"))
}

func TestRedis_ReleaseError(t *testing.T) {
	store := newFakeRedis()
	l, err := NewRedis(store, time.Second)
	require.NoError(t, err)

	release, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)

	store.evalErr = errors.New("conn reset")
	err = release(context.Background())
	require.ErrorContains(t, err, "conn reset")
	require.ErrorContains(t, err, "release lock parcel:1")
}

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()
	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "parcel:1")
			if err != nil {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			_ = release(context.Background())
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, maxSeen)
	require.Zero(t, l.size(), "entries are dropped once unused")
}

func TestLocal_DistinctKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	r1, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)
	defer r1(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx, "parcel:2")
	require.NoError(t, err)
	require.NoError(t, r2(context.Background()))
}

func TestLocal_AcquireContextDone(t *testing.T) {
	l := NewLocal()
	r1, err := l.Acquire(context.Background(), "parcel:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "parcel:1")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, r1(context.Background()))
	require.NoError(t, r1(context.Background()), "release is idempotent")
	require.Zero(t, l.size())
}
