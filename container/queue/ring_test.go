package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tezrry/pow2/pkg/errors"
)

type debugRecorder struct {
	mu    sync.Mutex
	debug []string
}

func (r *debugRecorder) Debugf(format string, _ ...interface{}) {
	r.mu.Lock()
	r.debug = append(r.debug, format)
	r.mu.Unlock()
}
func (r *debugRecorder) Infof(string, ...interface{})  {}
func (r *debugRecorder) Warnf(string, ...interface{})  {}
func (r *debugRecorder) Errorf(string, ...interface{}) {}
func (r *debugRecorder) Fatalf(string, ...interface{}) {}

func TestNewRingCapacity(t *testing.T) {
	for _, c := range []struct{ in, want uint64 }{
		{1, 1}, {2, 2}, {3, 4}, {5, 8}, {8, 8}, {1000, 1024}, {1 << 20, 1 << 20},
	} {
		r, err := NewRing[int](c.in)
		require.NoError(t, err)
		require.Equal(t, int(c.want), r.Cap())
		require.Equal(t, c.want-1, r.mod)
	}
}

func TestNewRingInvalid(t *testing.T) {
	_, err := NewRing[int](0)
	require.ErrorIs(t, err, errors.ErrInvalidSize)

	_, err = NewRing[int](1<<63 + 1)
	require.ErrorIs(t, err, errors.ErrInvalidSize)
}

func TestNewRingLogsRounding(t *testing.T) {
	rec := &debugRecorder{}
	_, err := NewRing[int](6, WithLogger(rec))
	require.NoError(t, err)
	_, err = NewRing[int](16, WithLogger(rec))
	require.NoError(t, err)
	require.Len(t, rec.debug, 1)
}

func TestRingSequential(t *testing.T) {
	r, err := NewRing[string](3)
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c", "d"} {
		require.True(t, r.Enqueue(s))
	}
	require.Equal(t, 4, r.Len())
	require.Equal(t, "a", r.Dequeue())
	require.Equal(t, "b", r.Dequeue())
	require.True(t, r.Enqueue("e"))
	require.Equal(t, "c", r.Dequeue())
	require.Equal(t, "d", r.Dequeue())
	require.Equal(t, "e", r.Dequeue())
	require.Equal(t, 0, r.Len())
}

func TestRingEnqueueWaitsWhileFull(t *testing.T) {
	r, err := NewRing[int](2)
	require.NoError(t, err)
	require.True(t, r.Enqueue(1))
	require.True(t, r.Enqueue(2))

	var done atomic.Bool
	result := make(chan bool, 1)
	go func() {
		ok := r.Enqueue(3)
		done.Store(true)
		result <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	require.False(t, done.Load())
	require.Equal(t, 1, r.Dequeue())
	require.True(t, <-result)
	require.Equal(t, 2, r.Dequeue())
	require.Equal(t, 3, r.Dequeue())
}

func TestRingProducerConsumer(t *testing.T) {
	const num = 100000
	r, err := NewRing[uint64](100)
	require.NoError(t, err)
	require.Equal(t, 128, r.Cap())

	go func() {
		for i := uint64(0); i < num; i++ {
			r.Enqueue(i)
		}
	}()

	for i := uint64(0); i < num; i++ {
		require.Equal(t, i, r.Dequeue())
	}
	require.Equal(t, 0, r.Len())
}

func bench_ring(b *testing.B, capacity, num uint64) {
	var wg sync.WaitGroup
	for i := 0; i < b.N; i++ {
		r, _ := NewRing[uint64](capacity)
		wg.Add(1)
		go func() {
			for j := uint64(0); j < num; j++ {
				r.Dequeue()
			}
			wg.Done()
		}()
		for j := uint64(0); j < num; j++ {
			r.Enqueue(j)
		}
		wg.Wait()
	}
}

func bench_channel(b *testing.B, capacity, num uint64) {
	var wg sync.WaitGroup
	for i := 0; i < b.N; i++ {
		ch := make(chan uint64, capacity)
		wg.Add(1)
		go func() {
			for j := uint64(0); j < num; j++ {
				<-ch
			}
			wg.Done()
		}()
		for j := uint64(0); j < num; j++ {
			ch <- j
		}
		wg.Wait()
	}
}

func Benchmark_ring_1024x65536(b *testing.B) {
	bench_ring(b, 1024, 65536)
}

func Benchmark_channel_1024x65536(b *testing.B) {
	bench_channel(b, 1024, 65536)
}
