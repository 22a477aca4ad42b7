package queue

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/tezrry/pow2/pkg/errors"
	"github.com/tezrry/pow2/pkg/logging"
	util_math "github.com/tezrry/pow2/util/math"
)

const CacheLineSize = 128

// Ring is a bounded single-producer single-consumer queue. Its capacity is
// always a power of two, so a slot is addressed by masking the running index.
type Ring[T any] struct {
	num     atomic.Int64
	_       [CacheLineSize - unsafe.Sizeof(atomic.Int64{})]byte
	headIdx atomic.Uint64
	_       [CacheLineSize - unsafe.Sizeof(atomic.Uint64{})]byte
	tailIdx atomic.Uint64
	_       [CacheLineSize - unsafe.Sizeof(atomic.Uint64{})]byte
	slot    []T
	cap     uint64
	mod     uint64
	ch      chan struct{}
}

var _ IQueue[int] = (*Ring[int])(nil)

// NewRing creates a Ring holding at least capacity elements.
func NewRing[T any](capacity uint64, config ...ConfigFunc) (*Ring[T], error) {
	if capacity == 0 || capacity > util_math.MaxPowerOfTwo[uint64]() {
		return nil, fmt.Errorf("%w: ring capacity %d", errors.ErrInvalidSize, capacity)
	}

	var c Config
	for _, cf := range config {
		cf(&c)
	}
	if c.Logger == nil {
		c.Logger = logging.GetDefaultLogger()
	}

	size := util_math.CeilToPowerOfTwo(capacity)
	if size != capacity {
		c.Logger.Debugf("ring capacity %d rounded up to %d", capacity, size)
	}

	return &Ring[T]{
		slot: make([]T, size),
		cap:  size,
		mod:  size - 1,
		ch:   make(chan struct{}, 1),
	}, nil
}

// Enqueue appends v. While the ring is full it yields the processor until the
// consumer frees a slot, so it never fails and always returns true. It must
// only be called from the producer goroutine.
func (inst *Ring[T]) Enqueue(v T) bool {
	tail := inst.tailIdx.Load()
	for inst.headIdx.Load()+inst.cap <= tail {
		runtime.Gosched()
	}

	inst.slot[tail&inst.mod] = v
	inst.tailIdx.Store(tail + 1)

	if inst.num.Add(1) < 1 {
		select {
		case inst.ch <- struct{}{}:
		default:
		}
	}
	return true
}

// Dequeue removes the oldest element, blocking while the ring is empty. It
// must only be called from the consumer goroutine.
func (inst *Ring[T]) Dequeue() T {
	if inst.num.Add(-1) < 0 {
		<-inst.ch
	}

	head := inst.headIdx.Load()
	idx := head & inst.mod
	v := inst.slot[idx]
	var zero T
	inst.slot[idx] = zero
	inst.headIdx.Store(head + 1)
	return v
}

// Len returns the number of elements waiting to be dequeued.
func (inst *Ring[T]) Len() int {
	v := inst.num.Load()
	if v < 0 {
		return 0
	}
	return int(v)
}

// Cap returns the rounded capacity.
func (inst *Ring[T]) Cap() int {
	return int(inst.cap)
}
