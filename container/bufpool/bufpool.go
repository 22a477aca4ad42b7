// Package bufpool pools byte buffers in power-of-two size classes.
package bufpool

import (
	"fmt"
	"math"
	"math/bits"
	"sync"

	"github.com/valyala/bytebufferpool"

	"github.com/tezrry/pow2/pkg/errors"
	"github.com/tezrry/pow2/pkg/logging"
	util_math "github.com/tezrry/pow2/util/math"
)

// Pool hands out buffers whose capacity is the size class covering the
// request. Each class keeps its own sync.Pool of *bytebufferpool.ByteBuffer.
type Pool struct {
	config     Config
	pageSize   int
	minShift   int
	maxRequest int
	classes    []sync.Pool
}

// New creates a Pool. Without options the classes span 64 bytes to 64 pages.
func New(config ...ConfigFunc) (*Pool, error) {
	ps := pageSize()
	inst := &Pool{
		config: Config{
			MinSize: DefaultMinSize,
			MaxSize: defaultMaxPages * ps,
		},
		pageSize: ps,
	}

	for _, cf := range config {
		cf(&inst.config)
	}
	if inst.config.Logger == nil {
		inst.config.Logger = logging.GetDefaultLogger()
	}

	lo, hi := inst.config.MinSize, inst.config.MaxSize
	if !util_math.IsPowerOfTwo(lo) || !util_math.IsPowerOfTwo(hi) {
		return nil, fmt.Errorf("%w: size classes %d..%d must be powers of two", errors.ErrInvalidSize, lo, hi)
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: MinSize %d greater than MaxSize %d", errors.ErrInvalidSize, lo, hi)
	}

	inst.minShift = bits.TrailingZeros(uint(lo))
	inst.classes = make([]sync.Pool, bits.TrailingZeros(uint(hi))-inst.minShift+1)
	for i := range inst.classes {
		size := lo << i
		inst.classes[i].New = func() any {
			return &bytebufferpool.ByteBuffer{B: make([]byte, 0, size)}
		}
	}
	// AlignUp to a page must not overflow int.
	inst.maxRequest = math.MaxInt - ps + 1
	return inst, nil
}

func (inst *Pool) classIndex(size int) int {
	return bits.TrailingZeros(uint(size)) - inst.minShift
}

// Get returns an empty buffer with room for at least n bytes. It panics with
// ErrInvalidSize if n is negative or too large to be rounded up to a page.
func (inst *Pool) Get(n int) *bytebufferpool.ByteBuffer {
	size := inst.ClassSize(n)
	if n > inst.config.MaxSize {
		inst.config.Logger.Debugf("buffer of %d bytes exceeds the largest class, allocating %d", n, size)
		return &bytebufferpool.ByteBuffer{B: make([]byte, 0, size)}
	}

	buf := inst.classes[inst.classIndex(size)].Get().(*bytebufferpool.ByteBuffer)
	if cap(buf.B) < size {
		buf.B = make([]byte, 0, size)
	}
	return buf
}

// Put returns buf to the class its capacity falls in. Buffers smaller than
// the smallest class or larger than the largest are dropped.
func (inst *Pool) Put(buf *bytebufferpool.ByteBuffer) {
	if buf == nil {
		return
	}

	c := cap(buf.B)
	if c < inst.config.MinSize || c > inst.config.MaxSize {
		return
	}

	buf.Reset()
	inst.classes[inst.classIndex(util_math.FloorToPowerOfTwo(c))].Put(buf)
}

// ClassSize returns the capacity a Get(n) buffer is guaranteed to have, or
// the page-aligned size for requests above MaxSize.
func (inst *Pool) ClassSize(n int) int {
	if n < 0 || n > inst.maxRequest {
		panic(fmt.Errorf("%w: buffer size %d", errors.ErrInvalidSize, n))
	}

	switch {
	case n > inst.config.MaxSize:
		return util_math.AlignUp(n, inst.pageSize)
	case n <= inst.config.MinSize:
		return inst.config.MinSize
	default:
		return util_math.CeilToPowerOfTwo(n)
	}
}

// Classes returns the number of size classes.
func (inst *Pool) Classes() int {
	return len(inst.classes)
}
