package gopool

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	errorx "github.com/tezrry/pow2/pkg/errors"
	"github.com/tezrry/pow2/pkg/logging"
	util_math "github.com/tezrry/pow2/util/math"
)

const defaultExpiryDuration = 10 * time.Second

// Pool spreads tasks round-robin over a power-of-two number of ants pools, so
// picking a shard is a mask of a counter.
type Pool struct {
	config   Config
	shards   []*ants.Pool
	mask     uint64
	next     atomic.Uint64
	released atomic.Bool
}

var _ Scheduler = (*Pool)(nil)

// New creates a Pool with at least shards shards of shardSize workers each.
func New(shards, shardSize int, config ...ConfigFunc) (*Pool, error) {
	if shards < 1 || shards > util_math.MaxPowerOfTwo[int]() {
		return nil, fmt.Errorf("%w: shard number %d", errorx.ErrInvalidSize, shards)
	}
	if shardSize < 1 {
		return nil, fmt.Errorf("%w: shard size %d", errorx.ErrInvalidSize, shardSize)
	}

	inst := &Pool{
		config: Config{
			ExpiryDuration: defaultExpiryDuration,
		},
	}
	for _, cf := range config {
		cf(&inst.config)
	}
	if inst.config.Logger == nil {
		inst.config.Logger = logging.GetDefaultLogger()
	}

	n := util_math.CeilToPowerOfTwo(shards)
	if n != shards {
		inst.config.Logger.Debugf("gopool shard number %d rounded up to %d", shards, n)
	}

	logger := inst.config.Logger
	opts := []ants.Option{
		ants.WithExpiryDuration(inst.config.ExpiryDuration),
		ants.WithNonblocking(inst.config.Nonblocking),
		ants.WithPreAlloc(inst.config.PreAlloc),
		ants.WithLogger(logging.Printf(logger.Infof)),
		ants.WithPanicHandler(func(p interface{}) {
			logger.Errorf("gopool: task panicked: %v", p)
		}),
	}

	inst.shards = make([]*ants.Pool, n)
	for i := range inst.shards {
		p, err := ants.NewPool(shardSize, opts...)
		if err != nil {
			inst.Release()
			return nil, err
		}
		inst.shards[i] = p
	}
	inst.mask = uint64(n - 1)

	return inst, nil
}

func (inst *Pool) submit(t _ITask) error {
	if inst.released.Load() {
		t.free()
		return errorx.ErrPoolClosed
	}

	shard := inst.shards[inst.next.Add(1)&inst.mask]
	err := shard.Submit(func() {
		t.run()
		t.free()
	})
	if err != nil {
		t.free()
		if errors.Is(err, ants.ErrPoolClosed) {
			return errorx.ErrPoolClosed
		}
		return err
	}
	return nil
}

// Schedule runs task with param on one of the shards.
func (inst *Pool) Schedule(ctx context.Context, task TaskFunc, param ...interface{}) error {
	return inst.submit(newTask(ctx, task, param...))
}

// ScheduleFuture runs task on one of the shards and sends either its result or
// its error to chRsp.
func (inst *Pool) ScheduleFuture(ctx context.Context, chRsp chan interface{}, task TaskFutureFunc, param ...interface{}) error {
	return inst.submit(newTaskFuture(ctx, chRsp, task, param...))
}

// Shards returns the number of shards, always a power of two.
func (inst *Pool) Shards() int {
	return len(inst.shards)
}

// Cap returns the total number of workers across shards.
func (inst *Pool) Cap() int {
	n := 0
	for _, p := range inst.shards {
		n += p.Cap()
	}
	return n
}

// Running returns the number of workers currently running tasks.
func (inst *Pool) Running() int {
	n := 0
	for _, p := range inst.shards {
		n += p.Running()
	}
	return n
}

// Release closes every shard. Tasks already submitted still run.
func (inst *Pool) Release() {
	inst.released.Store(true)
	for _, p := range inst.shards {
		if p != nil {
			p.Release()
		}
	}
}
