package gopool

import "context"

type TaskFunc func(ctx context.Context, param ...interface{})
type TaskFutureFunc func(ctx context.Context, param ...interface{}) (interface{}, error)

// Scheduler runs tasks asynchronously. A task whose context is already done
// when it is picked up is skipped; a future task then reports ctx.Err().
type Scheduler interface {
	Schedule(ctx context.Context, task TaskFunc, param ...interface{}) error
	ScheduleFuture(ctx context.Context, chRsp chan interface{}, task TaskFutureFunc, param ...interface{}) error
}
