package gopool

import (
	"context"
	"fmt"
	"sync"
)

var taskPool = sync.Pool{New: func() any { return new(_Task) }}
var taskFuturePool = sync.Pool{New: func() any { return new(_TaskFuture) }}

func newTask(ctx context.Context, f TaskFunc, param ...any) *_Task {
	inst := taskPool.Get().(*_Task)
	inst.ctx = ctx
	inst.f = f
	inst.param = param
	return inst
}

func freeTask(task *_Task) {
	task.ctx = nil
	task.f = nil
	task.param = nil
	taskPool.Put(task)
}

func newTaskFuture(ctx context.Context, chRsp chan any, f TaskFutureFunc, param ...any) *_TaskFuture {
	inst := taskFuturePool.Get().(*_TaskFuture)
	inst.ctx = ctx
	inst.f = f
	inst.param = param
	inst.chRsp = chRsp
	return inst
}

func freeTaskFuture(task *_TaskFuture) {
	task.ctx = nil
	task.f = nil
	task.param = nil
	task.chRsp = nil
	taskFuturePool.Put(task)
}

type _ITask interface {
	run()
	free()
}

type _Task struct {
	ctx   context.Context
	f     TaskFunc
	param []any
}

type _TaskFuture struct {
	ctx   context.Context
	f     TaskFutureFunc
	param []any
	chRsp chan any
}

func (inst *_Task) run() {
	if inst.ctx.Err() != nil {
		return
	}

	inst.f(inst.ctx, inst.param...)
}

func (inst *_Task) free() {
	freeTask(inst)
}

func (inst *_TaskFuture) run() {
	if err := inst.ctx.Err(); err != nil {
		inst.chRsp <- err
		return
	}

	defer func() {
		if r := recover(); r != nil {
			inst.chRsp <- fmt.Errorf("gopool: task panicked: %v", r)
			panic(r)
		}
	}()

	rsp, err := inst.f(inst.ctx, inst.param...)
	if err != nil {
		inst.chRsp <- err
		return
	}

	inst.chRsp <- rsp
}

func (inst *_TaskFuture) free() {
	freeTaskFuture(inst)
}
