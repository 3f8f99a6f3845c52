package kernel

import (
	"fmt"
	"runtime/debug"
)

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

func (p PanicInfo) Error() string {
	return fmt.Sprintf("task %d panicked: %v", p.TaskID, p.Value)
}

// SetPanicHandler installs the handler invoked when a task step panics.
//
// The panicking task is retired; other tasks keep running. The handler must
// not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.onPanic = fn
}

func (k *Kernel) runTask(st *taskState, ctx *Context) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			ok = false
			if k.onPanic != nil {
				k.onPanic(PanicInfo{TaskID: ctx.taskID, Value: v, Stack: debug.Stack()})
			}
		}
	}()
	st.task.Step(ctx)
	return true
}
