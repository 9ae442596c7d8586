package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// TaskKey tags log lines with the task being processed: an HTTP request id or
// the input a CLI run is solving.
const TaskKey ctxKey = "task"

// Attach a task id to ctx for timing logs.
func WithTask(ctx context.Context, task string) context.Context {
	return context.WithValue(ctx, TaskKey, task)
}

// Time logs the duration of an operation. Call the returned func, usually
// deferred, with a pointer to the operation's named error result.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	task, _ := ctx.Value(TaskKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("task=%s op=%s dur=%dms err=%v", task, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("task=%s op=%s dur=%dms", task, name, dur.Milliseconds())
	}
}
