// Package goroutine launches background work with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine and logs a panic with its stack instead of crashing.
func SafeGo(log logger.Interface, name string, fn func()) {
	go Run(log, name, fn)
}

// Run executes fn on the calling goroutine with the same recovery as SafeGo.
func Run(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

// Detach returns a context that keeps ctx values but is not cancelled with it.
// Used for best-effort work that must outlive the request that triggered it.
func Detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
