// Package runtime owns the process lifecycle: the root context, shutdown
// ordering and the final exit code.
package runtime

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rockplan/rockplan/internal/logs"
)

type Runtime struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
}

type runtimeKey struct{}

// New builds the host runtime. The runtime pointer rides on the root context
// so cobra handlers can recover it with FromContext; nothing below the
// command layer is allowed to reach for it.
func New() *Runtime {
	baseCtx, cancel := context.WithCancel(context.Background())
	rt := &Runtime{cancelFunc: cancel}
	rt.ctx = context.WithValue(baseCtx, runtimeKey{}, rt)
	return rt
}

func FromContext(ctx context.Context) *Runtime {
	rt, _ := ctx.Value(runtimeKey{}).(*Runtime)
	return rt
}

func (rt *Runtime) Ctx() context.Context {
	return rt.ctx
}

func (rt *Runtime) CancelCtx() {
	rt.cancelFunc()
}

// Finalize is deferred from main. It turns panics into a stack dump plus
// exit 1, logs the command error if any, and picks the exit code.
func (rt *Runtime) Finalize(appName, helpHint string, execErr *error) {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "%s panic: %v\n", appName, r)
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
		if helpHint != "" {
			fmt.Fprintln(os.Stderr, helpHint)
		}
		rt.CancelCtx()
		os.Exit(1)
	}

	rt.CancelCtx()

	if execErr != nil && *execErr != nil {
		logs.Errorf("%s error: %v", appName, *execErr)
		if helpHint != "" {
			fmt.Fprintln(os.Stderr, helpHint)
		}
		os.Exit(1)
	}
}
