package suite

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// compose wraps a test body with the hooks of the frames that were on
// the stack when the test was registered, outermost first.
//
// Setup walks the frames outer to inner: a frame whose completed
// counter is still zero runs its beforeAll hooks first, then every
// frame runs its beforeEach hooks. Setup errors propagate immediately.
// The body's error (or recovered panic) is held back while every frame
// gets its completion counters bumped and teardown walks the frames
// inner to outer: afterEach always, afterAll once the frame's waiting
// quota is met or its focused subset is exhausted. The held error is
// returned only after teardown finishes.
//
// Counter reads and writes take mu because a wrapper abandoned by its
// timeout keeps running in the background next to the current one.
// afterAll claims its gate under the same lock so the scope teardown
// runs at most once no matter which wrapper completes the scope.
func compose(fn Func, only bool, frames []*Frame, mu *sync.Mutex) Func {
	return func(ctx context.Context) error {
		for _, f := range frames {
			mu.Lock()
			first := f.completed == 0
			mu.Unlock()
			if first {
				if err := runHooks(ctx, f.beforeAll); err != nil {
					return err
				}
			}
			if err := runHooks(ctx, f.beforeEach); err != nil {
				return err
			}
		}

		err := runBody(ctx, fn)

		mu.Lock()
		for _, f := range frames {
			f.completed++
			if only {
				f.completedOnly++
			}
		}
		mu.Unlock()

		for i := len(frames) - 1; i >= 0; i-- {
			f := frames[i]
			if terr := runHooks(ctx, f.afterEach); terr != nil {
				return terr
			}
			mu.Lock()
			fire := !f.afterAllRun &&
				(f.waiting == f.completed || (f.only > 0 && f.only == f.completedOnly))
			if fire {
				f.afterAllRun = true
			}
			mu.Unlock()
			if fire {
				if terr := runHooks(ctx, f.afterAll); terr != nil {
					return terr
				}
			}
		}

		return err
	}
}

// runHooks launches every hook of one phase concurrently and waits for
// the whole group to settle before the next phase may start.
func runHooks(ctx context.Context, hooks []Hook) error {
	if len(hooks) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, h := range hooks {
		h := h
		g.Go(func() error { return h(gctx) })
	}
	return g.Wait()
}

// runBody invokes the test body, converting a panic into an error so a
// panicking test fails instead of tearing down the whole run.
func runBody(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("test panicked: %v", r)
		}
	}()
	return fn(ctx)
}
