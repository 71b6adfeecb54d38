// Package goroutine запускает фоновые горутины с перехватом panic:
// сбой рассылки события или фонового обходчика не должен ронять процесс.
package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/ignatzorin/consulting-backend/internal/logger"
)

// SafeGo запускает fn в горутине; panic логируется со стеком и гасится.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext — то же для функций, принимающих контекст.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

func recoverPanic() {
	if r := recover(); r != nil {
		logger.WithComponent("goroutine").
			WithField("panic", r).
			Errorf("паника в фоновой горутине\n%s", debug.Stack())
	}
}
