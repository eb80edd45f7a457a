package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/optirail/internal/logging"
	"github.com/aretw0/optirail/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger from a level name.
// Unknown levels fall back to info with a warning.
func CreateLogger(level string, json bool) *slog.Logger {
	lvl, err := logging.ParseLevel(level)
	logger := logging.NewWithWriter(os.Stderr, lvl, json)
	if err != nil {
		logger.Warn("Falling back to info level", "error", err)
	}
	return logger
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			logger.Debug("Trace Complete",
				"components", e.Components,
				"rays", e.Rays,
				"types", e.Types,
				"duration", e.Duration)
		},
		OnTraceError: func(ctx context.Context, e *domain.TraceEvent) {
			logger.Debug("Trace Failed",
				"components", e.Components,
				"code", domain.Code(e.Err),
				"err", e.Err)
		},
	}
}
