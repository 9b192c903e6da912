// Package observability provides hooks for logging and metrics around the
// chart pipeline.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive an event when each pipeline stage starts and completes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the pipeline never
// imports a logging or metrics backend directly.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStageHooks(&myStageHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Stages().OnStageStart(ctx, "dispatch")
//	// ... run the stage ...
//	observability.Stages().OnStageComplete(ctx, "dispatch", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// StageHooks receives events from the chart pipeline.
type StageHooks interface {
	// OnStageStart is called before a stage runs.
	OnStageStart(ctx context.Context, stage string)

	// OnStageComplete is called after a stage ran, with its error if it failed.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
}

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string)                            {}
func (NoopStageHooks) OnStageComplete(context.Context, string, time.Duration, error) {}

var (
	stageHooks StageHooks = NoopStageHooks{}
	hooksMu    sync.RWMutex
)

// SetStageHooks registers custom stage hooks.
// This should be called once at application startup before running the pipeline.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// Stages returns the registered stage hooks.
func Stages() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
}
