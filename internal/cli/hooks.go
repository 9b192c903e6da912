package cli

import (
	"context"
	"time"
)

// logHooks reports pipeline stages to the logger carried by the context.
type logHooks struct{}

func (logHooks) OnStageStart(ctx context.Context, stage string) {
	loggerFromContext(ctx).Debug("stage started", "stage", stage)
}

func (logHooks) OnStageComplete(ctx context.Context, stage string, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("stage failed", "stage", stage, "duration", d.Round(time.Microsecond), "err", err)
		return
	}
	l.Debug("stage completed", "stage", stage, "duration", d.Round(time.Microsecond))
}
