package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/charts/pkg/chart"
	"github.com/matzehuels/charts/pkg/errors"
	"github.com/matzehuels/charts/pkg/input"
	"github.com/matzehuels/charts/pkg/observability"
	"github.com/matzehuels/charts/pkg/render"
	"github.com/matzehuels/charts/pkg/render/sink"
)

// Runner executes the chart pipeline.
//
// The Runner holds no per-run state, so one Runner may serve several runs.
// Runs that share an Output path race on it; the last writer wins.
type Runner struct {
	Options    Options
	Logger     *log.Logger
	Rasterizer render.Rasterizer
}

// NewRunner validates opts and resolves the rasterizer.
// If logger is nil, logs are discarded.
func NewRunner(opts Options, logger *log.Logger) (*Runner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r, err := render.NewRasterizer(opts.Rasterizer)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid rasterizer")
	}
	return &Runner{Options: opts, Logger: logger, Rasterizer: r}, nil
}

// Execute runs validate → dispatch → render for one captured request.
//
// The returned Result is never nil. On failure its State is StateFailed and
// the error carries the failing stage; a cancelled ctx is reported as
// ctx.Err() before the next stage starts.
func (r *Runner) Execute(ctx context.Context, raw input.RawInput) (*Result, error) {
	res := &Result{State: StateCapturing}

	// Stage 1: Validate
	var v input.Validated
	err := r.stage(ctx, res, StateValidating, errors.StageValidate, func() error {
		var err error
		v, err = input.Validate(raw)
		return err
	})
	if err != nil {
		return res, err
	}
	r.Logger.Debug("validated input", "chart", v.ChartName, "duration", res.Stats.ValidateTime)

	// Stage 2: Dispatch
	var c chart.Chart
	err = r.stage(ctx, res, StateDispatching, errors.StageDispatch, func() error {
		var err error
		c, err = chart.Dispatch(v.ChartName, v.JSON)
		return err
	})
	if err != nil {
		return res, err
	}
	res.Chart = c.Kind()
	r.Logger.Debug("dispatched chart", "chart", c.Kind(), "duration", res.Stats.DispatchTime)

	// Stage 3: Render
	var size int
	err = r.stage(ctx, res, StateRendering, errors.StageRender, func() error {
		var err error
		size, err = r.Render(ctx, c)
		return err
	})
	if err != nil {
		return res, err
	}
	res.Output = r.Options.Output
	res.Size = size
	res.State = StateDone
	r.Logger.Debug("rendered chart",
		"chart", c.Kind(),
		"output", res.Output,
		"bytes", size,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// stage moves res into state, runs fn and reports it to the stage hooks.
func (r *Runner) stage(ctx context.Context, res *Result, state State, stage errors.Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		res.State = StateFailed
		return err
	}
	res.State = state

	hooks := observability.Stages()
	hooks.OnStageStart(ctx, string(stage))
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	res.Stats.record(stage, elapsed)
	hooks.OnStageComplete(ctx, string(stage), elapsed, err)

	if err != nil {
		res.State = StateFailed
		return err
	}
	return nil
}

// Render draws c as SVG, rasterizes it to JPEG and persists the result to
// the configured output path. It returns the number of bytes written.
//
// Every failure is tagged with the chart kind: VECTOR_RENDER_FAILURE,
// RASTER_CONVERSION_FAILURE or PERSIST_FAILURE.
func (r *Runner) Render(ctx context.Context, c chart.Chart) (int, error) {
	kind := string(c.Kind())

	svg, err := sink.RenderSVG(c)
	if err != nil {
		return 0, err
	}
	r.Logger.Debug("generated svg", "chart", kind, "bytes", len(svg))

	jpg, err := render.ToJPEG(ctx, svg,
		render.WithRasterizer(r.Rasterizer),
		render.WithQuality(r.Options.Quality),
		render.WithScale(r.Options.Scale),
	)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeRasterConversion, err, "raster conversion failed").WithChart(kind)
	}
	r.Logger.Debug("rasterized chart", "chart", kind, "rasterizer", r.Rasterizer.Name(), "bytes", len(jpg))

	if err := Persist(r.Options.Output, jpg); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			e.WithChart(kind)
		}
		return 0, err
	}
	return len(jpg), nil
}
