// Package pipeline runs a captured chart request through validation,
// dispatch and rendering, and writes the resulting JPEG.
//
// # Architecture
//
// A run moves through a fixed sequence of states:
//
//	Capturing → Validating → Dispatching → Rendering → Done
//
// with Failed as the absorbing error state. Capturing happens in the caller
// (the CLI reads flags into an [input.RawInput]); the [Runner] drives the
// rest. Each stage runs at most once and the first failure ends the run.
// The returned error is a *errors.Error whose Stage field names the stage
// that failed.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(pipeline.Options{}, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, input.RawInput{
//	    ChartName: input.String("bar"),
//	    Path:      input.String("sales.json"),
//	})
//
// Cancellation is checked between stages only; a stage that has started
// runs to completion.
//
// [input.RawInput]: github.com/matzehuels/charts/pkg/input.RawInput
package pipeline

import (
	"time"

	"github.com/matzehuels/charts/pkg/chart"
	"github.com/matzehuels/charts/pkg/errors"
	"github.com/matzehuels/charts/pkg/render"
)

// DefaultOutput is the file every run writes, relative to the working directory.
const DefaultOutput = "chart.jpg"

// State is a step of the run state machine.
type State int

// Run states in execution order.
const (
	StateCapturing State = iota
	StateValidating
	StateDispatching
	StateRendering
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateCapturing:   "capturing",
	StateValidating:  "validating",
	StateDispatching: "dispatching",
	StateRendering:   "rendering",
	StateDone:        "done",
	StateFailed:      "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Options configures the render stage.
type Options struct {
	// Output is the JPEG path. The CLI always uses DefaultOutput.
	Output string

	// Quality is the JPEG quality, 1 to 100.
	Quality int

	// Scale multiplies the chart's pixel size.
	Scale float64

	// Rasterizer names the SVG engine: auto, rsvg or native.
	Rasterizer string

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Quality == 0 {
		o.Quality = render.DefaultQuality
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Rasterizer == "" {
		o.Rasterizer = render.RasterizerAuto
	}
}

// Validate checks option ranges. Failures are INVALID_OPTION errors.
func (o *Options) Validate() error {
	if o.Quality < 1 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidOption, "invalid quality %d (must be between 1 and 100)", o.Quality)
	}
	if !(o.Scale > 0) || o.Scale > 16 {
		return errors.New(errors.ErrCodeInvalidOption, "invalid scale %g (must be greater than 0 and at most 16)", o.Scale)
	}
	if _, err := render.NewRasterizer(o.Rasterizer); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid rasterizer")
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Result describes a pipeline run.
type Result struct {
	// State is StateDone on success and StateFailed otherwise.
	State State

	// Chart is the dispatched chart kind, empty if dispatch did not succeed.
	Chart chart.Kind

	// Output is the path written on success.
	Output string

	// Size is the number of JPEG bytes written.
	Size int

	// Stats contains stage timings.
	Stats Stats
}

// Stats contains pipeline execution timings. Stages that did not run
// report zero.
type Stats struct {
	ValidateTime time.Duration
	DispatchTime time.Duration
	RenderTime   time.Duration
}

func (s *Stats) record(stage errors.Stage, d time.Duration) {
	switch stage {
	case errors.StageValidate:
		s.ValidateTime = d
	case errors.StageDispatch:
		s.DispatchTime = d
	case errors.StageRender:
		s.RenderTime = d
	}
}
