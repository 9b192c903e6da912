// Package pkg provides the core libraries for the charts command.
//
// # Overview
//
// charts turns a JSON chart description into a JPEG image. The pkg
// directory is organized by pipeline stage:
//
//  1. [input] - Validation of the captured command-line options
//  2. [chart] - Typed chart descriptions and the kind dispatcher
//  3. [render] - SVG drawing ([render/sink]) and rasterization to JPEG
//  4. [pipeline] - Orchestration (validate → dispatch → render → persist)
//
// Supporting packages:
//
//   - [errors]: Structured errors with codes and the failing stage
//   - [observability]: Stage hooks for logging and metrics
//   - [render/styles]: Built-in themes and text helpers
//   - [fonts]: Embedded fonts for raster text
//   - [buildinfo]: Version information set at build time
//
// # Architecture
//
// The data flow through a run:
//
//	-n bar -i '{...}'   (command line)
//	         ↓
//	input.RawInput      (captured, unvalidated)
//	         ↓  input.Validate
//	input.Validated     (chart name + generic JSON tree)
//	         ↓  chart.Dispatch
//	chart.Chart         (*chart.Scatter or *chart.Bar)
//	         ↓  sink.RenderSVG
//	SVG bytes
//	         ↓  render.ToJPEG
//	JPEG bytes
//	         ↓  pipeline.Persist
//	chart.jpg
//
// # Quick Start
//
// Run the whole pipeline:
//
//	import (
//	    "github.com/matzehuels/charts/pkg/input"
//	    "github.com/matzehuels/charts/pkg/pipeline"
//	)
//
//	runner, err := pipeline.NewRunner(pipeline.Options{Rasterizer: "native"}, logger)
//	if err != nil {
//	    return err
//	}
//	_, err = runner.Execute(ctx, input.RawInput{
//	    ChartName: input.String("scatter"),
//	    Inline:    input.String(`{"series": [{"data": [1, 2, 3, 4]}]}`),
//	})
//
// Or use the stages directly to get the SVG:
//
//	v, err := input.Validate(raw)
//	c, err := chart.Dispatch(v.ChartName, v.JSON)
//	svg, err := sink.RenderSVG(c)
//
// # Adding a Chart Kind
//
//  1. Add a [chart.Kind] constant and a typed shape implementing [chart.Chart]
//  2. Add a case to [chart.Dispatch]
//  3. Add a case to [render/sink.RenderSVG] that draws the shape
//
// [input]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/input
// [chart]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/chart
// [chart.Kind]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/chart#Kind
// [chart.Chart]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/chart#Chart
// [chart.Dispatch]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/chart#Dispatch
// [render]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/render/sink
// [render/sink.RenderSVG]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/render/sink#RenderSVG
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/render/styles
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/charts/pkg/buildinfo
package pkg
