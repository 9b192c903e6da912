// Package sink draws typed charts as SVG documents.
//
// # Overview
//
// [RenderSVG] is the vector stage of the render pipeline. It accepts any
// [chart.Chart] and produces a self-contained SVG using presentation
// attributes only (no CSS, no scripts), so the document can be rasterized
// by both rsvg-convert and the pure-Go rasterizer in [render].
//
// Every chart frame is laid out the same way, top to bottom:
//
//   - Title and sub-title, centered
//   - Legend row, when the frame asks for one
//   - Plot area with a value axis on the left and grid lines
//   - Category or value labels along the bottom axis
//
// Scatter charts map both axes linearly over "nice" tick ranges (steps of
// 1, 2 or 5 times a power of ten). Bar charts split the plot width into one
// band per category and draw one bar per series inside each band, growing
// from zero.
//
// # Determinism
//
// Rendering is a pure function of the chart value: no randomness, clocks or
// map iteration reach the output, so rendering the same chart twice yields
// byte-identical SVG.
//
// [render]: github.com/matzehuels/charts/pkg/render
package sink
