// Package render turns chart SVG into the raster image written to disk.
//
// # Overview
//
// The vector stage lives in the [sink] subpackage; this package owns the
// raster stage:
//
//   - [Rasterizer] engines that draw SVG into a bitmap
//   - [ToJPEG], which rasterizes, flattens onto white and encodes JPEG
//
// # Rasterizers
//
// Two engines are available, selected by name through [NewRasterizer]:
//
//   - [RSVG]: shells out to rsvg-convert (librsvg). Full text support.
//   - [Native]: pure Go via oksvg/rasterx, text drawn with the embedded
//     Go fonts. No external tools and byte-stable output.
//
// "auto" prefers rsvg-convert when it is installed.
//
//	svg, err := sink.RenderSVG(c)
//	r, err := render.NewRasterizer("auto")
//	jpg, err := render.ToJPEG(ctx, svg, render.WithRasterizer(r), render.WithQuality(90))
//
// [sink]: github.com/matzehuels/charts/pkg/render/sink
package render
