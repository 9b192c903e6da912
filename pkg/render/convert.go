package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterizer names accepted by [NewRasterizer].
const (
	RasterizerAuto   = "auto"
	RasterizerRSVG   = "rsvg"
	RasterizerNative = "native"
)

// maxPixels bounds the raster size so a huge frame or scale fails cleanly
// instead of exhausting memory.
const maxPixels = 64 << 20

// Rasterizer converts an SVG document into a bitmap.
type Rasterizer interface {
	// Name identifies the engine in logs.
	Name() string

	// Rasterize draws svg at the given scale factor.
	Rasterize(ctx context.Context, svg []byte, scale float64) (image.Image, error)
}

// Rasterizers lists the names accepted by [NewRasterizer].
func Rasterizers() []string {
	return []string{RasterizerAuto, RasterizerRSVG, RasterizerNative}
}

// NewRasterizer returns the engine called name. "auto" picks rsvg-convert
// when it is on PATH and the pure-Go engine otherwise.
func NewRasterizer(name string) (Rasterizer, error) {
	switch name {
	case RasterizerAuto, "":
		if RSVGAvailable() {
			return RSVG{}, nil
		}
		return Native{}, nil
	case RasterizerRSVG:
		return RSVG{}, nil
	case RasterizerNative:
		return Native{}, nil
	default:
		return nil, fmt.Errorf("unknown rasterizer %q (must be one of %s)", name, strings.Join(Rasterizers(), ", "))
	}
}

// RSVGAvailable reports whether rsvg-convert is on PATH.
func RSVGAvailable() bool {
	_, err := exec.LookPath("rsvg-convert")
	return err == nil
}

// RSVG rasterizes with the external rsvg-convert tool from librsvg. It draws
// text with system fonts.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVG struct{}

// Name implements Rasterizer.
func (RSVG) Name() string { return RasterizerRSVG }

// Rasterize implements Rasterizer.
func (RSVG) Rasterize(ctx context.Context, svg []byte, scale float64) (image.Image, error) {
	png, err := rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("decode rsvg-convert output: %w", err)
	}
	if err := checkSize(img.Bounds().Dx(), img.Bounds().Dy()); err != nil {
		return nil, err
	}
	return img, nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !RSVGAvailable() {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}

// Native rasterizes in-process: shapes with oksvg and rasterx, then <text>
// elements with the embedded Go fonts. It needs no external tools and its
// output is deterministic.
type Native struct{}

// Name implements Rasterizer.
func (Native) Name() string { return RasterizerNative }

// Rasterize implements Rasterizer.
func (Native) Rasterize(_ context.Context, svg []byte, scale float64) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("svg has no usable viewBox (%gx%g)", vw, vh)
	}
	w, h := int(vw*scale+0.5), int(vh*scale+0.5)
	if err := checkSize(w, h); err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	texts, err := readText(svg)
	if err != nil {
		return nil, err
	}
	if err := drawText(rgba, texts, float64(w)/vw, float64(h)/vh); err != nil {
		return nil, err
	}
	return rgba, nil
}

func checkSize(w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("raster size %dx%d is empty", w, h)
	}
	if int64(w)*int64(h) > maxPixels {
		return fmt.Errorf("raster size %dx%d exceeds %d pixels", w, h, maxPixels)
	}
	return nil
}
