package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Default JPEG settings.
const (
	DefaultQuality = 90
	DefaultScale   = 1.0
)

// JPEGOption configures [ToJPEG].
type JPEGOption func(*jpegConfig)

type jpegConfig struct {
	quality    int
	scale      float64
	rasterizer Rasterizer
}

// WithQuality sets the JPEG quality, 1 to 100.
func WithQuality(q int) JPEGOption {
	return func(c *jpegConfig) { c.quality = q }
}

// WithScale multiplies the SVG's intrinsic size. 2.0 doubles the resolution.
func WithScale(s float64) JPEGOption {
	return func(c *jpegConfig) { c.scale = s }
}

// WithRasterizer selects the engine. The default is [Native].
func WithRasterizer(r Rasterizer) JPEGOption {
	return func(c *jpegConfig) { c.rasterizer = r }
}

// ToJPEG converts SVG bytes to a baseline JPEG.
//
// JPEG has no alpha channel, so the bitmap is composited onto an opaque
// white canvas before encoding. Transparent regions come out white.
func ToJPEG(ctx context.Context, svg []byte, opts ...JPEGOption) ([]byte, error) {
	cfg := jpegConfig{quality: DefaultQuality, scale: DefaultScale, rasterizer: Native{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.quality < 1 || cfg.quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d out of range 1-100", cfg.quality)
	}
	if !(cfg.scale > 0) {
		return nil, fmt.Errorf("scale must be positive, got %g", cfg.scale)
	}

	img, err := cfg.rasterizer.Rasterize(ctx, svg, cfg.scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.rasterizer.Name(), err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flatten(img), imaging.JPEG, imaging.JPEGQuality(cfg.quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1)
}
