// Package fonts provides embedded font faces for raster text.
//
// The Go fonts ship inside golang.org/x/image as TTF byte slices, so they
// are compiled into the binary and need no system font lookup. They are
// parsed once on first use.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Cache for parsed fonts (parsed once on first access).
var (
	regular, bold *opentype.Font
	parseErr      error
	parseOnce     sync.Once
)

func parse() error {
	parseOnce.Do(func() {
		if regular, parseErr = opentype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = opentype.Parse(gobold.TTF)
	})
	return parseErr
}

// Face returns a Go font face at size pixels. The caller should Close it.
func Face(size float64, isBold bool) (font.Face, error) {
	if err := parse(); err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	f := regular
	if isBold {
		f = bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
