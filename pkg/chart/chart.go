// Package chart defines the typed chart descriptions accepted by the
// renderer and the dispatcher that builds them from a generic JSON tree.
//
// # Chart Kinds
//
// The set of kinds is closed. [Chart] has an unexported method, so the only
// implementations are the ones in this package:
//
//   - [KindScatter]: [*Scatter], series of x,y pairs
//   - [KindBar]: [*Bar], series of values over named categories
//
// Adding a kind means adding a Kind constant, a typed shape implementing
// Chart, one case in [Dispatch] and one case in the SVG sink.
//
// # JSON Schema
//
// Field names follow the snake_case layout of the chart JSON format:
//
//	{
//	  "width": 600, "height": 400,
//	  "theme": "dark",
//	  "title_text": "Rainfall",
//	  "x_axis_data": ["Mon", "Tue", "Wed"],
//	  "series": [{"name": "Evaporation", "data": [2.0, 4.9, 7.0]}]
//	}
//
// Unknown fields are ignored. Missing optional fields get the defaults
// documented on [Frame] and on each shape.
package chart

import (
	"fmt"
	"math"
	"regexp"
)

// Kind identifies a chart variant.
type Kind string

// Supported chart kinds.
const (
	KindScatter Kind = "scatter"
	KindBar     Kind = "bar"
)

// Kinds returns the supported chart kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindScatter, KindBar}
}

// Chart is a typed chart description. Only this package implements it.
type Chart interface {
	// Kind reports the variant. It always matches the concrete type.
	Kind() Kind

	// Base returns the frame settings shared by all kinds.
	Base() *Frame

	sealed()
}

// Default frame values.
const (
	DefaultWidth      = 600.0
	DefaultHeight     = 400.0
	DefaultMargin     = 5.0
	DefaultTheme      = "light"
	DefaultFontFamily = "Roboto, Helvetica, Arial, sans-serif"
)

// Margin is the space between the image border and the chart content.
type Margin struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Frame holds the settings common to every chart kind.
type Frame struct {
	Width           float64  `json:"width"`            // image width, default 600
	Height          float64  `json:"height"`           // image height, default 400
	Margin          *Margin  `json:"margin"`           // default 5 on each side
	Theme           string   `json:"theme"`            // built-in theme name, default "light"
	FontFamily      string   `json:"font_family"`      // CSS font-family list
	TitleText       string   `json:"title_text"`       // main title, omitted when empty
	SubTitleText    string   `json:"sub_title_text"`   // second title line
	LegendShow      *bool    `json:"legend_show"`      // default: shown when any series is named
	BackgroundColor string   `json:"background_color"` // overrides the theme background
	SeriesColors    []string `json:"series_colors"`    // overrides the theme palette
}

// Series is one named list of values.
type Series struct {
	Name      string    `json:"name"`
	Data      []float64 `json:"data"`
	LabelShow bool      `json:"label_show"` // print each value next to its mark
}

// Base implements Chart.
func (f *Frame) Base() *Frame { return f }

// ShowLegend reports whether a legend should be drawn for series.
func (f *Frame) ShowLegend(series []Series) bool {
	if f.LegendShow != nil {
		return *f.LegendShow
	}
	for _, s := range series {
		if s.Name != "" {
			return true
		}
	}
	return false
}

// hexColorRe matches #rgb, #rgba, #rrggbb and #rrggbbaa.
var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// normalize applies defaults and checks the frame for consistency.
func (f *Frame) normalize() error {
	if f.Width == 0 {
		f.Width = DefaultWidth
	}
	if f.Height == 0 {
		f.Height = DefaultHeight
	}
	if f.Margin == nil {
		f.Margin = &Margin{Left: DefaultMargin, Top: DefaultMargin, Right: DefaultMargin, Bottom: DefaultMargin}
	}
	if f.Theme == "" {
		f.Theme = DefaultTheme
	}
	if f.FontFamily == "" {
		f.FontFamily = DefaultFontFamily
	}

	if !positive(f.Width) || !positive(f.Height) {
		return fmt.Errorf("width and height must be positive, got %gx%g", f.Width, f.Height)
	}
	m := f.Margin
	for _, v := range []float64{m.Left, m.Top, m.Right, m.Bottom} {
		if v < 0 || !finite(v) {
			return fmt.Errorf("margins must be non-negative, got %+v", *m)
		}
	}
	if m.Left+m.Right >= f.Width || m.Top+m.Bottom >= f.Height {
		return fmt.Errorf("margins leave no drawing area in a %gx%g frame", f.Width, f.Height)
	}

	if f.BackgroundColor != "" && !hexColorRe.MatchString(f.BackgroundColor) {
		return fmt.Errorf("background_color %q is not a hex color", f.BackgroundColor)
	}
	for _, c := range f.SeriesColors {
		if !hexColorRe.MatchString(c) {
			return fmt.Errorf("series_colors entry %q is not a hex color", c)
		}
	}
	return nil
}

// checkSeries verifies the series list is present and its values finite.
func checkSeries(series []Series) error {
	if series == nil {
		return fmt.Errorf(`missing field "series"`)
	}
	if len(series) == 0 {
		return fmt.Errorf(`field "series" must not be empty`)
	}
	for i, s := range series {
		for j, v := range s.Data {
			if !finite(v) {
				return fmt.Errorf("series[%d].data[%d] is not a finite number", i, j)
			}
		}
	}
	return nil
}

func positive(v float64) bool { return v > 0 && finite(v) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
