package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/charts/pkg/chart"
	"github.com/matzehuels/charts/pkg/errors"
	"github.com/matzehuels/charts/pkg/render/styles"
)

// Layout spacing in pixels.
const (
	titleGap     = 8.0
	legendSwatch = 12.0
	legendSpace  = 16.0
	tickLen      = 5.0
	axisPad      = 8.0
	labelPad     = 3.0
)

// RenderSVG draws c as a standalone SVG document.
//
// The output depends only on c: rendering the same chart twice yields
// identical bytes. Failures are reported as VECTOR_RENDER_FAILURE tagged
// with the chart kind.
func RenderSVG(c chart.Chart) ([]byte, error) {
	kind := string(c.Kind())
	theme, err := styles.Lookup(c.Base().Theme)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeVectorRender, err, "vector rendering failed").WithChart(kind)
	}

	var out []byte
	switch v := c.(type) {
	case *chart.Scatter:
		out, err = renderScatter(v, theme)
	case *chart.Bar:
		out, err = renderBar(v, theme)
	default:
		err = fmt.Errorf("no SVG renderer for %T", c)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeVectorRender, err, "vector rendering failed").WithChart(kind)
	}
	return out, nil
}

// plotArea is the rectangle inside the axes.
type plotArea struct {
	x, y, w, h float64
}

func newPlotArea(left, top, right, bottom float64) (plotArea, error) {
	if right-left < 1 || bottom-top < 1 {
		return plotArea{}, fmt.Errorf("chart too small: %.0fx%.0f left for the plot area", right-left, bottom-top)
	}
	return plotArea{x: left, y: top, w: right - left, h: bottom - top}, nil
}

func (a plotArea) right() float64  { return a.x + a.w }
func (a plotArea) bottom() float64 { return a.y + a.h }

type legendMark int

const (
	markCircle legendMark = iota
	markRect
)

// canvas accumulates SVG elements for one chart frame.
type canvas struct {
	buf   bytes.Buffer
	frame *chart.Frame
	theme styles.Theme
}

func newCanvas(f *chart.Frame, theme styles.Theme) *canvas {
	c := &canvas{frame: f, theme: theme}
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)

	bg := theme.Background
	if f.BackgroundColor != "" {
		bg = f.BackgroundColor
	}
	c.rect(0, 0, f.Width, f.Height, bg, "")
	return c
}

func (c *canvas) bytes() []byte {
	c.buf.WriteString("</svg>\n")
	return c.buf.Bytes()
}

func (c *canvas) group(id string) { fmt.Fprintf(&c.buf, "  <g id=\"%s\">\n", id) }
func (c *canvas) end()            { c.buf.WriteString("  </g>\n") }

func (c *canvas) rect(x, y, w, h float64, fill, extra string) {
	fmt.Fprintf(&c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n", x, y, w, h, fill, extra)
}

func (c *canvas) circle(cx, cy, r float64, fill string) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="0.85"/>`+"\n", cx, cy, r, fill)
}

func (c *canvas) line(x1, y1, x2, y2 float64, stroke string) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n", x1, y1, x2, y2, stroke)
}

func (c *canvas) text(x, y, size float64, anchor, fill string, bold bool, s string) {
	weight := ""
	if bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="%s"%s>%s</text>`+"\n",
		x, y, styles.EscapeXML(c.frame.FontFamily), size, fill, anchor, weight, styles.EscapeXML(s))
}

// seriesColor prefers the chart's own palette over the theme's.
func (c *canvas) seriesColor(i int) string {
	if n := len(c.frame.SeriesColors); n > 0 {
		return c.frame.SeriesColors[i%n]
	}
	return c.theme.SeriesColor(i)
}

// header draws the title, sub-title and legend and returns the y
// coordinate where the plot may begin.
func (c *canvas) header(series []chart.Series, mark legendMark) float64 {
	f, t := c.frame, c.theme
	y := f.Margin.Top
	if f.TitleText != "" {
		y += t.TitleFontSize
		c.text(f.Width/2, y, t.TitleFontSize, "middle", t.TitleColor, true, f.TitleText)
		y += titleGap
	}
	if f.SubTitleText != "" {
		y += t.FontSize
		c.text(f.Width/2, y, t.FontSize, "middle", t.SubTitleColor, false, f.SubTitleText)
		y += titleGap
	}
	if f.ShowLegend(series) {
		y = c.legend(series, mark, y)
	}
	return y
}

// legend draws a single centered row of swatches and series names.
func (c *canvas) legend(series []chart.Series, mark legendMark, top float64) float64 {
	f, t := c.frame, c.theme

	names := make([]string, len(series))
	total := 0.0
	for i, s := range series {
		names[i] = s.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("series %d", i+1)
		}
		if i > 0 {
			total += legendSpace
		}
		total += legendSwatch + labelPad + styles.TextWidth(names[i], t.FontSize)
	}

	x := max((f.Width-total)/2, f.Margin.Left)
	row := max(legendSwatch, t.FontSize)
	c.group("legend")
	for i, name := range names {
		color := c.seriesColor(i)
		switch mark {
		case markCircle:
			c.circle(x+legendSwatch/2, top+row/2, legendSwatch/2, color)
		default:
			c.rect(x, top+(row-legendSwatch)/2, legendSwatch, legendSwatch, color, ` rx="2"`)
		}
		x += legendSwatch + labelPad
		c.text(x, top+row/2+t.FontSize*0.35, t.FontSize, "start", t.TextColor, false, name)
		x += styles.TextWidth(name, t.FontSize) + legendSpace
	}
	c.end()
	return top + row + titleGap
}

// tickLabelWidth is the widest formatted tick label.
func tickLabelWidth(ticks []float64, step, size float64) float64 {
	w := 0.0
	for _, v := range ticks {
		w = max(w, styles.TextWidth(styles.FormatTick(v, step), size))
	}
	return w
}

// valueAxis draws horizontal grid lines and labels for the y ticks.
func (c *canvas) valueAxis(area plotArea, ys linearScale, ticks []float64, step float64) {
	t := c.theme
	c.group("y-axis")
	for _, v := range ticks {
		y := ys.at(v)
		c.line(area.x, y, area.right(), y, t.GridColor)
		c.line(area.x-tickLen, y, area.x, y, t.AxisColor)
		c.text(area.x-tickLen-labelPad, y+t.FontSize*0.35, t.FontSize, "end", t.TextColor, false, styles.FormatTick(v, step))
	}
	c.line(area.x, area.y, area.x, area.bottom(), t.AxisColor)
	c.end()
}
