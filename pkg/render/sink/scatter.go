package sink

import (
	"fmt"

	"github.com/matzehuels/charts/pkg/chart"
	"github.com/matzehuels/charts/pkg/render/styles"
)

func renderScatter(s *chart.Scatter, theme styles.Theme) ([]byte, error) {
	var xs, ys []float64
	for i := range s.Series {
		for _, p := range s.Points(i) {
			xs = append(xs, p[0])
			ys = append(ys, p[1])
		}
	}
	xlo, xhi, ok := bounds(xs)
	if !ok {
		xlo, xhi = 0, 1
	}
	ylo, yhi, ok := bounds(ys)
	if !ok {
		ylo, yhi = 0, 1
	}

	xticks, xstep, err := niceTicks(xlo, xhi, tickCount)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	yticks, ystep, err := niceTicks(ylo, yhi, tickCount)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	c := newCanvas(&s.Frame, theme)
	fs := theme.FontSize
	r := s.SymbolSize / 2

	top := c.header(s.Series, markCircle)
	if s.YAxisName != "" {
		top += fs + axisPad
	}
	left := s.Margin.Left + tickLabelWidth(yticks, ystep, fs) + tickLen + labelPad
	lastX := styles.TextWidth(styles.FormatTick(xticks[len(xticks)-1], xstep), fs)
	right := s.Width - s.Margin.Right - max(r, lastX/2)
	bottom := s.Height - s.Margin.Bottom - fs - tickLen - labelPad
	if s.XAxisName != "" {
		bottom -= fs + axisPad
	}

	area, err := newPlotArea(left, top+r, right, bottom)
	if err != nil {
		return nil, err
	}
	xscale := linearScale{xticks[0], xticks[len(xticks)-1], area.x, area.right()}
	yscale := linearScale{yticks[0], yticks[len(yticks)-1], area.bottom(), area.y}

	c.valueAxis(area, yscale, yticks, ystep)

	c.group("x-axis")
	for _, v := range xticks {
		x := xscale.at(v)
		c.line(x, area.y, x, area.bottom(), theme.GridColor)
		c.line(x, area.bottom(), x, area.bottom()+tickLen, theme.AxisColor)
		c.text(x, area.bottom()+tickLen+labelPad+fs, fs, "middle", theme.TextColor, false, styles.FormatTick(v, xstep))
	}
	c.line(area.x, area.bottom(), area.right(), area.bottom(), theme.AxisColor)
	c.end()

	if s.XAxisName != "" {
		c.text(area.x+area.w/2, s.Height-s.Margin.Bottom, fs, "middle", theme.TextColor, false, s.XAxisName)
	}
	if s.YAxisName != "" {
		c.text(area.x, area.y-r-axisPad, fs, "middle", theme.TextColor, false, s.YAxisName)
	}

	for i, series := range s.Series {
		color := c.seriesColor(i)
		c.group(fmt.Sprintf("series-%d", i))
		for _, p := range s.Points(i) {
			cx, cy := xscale.at(p[0]), yscale.at(p[1])
			c.circle(cx, cy, r, color)
			if series.LabelShow {
				c.text(cx, cy-r-labelPad, fs*0.9, "middle", theme.TextColor, false, styles.FormatValue(p[1]))
			}
		}
		c.end()
	}

	return c.bytes(), nil
}
