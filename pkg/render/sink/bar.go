package sink

import (
	"fmt"
	"math"

	"github.com/matzehuels/charts/pkg/chart"
	"github.com/matzehuels/charts/pkg/render/styles"
)

func renderBar(b *chart.Bar, theme styles.Theme) ([]byte, error) {
	// bars grow from zero, so zero is always inside the value axis
	lo, hi := 0.0, 0.0
	for _, s := range b.Series {
		if slo, shi, ok := bounds(s.Data); ok {
			lo, hi = min(lo, slo), max(hi, shi)
		}
	}
	if lo == 0 && hi == 0 {
		hi = 1
	}
	yticks, ystep, err := niceTicks(lo, hi, tickCount)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	c := newCanvas(&b.Frame, theme)
	fs := theme.FontSize

	top := c.header(b.Series, markRect)
	left := b.Margin.Left + tickLabelWidth(yticks, ystep, fs) + tickLen + labelPad
	right := b.Width - b.Margin.Right
	bottom := b.Height - b.Margin.Bottom - fs - tickLen - labelPad

	labeled := false
	for _, s := range b.Series {
		labeled = labeled || s.LabelShow
	}
	if labeled {
		top += fs
	}

	area, err := newPlotArea(left, top, right, bottom)
	if err != nil {
		return nil, err
	}
	yscale := linearScale{yticks[0], yticks[len(yticks)-1], area.bottom(), area.y}
	zero := yscale.at(0)

	c.valueAxis(area, yscale, yticks, ystep)

	band := area.w / float64(len(b.XAxisData))
	groupW := band * (1 - b.BarGap)
	barW := groupW / float64(len(b.Series))

	c.group("x-axis")
	for i, label := range b.XAxisData {
		x := area.x + band*float64(i)
		c.line(x+band, area.bottom(), x+band, area.bottom()+tickLen, theme.AxisColor)
		c.text(x+band/2, area.bottom()+tickLen+labelPad+fs, fs, "middle", theme.TextColor, false, label)
	}
	c.line(area.x, zero, area.right(), zero, theme.AxisColor)
	c.end()

	for si, s := range b.Series {
		color := c.seriesColor(si)
		c.group(fmt.Sprintf("series-%d", si))
		for ci, v := range s.Data {
			x := area.x + band*float64(ci) + (band-groupW)/2 + barW*float64(si)
			y := yscale.at(v)
			c.rect(x, math.Min(y, zero), barW, math.Abs(zero-y), color, "")
			if s.LabelShow {
				ly := y - labelPad
				if v < 0 {
					ly = y + fs
				}
				c.text(x+barW/2, ly, fs*0.9, "middle", theme.TextColor, false, styles.FormatValue(v))
			}
		}
		c.end()
	}

	return c.bytes(), nil
}
