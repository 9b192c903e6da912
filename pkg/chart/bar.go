package chart

import "fmt"

// DefaultBarGap is the default share of each category band left empty.
const DefaultBarGap = 0.2

// Bar draws grouped vertical bars, one group per category.
type Bar struct {
	Frame
	XAxisData []string `json:"x_axis_data"` // category labels
	Series    []Series `json:"series"`
	BarGap    float64  `json:"bar_gap"` // share of a category band left empty, default 0.2
}

// Kind implements Chart.
func (*Bar) Kind() Kind { return KindBar }

func (*Bar) sealed() {}

func (b *Bar) normalize() error {
	if err := b.Frame.normalize(); err != nil {
		return err
	}
	if err := checkSeries(b.Series); err != nil {
		return err
	}
	if len(b.XAxisData) == 0 {
		return fmt.Errorf(`field "x_axis_data" must list at least one category`)
	}
	for i, s := range b.Series {
		if len(s.Data) > len(b.XAxisData) {
			return fmt.Errorf("series[%d] has %d values for %d categories", i, len(s.Data), len(b.XAxisData))
		}
	}
	if b.BarGap == 0 {
		b.BarGap = DefaultBarGap
	}
	if b.BarGap < 0 || b.BarGap >= 1 {
		return fmt.Errorf("bar_gap must be in [0, 1), got %g", b.BarGap)
	}
	return nil
}
