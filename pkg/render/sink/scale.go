package sink

import (
	"fmt"
	"math"
)

const (
	tickCount = 5  // target number of tick intervals per axis
	maxTicks  = 50 // guard against degenerate steps
)

// linearScale maps a numeric domain onto a pixel range.
type linearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func (s linearScale) at(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// niceTicks returns round tick values covering [lo, hi] and the distance
// between them. A degenerate range is widened around its single value.
func niceTicks(lo, hi float64, count int) ([]float64, float64, error) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 1
		}
		lo, hi = lo-pad, hi+pad
	}

	span := hi - lo
	if math.IsInf(span, 0) || math.IsNaN(span) {
		return nil, 0, fmt.Errorf("value range [%g, %g] is too wide to plot", lo, hi)
	}

	step := niceStep(span / float64(count))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	n := int(math.Round((end - start) / step))
	if step <= 0 || n < 1 || n > maxTicks {
		return nil, 0, fmt.Errorf("cannot place ticks on range [%g, %g]", lo, hi)
	}

	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		v := start + float64(i)*step
		// snap accumulated float noise back onto the step grid
		v = math.Round(v/step) * step
		if v == 0 {
			v = 0 // drop negative zero
		}
		ticks = append(ticks, v)
	}
	return ticks, step, nil
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	switch frac := raw / base; {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// bounds returns the smallest and largest of vals, or ok=false when empty.
func bounds(vals []float64) (lo, hi float64, ok bool) {
	for i, v := range vals {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi, len(vals) > 0
}
