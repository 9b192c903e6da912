package chart

import "fmt"

// DefaultSymbolSize is the default scatter point diameter.
const DefaultSymbolSize = 10.0

// Scatter plots one or more series of points.
//
// Each series' data is a flat list of x,y pairs: [x0, y0, x1, y1, ...].
type Scatter struct {
	Frame
	Series     []Series `json:"series"`
	SymbolSize float64  `json:"symbol_size"` // point diameter, default 10
	XAxisName  string   `json:"x_axis_name"`
	YAxisName  string   `json:"y_axis_name"`
}

// Kind implements Chart.
func (*Scatter) Kind() Kind { return KindScatter }

func (*Scatter) sealed() {}

// Points returns the x,y pairs of series i.
func (s *Scatter) Points(i int) [][2]float64 {
	data := s.Series[i].Data
	pts := make([][2]float64, 0, len(data)/2)
	for j := 0; j+1 < len(data); j += 2 {
		pts = append(pts, [2]float64{data[j], data[j+1]})
	}
	return pts
}

func (s *Scatter) normalize() error {
	if err := s.Frame.normalize(); err != nil {
		return err
	}
	if err := checkSeries(s.Series); err != nil {
		return err
	}
	for i, series := range s.Series {
		if len(series.Data)%2 != 0 {
			return fmt.Errorf("series[%d].data must hold x,y pairs, got %d values", i, len(series.Data))
		}
	}
	if s.SymbolSize == 0 {
		s.SymbolSize = DefaultSymbolSize
	}
	if !positive(s.SymbolSize) {
		return fmt.Errorf("symbol_size must be positive, got %g", s.SymbolSize)
	}
	return nil
}
