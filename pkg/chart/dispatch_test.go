package chart

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/matzehuels/charts/pkg/errors"
)

func tree(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal %s: %v", s, err)
	}
	return v
}

func TestDispatchScatter(t *testing.T) {
	c, err := Dispatch("scatter", tree(t, `{
		"title_text": "Height",
		"series": [{"name": "Female", "data": [161.2, 51.6, 167.5, 59.0]}]
	}`))
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}

	s, ok := c.(*Scatter)
	if !ok {
		t.Fatalf("Dispatch() = %T, want *Scatter", c)
	}
	if s.Kind() != KindScatter {
		t.Errorf("Kind() = %q, want %q", s.Kind(), KindScatter)
	}
	if s.TitleText != "Height" {
		t.Errorf("TitleText = %q, want %q", s.TitleText, "Height")
	}
	if pts := s.Points(0); len(pts) != 2 || pts[1] != [2]float64{167.5, 59.0} {
		t.Errorf("Points(0) = %v", pts)
	}

	// defaults
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("size = %gx%g, want %gx%g", s.Width, s.Height, DefaultWidth, DefaultHeight)
	}
	if s.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", s.Theme, DefaultTheme)
	}
	if s.SymbolSize != DefaultSymbolSize {
		t.Errorf("SymbolSize = %g, want %g", s.SymbolSize, DefaultSymbolSize)
	}
	if s.Margin == nil || s.Margin.Left != DefaultMargin {
		t.Errorf("Margin = %+v, want default", s.Margin)
	}
}

func TestDispatchBar(t *testing.T) {
	c, err := Dispatch("bar", tree(t, `{
		"width": 800,
		"x_axis_data": ["Mon", "Tue", "Wed"],
		"series": [
			{"name": "Email", "data": [120, 132, 101]},
			{"name": "Ads", "data": [220, 182]}
		]
	}`))
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}

	b, ok := c.(*Bar)
	if !ok {
		t.Fatalf("Dispatch() = %T, want *Bar", c)
	}
	if b.Kind() != KindBar {
		t.Errorf("Kind() = %q, want %q", b.Kind(), KindBar)
	}
	if b.Width != 800 {
		t.Errorf("Width = %g, want 800", b.Width)
	}
	if b.BarGap != DefaultBarGap {
		t.Errorf("BarGap = %g, want %g", b.BarGap, DefaultBarGap)
	}
	if len(b.Series) != 2 || len(b.Series[1].Data) != 2 {
		t.Errorf("Series = %+v", b.Series)
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	valid := tree(t, `{"x_axis_data": ["a"], "series": [{"data": [1]}]}`)

	for _, kind := range []string{"pie", "", "Scatter", "BAR", " bar"} {
		t.Run(kind, func(t *testing.T) {
			c, err := Dispatch(kind, valid)
			if c != nil {
				t.Errorf("Dispatch(%q) = %v, want nil", kind, c)
			}
			if !errors.Is(err, errors.ErrCodeUnknownChartKind) {
				t.Errorf("Dispatch(%q) error = %v, want %s", kind, err, errors.ErrCodeUnknownChartKind)
			}
			if errors.GetStage(err) != errors.StageDispatch {
				t.Errorf("stage = %q, want %q", errors.GetStage(err), errors.StageDispatch)
			}
		})
	}
}

func TestDispatchSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		kind string
		json string
	}{
		{"scatter without series", "scatter", `{"key":"value"}`},
		{"scatter null", "scatter", `null`},
		{"scatter array root", "scatter", `[1, 2]`},
		{"scatter empty series", "scatter", `{"series": []}`},
		{"scatter series wrong type", "scatter", `{"series": "x"}`},
		{"scatter data wrong type", "scatter", `{"series": [{"data": ["a", "b"]}]}`},
		{"scatter odd data", "scatter", `{"series": [{"data": [1, 2, 3]}]}`},
		{"scatter negative symbol", "scatter", `{"symbol_size": -1, "series": [{"data": [1, 2]}]}`},
		{"negative width", "scatter", `{"width": -10, "series": [{"data": [1, 2]}]}`},
		{"margins too wide", "scatter", `{"width": 100, "margin": {"left": 60, "right": 60}, "series": [{"data": [1, 2]}]}`},
		{"bad background", "scatter", `{"background_color": "red", "series": [{"data": [1, 2]}]}`},
		{"bad palette", "bar", `{"series_colors": ["#12"], "x_axis_data": ["a"], "series": [{"data": [1]}]}`},
		{"bar without series", "bar", `{"x_axis_data": ["a"]}`},
		{"bar without categories", "bar", `{"series": [{"data": [1]}]}`},
		{"bar too many values", "bar", `{"x_axis_data": ["a"], "series": [{"data": [1, 2]}]}`},
		{"bar gap out of range", "bar", `{"bar_gap": 1.5, "x_axis_data": ["a"], "series": [{"data": [1]}]}`},
		{"bar categories wrong type", "bar", `{"x_axis_data": [1, 2], "series": [{"data": [1]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Dispatch(tt.kind, tree(t, tt.json))
			if !errors.Is(err, errors.ErrCodeSchemaMismatch) {
				t.Fatalf("Dispatch() error = %v, want %s", err, errors.ErrCodeSchemaMismatch)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("Dispatch() error = %T, want *errors.Error", err)
			}
			if e.Chart != tt.kind {
				t.Errorf("error chart = %q, want %q", e.Chart, tt.kind)
			}
			if e.Cause == nil {
				t.Error("SCHEMA_MISMATCH should carry the underlying detail")
			}
		})
	}
}

func TestDispatchIgnoresUnknownFields(t *testing.T) {
	_, err := Dispatch("scatter", tree(t, `{"unknown": true, "series": [{"data": [1, 2]}]}`))
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
}

func TestShowLegend(t *testing.T) {
	named := []Series{{Name: "a"}}
	unnamed := []Series{{}}
	off, on := false, true

	tests := []struct {
		name   string
		show   *bool
		series []Series
		want   bool
	}{
		{"default named", nil, named, true},
		{"default unnamed", nil, unnamed, false},
		{"forced off", &off, named, false},
		{"forced on", &on, unnamed, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Frame{LegendShow: tt.show}
			if got := f.ShowLegend(tt.series); got != tt.want {
				t.Errorf("ShowLegend() = %v, want %v", got, tt.want)
			}
		})
	}
}
