package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/charts/pkg/errors"
	"github.com/matzehuels/charts/pkg/input"
	"github.com/matzehuels/charts/pkg/observability"
)

const (
	scatterJSON = `{"title_text": "Height vs weight", "series": [
		{"name": "Female", "data": [161.2, 51.6, 167.5, 59.0, 159.5, 49.2]},
		{"name": "Male", "data": [174.0, 65.6, 175.3, 71.8]}
	]}`
	barJSON = `{"x_axis_data": ["Mon", "Tue", "Wed"], "series": [
		{"name": "Email", "data": [120, 132, 101]},
		{"name": "Ads", "data": [220, 182, 191]}
	]}`
)

func newTestRunner(t *testing.T) (*Runner, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), DefaultOutput)
	r, err := NewRunner(Options{Output: out, Rasterizer: "native"}, nil)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	return r, out
}

func inline(name, json string) input.RawInput {
	return input.RawInput{ChartName: input.String(name), Inline: input.String(json)}
}

type recordedStage struct {
	stage string
	err   error
}

type recordingHooks struct {
	started   []string
	completed []recordedStage
}

func (h *recordingHooks) OnStageStart(_ context.Context, stage string) {
	h.started = append(h.started, stage)
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, err error) {
	h.completed = append(h.completed, recordedStage{stage, err})
}

func recordHooks(t *testing.T) *recordingHooks {
	t.Helper()
	h := &recordingHooks{}
	observability.SetStageHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func TestExecuteRendersChart(t *testing.T) {
	tests := []struct {
		kind string
		json string
	}{
		{"scatter", scatterJSON},
		{"bar", barJSON},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			r, out := newTestRunner(t)
			hooks := recordHooks(t)

			res, err := r.Execute(context.Background(), inline(tt.kind, tt.json))
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if res.State != StateDone {
				t.Errorf("State = %v, want %v", res.State, StateDone)
			}
			if string(res.Chart) != tt.kind {
				t.Errorf("Chart = %q, want %q", res.Chart, tt.kind)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if len(data) == 0 || len(data) != res.Size {
				t.Errorf("output size = %d, Result.Size = %d", len(data), res.Size)
			}
			img, err := jpeg.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("output is not a JPEG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 400 {
				t.Errorf("image size = %dx%d, want 600x400", b.Dx(), b.Dy())
			}

			want := []string{"validate", "dispatch", "render"}
			if len(hooks.started) != len(want) {
				t.Fatalf("stages started = %v, want %v", hooks.started, want)
			}
			for i, s := range want {
				if hooks.started[i] != s || hooks.completed[i].stage != s || hooks.completed[i].err != nil {
					t.Errorf("stage %d = %v / %+v, want %s without error", i, hooks.started[i], hooks.completed[i], s)
				}
			}
		})
	}
}

func TestExecuteFromFile(t *testing.T) {
	r, out := newTestRunner(t)
	path := filepath.Join(t.TempDir(), "chart.json")
	if err := os.WriteFile(path, []byte(barJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := r.Execute(context.Background(), input.RawInput{
		ChartName: input.String("bar"),
		Path:      input.String(path),
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestExecuteIsIdempotent(t *testing.T) {
	r, out := newTestRunner(t)

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), inline("scatter", scatterJSON)); err != nil {
			t.Fatalf("Execute() run %d error: %v", i, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("identical input produced different output")
	}
}

func TestExecuteFailures(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	tests := []struct {
		name      string
		raw       input.RawInput
		code      errors.Code
		stage     errors.Stage
		lastStage string
	}{
		{
			name:      "missing chart name",
			raw:       input.RawInput{Inline: input.String(scatterJSON)},
			code:      errors.ErrCodeMissingChartName,
			stage:     errors.StageValidate,
			lastStage: "validate",
		},
		{
			name:      "conflicting sources",
			raw:       input.RawInput{ChartName: input.String("bar"), Inline: input.String("{}"), Path: input.String(missing)},
			code:      errors.ErrCodeConflictingJSONSources,
			stage:     errors.StageValidate,
			lastStage: "validate",
		},
		{
			name:      "unreadable file",
			raw:       input.RawInput{ChartName: input.String("bar"), Path: input.String(missing)},
			code:      errors.ErrCodeFileRead,
			stage:     errors.StageValidate,
			lastStage: "validate",
		},
		{
			name:      "malformed json",
			raw:       inline("scatter", "{invalid}"),
			code:      errors.ErrCodeJSONParse,
			stage:     errors.StageValidate,
			lastStage: "validate",
		},
		{
			name:      "unknown kind",
			raw:       inline("pie", barJSON),
			code:      errors.ErrCodeUnknownChartKind,
			stage:     errors.StageDispatch,
			lastStage: "dispatch",
		},
		{
			name:      "schema mismatch",
			raw:       inline("scatter", `{"key": "value"}`),
			code:      errors.ErrCodeSchemaMismatch,
			stage:     errors.StageDispatch,
			lastStage: "dispatch",
		},
		{
			name:      "vector render failure",
			raw:       inline("scatter", `{"width": 40, "height": 40, "title_text": "t", "series": [{"data": [1, 2]}]}`),
			code:      errors.ErrCodeVectorRender,
			stage:     errors.StageRender,
			lastStage: "render",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestRunner(t)
			hooks := recordHooks(t)

			res, err := r.Execute(context.Background(), tt.raw)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Execute() error = %v, want %s", err, tt.code)
			}
			if got := errors.GetStage(err); got != tt.stage {
				t.Errorf("stage = %q, want %q", got, tt.stage)
			}
			if res.State != StateFailed {
				t.Errorf("State = %v, want %v", res.State, StateFailed)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output should not exist after failure, stat error = %v", err)
			}

			last := hooks.completed[len(hooks.completed)-1]
			if last.stage != tt.lastStage || last.err == nil {
				t.Errorf("last completed stage = %+v, want %s with error", last, tt.lastStage)
			}
			if len(hooks.started) != len(hooks.completed) {
				t.Errorf("started %v but completed %d stages", hooks.started, len(hooks.completed))
			}
		})
	}
}

func TestExecuteUnknownKindSkipsRender(t *testing.T) {
	r, _ := newTestRunner(t)

	res, err := r.Execute(context.Background(), inline("pie", barJSON))
	if !errors.Is(err, errors.ErrCodeUnknownChartKind) {
		t.Fatalf("Execute() error = %v, want %s", err, errors.ErrCodeUnknownChartKind)
	}
	if res.Stats.RenderTime != 0 {
		t.Error("render stage should not run for an unknown kind")
	}
	if res.Chart != "" {
		t.Errorf("Chart = %q, want empty", res.Chart)
	}
}

func TestExecuteKeepsPreviousOutputOnFailure(t *testing.T) {
	r, out := newTestRunner(t)
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Execute(context.Background(), inline("scatter", `{"key": "value"}`)); err == nil {
		t.Fatal("Execute() expected error")
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous" {
		t.Errorf("output = %q, want previous content", data)
	}
}

func TestExecutePersistFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no", "such", "dir", DefaultOutput)
	r, err := NewRunner(Options{Output: out, Rasterizer: "native"}, nil)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}

	_, err = r.Execute(context.Background(), inline("bar", barJSON))
	if !errors.Is(err, errors.ErrCodePersist) {
		t.Fatalf("Execute() error = %v, want %s", err, errors.ErrCodePersist)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Chart != "bar" {
		t.Errorf("persist error should name the chart kind, got %v", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	r, out := newTestRunner(t)
	hooks := recordHooks(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Execute(ctx, inline("bar", barJSON))
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if res.State != StateFailed {
		t.Errorf("State = %v, want %v", res.State, StateFailed)
	}
	if len(hooks.started) != 0 {
		t.Errorf("no stage should start, got %v", hooks.started)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("cancelled run should not write output")
	}
}

func TestPersistReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	for _, content := range []string{"first", "second"} {
		if err := Persist(path, []byte(content)); err != nil {
			t.Fatalf("Persist() error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != content {
			t.Errorf("content = %q, want %q", data, content)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, temporary files left behind", len(entries))
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", opts.Output, DefaultOutput)
	}
	if opts.Quality != 90 {
		t.Errorf("Quality = %d, want 90", opts.Quality)
	}
	if opts.Scale != 1 {
		t.Errorf("Scale = %g, want 1", opts.Scale)
	}
	if opts.Rasterizer != "auto" {
		t.Errorf("Rasterizer = %q, want auto", opts.Rasterizer)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"quality bounds", Options{Quality: 100, Scale: 0.5}, false},
		{"quality too high", Options{Quality: 101}, true},
		{"negative quality", Options{Quality: -1}, true},
		{"negative scale", Options{Scale: -2}, true},
		{"huge scale", Options{Scale: 100}, true},
		{"unknown rasterizer", Options{Rasterizer: "cairo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidOption)
			}
		})
	}
}

func TestNewRunnerRejectsInvalidOptions(t *testing.T) {
	if _, err := NewRunner(Options{Rasterizer: "cairo"}, nil); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("NewRunner() error = %v, want %s", err, errors.ErrCodeInvalidOption)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCapturing, "capturing"},
		{StateValidating, "validating"},
		{StateDispatching, "dispatching"},
		{StateRendering, "rendering"},
		{StateDone, "done"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
