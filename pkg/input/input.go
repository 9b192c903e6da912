// Package input validates raw command-line input and resolves the JSON
// chart description it points at.
//
// A [RawInput] is captured once from the command line and holds three
// optional values. [Validate] applies the input rules in a fixed order and
// produces a [Validated] value, the only representation the chart
// dispatcher accepts:
//
//	raw := input.RawInput{ChartName: input.String("bar"), Path: input.String("bar.json")}
//	v, err := input.Validate(raw)
//	if err != nil {
//	    return err // *errors.Error with a validate-stage code
//	}
//	c, err := chart.Dispatch(v.ChartName, v.JSON)
//
// A nil field means the option was not given. A non-nil pointer to an empty
// string counts as given, so `--inline ""` is parsed (and fails as JSON)
// rather than being treated as a missing source.
package input

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/charts/pkg/errors"
)

// RawInput is the unvalidated command-line input.
type RawInput struct {
	ChartName *string // chart kind identifier
	Inline    *string // inline JSON text
	Path      *string // path to a JSON file
}

// Validated is a chart kind plus a syntactically valid JSON tree.
//
// JSON holds the generic decoded form: nil, bool, json.Number, string,
// []any or map[string]any.
type Validated struct {
	ChartName string
	JSON      any
}

// String returns a pointer to s. It is a convenience for building RawInput
// values.
func String(s string) *string { return &s }

// Validate checks raw against the input rules, first failure wins:
//
//  1. the chart name must be present (MISSING_CHART_NAME)
//  2. exactly one JSON source must be present (MISSING_JSON_SOURCE or
//     CONFLICTING_JSON_SOURCES)
//  3. a file source must be readable (FILE_READ_FAILURE)
//  4. the JSON text must parse (JSON_PARSE_FAILURE)
func Validate(raw RawInput) (Validated, error) {
	if raw.ChartName == nil {
		return Validated{}, errors.New(errors.ErrCodeMissingChartName, "chart name is not specified")
	}

	switch {
	case raw.Inline == nil && raw.Path == nil:
		return Validated{}, errors.New(errors.ErrCodeMissingJSONSource, "no JSON given: use --inline or --path")
	case raw.Inline != nil && raw.Path != nil:
		return Validated{}, errors.New(errors.ErrCodeConflictingJSONSources, "--inline and --path cannot be used together")
	}

	text, err := resolveSource(raw)
	if err != nil {
		return Validated{}, err
	}

	tree, err := Parse(text)
	if err != nil {
		return Validated{}, errors.Wrap(errors.ErrCodeJSONParse, err, "failed to parse JSON, check that the input is well-formed")
	}

	return Validated{ChartName: *raw.ChartName, JSON: tree}, nil
}

// resolveSource returns the JSON text of the single source present in raw.
func resolveSource(raw RawInput) ([]byte, error) {
	if raw.Inline != nil {
		return []byte(*raw.Inline), nil
	}
	data, err := os.ReadFile(*raw.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "failed to read %s", *raw.Path)
	}
	return data, nil
}

// Parse decodes text into a generic JSON tree. Numbers are kept as
// json.Number so no precision is lost before the typed decode. Trailing
// data after the first value is an error.
func Parse(text []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input")
		}
		return nil, err
	}
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return tree, nil
}
