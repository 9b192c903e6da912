package chart

import (
	"encoding/json"

	"github.com/matzehuels/charts/pkg/errors"
)

// shape is a chart variant that can default and check itself after decoding.
type shape interface {
	Chart
	normalize() error
}

// Dispatch builds the chart variant named by kind from a generic JSON tree.
//
// Kind names are matched case-sensitively. An unknown kind yields
// UNKNOWN_CHART_KIND; a tree that does not fit the kind's schema yields
// SCHEMA_MISMATCH with the decoder's detail as the cause.
func Dispatch(kind string, tree any) (Chart, error) {
	switch Kind(kind) {
	case KindScatter:
		return decode[Scatter](KindScatter, tree)
	case KindBar:
		return decode[Bar](KindBar, tree)
	default:
		return nil, errors.New(errors.ErrCodeUnknownChartKind, "unknown chart kind %q (must be 'scatter' or 'bar')", kind).WithChart(kind)
	}
}

// decode converts tree into the typed shape T through its JSON encoding.
func decode[T any, P interface {
	*T
	shape
}](kind Kind, tree any) (Chart, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, mismatch(kind, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, mismatch(kind, err)
	}

	c := P(&v)
	if err := c.normalize(); err != nil {
		return nil, mismatch(kind, err)
	}
	return c, nil
}

func mismatch(kind Kind, cause error) error {
	return errors.Wrap(errors.ErrCodeSchemaMismatch, cause, "invalid %s chart JSON, check the input", kind).WithChart(string(kind))
}
