package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/charts/pkg/input"
)

// Chart option names.
const (
	flagName   = "name"
	flagInline = "inline"
	flagPath   = "path"
)

// capture reads the chart options from a parsed flag set. An option is
// present when it was given on the command line, even with an empty value.
func capture(flags *pflag.FlagSet) input.RawInput {
	return input.RawInput{
		ChartName: flagValue(flags, flagName),
		Inline:    flagValue(flags, flagInline),
		Path:      flagValue(flags, flagPath),
	}
}

func flagValue(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}
