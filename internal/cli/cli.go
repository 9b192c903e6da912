package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/charts/pkg/buildinfo"
	"github.com/matzehuels/charts/pkg/chart"
	"github.com/matzehuels/charts/pkg/observability"
	"github.com/matzehuels/charts/pkg/pipeline"
	"github.com/matzehuels/charts/pkg/render"
	"github.com/matzehuels/charts/pkg/render/styles"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the command name used in usage and version output.
const appName = "charts"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives the success line, Stderr the error line.
	Stdout io.Writer
	Stderr io.Writer

	// output overrides the chart path; empty means pipeline.DefaultOutput.
	output string
}

// New creates a new CLI instance that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// renderFlags holds the raster settings. The chart options themselves are
// read through the flag set so that presence can be told from emptiness.
type renderFlags struct {
	rasterizer string
	quality    int
	scale      float64
}

// RootCommand creates the charts command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var rf renderFlags

	root := &cobra.Command{
		Use:   appName + " -n <kind> (-i <json> | -p <file>)",
		Short: "Charts Command Line Interface",
		Long: `Charts renders a chart described in JSON to chart.jpg in the current directory.

The chart kind is one of: ` + kindList() + `. The JSON comes either inline
(--inline) or from a file (--path), never both.`,
		Example: `  charts -n bar -i '{"x_axis_data": ["Mon", "Tue"], "series": [{"data": [3, 5]}]}'
  charts -n scatter -p height-weight.json`,
		Args:          cobra.NoArgs,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, rf)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Stdout)
	root.SetErr(c.Stderr)

	flags := root.Flags()
	flags.StringP(flagName, "n", "", "chart name ("+kindList()+")")
	flags.StringP(flagInline, "i", "", "inline JSON string")
	flags.StringP(flagPath, "p", "", "json file path")
	flags.StringVar(&rf.rasterizer, "rasterizer", render.RasterizerAuto, "SVG rasterizer: "+strings.Join(render.Rasterizers(), ", "))
	flags.IntVar(&rf.quality, "quality", render.DefaultQuality, "JPEG quality (1-100)")
	flags.Float64Var(&rf.scale, "scale", render.DefaultScale, "image scale factor")

	_ = root.RegisterFlagCompletionFunc(flagName, cobra.FixedCompletions(kindNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = root.RegisterFlagCompletionFunc("rasterizer", cobra.FixedCompletions(render.Rasterizers(), cobra.ShellCompDirectiveNoFileComp))
	_ = root.MarkFlagFilename(flagPath, "json")

	root.AddCommand(c.themesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// run executes the pipeline for one invocation and prints the success line.
func (c *CLI) run(cmd *cobra.Command, rf renderFlags) error {
	logger := c.Logger.With("run", newRunID())
	ctx := withLogger(cmd.Context(), logger)

	raw := capture(cmd.Flags())

	runner, err := pipeline.NewRunner(pipeline.Options{
		Output:     c.output,
		Quality:    rf.quality,
		Scale:      rf.scale,
		Rasterizer: rf.rasterizer,
	}, logger)
	if err != nil {
		return err
	}
	observability.SetStageHooks(logHooks{})

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, raw)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s chart with %s rasterizer", res.Chart, runner.Rasterizer.Name()))

	printSuccess(c.Stdout, "Chart created: %s", res.Output)
	return nil
}

// themesCommand lists the built-in themes.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in chart themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range styles.Names() {
				t, err := styles.Lookup(name)
				if err != nil {
					return err
				}
				printTheme(c.Stdout, t, name == styles.DefaultTheme)
			}
			return nil
		},
	}
}

func kindNames() []string {
	kinds := make([]string, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		kinds = append(kinds, string(k))
	}
	return kinds
}

func kindList() string { return strings.Join(kindNames(), ", ") }
