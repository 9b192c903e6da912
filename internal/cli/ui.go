package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/charts/pkg/errors"
	"github.com/matzehuels/charts/pkg/render/styles"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconSwatch  = "■"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// PrintError prints the operator-facing message for err.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.Describe(err))
}

// printTheme prints one theme with its palette as colored swatches.
func printTheme(w io.Writer, t styles.Theme, isDefault bool) {
	var swatches strings.Builder
	for _, c := range t.Palette {
		swatches.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(iconSwatch))
	}
	key := styleKey
	if isDefault {
		key = key.Foreground(colorCyan)
	}
	line := key.Render(t.Name) + " " + swatches.String()
	if isDefault {
		line += " " + StyleDim.Render("(default)")
	}
	fmt.Fprintln(w, line)
}
