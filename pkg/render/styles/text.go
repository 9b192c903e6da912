package styles

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"
	"unicode/utf8"
)

// fontCharWidth is the average glyph advance as a share of the font size.
const fontCharWidth = 0.55

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * fontCharWidth
}

// EscapeXML escapes s for use in SVG text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FormatValue formats a data value for labels, dropping float noise.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// FormatTick formats an axis tick value with enough decimals to tell
// neighbouring ticks step apart.
func FormatTick(v, step float64) string {
	if v == 0 {
		return "0"
	}
	if math.Abs(v) >= 1e6 || step <= 0 {
		return FormatValue(v)
	}
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
