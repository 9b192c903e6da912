// Package styles holds the visual settings shared by the chart sinks: the
// built-in theme catalogue and text measuring and escaping helpers.
//
// Themes are defined in the embedded themes.toml and decoded once on first
// use. Chart JSON selects a theme by name; unknown names fall back to
// [DefaultTheme].
package styles

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
)

// DefaultTheme is used when a chart names a theme that does not exist.
const DefaultTheme = "light"

//go:embed themes.toml
var themesTOML []byte

// Theme is a named set of colors and font sizes.
type Theme struct {
	Name          string   `toml:"-"`
	Background    string   `toml:"background"`
	TextColor     string   `toml:"text_color"`
	TitleColor    string   `toml:"title_color"`
	SubTitleColor string   `toml:"sub_title_color"`
	AxisColor     string   `toml:"axis_color"`
	GridColor     string   `toml:"grid_color"`
	FontSize      float64  `toml:"font_size"`
	TitleFontSize float64  `toml:"title_font_size"`
	Palette       []string `toml:"palette"`
}

// SeriesColor returns the palette color for series i, cycling through the
// palette when there are more series than colors.
func (t Theme) SeriesColor(i int) string {
	return t.Palette[i%len(t.Palette)]
}

var (
	catalog     map[string]Theme
	catalogErr  error
	catalogOnce sync.Once
)

// ParseThemes decodes a TOML theme catalogue. Every theme must define a
// non-empty palette and positive font sizes.
func ParseThemes(data []byte) (map[string]Theme, error) {
	themes := make(map[string]Theme)
	if err := toml.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}
	for name, t := range themes {
		if len(t.Palette) == 0 {
			return nil, fmt.Errorf("theme %s: empty palette", name)
		}
		if t.FontSize <= 0 || t.TitleFontSize <= 0 {
			return nil, fmt.Errorf("theme %s: font sizes must be positive", name)
		}
		t.Name = name
		themes[name] = t
	}
	if _, ok := themes[DefaultTheme]; !ok {
		return nil, fmt.Errorf("missing default theme %q", DefaultTheme)
	}
	return themes, nil
}

func load() (map[string]Theme, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseThemes(themesTOML)
	})
	return catalog, catalogErr
}

// Lookup returns the built-in theme called name. Unknown names resolve to
// the default theme. An error is returned only if the embedded catalogue
// cannot be decoded.
func Lookup(name string) (Theme, error) {
	themes, err := load()
	if err != nil {
		return Theme{}, err
	}
	if t, ok := themes[name]; ok {
		return t, nil
	}
	return themes[DefaultTheme], nil
}

// Names lists the built-in theme names in sorted order.
func Names() []string {
	themes, err := load()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
