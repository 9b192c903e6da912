package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/charts/pkg/fonts"
)

// svgText is a <text> element with the presentation attributes the chart
// sink emits.
type svgText struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Size   float64 `xml:"font-size,attr"`
	Fill   string  `xml:"fill,attr"`
	Anchor string  `xml:"text-anchor,attr"`
	Weight string  `xml:"font-weight,attr"`
	Body   string  `xml:",chardata"`
}

// readText collects the <text> elements of svg in document order.
func readText(svg []byte) ([]svgText, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	var texts []svgText
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return texts, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read svg text: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "text" {
			continue
		}
		var t svgText
		if err := dec.DecodeElement(&t, &se); err != nil {
			return nil, fmt.Errorf("read svg text: %w", err)
		}
		texts = append(texts, t)
	}
}

type faceKey struct {
	size float64
	bold bool
}

// drawText draws texts onto dst with the embedded fonts. sx and sy map SVG
// user units to pixels.
func drawText(dst draw.Image, texts []svgText, sx, sy float64) error {
	faces := make(map[faceKey]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, t := range texts {
		if t.Body == "" || t.Size <= 0 {
			continue
		}
		key := faceKey{size: t.Size * sy, bold: t.Weight == "bold"}
		face, ok := faces[key]
		if !ok {
			var err error
			if face, err = fonts.Face(key.size, key.bold); err != nil {
				return err
			}
			faces[key] = face
		}

		x := t.X * sx
		adv := float64(font.MeasureString(face, t.Body)) / 64
		switch t.Anchor {
		case "middle":
			x -= adv / 2
		case "end":
			x -= adv
		}

		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(parseHex(t.Fill)),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(t.Y * sy * 64)},
		}
		d.DrawString(t.Body)
	}
	return nil
}

// parseHex decodes #rgb, #rgba, #rrggbb or #rrggbbaa. Anything else is black.
func parseHex(s string) color.Color {
	if len(s) == 0 || s[0] != '#' {
		return color.Black
	}
	hex := s[1:]
	if len(hex) == 3 || len(hex) == 4 {
		long := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			long = append(long, hex[i], hex[i])
		}
		hex = string(long)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
