package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is the bitmap and metrics of one rendered rune.
type Glyph struct {
	// Mask is nil for glyphs without ink, like space.
	Mask *image.Gray
	// Offset from the pen position to the top left of the mask, y down.
	BearingX, BearingY int
	// Horizontal offset to advance to the next glyph, in pixels.
	Advance float32
}

// NewFace parses a TrueType/OpenType font at size pixels. A nil ttf selects Go Regular.
func NewFace(ttf []byte, size float64) (font.Face, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// rasterize draws r into a grey mask sized to the glyph's bounds.
func rasterize(face font.Face, r rune) (Glyph, bool) {
	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return Glyph{}, false
	}
	g := Glyph{
		BearingX: bounds.Min.X.Floor(),
		BearingY: bounds.Min.Y.Floor(),
		Advance:  float32(advance) / 64,
	}
	width := bounds.Max.X.Ceil() - g.BearingX
	height := bounds.Max.Y.Ceil() - g.BearingY
	if width <= 0 || height <= 0 {
		return g, true
	}

	g.Mask = image.NewGray(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  g.Mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(-g.BearingX, -g.BearingY),
	}
	d.DrawString(string(r))
	return g, true
}

// Width is the advance of s in pixels at scale 1, skipping runes without a glyph.
func Width(glyphs map[rune]Glyph, s string) float32 {
	var w float32
	for _, r := range s {
		if g, ok := glyphs[r]; ok {
			w += g.Advance
		}
	}
	return w
}
