package geometry

import (
	"github.com/Faultbox/textscene/pkg/typeface"
)

// TextOptions controls text geometry.
type TextOptions struct {
	Size          float32 // em size in world units
	Depth         float32
	CurveSegments int // points per flattened curve

	BevelEnabled   bool
	BevelThickness float32
	BevelSize      float32
	BevelOffset    float32
	BevelSegments  int
}

// DefaultTextOptions returns the style used for the showcase lettering.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Size:           0.5,
		Depth:          0.2,
		CurveSegments:  5,
		BevelEnabled:   true,
		BevelThickness: 0.03,
		BevelSize:      0.02,
		BevelOffset:    0,
		BevelSegments:  4,
	}
}

// Extrude converts the text options to extrusion options.
func (o TextOptions) Extrude() ExtrudeOptions {
	return ExtrudeOptions{
		Depth:          o.Depth,
		Steps:          1,
		BevelEnabled:   o.BevelEnabled,
		BevelThickness: o.BevelThickness,
		BevelSize:      o.BevelSize,
		BevelOffset:    o.BevelOffset,
		BevelSegments:  o.BevelSegments,
	}
}

// Text lays out text with font and extrudes it. The baseline of the first
// line starts at the origin. Runes the font cannot draw are rendered as
// '?' and returned in missing.
func Text(font *typeface.Font, text string, opts TextOptions) (*Geometry, []rune) {
	shapes, missing := font.Shapes(text, opts.Size, opts.CurveSegments)
	return Extrude(shapes, opts.Extrude()), missing
}
