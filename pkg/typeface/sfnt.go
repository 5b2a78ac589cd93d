package typeface

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/textscene/pkg/math"
)

// LoadSFNT parses a TrueType or OpenType font. Outlines are extracted on
// first use at one pixel per font unit, so coordinates are exact font units.
func LoadSFNT(data []byte) (*Font, error) {
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse sfnt: %w", err)
	}

	var buf sfnt.Buffer
	upem := int(parsed.UnitsPerEm())
	ppem := fixed.I(upem)

	metrics, err := parsed.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}
	family, err := parsed.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		family = ""
	}

	f := &Font{
		Family:     family,
		Resolution: float32(upem),
		LineHeight: fromFixed(metrics.Height),
		glyphs:     make(map[rune]*Glyph),
	}

	// buf is shared by both closures; Font.mu serializes them.
	f.source = func(r rune) (*Glyph, error) {
		idx, err := parsed.GlyphIndex(&buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph index %q: %w", r, err)
		}
		if idx == 0 {
			return nil, fmt.Errorf("%q: %w", r, ErrGlyphMissing)
		}

		segs, err := parsed.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("load glyph %q: %w", r, err)
		}
		adv, err := parsed.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("glyph advance %q: %w", r, err)
		}

		g := &Glyph{Advance: fromFixed(adv), Segments: make([]Segment, 0, len(segs))}
		for _, s := range segs {
			var seg Segment
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				seg.Op = OpMoveTo
			case sfnt.SegmentOpLineTo:
				seg.Op = OpLineTo
			case sfnt.SegmentOpQuadTo:
				seg.Op = OpQuadTo
			case sfnt.SegmentOpCubeTo:
				seg.Op = OpCubeTo
			}
			for i := range s.Args {
				// sfnt outlines are Y down
				seg.Args[i] = math.Vec2{X: fromFixed(s.Args[i].X), Y: -fromFixed(s.Args[i].Y)}
			}
			g.Segments = append(g.Segments, seg)
		}
		return g, nil
	}

	f.kern = func(a, b rune) float32 {
		ia, errA := parsed.GlyphIndex(&buf, a)
		ib, errB := parsed.GlyphIndex(&buf, b)
		if errA != nil || errB != nil || ia == 0 || ib == 0 {
			return 0
		}
		k, err := parsed.Kern(&buf, ia, ib, ppem, font.HintingNone)
		if err != nil {
			// sfnt.ErrNotFound means the font has no kerning for this pair
			return 0
		}
		return fromFixed(k)
	}

	return f, nil
}

// Default returns Go Regular.
func Default() (*Font, error) {
	return Bundled("go-regular")
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
