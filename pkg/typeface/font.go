// Package typeface loads outline fonts and turns text into filled 2D shapes
// ready for triangulation and extrusion.
package typeface

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/textscene/pkg/math"
)

var (
	// ErrGlyphMissing is returned when a font has no outline for a rune.
	ErrGlyphMissing = errors.New("glyph missing")
	// ErrUnknownFontFormat is returned by Load for unsupported file extensions.
	ErrUnknownFontFormat = errors.New("unknown font format")
)

// Op is a glyph outline drawing operation.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
)

// Segment is one outline command in font units, Y up.
// MoveTo and LineTo use Args[0]; QuadTo uses Args[0] as the control point
// and Args[1] as the end point; CubeTo uses Args[0], Args[1] as control
// points and Args[2] as the end point.
type Segment struct {
	Op   Op
	Args [3]math.Vec2
}

// End returns the point the segment finishes at.
func (s Segment) End() math.Vec2 {
	switch s.Op {
	case OpQuadTo:
		return s.Args[1]
	case OpCubeTo:
		return s.Args[2]
	default:
		return s.Args[0]
	}
}

// Glyph is the outline and horizontal advance of one character.
type Glyph struct {
	Advance  float32
	Segments []Segment
}

// Font is an outline font. Glyphs are resolved lazily for fonts backed by
// a binary font file. A Font is safe for concurrent use.
type Font struct {
	Family string
	// Resolution is the number of font units per em.
	Resolution float32
	// LineHeight is the distance between baselines in font units.
	LineHeight float32

	mu     sync.Mutex
	glyphs map[rune]*Glyph
	source func(r rune) (*Glyph, error)
	kern   func(a, b rune) float32
}

// Glyph returns the outline for r.
func (f *Font) Glyph(r rune) (*Glyph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.glyphLocked(r)
}

func (f *Font) glyphLocked(r rune) (*Glyph, error) {
	if g, ok := f.glyphs[r]; ok {
		if g == nil {
			return nil, fmt.Errorf("%q: %w", r, ErrGlyphMissing)
		}
		return g, nil
	}
	if f.source == nil {
		return nil, fmt.Errorf("%q: %w", r, ErrGlyphMissing)
	}
	g, err := f.source(r)
	if f.glyphs == nil {
		f.glyphs = make(map[rune]*Glyph)
	}
	if err != nil {
		if errors.Is(err, ErrGlyphMissing) {
			f.glyphs[r] = nil
		}
		return nil, err
	}
	f.glyphs[r] = g
	return g, nil
}

func (f *Font) kerning(a, b rune) float32 {
	if f.kern == nil {
		return 0
	}
	return f.kern(a, b)
}

// Load reads a font file, picking the decoder from the file extension:
// ".json" for typeface JSON, ".ttf" and ".otf" for SFNT fonts.
func Load(path string) (*Font, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return LoadJSON(file)
	case ".ttf", ".otf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return LoadSFNT(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFontFormat)
	}
}
