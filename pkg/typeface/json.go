package typeface

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Faultbox/textscene/pkg/math"
)

// typefaceFile mirrors the typeface.json layout produced by facetype.js.
type typefaceFile struct {
	FamilyName         string  `json:"familyName"`
	Resolution         float32 `json:"resolution"`
	Ascender           float32 `json:"ascender"`
	Descender          float32 `json:"descender"`
	UnderlineThickness float32 `json:"underlineThickness"`
	BoundingBox        struct {
		XMin float32 `json:"xMin"`
		XMax float32 `json:"xMax"`
		YMin float32 `json:"yMin"`
		YMax float32 `json:"yMax"`
	} `json:"boundingBox"`
	Glyphs map[string]struct {
		HA      float32 `json:"ha"`
		XMin    float32 `json:"x_min"`
		XMax    float32 `json:"x_max"`
		Outline string  `json:"o"`
	} `json:"glyphs"`
}

// LoadJSON decodes a typeface JSON font. All glyph outlines are parsed up front.
func LoadJSON(r io.Reader) (*Font, error) {
	var tf typefaceFile
	if err := json.NewDecoder(r).Decode(&tf); err != nil {
		return nil, fmt.Errorf("decode typeface: %w", err)
	}
	if tf.Resolution <= 0 {
		return nil, fmt.Errorf("typeface %q: resolution %v must be positive", tf.FamilyName, tf.Resolution)
	}

	f := &Font{
		Family:     tf.FamilyName,
		Resolution: tf.Resolution,
		LineHeight: tf.BoundingBox.YMax - tf.BoundingBox.YMin + tf.UnderlineThickness,
		glyphs:     make(map[rune]*Glyph, len(tf.Glyphs)),
	}

	for key, g := range tf.Glyphs {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("typeface %q: glyph key %q is not a single character", tf.FamilyName, key)
		}
		segs, err := parseOutline(g.Outline)
		if err != nil {
			return nil, fmt.Errorf("typeface %q: glyph %q: %w", tf.FamilyName, key, err)
		}
		f.glyphs[r] = &Glyph{Advance: g.HA, Segments: segs}
	}

	return f, nil
}

// parseOutline parses the compact outline string of a typeface glyph.
// Commands are "m x y", "l x y", "q x y cpx cpy" and
// "b x y cp1x cp1y cp2x cp2y"; the end point precedes the control points.
func parseOutline(o string) ([]Segment, error) {
	fields := strings.Fields(o)
	var segs []Segment

	next := func(i *int, n int) ([]float32, error) {
		if *i+n > len(fields) {
			return nil, fmt.Errorf("command %q at field %d: want %d numbers", fields[*i-1], *i-1, n)
		}
		vals := make([]float32, n)
		for k := 0; k < n; k++ {
			v, err := strconv.ParseFloat(fields[*i+k], 32)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", *i+k, err)
			}
			vals[k] = float32(v)
		}
		*i += n
		return vals, nil
	}

	for i := 0; i < len(fields); {
		cmd := fields[i]
		i++
		switch cmd {
		case "m", "l":
			v, err := next(&i, 2)
			if err != nil {
				return nil, err
			}
			op := OpLineTo
			if cmd == "m" {
				op = OpMoveTo
			}
			segs = append(segs, Segment{Op: op, Args: [3]math.Vec2{{X: v[0], Y: v[1]}}})
		case "q":
			v, err := next(&i, 4)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Op: OpQuadTo, Args: [3]math.Vec2{
				{X: v[2], Y: v[3]},
				{X: v[0], Y: v[1]},
			}})
		case "b":
			v, err := next(&i, 6)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Op: OpCubeTo, Args: [3]math.Vec2{
				{X: v[2], Y: v[3]},
				{X: v[4], Y: v[5]},
				{X: v[0], Y: v[1]},
			}})
		case "z":
			// contours are closed implicitly
		default:
			return nil, fmt.Errorf("unknown outline command %q", cmd)
		}
	}
	return segs, nil
}
