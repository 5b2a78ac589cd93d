package typeface

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Faultbox/textscene/pkg/math"
)

const testTypeface = `{
	"familyName": "Blocky",
	"resolution": 1000,
	"ascender": 800,
	"descender": -200,
	"underlineThickness": 50,
	"boundingBox": {"xMin": 0, "xMax": 700, "yMin": -200, "yMax": 800},
	"glyphs": {
		"I": {"ha": 300, "x_min": 0, "x_max": 200, "o": "m 0 0 l 200 0 l 200 700 l 0 700 z"},
		"O": {"ha": 700, "x_min": 0, "x_max": 600, "o": "m 0 0 l 600 0 l 600 700 l 0 700 m 150 150 l 150 550 l 450 550 l 450 150"},
		"D": {"ha": 650, "x_min": 0, "x_max": 600, "o": "m 0 0 l 300 0 q 300 700 600 350 l 0 700"},
		"?": {"ha": 500, "x_min": 0, "x_max": 400, "o": "m 0 0 l 400 0 l 400 400 l 0 400"},
		" ": {"ha": 250, "x_min": 0, "x_max": 0, "o": ""}
	}
}`

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	f, err := LoadJSON(strings.NewReader(testTypeface))
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	return f
}

func TestLoadJSON(t *testing.T) {
	f := loadTestFont(t)

	if f.Family != "Blocky" {
		t.Errorf("expected family Blocky, got %q", f.Family)
	}
	if f.Resolution != 1000 {
		t.Errorf("expected resolution 1000, got %f", f.Resolution)
	}
	// yMax - yMin + underlineThickness
	if f.LineHeight != 1050 {
		t.Errorf("expected line height 1050, got %f", f.LineHeight)
	}

	g, err := f.Glyph('O')
	if err != nil {
		t.Fatalf("Glyph('O') failed: %v", err)
	}
	if g.Advance != 700 || len(g.Segments) != 8 {
		t.Errorf("unexpected O glyph: advance %f, %d segments", g.Advance, len(g.Segments))
	}

	if _, err := f.Glyph('Z'); !errors.Is(err, ErrGlyphMissing) {
		t.Errorf("expected ErrGlyphMissing for Z, got %v", err)
	}
}

func TestLoadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"glyphs": `},
		{"zero resolution", `{"resolution": 0, "glyphs": {}}`},
		{"unknown command", `{"resolution": 1000, "glyphs": {"A": {"ha": 1, "o": "m 0 0 x 1 1"}}}`},
		{"truncated command", `{"resolution": 1000, "glyphs": {"A": {"ha": 1, "o": "m 0 0 l 1"}}}`},
		{"bad number", `{"resolution": 1000, "glyphs": {"A": {"ha": 1, "o": "m 0 zero"}}}`},
		{"multi-rune key", `{"resolution": 1000, "glyphs": {"AB": {"ha": 1, "o": ""}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadJSON(strings.NewReader(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestQuadraticArgumentOrder(t *testing.T) {
	segs, err := parseOutline("m 0 0 q 10 20 30 40")
	if err != nil {
		t.Fatalf("parseOutline failed: %v", err)
	}
	q := segs[1]
	if q.Op != OpQuadTo {
		t.Fatalf("expected QuadTo, got %v", q.Op)
	}
	// End point comes first in the outline string
	if q.End() != (math.Vec2{X: 10, Y: 20}) || q.Args[0] != (math.Vec2{X: 30, Y: 40}) {
		t.Errorf("unexpected quad args %v", q.Args)
	}

	segs, err = parseOutline("m 0 0 b 1 2 3 4 5 6")
	if err != nil {
		t.Fatalf("parseOutline failed: %v", err)
	}
	b := segs[1]
	if b.End() != (math.Vec2{X: 1, Y: 2}) || b.Args[0] != (math.Vec2{X: 3, Y: 4}) || b.Args[1] != (math.Vec2{X: 5, Y: 6}) {
		t.Errorf("unexpected cubic args %v", b.Args)
	}
}

func TestShapesSimpleGlyph(t *testing.T) {
	f := loadTestFont(t)

	shapes, missing := f.Shapes("I", 1, 5)
	if len(missing) != 0 {
		t.Errorf("unexpected missing runes %q", missing)
	}
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	s := shapes[0]
	if len(s.Outer) != 4 {
		t.Errorf("expected 4 outer points (closing point dropped), got %d", len(s.Outer))
	}
	if len(s.Holes) != 0 {
		t.Errorf("expected no holes, got %d", len(s.Holes))
	}
	if a := SignedArea(s.Outer); a < 0.1399 || a > 0.1401 {
		t.Errorf("expected CCW area 0.14, got %f", a)
	}
}

func TestShapesHole(t *testing.T) {
	f := loadTestFont(t)

	shapes, _ := f.Shapes("O", 1, 5)
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	if len(shapes[0].Holes) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(shapes[0].Holes))
	}
	if SignedArea(shapes[0].Outer) <= 0 {
		t.Error("outer contour should be counter-clockwise")
	}
	if SignedArea(shapes[0].Holes[0]) >= 0 {
		t.Error("hole should be clockwise")
	}
}

func TestShapesAdvanceAndNewline(t *testing.T) {
	f := loadTestFont(t)

	shapes, _ := f.Shapes("IO", 1, 5)
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	if x := minX(shapes[1].Outer); x < 0.2999 || x > 0.3001 {
		t.Errorf("second glyph should start at the first advance 0.3, got %f", x)
	}

	shapes, _ = f.Shapes("I\nI", 1, 5)
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	minY := shapes[1].Outer[0].Y
	for _, p := range shapes[1].Outer {
		if p.Y < minY {
			minY = p.Y
		}
	}
	if minY > -1.0499 || minY < -1.0501 {
		t.Errorf("second line should sit one line height (1.05) lower, got %f", minY)
	}
	if x := minX(shapes[1].Outer); x != 0 {
		t.Errorf("newline should reset x to 0, got %f", x)
	}
}

func TestShapesCurveSegments(t *testing.T) {
	f := loadTestFont(t)

	for _, segs := range []int{1, 5, 12} {
		shapes, _ := f.Shapes("D", 1000, segs)
		if len(shapes) != 1 {
			t.Fatalf("expected 1 shape, got %d", len(shapes))
		}
		// move + line + curve points + closing line
		want := 1 + 1 + segs + 1
		if got := len(shapes[0].Outer); got != want {
			t.Errorf("curveSegments=%d: expected %d points, got %d", segs, want, got)
		}
	}
}

func TestShapesMissingGlyph(t *testing.T) {
	f := loadTestFont(t)

	shapes, missing := f.Shapes("Z", 1, 5)
	if len(missing) != 1 || missing[0] != 'Z' {
		t.Errorf("expected Z reported missing, got %q", missing)
	}
	if len(shapes) != 1 {
		t.Errorf("expected fallback glyph shape, got %d shapes", len(shapes))
	}

	shapes, missing = f.Shapes(" ", 1, 5)
	if len(shapes) != 0 || len(missing) != 0 {
		t.Errorf("space should produce nothing, got %d shapes, missing %q", len(shapes), missing)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if !PointInPolygon(math.Vec2{X: 0.5, Y: 0.5}, square) {
		t.Error("center should be inside")
	}
	if PointInPolygon(math.Vec2{X: 1.5, Y: 0.5}, square) {
		t.Error("point to the right should be outside")
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "blocky.typeface.json")
	if err := os.WriteFile(jsonPath, []byte(testTypeface), 0644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	f, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load(json) failed: %v", err)
	}
	if f.Family != "Blocky" {
		t.Errorf("expected Blocky, got %q", f.Family)
	}

	if _, err := Load(filepath.Join(dir, "font.woff2")); !errors.Is(err, ErrUnknownFontFormat) {
		t.Errorf("expected ErrUnknownFontFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.ttf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultFont(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if f.Resolution != 2048 {
		t.Errorf("expected Go Regular at 2048 units per em, got %f", f.Resolution)
	}
	if f.LineHeight <= 0 {
		t.Errorf("expected positive line height, got %f", f.LineHeight)
	}

	tests := []struct {
		text   string
		shapes int
		holes  int
	}{
		{"l", 1, 0},
		{"o", 1, 1},
		{"B", 1, 2},
		{"i", 2, 0},
	}
	for _, tt := range tests {
		shapes, missing := f.Shapes(tt.text, 0.5, 5)
		if len(missing) != 0 {
			t.Errorf("%q: unexpected missing runes %q", tt.text, missing)
		}
		if len(shapes) != tt.shapes {
			t.Errorf("%q: expected %d shapes, got %d", tt.text, tt.shapes, len(shapes))
			continue
		}
		holes := 0
		for _, s := range shapes {
			holes += len(s.Holes)
		}
		if holes != tt.holes {
			t.Errorf("%q: expected %d holes, got %d", tt.text, tt.holes, holes)
		}
	}

	// Go Regular has no CJK coverage
	if _, missing := f.Shapes("一", 0.5, 5); len(missing) != 1 {
		t.Errorf("expected the CJK rune to be reported missing, got %q", missing)
	}
}

func TestBundled(t *testing.T) {
	names := BundledNames()
	if len(names) == 0 || !slices.IsSorted(names) {
		t.Fatalf("BundledNames = %v", names)
	}
	for _, name := range names {
		if !IsBundled(name) {
			t.Errorf("IsBundled(%q) = false", name)
		}
		f, err := Bundled(name)
		if err != nil {
			t.Errorf("Bundled(%q): %v", name, err)
			continue
		}
		if f.Family == "" {
			t.Errorf("%s: empty family", name)
		}
		shapes, missing := f.Shapes("o", 0.5, 5)
		if len(missing) != 0 || len(shapes) != 1 || len(shapes[0].Holes) != 1 {
			t.Errorf("%s: 'o' gave %d shapes, missing %v", name, len(shapes), missing)
		}
	}

	a, _ := Bundled("lm-roman")
	b, _ := Bundled("lm-roman")
	if a != b {
		t.Error("expected bundled fonts to be cached")
	}
	if _, err := Bundled("comic-sans"); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("expected ErrUnknownFont, got %v", err)
	}
	if IsBundled("comic-sans") {
		t.Error("IsBundled(comic-sans) = true")
	}
}

func square(half float32, ccw bool) []math.Vec2 {
	pts := []math.Vec2{{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
	if !ccw {
		slices.Reverse(pts)
	}
	return pts
}

func TestGroupContoursNested(t *testing.T) {
	// Ring with an island that has its own hole, wound inconsistently.
	contours := [][]math.Vec2{
		square(1, false),
		square(5, true),
		square(2, true),
		square(4, false),
	}
	shapes := groupContours(contours)
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}

	byArea := map[float32]Shape{}
	for _, s := range shapes {
		if SignedArea(s.Outer) <= 0 {
			t.Errorf("outer contour should be counter-clockwise")
		}
		if len(s.Holes) != 1 {
			t.Fatalf("expected 1 hole per shape, got %d", len(s.Holes))
		}
		if SignedArea(s.Holes[0]) >= 0 {
			t.Errorf("hole should be clockwise")
		}
		byArea[SignedArea(s.Outer)] = s
	}

	tests := []struct {
		outer, hole float32
	}{
		{100, -64},
		{16, -4},
	}
	for _, tt := range tests {
		s, ok := byArea[tt.outer]
		if !ok {
			t.Errorf("no shape with outer area %v", tt.outer)
			continue
		}
		if a := SignedArea(s.Holes[0]); a != tt.hole {
			t.Errorf("outer %v: hole area %v, want %v", tt.outer, a, tt.hole)
		}
	}
}
