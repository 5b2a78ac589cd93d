package showcase

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/math"
	"github.com/Faultbox/textscene/pkg/typeface"
)

func testMatcap() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.White)
	return img
}

func newTestShowcase(t *testing.T) *Showcase {
	t.Helper()
	font, err := typeface.Default()
	if err != nil {
		t.Fatalf("Default font: %v", err)
	}
	opts := DefaultOptions()
	opts.Seed = 42
	s, err := New(font, testMatcap(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func checkLines(t *testing.T, s *Showcase) {
	t.Helper()
	meshes := s.Text.Meshes()
	if len(meshes) != LineCount {
		t.Fatalf("expected %d meshes, got %d", LineCount, len(meshes))
	}
	if n := len(s.Text.Group.Children()); n != LineCount {
		t.Fatalf("expected %d children in text group, got %d", LineCount, n)
	}
	want := s.Params().Lines()
	for i, m := range meshes {
		if m.Index != i {
			t.Errorf("mesh %d has index %d", i, m.Index)
		}
		if m.Text != want[i] {
			t.Errorf("mesh %d text = %q, want %q", i, m.Text, want[i])
		}
		if m.Object.Parent() != s.Text.Group {
			t.Errorf("mesh %d is not attached to the text group", i)
		}
		if m.Object.Geometry.Disposed() {
			t.Errorf("mesh %d geometry is disposed", i)
		}
	}
}

func TestNewBuildsThreeLines(t *testing.T) {
	s := newTestShowcase(t)
	checkLines(t, s)

	meshes := s.Text.Meshes()
	for i, wantY := range []float32{0.7, 0, -0.7} {
		if got := meshes[i].Object.Position.Y; got != wantY {
			t.Errorf("line %d at y=%v, want %v", i, got, wantY)
		}
		c := meshes[i].Object.Geometry.BoundingBox().Center()
		if abs(c.X) > 1e-4 || abs(c.Y) > 1e-4 || abs(c.Z) > 1e-4 {
			t.Errorf("line %d geometry not centered: %+v", i, c)
		}
	}
}

func TestSetLineRebuilds(t *testing.T) {
	s := newTestShowcase(t)
	before := s.Text.Meshes()

	if err := s.SetLine(1, "Gopher"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	checkLines(t, s)
	if s.Params().SecondLine != "Gopher" {
		t.Errorf("expected second line to be updated, got %q", s.Params().SecondLine)
	}
	for i, m := range before {
		if !m.Object.Geometry.Disposed() {
			t.Errorf("old geometry of line %d was not disposed", i)
		}
		if m.Object.Parent() != nil {
			t.Errorf("old mesh of line %d still attached", i)
		}
	}

	edits := []struct {
		line int
		text string
	}{
		{0, ""},
		{2, "a\nb"},
		{0, "日本"},
		{2, "Third"},
	}
	for _, e := range edits {
		if err := s.SetLine(e.line, e.text); err != nil {
			t.Fatalf("SetLine(%d, %q): %v", e.line, e.text, err)
		}
		checkLines(t, s)
	}
	if got := s.Text.Meshes()[0].Text; got != "日本" {
		t.Errorf("expected first line %q, got %q", "日本", got)
	}
}

func TestSetLineOutOfRange(t *testing.T) {
	s := newTestShowcase(t)
	before := s.Text.Meshes()

	err := s.SetLine(3, "nope")
	if !errors.Is(err, ErrLineIndex) {
		t.Fatalf("expected ErrLineIndex, got %v", err)
	}
	if before[0].Object.Geometry.Disposed() {
		t.Error("failed edit must not rebuild")
	}
}

func TestTextBlockWithoutFont(t *testing.T) {
	b := NewTextBlock(nil, nil, geometry.DefaultTextOptions(), 0.7)
	if err := b.Rebuild(DefaultTextParams()); !errors.Is(err, ErrFontNotLoaded) {
		t.Fatalf("expected ErrFontNotLoaded, got %v", err)
	}
	if b.Meshes() != nil {
		t.Error("expected no meshes")
	}

	if _, err := New(nil, testMatcap(), DefaultOptions()); !errors.Is(err, ErrFontNotLoaded) {
		t.Fatalf("expected ErrFontNotLoaded from New, got %v", err)
	}
}

func TestScatter(t *testing.T) {
	opts := DefaultScatterOptions()
	group := Scatter(NewRand(7), nil, opts)

	donuts := group.Children()
	if len(donuts) != 100 {
		t.Fatalf("expected 100 donuts, got %d", len(donuts))
	}
	half := opts.Spread / 2
	shared := donuts[0].Geometry
	for i, d := range donuts {
		p := d.Position
		for _, v := range []float32{p.X, p.Y, p.Z} {
			if v < -half || v >= half {
				t.Errorf("donut %d position %+v outside [-%v, %v)", i, p, half, half)
			}
		}
		if d.Rotation.X < 0 || d.Rotation.X >= 3.1416 || d.Rotation.Y < 0 || d.Rotation.Y >= 3.1416 {
			t.Errorf("donut %d rotation %+v outside [0, π)", i, d.Rotation)
		}
		if d.Rotation.Z != 0 {
			t.Errorf("donut %d rotated around Z", i)
		}
		s := d.Scale
		if s.X != s.Y || s.Y != s.Z || s.X < 0 || s.X >= 1 {
			t.Errorf("donut %d scale %+v not uniform in [0, 1)", i, s)
		}
		if d.Geometry != shared {
			t.Errorf("donut %d does not share the torus geometry", i)
		}
	}
}

func TestScatterDeterministic(t *testing.T) {
	a := Scatter(NewRand(3), nil, DefaultScatterOptions()).Children()
	b := Scatter(NewRand(3), nil, DefaultScatterOptions()).Children()
	for i := range a {
		if a[i].Position != b[i].Position || a[i].Scale != b[i].Scale {
			t.Fatalf("donut %d differs between runs with the same seed", i)
		}
	}
}

func TestShowcaseDonutsSurviveTextEdits(t *testing.T) {
	s := newTestShowcase(t)
	if n := len(s.Donuts.Children()); n != 100 {
		t.Fatalf("expected 100 donuts, got %d", n)
	}
	if err := s.SetLine(0, "changed"); err != nil {
		t.Fatal(err)
	}
	if n := len(s.Donuts.Children()); n != 100 {
		t.Errorf("expected 100 donuts after edit, got %d", n)
	}
	if n := len(s.Scene.Children()); n != 2 {
		t.Errorf("expected text and donut groups under the root, got %d", n)
	}
}

func TestResize(t *testing.T) {
	s := newTestShowcase(t)

	tests := []struct {
		w, h      int
		dpr       float32
		wantRatio float32
	}{
		{1280, 720, 1, 1},
		{1920, 1080, 3, 2},
		{375, 812, 2, 2},
		{1000, 1000, 1.5, 1.5},
	}
	for _, tt := range tests {
		v := s.Resize(tt.w, tt.h, tt.dpr)
		want := float32(tt.w) / float32(tt.h)
		if s.Camera.Aspect != want {
			t.Errorf("%dx%d: camera aspect = %v, want %v", tt.w, tt.h, s.Camera.Aspect, want)
		}
		if v.PixelRatio != tt.wantRatio {
			t.Errorf("%dx%d@%v: pixel ratio = %v, want %v", tt.w, tt.h, tt.dpr, v.PixelRatio, tt.wantRatio)
		}
	}

	aspect := s.Camera.Aspect
	if v := s.Resize(0, 0, 1); !v.Empty() {
		t.Error("expected an empty viewport")
	}
	if s.Camera.Aspect != aspect {
		t.Error("an empty viewport must not change the aspect")
	}
}

func TestTickAndReset(t *testing.T) {
	s := newTestShowcase(t)
	start := s.Camera.Position

	s.Controls.Rotate(200, 0, 720)
	moved := false
	for i := 0; i < 10; i++ {
		moved = s.Tick() || moved
	}
	if !moved || s.Camera.Position == start {
		t.Fatal("expected the camera to orbit")
	}

	s.ResetCamera()
	if s.Camera.Position != start {
		t.Errorf("expected reset to %+v, got %+v", start, s.Camera.Position)
	}
}

func TestSetMatcapAndDispose(t *testing.T) {
	s := newTestShowcase(t)
	v := s.Material.Version()
	s.SetMatcap(testMatcap())
	if s.Material.Version() == v {
		t.Error("expected the material version to change")
	}

	lines := s.Text.Meshes()
	torus := s.Donuts.Children()[0].Geometry
	s.Dispose()
	if !torus.Disposed() {
		t.Error("expected the torus geometry to be disposed")
	}
	for i, l := range lines {
		if !l.Object.Geometry.Disposed() {
			t.Errorf("line %d geometry not disposed", i)
		}
	}
	if len(s.Donuts.Children()) != 0 || s.Text.Meshes() != nil {
		t.Error("expected an empty scene after Dispose")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestExport(t *testing.T) {
	s := newTestShowcase(t)
	if err := s.SetLine(1, ""); err != nil {
		t.Fatal(err)
	}

	objects := s.Export(false)
	if len(objects) != 2 {
		t.Fatalf("expected the two non-empty lines, got %d objects", len(objects))
	}
	if objects[0].Name != "line-0" || objects[1].Name != "line-2" {
		t.Errorf("unexpected names %q, %q", objects[0].Name, objects[1].Name)
	}
	if got := objects[0].Transform.TransformVec3(math.Vec3{}); got.Y != 0.7 {
		t.Errorf("expected the first line lifted to y=0.7, got %+v", got)
	}

	if n := len(s.Export(true)); n != 102 {
		t.Errorf("expected 102 objects with donuts, got %d", n)
	}
}
