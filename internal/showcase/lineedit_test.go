package showcase

import "testing"

func TestLineEditor(t *testing.T) {
	s := newTestShowcase(t)
	e := NewLineEditor(s)

	if err := e.Type("!"); err != nil {
		t.Fatal(err)
	}
	if got := s.Params().FirstLine; got != "Alex Anderson!" {
		t.Errorf("expected appended text, got %q", got)
	}

	e.Next()
	if e.Active() != 1 {
		t.Fatalf("expected line 1, got %d", e.Active())
	}
	for range len("Software Developer") {
		if err := e.Backspace(); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Params().SecondLine; got != "" {
		t.Errorf("expected an empty line, got %q", got)
	}
	before := s.Text.Meshes()[1].Object
	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if s.Text.Meshes()[1].Object != before {
		t.Error("backspace on an empty line must not rebuild")
	}
	checkLines(t, s)

	e.Next()
	if err := e.Type("é"); err != nil {
		t.Fatal(err)
	}
	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if got := s.Params().ThirdLine; got != "Creative Designer" {
		t.Errorf("backspace should remove one rune, got %q", got)
	}

	e.Next()
	if e.Active() != 0 {
		t.Errorf("expected to wrap to line 0, got %d", e.Active())
	}
}
