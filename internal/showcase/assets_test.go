package showcase

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMatcap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matcap.png")

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if img := LoadMatcap(path, 0); img.Rect.Dx() != 8 {
		t.Errorf("expected the 8px file, got %dpx", img.Rect.Dx())
	}
	if img := LoadMatcap(path, 4); img.Rect.Dx() != 4 {
		t.Errorf("expected a 4px downscale, got %dpx", img.Rect.Dx())
	}
	if img := LoadMatcap("", 0); img.Rect.Dx() != fallbackMatcapSize {
		t.Errorf("expected the procedural matcap for an empty path, got %dpx", img.Rect.Dx())
	}
	if img := LoadMatcap(filepath.Join(dir, "missing.png"), 4); img.Rect.Dx() != fallbackMatcapSize {
		t.Errorf("expected the procedural fallback, got %dpx", img.Rect.Dx())
	}
}

func TestLoadFont(t *testing.T) {
	font, err := LoadFont("")
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if font.Resolution != 2048 {
		t.Errorf("expected Go Regular, got resolution %v", font.Resolution)
	}

	font, err = LoadFont(filepath.Join(t.TempDir(), "missing.ttf"))
	if err != nil || font == nil {
		t.Fatalf("expected the Go Regular fallback, got %v", err)
	}

	font, err = LoadFont("lm-roman")
	if err != nil {
		t.Fatalf("LoadFont(lm-roman): %v", err)
	}
	if font.Resolution == 2048 {
		t.Error("expected Latin Modern, got a 2048 unit font")
	}
}
