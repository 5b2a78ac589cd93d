// Package capture saves rendered frames as PNG screenshots.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes timestamped PNG files into a directory.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots creates a writer for dir. Files are named prefix_<time>.png.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next screenshot would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(s.dir, name)
}

// Save encodes img and returns the written path.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	path := s.Filename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, f.Close()
}
