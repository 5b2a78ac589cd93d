package showcase

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/engine/texture"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/pkg/typeface"
)

// fallbackMatcapSize is the edge length of the procedural matcap.
const fallbackMatcapSize = 256

// LoadFont resolves name to a font. name is either a bundled font such as
// "lm-roman" or a path to a typeface JSON, TTF or OTF file. Empty or
// unreadable names fall back to Go Regular.
func LoadFont(name string) (*typeface.Font, error) {
	switch {
	case name == "":
		return typeface.Default()
	case typeface.IsBundled(name):
		return typeface.Bundled(name)
	}
	font, err := typeface.Load(name)
	if err != nil {
		logger.Warn("font load failed, using Go Regular", zap.String("path", name), zap.Error(err))
		return typeface.Default()
	}
	logger.Info("font loaded", zap.String("path", name), zap.String("family", font.Family))
	return font, nil
}

// LoadMatcap decodes the matcap at path and scales it down to at most
// maxSize pixels per side. An empty path selects the procedural matcap; a
// missing or broken file is logged and replaced by it.
func LoadMatcap(path string, maxSize int) *image.RGBA {
	if path == "" {
		logger.Info("no matcap configured, using procedural matcap")
		return texture.Procedural(fallbackMatcapSize)
	}
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("matcap load failed, using procedural matcap", zap.String("path", path), zap.Error(err))
		return texture.Procedural(fallbackMatcapSize)
	}
	fitted := texture.Fit(img, maxSize)
	logger.Info("matcap loaded", zap.String("path", path),
		zap.Int("width", fitted.Rect.Dx()), zap.Int("height", fitted.Rect.Dy()))
	if fitted != img {
		logger.Debug("matcap downscaled", zap.Int("from", img.Rect.Dx()), zap.Int("max", maxSize))
	}
	return fitted
}
