package showcase

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/textscene/internal/engine/scene"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/math"
	"github.com/Faultbox/textscene/pkg/typeface"
)

// ErrFontNotLoaded is returned when text is built before a font is set.
var ErrFontNotLoaded = errors.New("font not loaded")

// LineMesh is one built line of text.
type LineMesh struct {
	Index  int
	Text   string
	Object *scene.Object
}

// TextBlock owns the group holding one mesh per text line. Every rebuild
// replaces all three meshes and disposes the old geometry.
type TextBlock struct {
	Group *scene.Object

	font     *typeface.Font
	material *scene.Material
	opts     geometry.TextOptions
	spacing  float32

	lines [LineCount]LineMesh
	built bool
}

// NewTextBlock creates an empty block. font may be nil until SetFont.
func NewTextBlock(font *typeface.Font, material *scene.Material, opts geometry.TextOptions, spacing float32) *TextBlock {
	return &TextBlock{
		Group:    scene.NewGroup("text"),
		font:     font,
		material: material,
		opts:     opts,
		spacing:  spacing,
	}
}

// SetFont changes the font used by the next Rebuild.
func (b *TextBlock) SetFont(font *typeface.Font) {
	b.font = font
}

// Rebuild replaces the line meshes with ones built from params. Each
// line is centered on its own bounding box and placed spacing apart,
// the first line on top.
func (b *TextBlock) Rebuild(params TextParams) error {
	if b.font == nil {
		return ErrFontNotLoaded
	}
	defer logger.Time(zapcore.DebugLevel, "text rebuilt")()

	b.release()

	for i, text := range params.Lines() {
		g, missing := geometry.Text(b.font, text, b.opts)
		if len(missing) > 0 {
			logger.Warn("missing glyphs",
				zap.Int("line", i),
				zap.String("characters", string(missing)),
				zap.String("font", b.font.Family))
		}
		g.Center()

		mesh := scene.NewMesh(fmt.Sprintf("line-%d", i), g, b.material)
		mesh.Position = math.Vec3{Y: b.spacing * float32(1-i)}
		b.Group.Add(mesh)
		b.lines[i] = LineMesh{Index: i, Text: text, Object: mesh}
	}
	b.built = true
	return nil
}

// Meshes returns the built lines by index, or nil before the first Rebuild.
func (b *TextBlock) Meshes() []LineMesh {
	if !b.built {
		return nil
	}
	out := make([]LineMesh, LineCount)
	copy(out, b.lines[:])
	return out
}

// Dispose removes the meshes and releases their geometry.
func (b *TextBlock) Dispose() {
	b.release()
	b.built = false
}

func (b *TextBlock) release() {
	for _, o := range b.Group.Clear() {
		if o.Geometry != nil {
			o.Geometry.Dispose()
		}
	}
	b.lines = [LineCount]LineMesh{}
}
