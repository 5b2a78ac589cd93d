// Package ui provides the ImGui backend and overlay widgets.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/logger"
)

// textGlyphRanges covers the scripts the debug panel is expected to edit.
// Format: pairs of [start, end] values followed by a 0 terminator.
var textGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF, // Basic Latin + Latin Supplement
	0x0100, 0x024F, // Latin Extended-A and B
	0x0370, 0x03FF, // Greek
	0x0400, 0x04FF, // Cyrillic
	0x2000, 0x206F, // General Punctuation
	0,
}

// fontPaths lists system fonts tried in order for the panel.
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf", // macOS
	"/Library/Fonts/Arial Unicode.ttf",                     // macOS (symlink)
	"C:\\Windows\\Fonts\\segoeui.ttf",                      // Windows
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",      // Linux
	"/usr/share/fonts/TTF/DejaVuSans.ttf",                  // Linux alt
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	// done is set once the loop has returned and torn down the window.
	done    bool
	onClose func()
}

// NewBackend creates the window and GL context. bg is the clear colour
// behind all ImGui windows.
func NewBackend(title string, width, height int, bg [3]float32) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(loadFont)
	b.backend.SetBeforeDestroyContextHook(b.beforeDestroy)
	b.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		b.Close()
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	logger.Info("imgui backend ready",
		zap.String("title", title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))))

	return b, nil
}

// loadFont loads a system font covering textGlyphRanges. ImGui's built-in
// font is used when none is installed.
func loadFont() {
	var fontPath string
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			fontPath = path
			break
		}
	}
	if fontPath == "" {
		logger.Debug("no system font found, using the ImGui default")
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(fontPath, 16.0, fontCfg, &textGlyphRanges[0])
	logger.Debug("ui font loaded", zap.String("path", fontPath))
}

// Run starts the main render loop. It returns when the window closes,
// after the window and GL context have been destroyed.
func (b *Backend) Run(renderFunc func()) {
	if b.done {
		return
	}
	b.backend.Run(renderFunc)
	b.done = true
}

// OnClose registers fn to run while the GL context is still current, just
// before the loop destroys it.
func (b *Backend) OnClose(fn func()) {
	b.onClose = fn
}

// Close destroys the window and GL context if Run has not already done so.
func (b *Backend) Close() {
	if b.done {
		return
	}
	b.backend.SetShouldClose(true)
	b.Run(func() {})
}

func (b *Backend) beforeDestroy() {
	if b.onClose != nil {
		b.onClose()
		b.onClose = nil
	}
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// DisplaySize returns the window size in logical pixels.
func DisplaySize() (float32, float32) {
	size := imgui.CurrentIO().DisplaySize()
	return size.X, size.Y
}

// PixelRatio returns the framebuffer scale of the display.
func PixelRatio() float32 {
	return imgui.CurrentIO().DisplayFramebufferScale().X
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
