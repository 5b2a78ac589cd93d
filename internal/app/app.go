// Package app wires the scene, renderer and input into the two
// front-ends: the ImGui editor and the bare SDL kiosk.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/config"
	"github.com/Faultbox/textscene/internal/engine/capture"
	"github.com/Faultbox/textscene/internal/engine/framebuffer"
	"github.com/Faultbox/textscene/internal/engine/renderer"
	"github.com/Faultbox/textscene/internal/engine/texture"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/internal/showcase"
)

// noticeDuration is how long a status message stays on screen.
const noticeDuration = 2 * time.Second

// stage is the GL side of a front-end: the scene, the renderer drawing
// it and the offscreen target it is drawn into.
type stage struct {
	scene    *showcase.Showcase
	renderer *renderer.Renderer
	target   *framebuffer.Framebuffer
	shots    *capture.Screenshots
	watcher  *texture.Watcher // nil until a matcap file is watched

	maxMatcapSize int
	watchMatcap   bool

	width, height int
	pixelRatio    float32

	frames   int
	fpsTimer time.Time
}

// newStage loads assets and builds the scene. A GL context must be current.
func newStage(cfg *config.Config) (*stage, error) {
	font, err := showcase.LoadFont(cfg.Assets.Font)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	matcap := showcase.LoadMatcap(cfg.Assets.Matcap, cfg.Assets.MaxMatcapSize)

	scene, err := showcase.New(font, matcap, showcase.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	r, err := renderer.New(renderer.Config{
		Width:         cfg.Graphics.Width,
		Height:        cfg.Graphics.Height,
		MaxPixelRatio: cfg.Graphics.MaxPixelRatio,
		ClearColor:    cfg.Graphics.ClearColor,
	}, texture.Procedural(64))
	if err != nil {
		scene.Dispose()
		return nil, err
	}

	target, err := framebuffer.New(r.DrawingBufferSize())
	if err != nil {
		r.Close()
		scene.Dispose()
		return nil, fmt.Errorf("create render target: %w", err)
	}

	s := &stage{
		scene:         scene,
		renderer:      r,
		target:        target,
		shots:         capture.NewScreenshots(cfg.Assets.ScreenshotDir, "textscene"),
		maxMatcapSize: cfg.Assets.MaxMatcapSize,
		watchMatcap:   cfg.Assets.WatchMatcap,
		fpsTimer:      time.Now(),
	}
	s.watch(cfg.Assets.Matcap)
	return s, nil
}

// resize propagates a window size change to the camera, the renderer and
// the render target. Repeated calls with the same size do nothing.
func (s *stage) resize(width, height int, dpr float32) {
	if width == s.width && height == s.height && dpr == s.pixelRatio {
		return
	}
	s.width, s.height, s.pixelRatio = width, height, dpr

	v := s.scene.Resize(width, height, dpr)
	if v.Empty() {
		return
	}
	s.renderer.SetPixelRatio(v.PixelRatio)
	s.renderer.Resize(v.Width, v.Height)
	s.target.Resize(s.renderer.DrawingBufferSize())
}

// draw advances the controls one frame and renders into the target.
func (s *stage) draw() {
	s.scene.Tick()

	s.target.Bind()
	s.renderer.Render(s.scene.Scene, s.scene.Camera)
	s.target.Unbind()

	s.frames++
	if time.Since(s.fpsTimer) >= time.Second {
		st := s.renderer.Stats()
		logger.Debug("frame stats",
			zap.Int("fps", s.frames),
			zap.Int("draw_calls", st.DrawCalls),
			zap.Int("triangles", st.Triangles),
			zap.Int("buffers", st.Buffers))
		s.frames = 0
		s.fpsTimer = time.Now()
	}
}

// screenshot saves the last rendered frame and returns a status line.
func (s *stage) screenshot() string {
	path, err := s.shots.Save(s.target.ReadImage())
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return fmt.Sprintf("Screenshot failed: %v", err)
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return "Saved " + path
}

// loadMatcap swaps the matcap for the file at path and returns a status line.
// The watcher follows the new file.
func (s *stage) loadMatcap(path string) string {
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("matcap load failed", zap.String("path", path), zap.Error(err))
		return fmt.Sprintf("Cannot load matcap: %v", err)
	}
	s.scene.SetMatcap(texture.Fit(img, s.maxMatcapSize))
	logger.Info("matcap replaced", zap.String("path", path))

	s.watch(path)
	return "Matcap " + path
}

// watch points hot reload at path, starting the watcher on first use.
func (s *stage) watch(path string) {
	if !s.watchMatcap || path == "" {
		return
	}
	var err error
	if s.watcher == nil {
		s.watcher, err = texture.NewWatcher(path)
	} else {
		err = s.watcher.Set(path)
	}
	if err != nil {
		logger.Warn("cannot watch matcap", zap.String("path", path), zap.Error(err))
	}
}

// pollMatcap reloads the matcap if its file changed on disk since the
// last call. It returns a status line and whether anything happened.
func (s *stage) pollMatcap() (string, bool) {
	if s.watcher == nil {
		return "", false
	}
	select {
	case path, ok := <-s.watcher.Changes():
		if !ok {
			return "", false
		}
		logger.Debug("matcap changed on disk", zap.String("path", path))
		return s.loadMatcap(path), true
	default:
		return "", false
	}
}

func (s *stage) close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			logger.Warn("close matcap watcher", zap.Error(err))
		}
	}
	s.scene.Dispose()
	s.target.Destroy()
	s.renderer.Close()
}
