package app

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/config"
	"github.com/Faultbox/textscene/internal/engine/ui"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/internal/showcase"
)

const panelWidth = 320

// Editor shows the scene behind an ImGui debug panel with one text field
// per line.
type Editor struct {
	backend *ui.Backend
	stage   *stage
	panel   *showcase.Panel

	// buffers hold what the text fields currently show.
	buffers [showcase.LineCount]string

	// pendingMatcap receives paths picked in the file dialog goroutine.
	pendingMatcap chan string

	notice     string
	noticeTime time.Time
}

// NewEditor opens the window and builds the scene.
func NewEditor(cfg *config.Config) (*Editor, error) {
	backend, err := ui.NewBackend("textscene", cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("create ui backend: %w", err)
	}

	st, err := newStage(cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}

	e := &Editor{
		backend:       backend,
		stage:         st,
		pendingMatcap: make(chan string, 1),
	}
	backend.OnClose(e.releaseStage)
	e.panel = showcase.NewPanel(st.scene.Params(), st.scene.SetLine)
	e.buffers = e.panel.Values()
	return e, nil
}

// Run starts the frame loop and returns when the window closes.
func (e *Editor) Run() {
	logger.Info("starting editor loop")
	e.backend.Run(e.render)
}

// Close releases GPU resources and the window.
func (e *Editor) Close() {
	logger.Info("closing editor")
	e.backend.Close()
}

// releaseStage frees the stage while its GL context is still alive.
func (e *Editor) releaseStage() {
	if e.stage != nil {
		e.stage.close()
		e.stage = nil
	}
}

// render is called once per frame by the backend with an ImGui frame open.
func (e *Editor) render() {
	select {
	case path := <-e.pendingMatcap:
		e.setNotice(e.stage.loadMatcap(path))
	default:
	}
	if msg, ok := e.stage.pollMatcap(); ok {
		e.setNotice(msg)
	}

	w, h := ui.DisplaySize()
	e.stage.resize(int(w), int(h), ui.PixelRatio())

	e.stage.scene.Controls.HandlePointer(ui.Pointer(), h)
	e.stage.draw()

	if ui.IsKeyPressed(imgui.KeyF12) {
		e.setNotice(e.stage.screenshot())
	}

	ui.DrawSceneTexture(0, 0, w, h, e.stage.target.ColorTexture())
	e.drawPanel(w)

	if e.notice != "" {
		if time.Since(e.noticeTime) < noticeDuration {
			ui.DrawNotice(e.notice, w, h)
		} else {
			e.notice = ""
		}
	}
}

func (e *Editor) drawPanel(displayWidth float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(displayWidth-panelWidth-10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(panelWidth, 0), imgui.CondFirstUseEver)

	if imgui.BeginV("Debug", nil, imgui.WindowFlagsNoCollapse) {
		for i := range e.buffers {
			label := e.panel.Labels[i]
			imgui.Text(label)
			imgui.SetNextItemWidth(-1)
			if imgui.InputTextWithHint(fmt.Sprintf("##line%d", i), label, &e.buffers[i], 0, nil) {
				if err := e.panel.Edit(i, &e.buffers[i]); err != nil {
					logger.Error("text rebuild failed", zap.Int("line", i), zap.Error(err))
					e.setNotice(fmt.Sprintf("Cannot update %s: %v", label, err))
				}
			}
		}

		imgui.Spacing()
		imgui.Separator()
		st := e.stage.renderer.Stats()
		imgui.Text(ui.FormatStats(ui.FPS(), st.DrawCalls, st.Triangles))
		imgui.Spacing()

		if imgui.Button("Reset camera") {
			e.stage.scene.ResetCamera()
		}
		imgui.SameLine()
		if imgui.Button("Load matcap...") {
			e.openMatcapDialog()
		}
		imgui.SameLine()
		if imgui.Button("Screenshot") {
			e.setNotice(e.stage.screenshot())
		}
		imgui.TextDisabled("Drag to orbit, right drag to pan, wheel to zoom. F12 saves a screenshot.")
	}
	imgui.End()
}

// openMatcapDialog shows a native file dialog to pick a matcap image.
func (e *Editor) openMatcapDialog() {
	// The dialog blocks, so it runs off the main thread. The texture
	// must be created on the main thread, so only the path is handed back.
	go func() {
		filename, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "bmp", "webp").
			Filter("All Files", "*").
			Title("Load Matcap").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog error", zap.Error(err))
			}
			return
		}

		select {
		case e.pendingMatcap <- filename:
		default:
			logger.Warn("matcap load already pending", zap.String("path", filename))
		}
	}()
}

func (e *Editor) setNotice(msg string) {
	e.notice = msg
	e.noticeTime = time.Now()
}
