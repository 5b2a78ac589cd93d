package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/config"
	"github.com/Faultbox/textscene/internal/engine/input"
	"github.com/Faultbox/textscene/internal/engine/window"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/internal/showcase"
)

// Kiosk shows the scene full window without any panel. The lines are
// edited from the keyboard: Tab moves to the next line, typing appends,
// Backspace deletes and Escape quits.
type Kiosk struct {
	running bool
	window  *window.Window
	input   *input.Input
	stage   *stage
	editor  *showcase.LineEditor
}

// NewKiosk opens the window and builds the scene.
func NewKiosk(cfg *config.Config) (*Kiosk, error) {
	logger.Info("initializing kiosk",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	k := &Kiosk{}

	var err error
	k.window, err = window.New(window.Config{
		Title:      "textscene",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The stage needs the GL context the window just created.
	k.stage, err = newStage(cfg)
	if err != nil {
		k.window.Close()
		return nil, err
	}

	k.input = input.New()
	k.editor = showcase.NewLineEditor(k.stage.scene)
	k.window.StartTextInput()
	k.updateTitle()

	logger.Info("kiosk initialized successfully")
	return k, nil
}

// Run starts the frame loop.
func (k *Kiosk) Run() error {
	k.running = true
	logger.Info("starting kiosk loop")

	for k.running {
		if k.input.Update() {
			k.running = false
			break
		}

		for _, event := range k.input.Events() {
			if err := k.handle(event); err != nil {
				return fmt.Errorf("handle event: %w", err)
			}
		}

		if msg, ok := k.stage.pollMatcap(); ok {
			k.window.SetTitle(msg)
		}

		w, h := k.window.Size()
		k.stage.resize(w, h, k.window.PixelRatio())
		k.stage.scene.Controls.HandlePointer(k.input.Pointer(), float32(h))

		k.stage.draw()
		k.stage.target.BlitToScreen(k.stage.renderer.DrawingBufferSize())
		k.window.SwapBuffers()
	}

	return nil
}

func (k *Kiosk) handle(event input.Event) error {
	switch event.Type {
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			k.running = false
		case sdl.SCANCODE_TAB:
			k.editor.Next()
			k.updateTitle()
		case sdl.SCANCODE_BACKSPACE:
			return k.editor.Backspace()
		case sdl.SCANCODE_F12:
			k.window.SetTitle(k.stage.screenshot())
		case sdl.SCANCODE_HOME:
			k.stage.scene.ResetCamera()
		}
	case input.EventTextInput:
		return k.editor.Type(event.Text)
	}
	return nil
}

func (k *Kiosk) updateTitle() {
	k.window.SetTitle(fmt.Sprintf("textscene - editing %s (Tab for next)", showcase.LineLabels[k.editor.Active()]))
}

// Close releases GPU resources and the window.
func (k *Kiosk) Close() {
	logger.Info("closing kiosk")

	if k.stage != nil {
		k.stage.close()
	}
	if k.window != nil {
		k.window.Close()
	}
}
