// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/textscene/internal/engine/camera"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Text   string
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
}

// Input polls SDL events and tracks the pointer between frames.
type Input struct {
	events  []Event
	pointer camera.PointerState
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.pointer.Wheel = 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.TextInputEvent:
			i.events = append(i.events, Event{
				Type: EventTextInput,
				Text: e.GetText(),
			})

		case *sdl.MouseMotionEvent:
			i.pointer.X, i.pointer.Y = float32(e.X), float32(e.Y)
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			down := e.Type == sdl.MOUSEBUTTONDOWN
			i.pointer.X, i.pointer.Y = float32(e.X), float32(e.Y)
			switch e.Button {
			case sdl.BUTTON_LEFT:
				i.pointer.Left = down
			case sdl.BUTTON_RIGHT:
				i.pointer.Right = down
			}
			typ := EventMouseUp
			if down {
				typ = EventMouseDown
			}
			i.events = append(i.events, Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			wheel := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				wheel = -wheel
			}
			i.pointer.Wheel += wheel
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				WheelY: wheel,
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Pointer returns the mouse state after the last Update, with the wheel
// summed over that frame.
func (i *Input) Pointer() camera.PointerState {
	return i.pointer
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
