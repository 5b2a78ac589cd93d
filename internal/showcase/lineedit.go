package showcase

import "unicode/utf8"

// LineEditor edits one line of a Showcase at a time from keyboard input.
type LineEditor struct {
	scene  *Showcase
	active int
}

// NewLineEditor starts editing the first line of s.
func NewLineEditor(s *Showcase) *LineEditor {
	return &LineEditor{scene: s}
}

// Active returns the index of the line being edited.
func (e *LineEditor) Active() int {
	return e.active
}

// Next moves to the following line, wrapping after the last.
func (e *LineEditor) Next() {
	e.active = (e.active + 1) % LineCount
}

// Type appends text to the active line.
func (e *LineEditor) Type(text string) error {
	if text == "" {
		return nil
	}
	line := e.scene.Params().Lines()[e.active]
	return e.scene.SetLine(e.active, line+text)
}

// Backspace deletes the last character of the active line.
func (e *LineEditor) Backspace() error {
	line := e.scene.Params().Lines()[e.active]
	if line == "" {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(line)
	return e.scene.SetLine(e.active, line[:len(line)-size])
}
