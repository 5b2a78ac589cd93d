package showcase

import (
	"errors"
	"fmt"
)

// LineCount is the number of editable text lines.
const LineCount = 3

// ErrLineIndex is returned for a line index outside [0, LineCount).
var ErrLineIndex = errors.New("line index out of range")

// LineLabels names the lines in the debug panel.
var LineLabels = [LineCount]string{"First Line", "Second Line", "Third Line"}

// TextParams holds the editable lines.
type TextParams struct {
	FirstLine  string
	SecondLine string
	ThirdLine  string
}

// DefaultTextParams returns the initial lettering.
func DefaultTextParams() TextParams {
	return TextParams{
		FirstLine:  "Alex Anderson",
		SecondLine: "Software Developer",
		ThirdLine:  "Creative Designer",
	}
}

// Lines returns the lines top to bottom.
func (p TextParams) Lines() [LineCount]string {
	return [LineCount]string{p.FirstLine, p.SecondLine, p.ThirdLine}
}

// Line returns line i.
func (p TextParams) Line(i int) (string, error) {
	if i < 0 || i >= LineCount {
		return "", fmt.Errorf("%w: %d", ErrLineIndex, i)
	}
	return p.Lines()[i], nil
}

// SetLine replaces line i.
func (p *TextParams) SetLine(i int, s string) error {
	switch i {
	case 0:
		p.FirstLine = s
	case 1:
		p.SecondLine = s
	case 2:
		p.ThirdLine = s
	default:
		return fmt.Errorf("%w: %d", ErrLineIndex, i)
	}
	return nil
}
