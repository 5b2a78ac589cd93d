package showcase

import "fmt"

// Panel binds the labelled debug fields to the text lines. Edits are
// committed one field at a time; only a real change reaches onChange.
type Panel struct {
	Labels [LineCount]string

	values   [LineCount]string
	onChange func(index int, value string) error
}

// NewPanel creates a panel showing params. onChange may be nil.
func NewPanel(params TextParams, onChange func(index int, value string) error) *Panel {
	return &Panel{
		Labels:   LineLabels,
		values:   params.Lines(),
		onChange: onChange,
	}
}

// Value returns the committed value of field i.
func (p *Panel) Value(i int) string {
	if i < 0 || i >= LineCount {
		return ""
	}
	return p.values[i]
}

// Values returns all committed values.
func (p *Panel) Values() [LineCount]string {
	return p.values
}

// Commit stores value for field i and reports whether it differed from
// the committed one. A failing onChange leaves the old value in place.
func (p *Panel) Commit(i int, value string) (bool, error) {
	if i < 0 || i >= LineCount {
		return false, fmt.Errorf("%w: %d", ErrLineIndex, i)
	}
	if p.values[i] == value {
		return false, nil
	}
	if p.onChange != nil {
		if err := p.onChange(i, value); err != nil {
			return false, err
		}
	}
	p.values[i] = value
	return true, nil
}

// Edit commits the text field buffer of field i. When the commit fails the
// buffer is reset to the committed value so the field and the scene agree.
func (p *Panel) Edit(i int, buf *string) error {
	if _, err := p.Commit(i, *buf); err != nil {
		*buf = p.Value(i)
		return err
	}
	return nil
}

// Sync replaces the committed values without firing onChange.
func (p *Panel) Sync(params TextParams) {
	p.values = params.Lines()
}
