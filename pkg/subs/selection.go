package subs

import (
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/tagedit"
)

// SelectionState is the editor state a batch edit reads and updates: the
// selected lines, the line holding the cursor, and the cursor selection
// within that line's raw text.
type SelectionState struct {
	selected []tagedit.Line
	active   tagedit.Line
	start    scan.RawPos
	end      scan.RawPos
}

// NewSelection creates a selection with the cursor at start..end of active.
func NewSelection(active tagedit.Line, selected []tagedit.Line, start, end scan.RawPos) *SelectionState {
	return &SelectionState{
		selected: selected,
		active:   active,
		start:    start,
		end:      end,
	}
}

// SelectEvents builds a selection of the given 1-based events of f with
// active as the cursor line.
func SelectEvents(f *File, active int, numbers []int, start, end scan.RawPos) (*SelectionState, error) {
	act, err := f.Event(active)
	if err != nil {
		return nil, err
	}

	selected := make([]tagedit.Line, 0, len(numbers))
	for _, n := range numbers {
		l, err := f.Event(n)
		if err != nil {
			return nil, err
		}
		selected = append(selected, l)
	}
	return NewSelection(act, selected, start, end), nil
}

func (s *SelectionState) SelectionStart() scan.RawPos   { return s.start }
func (s *SelectionState) SelectionEnd() scan.RawPos     { return s.end }
func (s *SelectionState) ActiveLine() tagedit.Line      { return s.active }
func (s *SelectionState) SelectedLines() []tagedit.Line { return s.selected }

// SetSelection moves the cursor selection.
func (s *SelectionState) SetSelection(start, end scan.RawPos) {
	s.start, s.end = start, end
}
