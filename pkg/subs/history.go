package subs

import (
	"errors"
	"sync"
	"time"

	"github.com/yaklabco/subtag/pkg/tagedit"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// CommitID identifies one undoable step.
type CommitID int

// NoCommit is passed as the amend id to start a new step. Real ids start
// at 1.
const NoCommit CommitID = -1

// CommitKind says what part of the document a step changed.
type CommitKind uint

const (
	CommitDialogueText CommitKind = 1 << iota
	CommitDialogueStyle
)

// lineState is the part of a line a step can change.
type lineState struct {
	text, style string
}

func stateOf(l tagedit.Line) lineState {
	return lineState{text: l.Text(), style: l.Style()}
}

// Change is one line's before and after state within a step.
type Change struct {
	Line   tagedit.Line
	before lineState
	after  lineState
}

// Before returns the text the line had before the step.
func (c Change) Before() string { return c.before.text }

// After returns the text the step left the line with.
func (c Change) After() string { return c.after.text }

// Step is one entry of the undo stack.
type Step struct {
	ID          CommitID
	Description string
	Kind        CommitKind
	Time        time.Time

	// Single is the only line the step touched when the caller said so.
	Single  tagedit.Line
	Changes []Change
}

// History groups line edits into undoable steps. It tracks a set of lines
// and remembers their state as of the last commit; each Commit records the
// difference since then.
type History struct {
	mu sync.Mutex

	lines    []tagedit.Line
	baseline map[tagedit.Line]lineState

	undo []*Step
	redo []*Step
	next CommitID
	max  int
}

// NewHistory starts tracking lines in their current state. maxSteps bounds
// the undo stack; 0 or less means 100.
func NewHistory(lines []tagedit.Line, maxSteps int) *History {
	if maxSteps <= 0 {
		maxSteps = 100
	}
	h := &History{
		lines:    lines,
		baseline: make(map[tagedit.Line]lineState, len(lines)),
		next:     1,
		max:      maxSteps,
	}
	for _, l := range lines {
		h.baseline[l] = stateOf(l)
	}
	return h
}

// Commit records every tracked line that changed since the last commit as
// one step and returns its id. When single is not nil only that line is
// examined. When amend is the id of the step on top of the undo stack, the
// changes are folded into it instead and amend is returned. Commit returns
// NoCommit when nothing changed and nothing was amended.
func (h *History) Commit(description string, kind CommitKind, amend CommitID, single tagedit.Line) CommitID {
	h.mu.Lock()
	defer h.mu.Unlock()

	candidates := h.lines
	if single != nil {
		candidates = []tagedit.Line{single}
	}

	var changes []Change
	for _, l := range candidates {
		before, tracked := h.baseline[l]
		now := stateOf(l)
		if tracked && before == now {
			continue
		}
		changes = append(changes, Change{Line: l, before: before, after: now})
		h.baseline[l] = now
	}

	if amend != NoCommit && len(h.undo) > 0 && h.undo[len(h.undo)-1].ID == amend {
		top := h.undo[len(h.undo)-1]
		top.merge(changes)
		top.Time = time.Now()
		h.redo = nil
		return amend
	}

	if len(changes) == 0 {
		return NoCommit
	}

	step := &Step{
		ID:          h.next,
		Description: description,
		Kind:        kind,
		Time:        time.Now(),
		Single:      single,
		Changes:     changes,
	}
	h.next++

	h.undo = append(h.undo, step)
	if excess := len(h.undo) - h.max; excess > 0 {
		h.undo = h.undo[excess:]
	}
	h.redo = nil
	return step.ID
}

// merge folds later changes into the step, keeping each line's oldest
// before state.
func (s *Step) merge(changes []Change) {
	for _, c := range changes {
		found := false
		for i := range s.Changes {
			if s.Changes[i].Line == c.Line {
				s.Changes[i].after = c.after
				found = true
				break
			}
		}
		if !found {
			s.Changes = append(s.Changes, c)
		}
	}
	if s.Single != nil && len(s.Changes) > 1 {
		s.Single = nil
	}
}

// Undo reverts the most recent step and returns it.
func (h *History) Undo() (*Step, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	step := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	for _, c := range step.Changes {
		h.restore(c.Line, c.before)
	}
	h.redo = append(h.redo, step)
	return step, nil
}

// Redo reapplies the most recently undone step and returns it.
func (h *History) Redo() (*Step, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	step := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	for _, c := range step.Changes {
		h.restore(c.Line, c.after)
	}
	h.undo = append(h.undo, step)
	return step, nil
}

func (h *History) restore(l tagedit.Line, s lineState) {
	l.SetText(s.text)
	l.SetStyle(s.style)
	h.baseline[l] = s
}

// Steps returns the undo stack, oldest first.
func (h *History) Steps() []*Step {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Step, len(h.undo))
	copy(out, h.undo)
	return out
}

// CanUndo reports whether there is a step to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether there is a step to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}
