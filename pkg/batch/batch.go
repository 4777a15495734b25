// Package batch applies one tag edit to every selected line and records the
// result as a single undoable step.
//
// All lines are addressed by the same visible cursor position, taken from
// the selection on the active line. Edits are computed on drafts first; if
// any line fails nothing is written and no step is committed.
package batch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/subtag/internal/logging"
	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/subs"
	"github.com/yaklabco/subtag/pkg/tagedit"
)

var (
	// ErrNoActiveLine is returned when the selection has no cursor line.
	ErrNoActiveLine = errors.New("no active line")

	// ErrEmptySelection is returned when no lines are selected.
	ErrEmptySelection = errors.New("no lines selected")

	// ErrBusy is returned when an edit is started while another one runs.
	ErrBusy = errors.New("batch edit already in progress")
)

// Selection is the editor state an edit reads its lines and cursor from.
// Offsets are raw offsets into the active line.
type Selection interface {
	SelectionStart() scan.RawPos
	SelectionEnd() scan.RawPos
	SetSelection(start, end scan.RawPos)
	ActiveLine() tagedit.Line
	SelectedLines() []tagedit.Line
}

// Committer groups line changes into one undoable step.
type Committer interface {
	Commit(description string, kind subs.CommitKind, amend subs.CommitID, single tagedit.Line) subs.CommitID
}

// State is what an Editor is doing.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cursor is the position an EditFunc works at, in both coordinate spaces
// of the line being edited.
type Cursor struct {
	Visible scan.VisiblePos
	Raw     scan.RawPos
}

// EditFunc edits one parsed line at the cursor.
type EditFunc func(p *tagedit.ParsedLine, at Cursor) (tagedit.Edit, error)

// LineResult is what happened to one selected line.
type LineResult struct {
	Line tagedit.Line

	// Prior is the tag value in effect at the cursor before the edit, and
	// HadPrior whether one was set at all. Only SetTag fills them.
	Prior    string
	HadPrior bool

	Edit tagedit.Edit
}

// Result describes a completed batch edit.
type Result struct {
	// Commit is the step the edit was recorded as, or subs.NoCommit when
	// nothing changed.
	Commit subs.CommitID

	// ActiveDelta is the raw length change of the active line.
	ActiveDelta int

	// SelectionStart and SelectionEnd are the selection after the edit.
	SelectionStart scan.RawPos
	SelectionEnd   scan.RawPos

	Lines []LineResult
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger per-line results are reported to at debug
// level.
func WithLogger(logger *log.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAliases sets the table of equivalent tag spellings.
func WithAliases(a *ass.Aliases) Option {
	return func(e *Editor) {
		if a != nil {
			e.aliases = a
		}
	}
}

// Editor runs batch edits against one selection and document.
type Editor struct {
	selection Selection
	doc       Committer
	logger    *log.Logger
	aliases   *ass.Aliases

	mu    sync.Mutex
	state State
}

// New creates an Editor.
func New(selection Selection, doc Committer, opts ...Option) *Editor {
	e := &Editor{
		selection: selection,
		doc:       doc,
		logger:    logging.Discard(),
		aliases:   ass.DefaultAliases(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns what the editor is doing.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Editing {
		return ErrBusy
	}
	e.state = Editing
	return nil
}

func (e *Editor) end() {
	e.mu.Lock()
	e.state = Idle
	e.mu.Unlock()
}
