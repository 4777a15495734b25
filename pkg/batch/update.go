package batch

import (
	"fmt"

	"github.com/yaklabco/subtag/internal/logging"
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/subs"
	"github.com/yaklabco/subtag/pkg/tagedit"
)

// Request is a SetTag call.
type Request struct {
	// Description names the step in the undo history.
	Description string

	Tag   string
	Value string

	// Amend is the id of an earlier step to fold this edit into, as
	// returned by a previous SetTag. Zero or subs.NoCommit starts a new
	// step.
	Amend subs.CommitID
}

// SetTag sets a tag to a value at the cursor on every selected line.
func (e *Editor) SetTag(req Request) (*Result, error) {
	// Lines are edited in selection order, one call each.
	var priors []LineResult

	res, err := e.update(req.Description, req.Amend, func(p *tagedit.ParsedLine, at Cursor) (tagedit.Edit, error) {
		value, ok := p.Value(at.Visible, req.Tag)
		priors = append(priors, LineResult{Prior: value, HadPrior: ok})
		return p.Set(req.Tag, req.Value, at.Visible, at.Raw)
	})
	if err != nil {
		return nil, err
	}

	for i := range res.Lines {
		res.Lines[i].Prior, res.Lines[i].HadPrior = priors[i].Prior, priors[i].HadPrior
	}
	return res, nil
}

// Update runs fn on every selected line and commits the result as one step.
func (e *Editor) Update(description string, fn EditFunc) (*Result, error) {
	return e.update(description, subs.NoCommit, fn)
}

func (e *Editor) update(description string, amend subs.CommitID, fn EditFunc) (*Result, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.end()

	active := e.selection.ActiveLine()
	if active == nil {
		return nil, ErrNoActiveLine
	}
	lines := e.selection.SelectedLines()
	if len(lines) == 0 {
		return nil, ErrEmptySelection
	}

	start, end := e.selection.SelectionStart(), e.selection.SelectionEnd()
	visible := scan.ToVisible(active.Text(), start)

	logger := e.logger.With(logging.FieldDescription, description)
	logger.Debug("batch edit", logging.FieldLines, len(lines), logging.FieldVisible, visible, logging.FieldRaw, start)

	drafts := make([]*draft, len(lines))
	results := make([]LineResult, len(lines))
	activeDelta := 0

	for i, line := range lines {
		drafts[i] = newDraft(line)

		at := Cursor{Visible: visible, Raw: start}
		if line != active {
			at.Raw = scan.ToRaw(line.Text(), visible)
		}

		p := tagedit.Parse(drafts[i], tagedit.WithAliases(e.aliases))
		edit, err := fn(p, at)
		if err != nil {
			return nil, fmt.Errorf("edit selected line %d: %w", i+1, err)
		}

		results[i] = LineResult{Line: line, Edit: edit}
		if line == active {
			activeDelta = edit.Delta()
		}

		logger.Debug("line edited",
			logging.FieldLine, i+1,
			logging.FieldBlock, edit.Block,
			logging.FieldDelta, edit.Delta(),
		)
	}

	for _, d := range drafts {
		d.writeBack()
	}

	var single tagedit.Line
	if len(lines) == 1 {
		single = lines[0]
	}
	if amend == 0 {
		amend = subs.NoCommit
	}
	commit := e.doc.Commit(description, subs.CommitDialogueText, amend, single)

	if activeDelta != 0 {
		start = scan.RawPos(int(start) + activeDelta)
		end = scan.RawPos(int(end) + activeDelta)
		e.selection.SetSelection(start, end)
	}

	logger.Debug("batch committed", logging.FieldCommit, commit, logging.FieldDelta, activeDelta)

	return &Result{
		Commit:         commit,
		ActiveDelta:    activeDelta,
		SelectionStart: start,
		SelectionEnd:   end,
		Lines:          results,
	}, nil
}

// draft holds a line's new text until the whole batch has succeeded.
type draft struct {
	line  tagedit.Line
	text  string
	style string
}

func newDraft(line tagedit.Line) *draft {
	return &draft{line: line, text: line.Text(), style: line.Style()}
}

func (d *draft) Text() string          { return d.text }
func (d *draft) SetText(text string)   { d.text = text }
func (d *draft) Style() string         { return d.style }
func (d *draft) SetStyle(style string) { d.style = style }

func (d *draft) writeBack() {
	if d.line.Text() != d.text {
		d.line.SetText(d.text)
	}
	if d.line.Style() != d.style {
		d.line.SetStyle(d.style)
	}
}
