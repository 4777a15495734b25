package subs

import (
	"strconv"
	"strings"

	"github.com/yaklabco/subtag/pkg/tagedit"
)

var _ tagedit.Line = (*Line)(nil)

// Field names of the [Events] Format line, lowercased.
const (
	FieldLayer   = "layer"
	FieldStart   = "start"
	FieldEnd     = "end"
	FieldStyle   = "style"
	FieldActor   = "name"
	FieldMarginL = "marginl"
	FieldMarginR = "marginr"
	FieldMarginV = "marginv"
	FieldEffect  = "effect"
	FieldText    = "text"
)

// defaultEventFormat is used when an [Events] section has no Format line.
var defaultEventFormat = []string{
	FieldLayer, FieldStart, FieldEnd, FieldStyle, FieldActor,
	FieldMarginL, FieldMarginR, FieldMarginV, FieldEffect, FieldText,
}

// span is a byte range in the script content.
type span struct {
	start, end int
}

// Line is one event of a script, a Dialogue or Comment line.
type Line struct {
	// Number is the 1-based position among the script's events.
	Number int

	// Kind is the event keyword, "Dialogue" or "Comment".
	Kind string

	// Row is the 0-based line of the script the event was read from.
	Row int

	format []string
	values []string
	spans  []span

	text  string
	style string
}

// Text returns the event text, override blocks included.
func (l *Line) Text() string { return l.text }

// SetText replaces the event text.
func (l *Line) SetText(text string) { l.text = text }

// Style returns the name of the event's style.
func (l *Line) Style() string { return l.style }

// SetStyle changes the event's style.
func (l *Line) SetStyle(style string) { l.style = style }

// Field returns a field by its Format name as read from the script. Text
// and style reflect later edits.
func (l *Line) Field(name string) string {
	switch name = strings.ToLower(name); name {
	case FieldText:
		return l.text
	case FieldStyle:
		return l.style
	}
	for i, f := range l.format {
		if f == name {
			return l.values[i]
		}
	}
	return ""
}

// Layer returns the event layer, or 0 when missing.
func (l *Line) Layer() int {
	n, _ := strconv.Atoi(strings.TrimSpace(l.Field(FieldLayer)))
	return n
}

// Modified reports whether text or style differ from the script.
func (l *Line) Modified() bool {
	return l.text != l.original(FieldText) || l.style != l.original(FieldStyle)
}

func (l *Line) original(name string) string {
	for i, f := range l.format {
		if f == name {
			return l.values[i]
		}
	}
	return ""
}

func (l *Line) spanOf(name string) (span, bool) {
	for i, f := range l.format {
		if f == name {
			return l.spans[i], true
		}
	}
	return span{}, false
}
