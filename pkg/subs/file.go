// Package subs models an Advanced SubStation Alpha script as far as tag
// editing needs it: the events, the styles they reference, an undo history
// and the editor selection.
//
// Everything other than the text and style fields of events is kept as
// read, so writing an unedited script reproduces it byte for byte.
package subs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/samber/lo"

	"github.com/yaklabco/subtag/pkg/fix"
	"github.com/yaklabco/subtag/pkg/fsutil"
	"github.com/yaklabco/subtag/pkg/tagedit"
)

var (
	// ErrBinary is returned when the input does not look like text.
	ErrBinary = errors.New("not a text subtitle script")

	// ErrNoSuchLine is returned for an event number outside the script.
	ErrNoSuchLine = errors.New("no such event")
)

// ParseError reports a malformed event or style line.
type ParseError struct {
	Row     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Row+1, e.Message)
}

const bom = "\xEF\xBB\xBF"

// File is a parsed script.
type File struct {
	// Path is where the script was read from, if anywhere.
	Path string

	// Snapshot describes the file on disk when it was read.
	Snapshot *fsutil.Snapshot

	content []byte
	events  []*Line
	styles  map[string]*Style
}

// Parse parses script content.
func Parse(content []byte) (*File, error) {
	f := &File{
		content: content,
		styles:  make(map[string]*Style),
	}

	section := ""
	var eventFormat, styleFormat []string

	for row, start := 0, 0; start < len(content); row++ {
		end := bytes.IndexByte(content[start:], '\n')
		if end < 0 {
			end = len(content)
		} else {
			end += start
		}

		bodyStart := start
		if row == 0 && bytes.HasPrefix(content, []byte(bom)) {
			bodyStart += len(bom)
		}
		body := strings.TrimSuffix(string(content[bodyStart:end]), "\r")
		start = end + 1

		trimmed := strings.TrimSpace(body)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(trimmed)
			continue
		}

		colon := strings.IndexByte(body, ':')
		if colon < 0 {
			continue
		}
		key := strings.TrimSpace(body[:colon])
		value := body[colon+1:]
		valueStart := bodyStart + colon + 1

		switch section {
		case "[events]":
			switch key {
			case "Format":
				eventFormat = parseFormat(value)
			case "Dialogue", "Comment":
				format := eventFormat
				if format == nil {
					format = defaultEventFormat
				}
				line, err := parseEvent(row, key, value, valueStart, format)
				if err != nil {
					return nil, err
				}
				line.Number = len(f.events) + 1
				f.events = append(f.events, line)
			}
		case "[v4+ styles]", "[v4 styles]":
			switch key {
			case "Format":
				styleFormat = parseFormat(value)
			case "Style":
				if styleFormat == nil {
					return nil, &ParseError{Row: row, Message: "style line before Format"}
				}
				style := parseStyle(value, styleFormat)
				f.styles[style.Name] = style
			}
		}
	}

	return f, nil
}

func parseFormat(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// parseEvent splits the value of an event line into the fields named by
// format. The last field takes the rest of the line, commas included.
func parseEvent(row int, kind, value string, offset int, format []string) (*Line, error) {
	if format[len(format)-1] != FieldText {
		return nil, &ParseError{Row: row, Message: "event format must end with Text"}
	}

	// One space after the colon is part of the keyword.
	if strings.HasPrefix(value, " ") {
		value = value[1:]
		offset++
	}

	line := &Line{
		Kind:   kind,
		Row:    row,
		format: format,
		values: make([]string, 0, len(format)),
		spans:  make([]span, 0, len(format)),
	}

	pos := 0
	for i := range format {
		end := len(value)
		if i < len(format)-1 {
			comma := strings.IndexByte(value[pos:], ',')
			if comma < 0 {
				return nil, &ParseError{
					Row:     row,
					Message: fmt.Sprintf("%s has %d fields, want %d", kind, i+1, len(format)),
				}
			}
			end = pos + comma
		}
		line.values = append(line.values, value[pos:end])
		line.spans = append(line.spans, span{start: offset + pos, end: offset + end})
		pos = end + 1
	}

	line.text = line.original(FieldText)
	line.style = line.original(FieldStyle)
	return line, nil
}

// Events returns all events in script order.
func (f *File) Events() []*Line {
	return f.events
}

// Lines returns all events as editable lines.
func (f *File) Lines() []tagedit.Line {
	return lo.Map(f.events, func(l *Line, _ int) tagedit.Line { return l })
}

// Event returns the event with the given 1-based number.
func (f *File) Event(n int) (*Line, error) {
	if n < 1 || n > len(f.events) {
		return nil, fmt.Errorf("%w: %d (script has %d)", ErrNoSuchLine, n, len(f.events))
	}
	return f.events[n-1], nil
}

// Modified reports whether any event was edited.
func (f *File) Modified() bool {
	for _, l := range f.events {
		if l.Modified() {
			return true
		}
	}
	return false
}

// Original returns the content the script was parsed from.
func (f *File) Original() []byte {
	return f.content
}

// Bytes returns the script with all event edits applied.
func (f *File) Bytes() ([]byte, error) {
	b := fix.NewEditBuilder()
	for _, l := range f.events {
		if s, ok := l.spanOf(FieldText); ok && l.text != l.original(FieldText) {
			b.Replace(s.start, s.end, l.text)
		}
		if s, ok := l.spanOf(FieldStyle); ok && l.style != l.original(FieldStyle) {
			b.Replace(s.start, s.end, l.style)
		}
	}

	edits, err := fix.PrepareEdits(b.Edits, len(f.content))
	if err != nil {
		return nil, fmt.Errorf("apply event edits: %w", err)
	}
	return fix.ApplyEdits(f.content, edits), nil
}

// Read reads and parses the script at path.
func Read(ctx context.Context, path string) (*File, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if enry.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s", ErrBinary, path)
	}

	f, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.Path = path
	f.Snapshot = snap
	return f, nil
}

// Write saves the script to path atomically, keeping the file mode it was
// read with. With backup set, the previous content is first copied to a
// sidecar backup.
func (f *File) Write(ctx context.Context, path string, backup bool) error {
	content, err := f.Bytes()
	if err != nil {
		return err
	}

	if backup {
		if _, err := fsutil.CreateBackup(ctx, path); err != nil {
			return err
		}
	}

	mode := fsutil.DefaultFileMode
	if f.Snapshot != nil {
		mode = f.Snapshot.Mode.Perm()
	}
	return fsutil.WriteAtomic(ctx, path, content, mode)
}
