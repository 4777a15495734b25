package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Op marks a diff line as context, addition or removal. Its value is the
// unified diff prefix character.
type Op byte

const (
	OpContext Op = ' '
	OpAdd     Op = '+'
	OpRemove  Op = '-'
)

// DiffLine is one line of a hunk, without its prefix or line terminator.
type DiffLine struct {
	Op   Op
	Text string
}

// Hunk is a group of nearby changes with surrounding context. Starts are
// 1-based line numbers.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []DiffLine
}

// Diff is a unified diff between two versions of a script.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// region is a changed range, old[oldStart:oldEnd] replaced by
// new[newStart:newEnd], 0-based.
type region struct {
	oldStart, oldEnd int
	newStart, newEnd int
}

// GenerateDiff returns the unified diff from original to modified, or nil
// when they are equal.
//
// Tag edits rewrite lines in place, so when both versions have the same
// number of lines each changed line is reported on its own. Otherwise the
// span between the common prefix and the common suffix is reported as a
// single change.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	oldLines := splitLines(original)
	newLines := splitLines(modified)

	regions := changedRegions(oldLines, newLines)
	if len(regions) == 0 {
		return nil
	}

	d := &Diff{Path: path}
	for _, group := range groupRegions(regions) {
		d.Hunks = append(d.Hunks, buildHunk(oldLines, newLines, group))
	}
	for _, h := range d.Hunks {
		for _, l := range h.Lines {
			switch l.Op {
			case OpAdd:
				d.Additions++
			case OpRemove:
				d.Deletions++
			case OpContext:
			}
		}
	}
	return d
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with a/ and b/ path headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			b.WriteByte(byte(l.Op))
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// splitLines splits content on newlines. A final newline does not start an
// extra empty line, and a carriage return before a newline is dropped.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func changedRegions(oldLines, newLines []string) []region {
	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	if len(oldLines) != len(newLines) {
		if prefix == len(oldLines) && prefix == len(newLines) {
			return nil
		}
		return []region{{
			oldStart: prefix, oldEnd: len(oldLines) - suffix,
			newStart: prefix, newEnd: len(newLines) - suffix,
		}}
	}

	var regions []region
	for i := prefix; i < len(oldLines)-suffix; i++ {
		if oldLines[i] == newLines[i] {
			continue
		}
		if n := len(regions); n > 0 && regions[n-1].oldEnd == i {
			regions[n-1].oldEnd++
			regions[n-1].newEnd++
			continue
		}
		regions = append(regions, region{oldStart: i, oldEnd: i + 1, newStart: i, newEnd: i + 1})
	}
	return regions
}

// groupRegions merges regions whose context would overlap into one hunk.
func groupRegions(regions []region) [][]region {
	var groups [][]region
	for _, r := range regions {
		if n := len(groups); n > 0 {
			last := groups[n-1][len(groups[n-1])-1]
			if r.oldStart-last.oldEnd <= 2*contextLines {
				groups[n-1] = append(groups[n-1], r)
				continue
			}
		}
		groups = append(groups, []region{r})
	}
	return groups
}

func buildHunk(oldLines, newLines []string, group []region) Hunk {
	first, last := group[0], group[len(group)-1]
	from := max(first.oldStart-contextLines, 0)
	to := min(last.oldEnd+contextLines, len(oldLines))
	shift := first.newStart - first.oldStart

	h := Hunk{OldStart: from + 1, NewStart: from + shift + 1}

	cursor := from
	for _, r := range group {
		for ; cursor < r.oldStart; cursor++ {
			h.Lines = append(h.Lines, DiffLine{Op: OpContext, Text: oldLines[cursor]})
		}
		for _, l := range oldLines[r.oldStart:r.oldEnd] {
			h.Lines = append(h.Lines, DiffLine{Op: OpRemove, Text: l})
		}
		for _, l := range newLines[r.newStart:r.newEnd] {
			h.Lines = append(h.Lines, DiffLine{Op: OpAdd, Text: l})
		}
		cursor = r.oldEnd
	}
	for ; cursor < to; cursor++ {
		h.Lines = append(h.Lines, DiffLine{Op: OpContext, Text: oldLines[cursor]})
	}

	for _, l := range h.Lines {
		if l.Op != OpAdd {
			h.OldCount++
		}
		if l.Op != OpRemove {
			h.NewCount++
		}
	}
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}
