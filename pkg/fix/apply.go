package fix

import (
	"bytes"
	"strings"
)

// ApplyEdits applies edits that have been through PrepareEdits to content
// and returns the result.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += e.Delta()
	}

	var out bytes.Buffer
	out.Grow(size)

	prev := 0
	for _, e := range edits {
		out.Write(content[prev:e.StartOffset])
		out.WriteString(e.NewText)
		prev = e.EndOffset
	}
	out.Write(content[prev:])

	return out.Bytes()
}

// Apply applies a single edit to s. The edit range is clamped to s.
func Apply(s string, e TextEdit) string {
	start := min(max(e.StartOffset, 0), len(s))
	end := min(max(e.EndOffset, start), len(s))

	var b strings.Builder
	b.Grow(len(s) + len(e.NewText) - (end - start))
	b.WriteString(s[:start])
	b.WriteString(e.NewText)
	b.WriteString(s[end:])
	return b.String()
}
