// Package fix describes byte-range replacements and applies them to line
// text and whole subtitle scripts.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the first byte replaced (inclusive).
	StartOffset int

	// EndOffset is the byte after the last one replaced (exclusive). It
	// equals StartOffset for a pure insertion.
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Delta returns the change in length the edit causes.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}

// IsInsertion reports whether the edit replaces nothing.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// Shift maps an offset recorded before the edit to the same logical place
// after it. Offsets at or after StartOffset move by Delta; earlier offsets
// are unchanged.
func (e TextEdit) Shift(offset int) int {
	if offset < e.StartOffset {
		return offset
	}
	return offset + e.Delta()
}

// EditBuilder collects edits against one piece of content.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// Replace adds an edit replacing [start, end) with text.
func (b *EditBuilder) Replace(start, end int, text string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: text})
}

// Insert adds an edit inserting text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Len returns the number of collected edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
