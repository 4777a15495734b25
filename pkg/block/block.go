// Package block splits a subtitle line into typed blocks: plain text,
// drawing commands, comments and override tag blocks.
package block

import (
	"strings"

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/scan"
)

// Block is one contiguous span of a line's raw text. The concrete type is
// always one of *Plain, *Drawing, *Comment or *Override.
type Block interface {
	// Raw returns the block's text exactly as it appears in the line,
	// delimiters included.
	Raw() string

	sealed()
}

// Plain is literal text with no directives.
type Plain struct {
	Text string
}

// Drawing is text following a \p tag with a positive scale. Its content is
// vector drawing commands and is never searched for tags.
type Drawing struct {
	Text string

	// Scale is the \p value in effect for this run.
	Scale int
}

// Comment is a braced span that contains no tags. It renders nothing.
type Comment struct {
	Text   string
	Closed bool
}

// Override is a braced span holding override tags.
type Override struct {
	Tags   *ass.Override
	Closed bool
}

func (b *Plain) Raw() string   { return b.Text }
func (b *Drawing) Raw() string { return b.Text }

func (b *Comment) Raw() string {
	return braced(b.Text, b.Closed)
}

// Raw regenerates the block from its tags, so edits made through Tags are
// reflected.
func (b *Override) Raw() string {
	return braced(b.Tags.String(), b.Closed)
}

func (*Plain) sealed()    {}
func (*Drawing) sealed()  {}
func (*Comment) sealed()  {}
func (*Override) sealed() {}

func braced(interior string, closed bool) string {
	if closed {
		return "{" + interior + "}"
	}
	return "{" + interior
}

// Join concatenates the raw text of blocks.
func Join(blocks []Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(blk.Raw())
	}
	return b.String()
}

// Start returns the raw offset at which blocks[i] begins.
func Start(blocks []Block, i int) scan.RawPos {
	var pos scan.RawPos
	for _, blk := range blocks[:min(max(i, 0), len(blocks))] {
		pos += scan.RawPos(len(blk.Raw()))
	}
	return pos
}

// KindName returns a short lowercase name for the block's variant.
func KindName(b Block) string {
	switch b.(type) {
	case *Plain:
		return "plain"
	case *Drawing:
		return "drawing"
	case *Comment:
		return "comment"
	case *Override:
		return "override"
	default:
		return "unknown"
	}
}
