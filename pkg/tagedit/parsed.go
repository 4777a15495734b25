// Package tagedit reads and rewrites override tags in a subtitle line at a
// cursor position.
//
// A ParsedLine pairs a line with the blocks classified from its current
// text. It is meant to live for one operation: create it, query it, apply
// at most one Set, then drop it.
package tagedit

import (
	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/block"
	"github.com/yaklabco/subtag/pkg/scan"
)

// Line is a subtitle line whose text can be read and replaced.
type Line interface {
	Text() string
	SetText(text string)
	Style() string
	SetStyle(style string)
}

// Option configures Parse.
type Option func(*ParsedLine)

// WithAliases sets the table of equivalent tag spellings. The default is
// ass.DefaultAliases.
func WithAliases(a *ass.Aliases) Option {
	return func(p *ParsedLine) {
		if a != nil {
			p.aliases = a
		}
	}
}

// ParsedLine is a line together with the blocks of its current text.
type ParsedLine struct {
	line    Line
	text    string
	blocks  []block.Block
	aliases *ass.Aliases
}

// Parse classifies the current text of line.
func Parse(line Line, opts ...Option) *ParsedLine {
	p := &ParsedLine{
		line:    line,
		aliases: ass.DefaultAliases(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reparse(line.Text())
	return p
}

func (p *ParsedLine) reparse(text string) {
	p.text = text
	p.blocks = block.Classify(text)
}

// Line returns the underlying line.
func (p *ParsedLine) Line() Line {
	return p.line
}

// Text returns the text the blocks were classified from.
func (p *ParsedLine) Text() string {
	return p.text
}

// Blocks returns the classified blocks. The slice is replaced by Set.
func (p *ParsedLine) Blocks() []block.Block {
	return p.blocks
}

// BlockAt returns the index of the block governing visible offset v,
// clamped to the last block.
func (p *ParsedLine) BlockAt(v scan.VisiblePos) int {
	return min(scan.BlockAt(p.text, v), len(p.blocks)-1)
}

// Find returns the last tag spelled as any accepted spelling of name in the
// override blocks from index upto back to 0. Within a block the tags are
// scanned from last to first, the order in which the renderer lets them
// take effect.
func (p *ParsedLine) Find(upto int, name string) (*ass.Tag, bool) {
	match := p.aliases.Matcher(name)

	for i := min(upto, len(p.blocks)-1); i >= 0; i-- {
		switch b := p.blocks[i].(type) {
		case *block.Override:
			if tag, ok := b.Tags.Last(match); ok {
				return tag, true
			}
		case *block.Plain, *block.Drawing, *block.Comment:
		}
	}
	return nil, false
}

// TagAt returns the tag governing visible offset v.
func (p *ParsedLine) TagAt(v scan.VisiblePos, name string) (*ass.Tag, bool) {
	return p.Find(p.BlockAt(v), name)
}

// Value returns the raw first parameter of the tag governing v.
func (p *ParsedLine) Value(v scan.VisiblePos, name string) (string, bool) {
	tag, ok := p.TagAt(v, name)
	if !ok {
		return "", false
	}
	return tag.Value(), true
}

// ColorValue returns the color set by name at v, or def if it was never set
// or cannot be parsed.
func (p *ParsedLine) ColorValue(v scan.VisiblePos, name string, def ass.Color) ass.Color {
	if tag, ok := p.TagAt(v, name); ok {
		return tag.Param(0).Color(def)
	}
	return def
}

// IntValue returns the integer set by name at v, or def.
func (p *ParsedLine) IntValue(v scan.VisiblePos, name string, def int) int {
	if tag, ok := p.TagAt(v, name); ok {
		return tag.Param(0).Int(def)
	}
	return def
}

// FloatValue returns the number set by name at v, or def.
func (p *ParsedLine) FloatValue(v scan.VisiblePos, name string, def float64) float64 {
	if tag, ok := p.TagAt(v, name); ok {
		return tag.Param(0).Float(def)
	}
	return def
}

// StringValue returns the text set by name at v, or def.
func (p *ParsedLine) StringValue(v scan.VisiblePos, name string, def string) string {
	if tag, ok := p.TagAt(v, name); ok {
		return tag.Param(0).String(def)
	}
	return def
}
