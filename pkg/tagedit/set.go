package tagedit

import (
	"errors"
	"fmt"

	"github.com/yaklabco/subtag/pkg/block"
	"github.com/yaklabco/subtag/pkg/fix"
	"github.com/yaklabco/subtag/pkg/scan"
)

// ErrInvariant reports that position resolution handed the mutator a block
// it can never write into. It indicates a bug, not bad input.
var ErrInvariant = errors.New("tag edit invariant violated")

// Edit describes a completed Set.
type Edit struct {
	fix.TextEdit

	// Block is the index, in the blocks before the edit, of the override
	// block that was rewritten. It is -1 when a new block was inserted.
	Block int
}

// Inserted reports whether Set spliced a new override block into the line.
func (e Edit) Inserted() bool {
	return e.Block < 0
}

// Shift maps a raw offset recorded before the edit onto the edited text.
func Shift(offset scan.RawPos, e Edit) scan.RawPos {
	return scan.RawPos(e.TextEdit.Shift(int(offset)))
}

// Set writes name with value at the block governing visible offset v and
// stores the result in the line. r is the raw cursor offset used when a new
// block has to be inserted.
//
// Drawing blocks are skipped backwards because tags cannot go inside them.
// A comment block is also skipped and r moves to the comment's opening
// brace, so a new block lands before it rather than inside it.
//
// In an existing override block the first tag with any accepted spelling
// of name takes the value and any later ones in that block are removed. If
// the block has none, the tag is appended. Otherwise "{" + name + value +
// "}" is inserted at r, or at 0 when no block precedes v.
//
// The returned Edit's Delta is the exact change in raw length.
func (p *ParsedLine) Set(name, value string, v scan.VisiblePos, r scan.RawPos) (Edit, error) {
	r = min(max(r, 0), scan.RawPos(len(p.text)))
	idx := p.BlockAt(v)

walk:
	for ; idx >= 0; idx-- {
		switch b := p.blocks[idx].(type) {
		case *block.Drawing:
		case *block.Comment:
			r = block.Start(p.blocks, idx)
		case *block.Plain, *block.Override:
			break walk
		default:
			return Edit{}, fmt.Errorf("%w: unknown block %T", ErrInvariant, b)
		}
	}

	var edit Edit
	if idx < 0 {
		edit = p.insert(name, value, 0)
	} else {
		switch b := p.blocks[idx].(type) {
		case *block.Plain:
			edit = p.insert(name, value, r)
		case *block.Override:
			edit = p.rewrite(b, idx, name, value)
		case *block.Drawing, *block.Comment:
			return Edit{}, fmt.Errorf("%w: cannot write into %s block %d", ErrInvariant, block.KindName(b), idx)
		default:
			return Edit{}, fmt.Errorf("%w: unknown block %T", ErrInvariant, b)
		}
	}

	text := fix.Apply(p.text, edit.TextEdit)
	p.line.SetText(text)
	p.reparse(text)

	return edit, nil
}

func (p *ParsedLine) insert(name, value string, at scan.RawPos) Edit {
	// A backslash right before the new brace would escape it.
	for at > 0 && p.text[at-1] == '\\' {
		at--
	}

	return Edit{
		TextEdit: fix.TextEdit{
			StartOffset: int(at),
			EndOffset:   int(at),
			NewText:     "{" + name + value + "}",
		},
		Block: -1,
	}
}

func (p *ParsedLine) rewrite(b *block.Override, idx int, name, value string) Edit {
	start := int(block.Start(p.blocks, idx))
	end := start + len(b.Raw())

	match := p.aliases.Matcher(name)
	found := false
	for i := 0; i < len(b.Tags.Tags); i++ {
		if !match(b.Tags.Tags[i].Name) {
			continue
		}
		if found {
			b.Tags.RemoveTag(i)
			i--
			continue
		}
		b.Tags.Tags[i].Set(value)
		found = true
	}
	if !found {
		b.Tags.AddTag(name, value)
	}

	return Edit{
		TextEdit: fix.TextEdit{StartOffset: start, EndOffset: end, NewText: b.Raw()},
		Block:    idx,
	}
}
