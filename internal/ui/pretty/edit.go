package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/subtag/pkg/batch"
	"github.com/yaklabco/subtag/pkg/block"
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/subs"
)

// FormatFileHeader formats the heading printed above a file's edits.
func (s *Styles) FormatFileHeader(path string, lines int, status string) string {
	word := "lines"
	if lines == 1 {
		word = "line"
	}
	return fmt.Sprintf("%s %s",
		s.FilePath.Render(path),
		s.Dim.Render(fmt.Sprintf("(%d %s, %s)", lines, word, status)),
	)
}

// FormatLineEdit formats one edited line: its event number, the value the
// tag had before, the raw length change and the new text.
func (s *Styles) FormatLineEdit(lr batch.LineResult) string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(s.Location.Render(lineLabel(lr)))

	prior := "(unset)"
	if lr.HadPrior {
		prior = lr.Prior
	}
	b.WriteString("  ")
	b.WriteString(s.Prior.Render(prior))

	action := "rewrote"
	if lr.Edit.Inserted() {
		action = "inserted"
	}
	fmt.Fprintf(&b, "  %s %s", s.Dim.Render(action), s.Dim.Render(signed(lr.Edit.Delta())))

	if lr.Line != nil {
		b.WriteString("\n    ")
		b.WriteString(s.Value.Render(lr.Line.Text()))
	}
	b.WriteString("\n")

	return b.String()
}

func lineLabel(lr batch.LineResult) string {
	if l, ok := lr.Line.(*subs.Line); ok {
		return "#" + strconv.Itoa(l.Number)
	}
	return "#?"
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatBlocks formats the blocks of raw, one per line, with each block's
// index, raw start offset and kind. Override blocks also list their tags.
func (s *Styles) FormatBlocks(raw string) string {
	blocks := block.Classify(raw)

	var b strings.Builder
	for i, blk := range blocks {
		start := block.Start(blocks, i)
		fmt.Fprintf(&b, "%s %s %s %s\n",
			s.Location.Render(fmt.Sprintf("%3d", i)),
			s.Dim.Render(fmt.Sprintf("raw %-4d visible %-4d", start, scan.ToVisible(raw, start))),
			s.kindStyle(blk).Render(fmt.Sprintf("%-8s", block.KindName(blk))),
			strconv.Quote(blk.Raw()),
		)

		if o, ok := blk.(*block.Override); ok {
			for _, tag := range o.Tags.Tags {
				fmt.Fprintf(&b, "      %s\n", s.Tag.Render(tag.String()))
			}
		}
	}
	return b.String()
}

func (s *Styles) kindStyle(b block.Block) lipgloss.Style {
	switch b.(type) {
	case *block.Drawing:
		return s.BlockDrawing
	case *block.Comment:
		return s.BlockComment
	case *block.Override:
		return s.BlockOverride
	default:
		return s.BlockPlain
	}
}
