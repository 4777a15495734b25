package block

import (
	"strings"

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/scan"
)

// Classify splits raw into blocks. It accepts any input; concatenating the
// Raw text of the result always reproduces raw. Empty input yields a single
// empty *Plain so that block 0 always exists.
//
// A braced span with a non-empty interior and no backslash is a *Comment;
// every other braced span, {} included, is an *Override. Plain runs after an
// override whose last \p tag has a positive scale are *Drawing blocks until
// a later \p0.
func Classify(raw string) []Block {
	spans := scan.Spans(raw)
	if len(spans) == 0 {
		return []Block{&Plain{}}
	}

	blocks := make([]Block, 0, len(spans))
	drawing := 0

	for _, s := range spans {
		interior := s.Interior(raw)

		switch {
		case !s.Braced && drawing > 0:
			blocks = append(blocks, &Drawing{Text: interior, Scale: drawing})
		case !s.Braced:
			blocks = append(blocks, &Plain{Text: interior})
		case interior != "" && !strings.Contains(interior, `\`):
			blocks = append(blocks, &Comment{Text: interior, Closed: s.Closed})
		default:
			tags := ass.ParseOverride(interior)
			if p, ok := tags.Last(func(name string) bool { return name == `\p` }); ok {
				drawing = p.Param(0).Int(0)
			}
			blocks = append(blocks, &Override{Tags: tags, Closed: s.Closed})
		}
	}

	return blocks
}
