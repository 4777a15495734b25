// Package scan classifies the bytes of a subtitle line and maps offsets
// between the raw text and the text a viewer actually sees.
//
// Every consumer of brace structure (the block classifier, the position
// mapper and the governing-block lookup) reads the same []Kind produced by
// Kinds, so they cannot disagree about where a block starts or ends.
package scan

// Kind classifies one byte of raw line text.
type Kind uint8

const (
	// Text is a byte outside any override block. Only Text bytes advance
	// the visible offset.
	Text Kind = iota

	// Open is the '{' that starts a block.
	Open

	// Inside is any byte between the delimiters of a block, including a
	// nested '{'.
	Inside

	// Close is the '}' that ends a block.
	Close
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Open:
		return "open"
	case Inside:
		return "inside"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Kinds returns one Kind per byte of raw.
//
// Outside a block, the two-byte sequences `\{` and `\}` are literal text and
// do not toggle block state. Inside a block no escape processing is done and
// the first '}' closes it. A block left open at end of text extends to the
// end.
func Kinds(raw string) []Kind {
	kinds := make([]Kind, len(raw))
	inBlock := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inBlock {
			if c == '}' {
				kinds[i] = Close
				inBlock = false
			} else {
				kinds[i] = Inside
			}
			continue
		}

		switch {
		case c == '\\' && i+1 < len(raw) && (raw[i+1] == '{' || raw[i+1] == '}'):
			kinds[i] = Text
			kinds[i+1] = Text
			i++
		case c == '{':
			kinds[i] = Open
			inBlock = true
		default:
			kinds[i] = Text
		}
	}

	return kinds
}

// Span is a contiguous run of raw text: either plain text between blocks or
// a whole braced block with its delimiters.
type Span struct {
	Start RawPos
	End   RawPos

	// Braced is true for a block span.
	Braced bool

	// Closed reports whether a braced span ends with '}'. It is false for
	// a block left open at end of text.
	Closed bool
}

// Len returns the raw length of the span.
func (s Span) Len() int {
	return int(s.End - s.Start)
}

// Interior returns the text between the delimiters of a braced span, or the
// whole span for plain text.
func (s Span) Interior(raw string) string {
	if !s.Braced {
		return raw[s.Start:s.End]
	}
	end := s.End
	if s.Closed {
		end--
	}
	return raw[s.Start+1 : end]
}

// Spans splits raw into alternating plain and braced spans. Concatenating
// the spans in order reproduces raw exactly. Empty input yields no spans.
func Spans(raw string) []Span {
	kinds := Kinds(raw)
	var spans []Span

	start := 0
	for i := 0; i < len(kinds); i++ {
		if kinds[i] != Open {
			continue
		}
		if i > start {
			spans = append(spans, Span{Start: RawPos(start), End: RawPos(i)})
		}

		end := i + 1
		for end < len(kinds) && kinds[end] == Inside {
			end++
		}
		closed := end < len(kinds) && kinds[end] == Close
		if closed {
			end++
		}

		spans = append(spans, Span{Start: RawPos(i), End: RawPos(end), Braced: true, Closed: closed})
		start = end
		i = end - 1
	}

	if start < len(raw) {
		spans = append(spans, Span{Start: RawPos(start), End: RawPos(len(raw))})
	}

	return spans
}
