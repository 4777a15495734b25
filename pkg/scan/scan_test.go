package scan_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/subtag/pkg/scan"
)

// samples covers the shapes the scanner has to survive: adjacent blocks,
// comments, unterminated blocks, escapes and empty text.
var samples = []string{
	"",
	"Hello world",
	`Hello {\c&H0000FF&}world`,
	`{\an8}Top{\i1}italic{\i0} text`,
	"{a}{b}X",
	"X{a}{b}Y",
	"{comment}Hello",
	`Hello {\b1`,
	`escaped \{not a block\} here`,
	"{{nested}still inside?}",
	"}}stray closers{",
	`{\p1}m 0 0 l 10 10{\p0}back`,
}

func TestKinds(t *testing.T) {
	t.Parallel()

	const (
		T = scan.Text
		O = scan.Open
		I = scan.Inside
		C = scan.Close
	)

	tests := []struct {
		name string
		raw  string
		want []scan.Kind
	}{
		{name: "empty", raw: "", want: []scan.Kind{}},
		{name: "plain", raw: "ab", want: []scan.Kind{T, T}},
		{name: "block between text", raw: "a{b}c", want: []scan.Kind{T, O, I, C, T}},
		{name: "empty block", raw: "{}", want: []scan.Kind{O, C}},
		{name: "nested open is content", raw: "{{}", want: []scan.Kind{O, I, C}},
		{name: "unterminated", raw: "a{bc", want: []scan.Kind{T, O, I, I}},
		{name: "escaped open", raw: `\{x}`, want: []scan.Kind{T, T, T, T}},
		{name: "escape inside block is content", raw: `{\}x`, want: []scan.Kind{O, I, C, T}},
		{name: "stray closer", raw: "}a", want: []scan.Kind{T, T}},
		{name: "trailing backslash", raw: `a\`, want: []scan.Kind{T, T}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := scan.Kinds(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Kinds(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []scan.Span
	}{
		{
			name: "empty text has no spans",
			raw:  "",
			want: nil,
		},
		{
			name: "override between plain runs",
			raw:  `Hello {\c&H0000FF&}world`,
			want: []scan.Span{
				{Start: 0, End: 6},
				{Start: 6, End: 19, Braced: true, Closed: true},
				{Start: 19, End: 24},
			},
		},
		{
			name: "adjacent blocks",
			raw:  "{a}{b}X",
			want: []scan.Span{
				{Start: 0, End: 3, Braced: true, Closed: true},
				{Start: 3, End: 6, Braced: true, Closed: true},
				{Start: 6, End: 7},
			},
		},
		{
			name: "unterminated block runs to end",
			raw:  `ab{\b1`,
			want: []scan.Span{
				{Start: 0, End: 2},
				{Start: 2, End: 6, Braced: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := scan.Spans(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Spans(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestSpansRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range samples {
		var b strings.Builder
		for _, s := range scan.Spans(raw) {
			b.WriteString(raw[s.Start:s.End])
		}
		if b.String() != raw {
			t.Errorf("spans of %q rebuild to %q", raw, b.String())
		}
	}
}

func TestSpanInterior(t *testing.T) {
	t.Parallel()

	raw := `x{\b1}{open`
	spans := scan.Spans(raw)
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}

	if got := spans[0].Interior(raw); got != "x" {
		t.Errorf("plain interior = %q, want %q", got, "x")
	}
	if got := spans[1].Interior(raw); got != `\b1` {
		t.Errorf("closed interior = %q, want %q", got, `\b1`)
	}
	if got := spans[2].Interior(raw); got != "open" {
		t.Errorf("unterminated interior = %q, want %q", got, "open")
	}
}

func TestToVisible(t *testing.T) {
	t.Parallel()

	raw := `Hello {\c&H0000FF&}world`

	tests := []struct {
		name string
		pos  scan.RawPos
		want scan.VisiblePos
	}{
		{name: "start", pos: 0, want: 0},
		{name: "before block", pos: 6, want: 6},
		{name: "inside block", pos: 7, want: 6},
		{name: "after closing brace", pos: 19, want: 6},
		{name: "inside trailing text", pos: 21, want: 8},
		{name: "end", pos: 24, want: 11},
		{name: "past end clamps", pos: 100, want: 11},
		{name: "negative clamps", pos: -3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scan.ToVisible(raw, tt.pos); got != tt.want {
				t.Errorf("ToVisible(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestToVisibleCommentContent(t *testing.T) {
	t.Parallel()

	// Comment contents and delimiters never advance the visible counter.
	raw := "{note}ab"
	if got := scan.ToVisible(raw, 6); got != 0 {
		t.Errorf("ToVisible after comment = %d, want 0", got)
	}
	if got := scan.ToVisible(raw, 7); got != 1 {
		t.Errorf("ToVisible into text = %d, want 1", got)
	}
}

func TestToVisibleMonotonic(t *testing.T) {
	t.Parallel()

	for _, raw := range samples {
		prev := scan.VisiblePos(0)
		for p := 0; p <= len(raw)+1; p++ {
			got := scan.ToVisible(raw, scan.RawPos(p))
			if got < prev {
				t.Fatalf("ToVisible(%q, %d) = %d, below %d at previous offset", raw, p, got, prev)
			}
			prev = got
		}
	}
}

func TestToRaw(t *testing.T) {
	t.Parallel()

	raw := `Hello {\c}world`

	tests := []struct {
		name    string
		visible scan.VisiblePos
		want    scan.RawPos
	}{
		{name: "zero", visible: 0, want: 0},
		{name: "before block picks smallest offset", visible: 6, want: 6},
		{name: "after block", visible: 7, want: 11},
		{name: "end", visible: 11, want: 15},
		{name: "past end clamps", visible: 40, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scan.ToRaw(raw, tt.visible); got != tt.want {
				t.Errorf("ToRaw(%d) = %d, want %d", tt.visible, got, tt.want)
			}
		})
	}
}

func TestToRawInvertsToVisible(t *testing.T) {
	t.Parallel()

	for _, raw := range samples {
		for v := scan.VisiblePos(0); v <= scan.VisibleLen(raw); v++ {
			r := scan.ToRaw(raw, v)
			if got := scan.ToVisible(raw, r); got != v {
				t.Errorf("ToVisible(%q, ToRaw(%d)=%d) = %d", raw, v, r, got)
			}
		}
	}
}

func TestBlockAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		visible scan.VisiblePos
		want    int
	}{
		{name: "empty text", raw: "", visible: 0, want: 0},
		{name: "plain text", raw: "Hello world", visible: 5, want: 0},
		{name: "cursor before block binds into it", raw: `Hello {\c&H0000FF&}world`, visible: 6, want: 1},
		{name: "cursor inside trailing run", raw: `Hello {\c&H0000FF&}world`, visible: 7, want: 2},
		{name: "adjacent leading blocks at line start", raw: "{a}{b}X", visible: 0, want: 1},
		{name: "after adjacent leading blocks", raw: "{a}{b}X", visible: 1, want: 2},
		{name: "adjacent blocks after text", raw: "X{a}{b}Y", visible: 1, want: 1},
		{name: "single block after text", raw: "X{a}Y", visible: 1, want: 1},
		{name: "leading text at zero", raw: "X{a}Y", visible: 0, want: 0},
		{name: "unterminated leading block", raw: "{abc", visible: 0, want: 0},
		{name: "unterminated trailing block", raw: "ab{c", visible: 5, want: 1},
		{name: "unterminated trailing block at zero", raw: `Hello {\b1`, visible: 0, want: 0},
		{name: "past end of closed block", raw: "ab{a}", visible: 5, want: 2},
		{name: "escaped brace is text", raw: `\{a}b`, visible: 4, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scan.BlockAt(tt.raw, tt.visible); got != tt.want {
				t.Errorf("BlockAt(%q, %d) = %d, want %d", tt.raw, tt.visible, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got := scan.Inside.String(); got != "inside" {
		t.Errorf("String() = %q, want %q", got, "inside")
	}
	if got := scan.Kind(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
