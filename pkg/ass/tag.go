package ass

import (
	"sort"
	"strconv"
	"strings"
)

// ParamKind is the value type a tag parameter carries.
type ParamKind uint8

const (
	// ParamText is free text such as a font name or a style reference.
	ParamText ParamKind = iota
	ParamInt
	ParamFloat
	ParamColor
	ParamAlpha
	// ParamBlock is a nested run of tags, as in the last argument of \t.
	ParamBlock
	// ParamDrawing is a vector drawing, as in \clip(m 0 0 l 1 1).
	ParamDrawing
)

// prototype describes a known tag: its name and the kinds of its positional
// parameters. The last kind repeats for any further parameters.
type prototype struct {
	name  string
	kinds []ParamKind
}

var (
	intParam   = []ParamKind{ParamInt}
	floatParam = []ParamKind{ParamFloat}
	colorParam = []ParamKind{ParamColor}
	alphaParam = []ParamKind{ParamAlpha}
	textParam  = []ParamKind{ParamText}
)

// prototypes holds every standard override tag. It is sorted longest name
// first by init so that prefix matching picks \fscx over \fs and \frz over \fr.
var prototypes = []prototype{
	{`\alpha`, alphaParam},
	{`\bord`, floatParam},
	{`\xbord`, floatParam},
	{`\ybord`, floatParam},
	{`\shad`, floatParam},
	{`\xshad`, floatParam},
	{`\yshad`, floatParam},
	{`\fade`, intParam},
	{`\fad`, intParam},
	{`\move`, []ParamKind{ParamFloat, ParamFloat, ParamFloat, ParamFloat, ParamInt}},
	{`\clip`, []ParamKind{ParamDrawing}},
	{`\iclip`, []ParamKind{ParamDrawing}},
	{`\fscx`, floatParam},
	{`\fscy`, floatParam},
	{`\pos`, floatParam},
	{`\org`, floatParam},
	{`\pbo`, intParam},
	{`\fax`, floatParam},
	{`\fay`, floatParam},
	{`\frx`, floatParam},
	{`\fry`, floatParam},
	{`\frz`, floatParam},
	{`\fr`, floatParam},
	{`\fn`, textParam},
	{`\fsp`, floatParam},
	{`\fs`, floatParam},
	{`\fe`, intParam},
	{`\c`, colorParam},
	{`\1c`, colorParam},
	{`\2c`, colorParam},
	{`\3c`, colorParam},
	{`\4c`, colorParam},
	{`\1a`, alphaParam},
	{`\2a`, alphaParam},
	{`\3a`, alphaParam},
	{`\4a`, alphaParam},
	{`\be`, floatParam},
	{`\blur`, floatParam},
	{`\b`, intParam},
	{`\i`, intParam},
	{`\u`, intParam},
	{`\s`, intParam},
	{`\an`, intParam},
	{`\a`, intParam},
	{`\kf`, intParam},
	{`\ko`, intParam},
	{`\k`, intParam},
	{`\K`, intParam},
	{`\q`, intParam},
	{`\p`, intParam},
	{`\r`, textParam},
	{`\t`, []ParamKind{ParamInt, ParamInt, ParamFloat, ParamBlock}},
}

func init() {
	sort.SliceStable(prototypes, func(i, j int) bool {
		return len(prototypes[i].name) > len(prototypes[j].name)
	})
}

// lookupPrototype returns the known tag that is the longest prefix of
// token, if any.
func lookupPrototype(token string) (prototype, bool) {
	for _, p := range prototypes {
		if strings.HasPrefix(token, p.name) {
			return p, true
		}
	}
	return prototype{}, false
}

// IsKnown reports whether name is a standard override tag.
func IsKnown(name string) bool {
	p, ok := lookupPrototype(name)
	return ok && p.name == name
}

func (p prototype) kindAt(i int) ParamKind {
	if len(p.kinds) == 0 {
		return ParamText
	}
	return p.kinds[min(i, len(p.kinds)-1)]
}

// Param is one parameter of a tag. Value holds the parameter text exactly as
// written; an empty Value means the parameter was omitted.
type Param struct {
	Kind  ParamKind
	Value string
}

// Omitted reports whether the parameter has no value.
func (p Param) Omitted() bool {
	return strings.TrimSpace(p.Value) == ""
}

// Int returns the parameter as an integer, or def when it is omitted or not
// numeric. Fractional values are truncated.
func (p Param) Int(def int) int {
	v := strings.TrimSpace(p.Value)
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return def
}

// Float returns the parameter as a float, or def.
func (p Param) Float(def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return def
	}
	return f
}

// Color returns the parameter as a color, or def.
func (p Param) Color(def Color) Color {
	c, err := ParseColor(p.Value)
	if err != nil {
		return def
	}
	return c
}

// Alpha returns the parameter as an alpha byte, or def.
func (p Param) Alpha(def uint8) uint8 {
	a, err := ParseAlpha(p.Value)
	if err != nil {
		return def
	}
	return a
}

// String returns the parameter text with surrounding space removed, or def.
func (p Param) String(def string) string {
	if p.Omitted() {
		return def
	}
	return strings.TrimSpace(p.Value)
}

// Tag is a single override tag such as \c&HFF0000& or \pos(10,20).
//
// A tag that has not been modified since parsing serialises back to its
// source text byte for byte, including any trailing junk.
type Tag struct {
	Name   string
	Params []Param

	// Parens is true when the parameters are written as a parenthesised
	// comma list.
	Parens bool

	raw   string
	dirty bool
}

// NewTag builds a tag from a name and a single value, as in
// NewTag(`\c`, "&HFF0000&").
func NewTag(name, value string) *Tag {
	return parseTag(name + value)
}

// Value returns the text of the first parameter.
func (t *Tag) Value() string {
	if len(t.Params) == 0 {
		return ""
	}
	return t.Params[0].Value
}

// Param returns the i-th parameter, or an omitted parameter of the right
// kind when the tag has fewer.
func (t *Tag) Param(i int) Param {
	if i >= 0 && i < len(t.Params) {
		return t.Params[i]
	}
	p, _ := lookupPrototype(t.Name)
	return Param{Kind: p.kindAt(i)}
}

// Set replaces the first parameter with value, adding it when the tag had
// none.
func (t *Tag) Set(value string) {
	if len(t.Params) == 0 {
		p, _ := lookupPrototype(t.Name)
		t.Params = append(t.Params, Param{Kind: p.kindAt(0)})
	}
	t.Params[0].Value = value
	t.dirty = true
}

// Modified reports whether the tag changed since it was parsed.
func (t *Tag) Modified() bool {
	return t.dirty
}

func (t *Tag) String() string {
	if !t.dirty {
		return t.raw
	}

	var b strings.Builder
	b.WriteString(t.Name)
	if t.Parens {
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.Value)
		}
		b.WriteByte(')')
	} else if len(t.Params) > 0 {
		b.WriteString(t.Params[0].Value)
	}
	return b.String()
}

// parseTag parses one tag token. token starts with a backslash and ends
// where the next top-level backslash begins.
func parseTag(token string) *Tag {
	tag := &Tag{raw: token}

	proto, known := lookupPrototype(token)
	if known {
		tag.Name = proto.name
	} else {
		end := 1
		for end < len(token) && isLetter(token[end]) {
			end++
		}
		tag.Name = token[:end]
	}

	rest := token[len(tag.Name):]
	if strings.HasPrefix(strings.TrimLeft(rest, " "), "(") {
		tag.Parens = true
		open := strings.IndexByte(rest, '(')
		for i, value := range splitArgs(rest[open+1:]) {
			tag.Params = append(tag.Params, Param{Kind: proto.kindAt(i), Value: value})
		}
		return tag
	}

	if rest != "" {
		tag.Params = []Param{{Kind: proto.kindAt(0), Value: rest}}
	}
	return tag
}

// splitArgs splits the text after an opening parenthesis into its
// top-level comma separated arguments, stopping at the matching close.
func splitArgs(s string) []string {
	var args []string
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return append(args, s[start:i])
			}
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	return append(args, s[start:])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
