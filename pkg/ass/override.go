// Package ass tokenizes the contents of Advanced SubStation Alpha override
// blocks and formats the values their tags carry.
package ass

import "strings"

// Override is the parsed interior of one override block, the text between
// '{' and '}'.
type Override struct {
	// Prefix is any text before the first backslash. It is kept so the
	// block serialises back unchanged.
	Prefix string

	Tags []*Tag
}

// ParseOverride tokenizes the interior of an override block. It never
// fails: unknown tags keep their text and unbalanced parentheses run to the
// end of the interior.
func ParseOverride(interior string) *Override {
	o := &Override{}

	first := strings.IndexByte(interior, '\\')
	if first < 0 {
		o.Prefix = interior
		return o
	}
	o.Prefix = interior[:first]

	depth := 0
	start := first
	for i := first + 1; i < len(interior); i++ {
		switch interior[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '\\':
			if depth == 0 {
				o.Tags = append(o.Tags, parseTag(interior[start:i]))
				start = i
			}
		}
	}
	o.Tags = append(o.Tags, parseTag(interior[start:]))

	return o
}

// String serialises the block interior. Unmodified tags are written exactly
// as they were parsed.
func (o *Override) String() string {
	var b strings.Builder
	b.WriteString(o.Prefix)
	for _, t := range o.Tags {
		b.WriteString(t.String())
	}
	return b.String()
}

// AddTag appends a tag built from name and value and returns it.
func (o *Override) AddTag(name, value string) *Tag {
	t := NewTag(name, value)
	o.Tags = append(o.Tags, t)
	return t
}

// RemoveTag deletes the tag at index i.
func (o *Override) RemoveTag(i int) {
	o.Tags = append(o.Tags[:i], o.Tags[i+1:]...)
}

// Last returns the last tag whose name is accepted by match, scanning from
// the end of the block.
func (o *Override) Last(match func(name string) bool) (*Tag, bool) {
	for i := len(o.Tags) - 1; i >= 0; i-- {
		if match(o.Tags[i].Name) {
			return o.Tags[i], true
		}
	}
	return nil, false
}
