package subs

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/subtag/pkg/ass"
)

// Style is one Style line of the [V4+ Styles] section.
type Style struct {
	Name   string
	fields map[string]string
}

// Style field names that hold colors, lowercased.
const (
	StylePrimary   = "primarycolour"
	StyleSecondary = "secondarycolour"
	StyleOutline   = "outlinecolour"
	StyleBack      = "backcolour"
)

func parseStyle(value string, format []string) *Style {
	parts := strings.SplitN(value, ",", len(format))
	s := &Style{fields: make(map[string]string, len(format))}
	for i, name := range format {
		if i < len(parts) {
			s.fields[name] = strings.TrimSpace(parts[i])
		}
	}
	s.Name = s.fields["name"]
	return s
}

// Field returns a style field by its Format name.
func (s *Style) Field(name string) string {
	return s.fields[strings.ToLower(name)]
}

// Color returns a color field, or def when it is missing or malformed.
func (s *Style) Color(field string, def ass.Color) ass.Color {
	c, err := ass.ParseColor(s.Field(field))
	if err != nil {
		return def
	}
	return c
}

// Style returns the named style. An unknown name falls back to the style
// called "Default" as renderers do.
func (f *File) Style(name string) (*Style, bool) {
	if s, ok := f.styles[name]; ok {
		return s, true
	}
	s, ok := f.styles["Default"]
	return s, ok
}

// StyleNames returns the names of all styles, sorted.
func (f *File) StyleNames() []string {
	names := lo.Keys(f.styles)
	sort.Strings(names)
	return names
}
