package ass

import "slices"

// Aliases maps each tag spelling to the family of spellings that mean the
// same directive, such as \c and \1c.
type Aliases struct {
	families map[string][]string
}

// DefaultFamilies lists the spellings the renderer treats as one directive.
func DefaultFamilies() [][]string {
	return [][]string{
		{`\c`, `\1c`},
		{`\fr`, `\frz`},
	}
}

// NewAliases builds an alias table from families of equivalent spellings.
// Families that share a spelling are merged.
func NewAliases(families ...[]string) *Aliases {
	a := &Aliases{families: make(map[string][]string)}
	for _, f := range families {
		a.Add(f...)
	}
	return a
}

// DefaultAliases returns a table holding DefaultFamilies.
func DefaultAliases() *Aliases {
	return NewAliases(DefaultFamilies()...)
}

// Add registers names as spellings of one directive.
func (a *Aliases) Add(names ...string) {
	var family []string
	for _, n := range names {
		family = appendFamily(family, n)
		for _, m := range a.families[n] {
			family = appendFamily(family, m)
		}
	}
	for _, n := range family {
		a.families[n] = family
	}
}

func appendFamily(family []string, name string) []string {
	if name == "" || slices.Contains(family, name) {
		return family
	}
	return append(family, name)
}

// Spellings returns every accepted spelling of name, name itself first.
func (a *Aliases) Spellings(name string) []string {
	out := []string{name}
	if a == nil {
		return out
	}
	for _, n := range a.families[name] {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// Matches reports whether candidate is an accepted spelling of name.
func (a *Aliases) Matches(name, candidate string) bool {
	if name == candidate {
		return true
	}
	if a == nil {
		return false
	}
	return slices.Contains(a.families[name], candidate)
}

// Matcher returns a predicate accepting every spelling of name.
func (a *Aliases) Matcher(name string) func(string) bool {
	return func(candidate string) bool {
		return a.Matches(name, candidate)
	}
}
