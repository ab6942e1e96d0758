package render

import "strings"

// nbsp replaces whitespace in drawn labels so renderers neither collapse nor
// wrap it.
const nbsp = '\u00a0'

// NormalizeLabel replaces every ASCII whitespace character in s with a
// non-breaking space.
func NormalizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return nbsp
		}
		return r
	}, s)
}
