package text

import (
	"regexp"

	"github.com/meur/dotasource/internal/raw"
)

var placeholderPattern = regexp.MustCompile(`%([^% ]*)%`)

// Substitute replaces %name% placeholders with attribute values. %% becomes
// a literal percent sign and an unknown name is left as plain text. A nil
// attribute list leaves s untouched.
func Substitute(s string, attrs raw.Attributes) string {
	if attrs == nil {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		if name == "" {
			return "%"
		}
		if v, ok := attrs.Value(name); ok {
			return v
		}
		return name
	})
}
