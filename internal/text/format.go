// Package text implements the string micro-languages found in localization
// tokens: markup stripping, line segmentation, placeholder substitution and
// per-level numeric lists.
package text

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedMarkup is returned when a <h1> block does not read
// "<h1>type: header</h1>body".
var ErrMalformedMarkup = errors.New("malformed <h1> block")

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s{2,}`)
	lineBreakPattern  = regexp.MustCompile(`(?:\\n|<br>)+`)
	headedPattern     = regexp.MustCompile(`(?i)<h1>\s*(.*)\s*:\s*(.*)\s*</h1>\s*([\s\S]*)`)
)

// StripTags removes every <...> tag.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// StripExtraWhitespace collapses runs of two or more whitespace characters
// into one space and trims the result.
func StripExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// RemoveEscapedNewlines drops literal \n escape sequences.
func RemoveEscapedNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "")
}

// Format splits s on escaped newlines and <br> tags and cleans every line.
func Format(s string) []string {
	parts := lineBreakPattern.Split(s, -1)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, StripExtraWhitespace(StripTags(p)))
	}
	return lines
}

// HeadedBlock is one segment of an item description.
type HeadedBlock struct {
	Type   string
	Header string
	Body   string
}

// HasHeading reports whether s carries a <h1> block.
func HasHeading(s string) bool {
	return strings.Contains(s, "<h1>")
}

// ParseHeadedBlock splits "<h1>Active: Blink</h1>body" into its type, header
// and body. The type is lower-cased.
func ParseHeadedBlock(s string) (HeadedBlock, error) {
	m := headedPattern.FindStringSubmatch(s)
	if m == nil {
		return HeadedBlock{}, ErrMalformedMarkup
	}
	return HeadedBlock{
		Type:   strings.ToLower(strings.TrimSpace(m[1])),
		Header: strings.TrimSpace(m[2]),
		Body:   m[3],
	}, nil
}
