package textutil

import "strings"

const ellipsis = "..."

// TruncateLeft keeps the tail of value so it fits in width runes, marking the
// cut with a leading ellipsis. File paths stay recognizable by their base name.
func TruncateLeft(value string, width int) string {
	runes := []rune(value)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return value
	}
	if width <= len(ellipsis) {
		return string(runes[len(runes)-width:])
	}
	return ellipsis + string(runes[len(runes)-(width-len(ellipsis)):])
}

// TruncateRight keeps the head of value so it fits in width runes.
func TruncateRight(value string, width int) string {
	runes := []rune(value)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return value
	}
	if width <= len(ellipsis) {
		return string(runes[:width])
	}
	return string(runes[:width-len(ellipsis)]) + ellipsis
}

// SingleLine collapses control characters so a diagnostic line renders on one row.
func SingleLine(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t':
			return ' '
		case '\r', '\n', '\x1b':
			return -1
		}
		return r
	}, value)
}
