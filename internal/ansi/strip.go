// Package ansi measures and pads strings that carry terminal escape
// sequences, so styled and plain values line up in the same column.
package ansi

import (
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1b
	bel = 0x07
)

// Strip removes every escape run from s. Recognized runs are CSI
// (ESC '[' ... final byte 0x40-0x7E), OSC (ESC ']' ... BEL or ESC '\') and
// ESC followed by any single character, multi-byte runes included. An
// unterminated run swallows the rest of s.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != esc {
			j := strings.IndexByte(s[i:], esc)
			if j < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+j])
			i += j
			continue
		}
		i = skipEscape(s, i)
	}
	return b.String()
}

// skipEscape returns the index just past the escape run starting at s[i].
func skipEscape(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if c := s[i]; c >= 0x40 && c <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']':
		for i++; i < len(s); i++ {
			switch s[i] {
			case bel:
				return i + 1
			case esc:
				if i+1 < len(s) && s[i+1] == '\\' {
					return i + 2
				}
			}
		}
		return len(s)
	default:
		// ESC plus one character; a multi-byte rune goes as a whole.
		_, w := utf8.DecodeRuneInString(s[i:])
		return i + w
	}
}

// VisibleLength is the byte length of s once escape runs are removed.
func VisibleLength(s string) int {
	return len(Strip(s))
}

// FullLength is the byte length of s including escape runs.
func FullLength(s string) int {
	return len(s)
}

// HasEscapes reports whether s contains an escape introducer.
func HasEscapes(s string) bool {
	return strings.IndexByte(s, esc) >= 0
}
