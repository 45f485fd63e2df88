package report

import (
	"strings"
	"unicode/utf8"
)

// globMatch reports whether name matches the shell pattern. It follows
// fnmatch(3) without FNM_PATHNAME or FNM_PERIOD: '*' and '?' match '/' and
// leading dots. Classes accept '!' or '^' negation and ranges, a backslash
// quotes the next character, and a '[' with no closing ']' is literal.
func globMatch(pattern, name string) bool {
	px, nx := 0, 0
	starPx, starNx := -1, 0
	for px < len(pattern) || nx < len(name) {
		if px < len(pattern) {
			switch pattern[px] {
			case '*':
				starPx, starNx = px, nx
				px++
				continue
			case '?':
				if nx < len(name) {
					_, w := utf8.DecodeRuneInString(name[nx:])
					px++
					nx += w
					continue
				}
			case '[':
				if nx < len(name) {
					r, w := utf8.DecodeRuneInString(name[nx:])
					end, ok := matchClass(pattern[px:], r)
					if end == 0 {
						if name[nx] == '[' {
							px++
							nx++
							continue
						}
					} else if ok {
						px += end
						nx += w
						continue
					}
				}
			default:
				lit, width := patternLiteral(pattern[px:])
				if strings.HasPrefix(name[nx:], lit) {
					px += width
					nx += len(lit)
					continue
				}
			}
		}
		if starPx >= 0 && starNx < len(name) {
			_, w := utf8.DecodeRuneInString(name[starNx:])
			starNx += w
			px, nx = starPx+1, starNx
			continue
		}
		return false
	}
	return true
}

// patternLiteral returns the literal character at the start of p and how many
// pattern bytes it took.
func patternLiteral(p string) (string, int) {
	if p[0] == '\\' && len(p) > 1 {
		_, w := utf8.DecodeRuneInString(p[1:])
		return p[1 : 1+w], 1 + w
	}
	_, w := utf8.DecodeRuneInString(p)
	return p[:w], w
}

// matchClass matches r against the bracket expression at the start of p. end
// is the length of the expression, or 0 when it has no closing ']'.
func matchClass(p string, r rune) (end int, ok bool) {
	i := 1
	negate := false
	if i < len(p) && (p[i] == '!' || p[i] == '^') {
		negate = true
		i++
	}

	matched := false
	for first := true; ; first = false {
		if i >= len(p) {
			return 0, false
		}
		if p[i] == ']' && !first {
			i++
			break
		}
		lo, next := classChar(p, i)
		hi := lo
		i = next
		if i+1 < len(p) && p[i] == '-' && p[i+1] != ']' {
			hi, i = classChar(p, i+1)
		}
		if lo <= r && r <= hi {
			matched = true
		}
	}
	return i, matched != negate
}

func classChar(p string, i int) (rune, int) {
	if p[i] == '\\' && i+1 < len(p) {
		i++
	}
	r, w := utf8.DecodeRuneInString(p[i:])
	return r, i + w
}
