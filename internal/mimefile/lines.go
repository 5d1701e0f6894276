package mimefile

import "unicode/utf8"

// SplitLines splits content on universal line boundaries: \n, \r\n, \r,
// vertical tab, form feed, the file/group/record separators (0x1c-0x1e),
// NEL (U+0085), and the Unicode line and paragraph separators. Terminators
// are dropped and a trailing terminator does not produce an empty line.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, content[start:i])
		next := i + size
		if r == '\r' && next < len(content) && content[next] == '\n' {
			next++
		}
		i = next
		start = next
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}
