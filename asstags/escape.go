package asstags

import "strings"

const nbsp = ' '

// unescape converts the literal-text escapes \N, \n (both hard newline) and
// \h (non-breaking space) into their literal rune equivalents. Any other
// backslash sequence is left untouched — it was never inside a {...} block,
// so it is not a tag and does not get special treatment here.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'N', 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'h':
				b.WriteRune(nbsp)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// escape is the inverse of unescape, applied on serialization: U+000A
// becomes \N, U+00A0 becomes \h.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\N`)
		case nbsp:
			b.WriteString(`\h`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
