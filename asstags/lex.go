package asstags

import "github.com/gosubs/subtitles/subtitle"

// ParseTags lexes dialogue text containing `{...}` override-tag blocks into
// an ordered list of TextSegments.
//
// The lexer is a two-state machine: OUTSIDE_BRACE accumulates literal text
// until it sees '{', at which point it flushes the accumulated text as a
// segment (if non-empty) and switches to INSIDE_BRACE. INSIDE_BRACE buffers
// until the matching '}', then dispatches the buffered tag block against
// the rolling style/effect accumulators and switches back. An unmatched '{'
// (no following '}') is not an error: the rest of the string, brace
// included, is treated as literal text.
func ParseTags(text string) []subtitle.TextSegment {
	var segments []subtitle.TextSegment

	var styleAcc *subtitle.InlineStyle
	hasStyleChanges := false
	var effectsAcc []subtitle.Effect

	var literal []byte
	flush := func() {
		if len(literal) == 0 {
			return
		}
		seg := subtitle.TextSegment{
			Text:    unescape(string(literal)),
			Effects: copyEffects(effectsAcc),
		}
		if hasStyleChanges {
			seg.Style = styleAcc.Clone()
		}
		segments = append(segments, seg)
		literal = literal[:0]
	}

	i := 0
	n := len(text)
	for i < n {
		if text[i] == '{' {
			j := indexByteFrom(text, '}', i+1)
			if j < 0 {
				literal = append(literal, text[i:]...)
				break
			}
			flush()
			block := text[i+1 : j]
			dispatchBlock(block, &styleAcc, &hasStyleChanges, &effectsAcc)
			i = j + 1
			continue
		}
		literal = append(literal, text[i])
		i++
	}
	flush()
	return segments
}

func indexByteFrom(s string, b byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// splitFragments splits a tag block on '\' delimiters, discarding empty
// fragments. Backslashes inside parentheses are not split points, so a
// nested transform like \t(\frz360) keeps its inner tag intact for the
// \t handler to interpret itself.
func splitFragments(block string) []string {
	var frags []string
	var cur []byte
	depth := 0
	for i := 0; i < len(block); i++ {
		c := block[i]
		switch c {
		case '(':
			depth++
			cur = append(cur, c)
		case ')':
			if depth > 0 {
				depth--
			}
			cur = append(cur, c)
		case '\\':
			if depth == 0 {
				if len(cur) > 0 {
					frags = append(frags, string(cur))
					cur = cur[:0]
				}
				continue
			}
			cur = append(cur, c)
		default:
			cur = append(cur, c)
		}
	}
	if len(cur) > 0 {
		frags = append(frags, string(cur))
	}
	return frags
}

// dispatchBlock runs tag dispatch over every fragment of a `{...}` block in
// order, mutating the rolling style and effect accumulators.
func dispatchBlock(block string, styleAcc **subtitle.InlineStyle, hasStyleChanges *bool, effectsAcc *[]subtitle.Effect) {
	for _, frag := range splitFragments(block) {
		dispatchFragment(frag, styleAcc, hasStyleChanges, effectsAcc)
	}
}
