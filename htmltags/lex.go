package htmltags

import (
	"regexp"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtitle"
)

var timestampCue = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}$`)
var fontColorAttr = regexp.MustCompile(`(?i)color\s*=\s*"?#?([0-9a-fA-F]{6})"?`)

// ParseTags lexes SRT/VTT dialogue text containing `<...>` tags into an
// ordered list of TextSegments. It is the nested-stack analogue of the
// ASS engine's ParseTags: OUTSIDE_TAG accumulates literal text until it
// sees '<', flushes, then INSIDE_TAG buffers to the matching '>' and
// dispatches. An unmatched '<' (no following '>') is literal text, same
// as an unmatched '{' in the ASS engine.
func ParseTags(text string) []subtitle.TextSegment {
	var segments []subtitle.TextSegment
	stack := newStack()
	var pending []subtitle.Effect

	var literal []byte
	flush := func() {
		if len(literal) == 0 {
			// No text accumulated since the last emitted segment: any
			// pending structural-tag markers carry forward to whichever
			// segment eventually follows, rather than being dropped here.
			return
		}
		seg := subtitle.TextSegment{
			Text:    string(literal),
			Effects: pending,
		}
		if !stack.top().IsEmpty() {
			seg.Style = stack.top().Clone()
		}
		segments = append(segments, seg)
		literal = literal[:0]
		pending = nil
	}

	i, n := 0, len(text)
	for i < n {
		if text[i] == '<' {
			j := indexFrom(text, '>', i+1)
			if j < 0 {
				literal = append(literal, text[i:]...)
				break
			}
			flush()
			tag := text[i+1 : j]
			dispatchTag(tag, stack, &pending)
			i = j + 1
			continue
		}
		literal = append(literal, text[i])
		i++
	}
	flush()
	return segments
}

func indexFrom(s string, b byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// dispatchTag interprets one `<...>` body (without the angle brackets)
// against the state stack, recording structural tags that carry no
// style of their own as a one-shot Unknown effect on the next segment.
// SerializeTags does not write these effects back out.
func dispatchTag(tag string, stack *stateStack, pending *[]subtitle.Effect) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return
	}
	if trimmed[0] == '/' {
		stack.pop()
		return
	}
	if timestampCue.MatchString(trimmed) {
		*pending = append(*pending, subtitle.Effect{
			Kind:    subtitle.EffectUnknown,
			Unknown: &subtitle.UnknownEffect{Format: "timestamp", Raw: "<" + tag + ">"},
		})
		return
	}

	name, _ := splitTagName(trimmed)
	switch strings.ToLower(name) {
	case "b":
		stack.push(pushBoolFlag(stack.top(), func(s *subtitle.InlineStyle) { s.Bold = boolField(true) }))
	case "i":
		stack.push(pushBoolFlag(stack.top(), func(s *subtitle.InlineStyle) { v := true; s.Italic = &v }))
	case "u":
		stack.push(pushBoolFlag(stack.top(), func(s *subtitle.InlineStyle) { v := true; s.Underline = &v }))
	case "s":
		stack.push(pushBoolFlag(stack.top(), func(s *subtitle.InlineStyle) { v := true; s.Strikeout = &v }))
	case "font":
		c, ok := parseFontColor(trimmed)
		if ok {
			stack.push(pushBoolFlag(stack.top(), func(s *subtitle.InlineStyle) { s.PrimaryColor = &c }))
		} else {
			stack.push(pushTransparent(stack.top()))
		}
	case "v":
		stack.push(pushTransparent(stack.top()))
		*pending = append(*pending, subtitle.Effect{
			Kind:    subtitle.EffectUnknown,
			Unknown: &subtitle.UnknownEffect{Format: "voice", Raw: "<" + tag + ">"},
		})
	case "c":
		stack.push(pushTransparent(stack.top()))
		*pending = append(*pending, subtitle.Effect{
			Kind:    subtitle.EffectUnknown,
			Unknown: &subtitle.UnknownEffect{Format: "class", Raw: "<" + tag + ">"},
		})
	case "lang":
		stack.push(pushTransparent(stack.top()))
		*pending = append(*pending, subtitle.Effect{
			Kind:    subtitle.EffectUnknown,
			Unknown: &subtitle.UnknownEffect{Format: "lang", Raw: "<" + tag + ">"},
		})
	default:
		stack.push(pushTransparent(stack.top()))
		*pending = append(*pending, subtitle.Effect{
			Kind:    subtitle.EffectUnknown,
			Unknown: &subtitle.UnknownEffect{Format: "unknown", Raw: "<" + tag + ">"},
		})
	}
}

// splitTagName extracts the tag name (up to the first '.', whitespace,
// or end of string) and the remainder, e.g. "v.loud Marge" -> ("v",
// ".loud Marge"), "font color=\"#fff\"" -> ("font", " color=\"#fff\"").
func splitTagName(trimmed string) (name, rest string) {
	i := 0
	for i < len(trimmed) && isNameChar(trimmed[i]) {
		i++
	}
	return trimmed[:i], trimmed[i:]
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parseFontColor(trimmed string) (color.Color, bool) {
	m := fontColorAttr.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, false
	}
	c, ok := color.RGBToPacked(m[1])
	return c, ok
}
