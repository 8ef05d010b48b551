package htmltags

import (
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtitle"
)

// SerializeTags renders each segment as a self-contained, correctly
// nested tag span: bold wraps italic wraps underline wraps strikeout,
// with a font color tag (if set) wrapping all of it. Each segment is
// independent — unlike the ASS engine there is no cross-segment
// diffing, since HTML tags must balance per run to stay well-formed.
func SerializeTags(segments []subtitle.TextSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(wrapSegment(seg))
	}
	return b.String()
}

func wrapSegment(seg subtitle.TextSegment) string {
	text := seg.Text
	if seg.Style == nil {
		return text
	}
	s := seg.Style
	if boolFlag(s.Strikeout) {
		text = "<s>" + text + "</s>"
	}
	if boolFlag(s.Underline) {
		text = "<u>" + text + "</u>"
	}
	if boolFlag(s.Italic) {
		text = "<i>" + text + "</i>"
	}
	if intFlag(s.Bold) {
		text = "<b>" + text + "</b>"
	}
	if s.PrimaryColor != nil {
		text = `<font color="` + color.PackedToRGB(*s.PrimaryColor) + `">` + text + "</font>"
	}
	return text
}

func boolFlag(v *bool) bool {
	return v != nil && *v
}

func intFlag(v *int) bool {
	return v != nil && *v != 0
}
