package srt

/*
 This file defines functions related to SubRip generation.
*/

import (
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/htmltags"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as SubRip text, renumbering blocks from 1
// sequentially regardless of any source numbering.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	for i, ev := range doc.Events {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(subtime.FormatSRT(ev.Start))
		b.WriteString(" --> ")
		b.WriteString(subtime.FormatSRT(ev.End))
		b.WriteString("\n")
		b.WriteString(eventText(ev))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

// eventText regenerates Text from Segments when the event carries them,
// so a caller that edited Segments without re-joining Text still
// round-trips correctly.
func eventText(ev *subtitle.SubtitleEvent) string {
	if len(ev.Segments) == 0 {
		return ev.Text
	}
	return htmltags.SerializeTags(ev.Segments)
}
