package sbv

/*
 This file defines functions related to YouTube SBV caption generation.
*/

import (
	"fmt"
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as an SBV caption file: one block per event,
// separated by a single blank line, in event order.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	for i, ev := range doc.Events {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatTime(ev.Start))
		b.WriteString(",")
		b.WriteString(formatTime(ev.End))
		b.WriteString("\n")
		b.WriteString(ev.Text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

// formatTime renders t as "H:MM:SS.mmm" — variable-width hours, always
// 3 fractional (millisecond) digits.
func formatTime(t subtime.Time) string {
	v := int64(t)
	if v < 0 {
		v = 0
	}
	h := v / 3600000
	v -= h * 3600000
	m := v / 60000
	v -= m * 60000
	s := v / 1000
	ms := v % 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}
