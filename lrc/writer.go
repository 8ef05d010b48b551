package lrc

/*
 This file defines functions related to LRC lyrics generation.
*/

import (
	"fmt"
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as an LRC file: metadata tags first ([ti:] from
// Title, [ar:] from Author, then [al:] and [by:] from the lrc.album and
// lrc.creator Metadata entries), then one timed line per event in event
// order. No other metadata tag is written.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	if doc.Info.Title != "" {
		b.WriteString(fmt.Sprintf("[ti:%s]\n", doc.Info.Title))
	}
	if doc.Info.Author != "" {
		b.WriteString(fmt.Sprintf("[ar:%s]\n", doc.Info.Author))
	}
	if al, ok := doc.Metadata["lrc.album"]; ok {
		b.WriteString(fmt.Sprintf("[al:%s]\n", al))
	}
	if by, ok := doc.Metadata["lrc.creator"]; ok {
		b.WriteString(fmt.Sprintf("[by:%s]\n", by))
	}
	for _, ev := range doc.Events {
		b.WriteString(formatTimedLine(ev.Start, ev.Text))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

func formatTimedLine(t subtime.Time, text string) string {
	v := int64(t)
	if v < 0 {
		v = 0
	}
	m := v / 60000
	v -= m * 60000
	s := v / 1000
	cs := (v % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]%s", m, s, cs, text)
}
