package vtt

/*
 This file defines functions related to WebVTT generation.
*/

import (
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/htmltags"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as a WebVTT document: the WEBVTT header, any
// REGION blocks, the STYLE block (if doc.Metadata["vtt.style"] is set),
// then one cue block per event.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	for _, r := range doc.Regions {
		writeRegionBlock(&b, r)
	}
	if style, ok := doc.Metadata["vtt.style"]; ok && style != "" {
		b.WriteString("STYLE\n")
		b.WriteString(style)
		b.WriteString("\n\n")
	}
	for _, ev := range doc.Events {
		writeCueBlock(&b, ev)
	}
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

func writeRegionBlock(b *strings.Builder, r subtitle.Region) {
	b.WriteString("REGION\n")
	if r.ID != "" {
		b.WriteString("id:" + r.ID + "\n")
	}
	if r.Width != "" {
		b.WriteString("width:" + r.Width + "\n")
	}
	if r.Lines != 0 {
		b.WriteString("lines:" + strconv.Itoa(r.Lines) + "\n")
	}
	if r.RegionAnchor != "" {
		b.WriteString("regionanchor:" + r.RegionAnchor + "\n")
	}
	if r.ViewportAnchor != "" {
		b.WriteString("viewportanchor:" + r.ViewportAnchor + "\n")
	}
	if r.Scroll != "" {
		b.WriteString("scroll:" + r.Scroll + "\n")
	}
	b.WriteString("\n")
}

func writeCueBlock(b *strings.Builder, ev *subtitle.SubtitleEvent) {
	if ev.CueID != "" {
		b.WriteString(ev.CueID)
		b.WriteString("\n")
	}
	b.WriteString(subtime.FormatVTT(ev.Start))
	b.WriteString(" --> ")
	b.WriteString(subtime.FormatVTT(ev.End))
	b.WriteString("\n")
	b.WriteString(eventText(ev))
	b.WriteString("\n\n")
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
