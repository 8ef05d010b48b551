package sami

/*
 This file defines functions related to SAMI document generation.
*/

import (
	"fmt"
	"strings"

	"github.com/gosubs/subtitles/htmltags"
	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as a SAMI document. Every event becomes its own
// <SYNC Start=ms><P class=...>text</P></SYNC> block; SAMI has no
// explicit end-time concept so ev.End is not emitted.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	b.WriteString("<SAMI>\n<HEAD>\n")
	if style, ok := doc.Metadata["sami.style"]; ok && style != "" {
		fmt.Fprintf(&b, "<STYLE TYPE=\"text/css\">\n%s\n</STYLE>\n", style)
	}
	b.WriteString("</HEAD>\n<BODY>\n")
	for _, ev := range doc.Events {
		class := ev.Style
		if class == "" {
			class = "ENCC"
		}
		content := encodeSyncBody(ev)
		fmt.Fprintf(&b, "<SYNC Start=%d><P Class=%s>%s</P></SYNC>\n", int64(ev.Start), class, content)
	}
	b.WriteString("</BODY>\n</SAMI>\n")
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

func encodeSyncBody(ev *subtitle.SubtitleEvent) string {
	if len(ev.Segments) == 0 {
		return encodeEntities(ev.Text)
	}
	escaped := make([]subtitle.TextSegment, len(ev.Segments))
	for i, seg := range ev.Segments {
		escaped[i] = seg
		escaped[i].Text = encodeEntities(seg.Text)
	}
	return htmltags.SerializeTags(escaped)
}

func encodeEntities(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		" ", "&nbsp;",
	)
	return r.Replace(s)
}
