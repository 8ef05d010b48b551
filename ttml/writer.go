package ttml

/*
 This file defines functions related to TTML document generation.
*/

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as a TTML document in the TTML namespace, using
// the clock-time profile (HH:MM:SS.mmm) for begin/end regardless of the
// frame rate the document was parsed with. Segment styles are emitted as
// inline tts:* attributes directly on each <span>, rather than through a
// <styling> indirection, since the parser already resolves style
// references down to a concrete InlineStyle per segment.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<tt xmlns="http://www.w3.org/ns/ttml" xmlns:tts="http://www.w3.org/ns/ttml#styling" xmlns:ttp="http://www.w3.org/ns/ttml#parameter">` + "\n")
	b.WriteString("<body><div>\n")
	for _, ev := range doc.Events {
		fmt.Fprintf(&b, `<p begin="%s" end="%s"`, formatClockTime(ev.Start), formatClockTime(ev.End))
		if ev.Style != "" {
			fmt.Fprintf(&b, ` style="%s"`, escapeAttr(ev.Style))
		}
		b.WriteString(">")
		writeParagraphContent(&b, ev)
		b.WriteString("</p>\n")
	}
	b.WriteString("</div></body></tt>\n")
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

func writeParagraphContent(b *strings.Builder, ev *subtitle.SubtitleEvent) {
	if len(ev.Segments) == 0 {
		writeTextWithBreaks(b, ev.Text)
		return
	}
	for _, seg := range ev.Segments {
		if seg.Style.IsEmpty() {
			writeTextWithBreaks(b, seg.Text)
			continue
		}
		attrs := ttsAttrs(seg.Style)
		b.WriteString("<span")
		b.WriteString(attrs)
		b.WriteString(">")
		writeTextWithBreaks(b, seg.Text)
		b.WriteString("</span>")
	}
}

func writeTextWithBreaks(b *strings.Builder, text string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("<br/>")
		}
		var escaped bytes.Buffer
		xml.EscapeText(&escaped, []byte(line))
		b.Write(escaped.Bytes())
	}
}

func ttsAttrs(s *subtitle.InlineStyle) string {
	var b strings.Builder
	if s.PrimaryColor != nil {
		fmt.Fprintf(&b, ` tts:color="%s"`, formatTTMLColor(*s.PrimaryColor, s.Alpha))
	}
	if s.Bold != nil {
		switch *s.Bold {
		case 0:
			b.WriteString(` tts:fontWeight="normal"`)
		case 1:
			b.WriteString(` tts:fontWeight="bold"`)
		default:
			fmt.Fprintf(&b, ` tts:fontWeight="%d"`, *s.Bold)
		}
	}
	if s.Italic != nil {
		if *s.Italic {
			b.WriteString(` tts:fontStyle="italic"`)
		} else {
			b.WriteString(` tts:fontStyle="normal"`)
		}
	}
	if s.Underline != nil {
		if *s.Underline {
			b.WriteString(` tts:textDecoration="underline"`)
		} else {
			b.WriteString(` tts:textDecoration="none"`)
		}
	}
	return b.String()
}

func formatTTMLColor(c color.Color, assAlpha *byte) string {
	r, g, bl, _ := c.RGBA()
	if assAlpha == nil {
		return fmt.Sprintf("#%02X%02X%02X", r, g, bl)
	}
	a := byte(0xFF - *assAlpha)
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, bl, a)
}

func formatClockTime(t subtime.Time) string {
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
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func escapeAttr(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
