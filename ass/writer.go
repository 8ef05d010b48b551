package ass

/*
 This file defines functions related to script generation.
*/

import (
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/asstags"
	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

var styleFieldNames = []string{
	"Name", "Fontname", "Fontsize",
	"PrimaryColour", "SecondaryColour", "OutlineColour", "BackColour",
	"Bold", "Italic", "Underline", "StrikeOut",
	"ScaleX", "ScaleY", "Spacing", "Angle",
	"BorderStyle", "Outline", "Shadow",
	"Alignment", "MarginL", "MarginR", "MarginV", "Encoding",
}

var eventFieldNames = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}

// Serialize renders doc as an ASS/SSA script. The serializer always emits
// LF line endings, per §6, regardless of what the source used.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	writeScriptInfo(&b, doc)
	writeStyles(&b, doc)
	writeEvents(&b, doc)
	writeEmbedded(&b, "Fonts", "fontname", doc.Fonts)
	writeEmbedded(&b, "Graphics", "filename", doc.Graphics)
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}

func writeScriptInfo(b *strings.Builder, doc *subtitle.SubtitleDocument) {
	b.WriteString("[Script Info]\n")
	b.WriteString("Title: " + doc.Info.Title + "\n")
	b.WriteString("Original Script: " + doc.Info.Author + "\n")
	b.WriteString("PlayResX: " + strconv.Itoa(doc.Info.PlayResX) + "\n")
	b.WriteString("PlayResY: " + strconv.Itoa(doc.Info.PlayResY) + "\n")
	b.WriteString("ScaledBorderAndShadow: " + yesNo(doc.Info.ScaleBorderAndShadow) + "\n")
	b.WriteString("WrapStyle: " + strconv.Itoa(int(doc.Info.WrapStyle)) + "\n")
	b.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func writeStyles(b *strings.Builder, doc *subtitle.SubtitleDocument) {
	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: " + strings.Join(styleFieldNames, ", ") + "\n")
	for _, st := range doc.Styles {
		b.WriteString("Style: " + formatStyleLine(st) + "\n")
	}
	b.WriteString("\n")
}

func formatStyleLine(st *subtitle.Style) string {
	fields := []string{
		st.Name,
		st.FontName,
		trimFloat(st.FontSize),
		color.FormatASS(st.PrimaryColor.WithAlpha(st.PrimaryAlpha)),
		color.FormatASS(st.SecondaryColor.WithAlpha(st.SecondaryAlpha)),
		color.FormatASS(st.OutlineColor.WithAlpha(st.OutlineAlpha)),
		color.FormatASS(st.BackColor.WithAlpha(st.BackAlpha)),
		boolField(st.Bold),
		boolField(st.Italic),
		boolField(st.Underline),
		boolField(st.Strikeout),
		trimFloat(st.ScaleX),
		trimFloat(st.ScaleY),
		trimFloat(st.Spacing),
		trimFloat(st.Angle),
		strconv.Itoa(int(st.BorderStyle)),
		trimFloat(st.Outline),
		trimFloat(st.Shadow),
		strconv.Itoa(st.Alignment),
		strconv.Itoa(st.MarginL),
		strconv.Itoa(st.MarginR),
		strconv.Itoa(st.MarginV),
		strconv.Itoa(st.Encoding),
	}
	return strings.Join(fields, ",")
}

func boolField(v bool) string {
	if v {
		return "-1"
	}
	return "0"
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// eventLine is either a Dialogue or a Comment, kept in source order so
// writeEvents can reconstruct the original interleaving from
// SubtitleDocument.Events and .Comments (which record position
// separately per §5's ordering guarantee).
type eventLine struct {
	comment *subtitle.Comment
	event   *subtitle.SubtitleEvent
}

func writeEvents(b *strings.Builder, doc *subtitle.SubtitleDocument) {
	b.WriteString("[Events]\n")
	b.WriteString("Format: " + strings.Join(eventFieldNames, ", ") + "\n")

	lines := interleave(doc)
	for _, l := range lines {
		if l.comment != nil {
			b.WriteString("Comment: 0,0:00:00.00,0:00:00.00,,,0,0,0,," + l.comment.Text + "\n")
			continue
		}
		b.WriteString("Dialogue: " + formatEventLine(l.event) + "\n")
	}
	b.WriteString("\n")
}

func interleave(doc *subtitle.SubtitleDocument) []eventLine {
	var out []eventLine
	ci := 0
	for i, ev := range doc.Events {
		for ci < len(doc.Comments) && doc.Comments[ci].BeforeEventIndex == i {
			c := doc.Comments[ci]
			out = append(out, eventLine{comment: &c})
			ci++
		}
		out = append(out, eventLine{event: ev})
	}
	for ci < len(doc.Comments) {
		c := doc.Comments[ci]
		out = append(out, eventLine{comment: &c})
		ci++
	}
	return out
}

func formatEventLine(ev *subtitle.SubtitleEvent) string {
	fields := []string{
		strconv.Itoa(ev.Layer),
		subtime.FormatASS(ev.Start),
		subtime.FormatASS(ev.End),
		ev.Style,
		ev.Actor,
		strconv.Itoa(ev.MarginL),
		strconv.Itoa(ev.MarginR),
		strconv.Itoa(ev.MarginV),
		ev.Effect,
		eventText(ev),
	}
	return strings.Join(fields, ",")
}

// eventText regenerates Text from Segments whenever Segments is non-empty,
// whatever Dirty says, matching how sami/ttml prefer the segment list over
// a possibly stale Text field.
func eventText(ev *subtitle.SubtitleEvent) string {
	if len(ev.Segments) == 0 {
		return ev.Text
	}
	return asstags.SerializeTags(ev.Segments)
}

func writeEmbedded(b *strings.Builder, section, headerKey string, files []subtitle.EmbeddedFile) {
	if len(files) == 0 {
		return
	}
	b.WriteString("[" + section + "]\n")
	for _, f := range files {
		b.WriteString(headerKey + ": " + f.Name + "\n")
		writeWrapped(b, f.Data, 80)
	}
	b.WriteString("\n")
}

// writeWrapped splits data into fixed-width lines, matching the way real
// .ass files wrap embedded base64 blobs rather than emitting one
// arbitrarily long line.
func writeWrapped(b *strings.Builder, data string, width int) {
	for len(data) > width {
		b.WriteString(data[:width] + "\n")
		data = data[width:]
	}
	if len(data) > 0 {
		b.WriteString(data + "\n")
	}
}
