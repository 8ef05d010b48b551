package ass

/*
 This file defines functions related to script parsing.
*/

import (
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

type section int

const (
	sectionNone section = iota
	sectionScriptInfo
	sectionStyles
	sectionEvents
	sectionFonts
	sectionGraphics
)

var canonicalEventFormat = []string{
	"layer", "start", "end", "style", "name",
	"marginl", "marginr", "marginv", "effect", "text",
}

var defaultStyleFormat = []string{
	"name", "fontname", "fontsize",
	"primarycolor", "secondarycolor", "outlinecolor", "backcolor",
	"bold", "italic", "underline", "strikeout",
	"scalex", "scaley", "spacing", "angle",
	"borderstyle", "outline", "shadow",
	"alignment", "marginl", "marginr", "marginv", "encoding",
}

// Parse decodes an ASS/SSA script. A leading BOM is stripped; CR, LF and
// CRLF line endings are all accepted.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	cur := sectionNone
	var styleFormat []string
	var eventFormat []string
	fontIdx, graphicIdx := -1, -1

	lines := splitLines(stripBOM(input))
	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if name, ok := sectionHeader(trimmed); ok {
			cur = sectionFor(name)
			styleFormat = nil
			eventFormat = nil
			fontIdx, graphicIdx = -1, -1
			continue
		}
		switch cur {
		case sectionScriptInfo:
			parseScriptInfoLine(doc, trimmed)
		case sectionStyles:
			styleFormat = parseStylesLine(doc, trimmed, styleFormat)
		case sectionEvents:
			var err error
			eventFormat, err = parseEventsLine(doc, trimmed, eventFormat, opts, result, i+1)
			if err != nil {
				return doc, result, err
			}
		case sectionFonts:
			fontIdx = parseEmbeddedLine(&doc.Fonts, trimmed, "fontname:", fontIdx)
		case sectionGraphics:
			graphicIdx = parseEmbeddedLine(&doc.Graphics, trimmed, "filename:", graphicIdx)
		}
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}

// splitLines breaks s on '\n', '\r' and '\r\n' alike, matching §6's "CR,
// LF, and CRLF are all accepted".
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func sectionHeader(trimmed string) (name string, ok bool) {
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(trimmed[1 : len(trimmed)-1])), true
}

func sectionFor(name string) section {
	switch name {
	case "script info":
		return sectionScriptInfo
	case "v4+ styles", "v4 styles":
		return sectionStyles
	case "events":
		return sectionEvents
	case "fonts":
		return sectionFonts
	case "graphics":
		return sectionGraphics
	default:
		return sectionNone
	}
}

func stripPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

// --- Script Info ---

func parseScriptInfoLine(doc *subtitle.SubtitleDocument, trimmed string) {
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return
	}
	i := strings.IndexByte(trimmed, ':')
	if i < 0 {
		return
	}
	key := strings.ToLower(strings.TrimSpace(trimmed[:i]))
	value := strings.TrimSpace(trimmed[i+1:])
	switch key {
	case "title":
		doc.Info.Title = value
	case "original author", "original script":
		doc.Info.Author = value
	case "playresx":
		if v, err := strconv.Atoi(value); err == nil {
			doc.Info.PlayResX = v
		} else {
			doc.Info.PlayResX = 1920
		}
	case "playresy":
		if v, err := strconv.Atoi(value); err == nil {
			doc.Info.PlayResY = v
		} else {
			doc.Info.PlayResY = 1080
		}
	case "scaledborderandshadow":
		doc.Info.ScaleBorderAndShadow = strings.EqualFold(value, "yes")
	case "wrapstyle":
		if v, err := strconv.Atoi(value); err == nil && v >= 0 && v <= 3 {
			doc.Info.WrapStyle = subtitle.WrapStyle(v)
		}
	}
}

// --- Styles ---

func parseStylesLine(doc *subtitle.SubtitleDocument, trimmed string, format []string) []string {
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return format
	}
	if rest, ok := stripPrefixFold(trimmed, "format:"); ok {
		return splitFormatFields(rest)
	}
	if rest, ok := stripPrefixFold(trimmed, "style:"); ok {
		fields := format
		if fields == nil {
			fields = defaultStyleFormat
		}
		applyStyleLine(doc, rest, fields)
	}
	return format
}

func splitFormatFields(rest string) []string {
	parts := strings.Split(rest, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = canonicalFieldName(strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}

// canonicalFieldName folds the "colour"/"color" spelling variance so a
// Format: line using either spelling resolves to the same lookup key.
func canonicalFieldName(s string) string {
	return strings.ReplaceAll(s, "colour", "color")
}

func fieldIndex(format []string) map[string]int {
	idx := make(map[string]int, len(format))
	for i, name := range format {
		idx[name] = i
	}
	return idx
}

func applyStyleLine(doc *subtitle.SubtitleDocument, rest string, format []string) {
	fields := strings.SplitN(rest, ",", len(format))
	idx := fieldIndex(format)
	get := func(name string) (string, bool) {
		i, ok := idx[name]
		if !ok || i >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[i]), true
	}

	st := subtitle.DefaultStyle("")
	if v, ok := get("name"); ok {
		st.Name = v
	}
	if v, ok := get("fontname"); ok {
		st.FontName = v
	}
	if v, ok := get("fontsize"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.FontSize = f
		}
	}
	if v, ok := get("primarycolor"); ok {
		if c, err := color.ParseASS(v); err == nil {
			st.PrimaryColor = c
			st.PrimaryAlpha = c.A()
		}
	}
	if v, ok := get("secondarycolor"); ok {
		if c, err := color.ParseASS(v); err == nil {
			st.SecondaryColor = c
			st.SecondaryAlpha = c.A()
		}
	}
	if v, ok := get("outlinecolor"); ok {
		if c, err := color.ParseASS(v); err == nil {
			st.OutlineColor = c
			st.OutlineAlpha = c.A()
		}
	}
	if v, ok := get("backcolor"); ok {
		if c, err := color.ParseASS(v); err == nil {
			st.BackColor = c
			st.BackAlpha = c.A()
		}
	}
	if v, ok := get("bold"); ok {
		st.Bold = v == "-1" || v == "1"
	}
	if v, ok := get("italic"); ok {
		st.Italic = v == "-1" || v == "1"
	}
	if v, ok := get("underline"); ok {
		st.Underline = v == "-1" || v == "1"
	}
	if v, ok := get("strikeout"); ok {
		st.Strikeout = v == "-1" || v == "1"
	}
	if v, ok := get("scalex"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.ScaleX = f
		}
	}
	if v, ok := get("scaley"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.ScaleY = f
		}
	}
	if v, ok := get("spacing"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.Spacing = f
		}
	}
	if v, ok := get("angle"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.Angle = f
		}
	}
	if v, ok := get("borderstyle"); ok {
		if v == "3" {
			st.BorderStyle = subtitle.BorderBox
		} else {
			st.BorderStyle = subtitle.BorderOutline
		}
	}
	if v, ok := get("outline"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.Outline = f
		}
	}
	if v, ok := get("shadow"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.Shadow = f
		}
	}
	if v, ok := get("alignment"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.Alignment = n
		}
	}
	if v, ok := get("marginl"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.MarginL = n
		}
	}
	if v, ok := get("marginr"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.MarginR = n
		}
	}
	if v, ok := get("marginv"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.MarginV = n
		}
	}
	if v, ok := get("encoding"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.Encoding = n
		}
	}
	doc.SetStyle(st)
}

// --- Events ---

// parseEventsLine handles one line of the [Events] section, returning the
// format in effect for subsequent lines.
//
// The canonical-ten-fields fast path and the general slow path described
// in §4.F reduce to the same split once the field count is known —
// strings.SplitN(rest, ",", n) already assigns every trailing comma to
// the final field — so both are handled by one code path keyed on the
// format length resolved from the active Format: line (or the canonical
// order if none was seen).
func parseEventsLine(doc *subtitle.SubtitleDocument, trimmed string, format []string, opts subtitle.ParseOptions, result *subtitle.ParseResult, lineNo int) ([]string, error) {
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return format, nil
	}
	if rest, ok := stripPrefixFold(trimmed, "format:"); ok {
		return splitFormatFields(rest), nil
	}
	if rest, ok := stripPrefixFold(trimmed, "comment:"); ok {
		fields := format
		if fields == nil {
			fields = canonicalEventFormat
		}
		applyCommentLine(doc, rest, fields)
		return format, nil
	}
	if rest, ok := stripPrefixFold(trimmed, "dialogue:"); ok {
		fields := format
		if fields == nil {
			fields = canonicalEventFormat
		}
		err := applyDialogueLine(doc, rest, fields, opts, result, lineNo)
		return format, err
	}
	return format, nil
}

func applyCommentLine(doc *subtitle.SubtitleDocument, rest string, format []string) {
	fields := strings.SplitN(rest, ",", len(format))
	idx := fieldIndex(format)
	text := ""
	if i, ok := idx["text"]; ok && i < len(fields) {
		text = fields[i]
	}
	doc.AddComment(text)
}

func applyDialogueLine(doc *subtitle.SubtitleDocument, rest string, format []string, opts subtitle.ParseOptions, result *subtitle.ParseResult, lineNo int) error {
	fields := strings.SplitN(rest, ",", len(format))
	idx := fieldIndex(format)
	get := func(name string) (string, bool) {
		i, ok := idx[name]
		if !ok || i >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[i]), true
	}

	startStr, _ := get("start")
	endStr, _ := get("end")
	start, errStart := subtime.ParseASS(startStr)
	end, errEnd := subtime.ParseASS(endStr)
	if errStart != nil || errEnd != nil {
		raw := "Dialogue: " + rest
		return result.Report(opts, subtitle.ParseError{
			Line:    lineNo,
			Code:    subtitle.CodeInvalidTimestamp,
			Message: "invalid event timestamp",
			Raw:     raw,
		})
	}

	text := ""
	if v, ok := get("text"); ok {
		text = v
	}
	overrides := &subtitle.EventOverrides{}
	if v, ok := get("style"); ok {
		overrides.Style = v
	}
	if v, ok := get("name"); ok {
		overrides.Actor = v
	}
	if v, ok := get("layer"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			overrides.Layer = n
		}
	}
	if v, ok := get("marginl"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			overrides.MarginL = n
		}
	}
	if v, ok := get("marginr"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			overrides.MarginR = n
		}
	}
	if v, ok := get("marginv"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			overrides.MarginV = n
		}
	}
	if v, ok := get("effect"); ok {
		overrides.Effect = v
	}

	ev := subtitle.CreateEvent(start, end, text, overrides)
	doc.AddEvent(ev)
	return nil
}

// --- Fonts / Graphics ---

// parseEmbeddedLine maintains the currently-open blob (by index into
// *list, since EmbeddedFile is a value type and a pointer into the slice
// would dangle across append-triggered reallocation). idx is -1 when no
// blob is open; the caller resets it to -1 at every section boundary.
func parseEmbeddedLine(list *[]subtitle.EmbeddedFile, trimmed, headerPrefix string, idx int) int {
	if trimmed == "" {
		return idx
	}
	if rest, ok := stripPrefixFold(trimmed, headerPrefix); ok {
		*list = append(*list, subtitle.EmbeddedFile{Name: strings.TrimSpace(rest)})
		return len(*list) - 1
	}
	if idx >= 0 && idx < len(*list) {
		(*list)[idx].Data += trimmed
	}
	return idx
}
