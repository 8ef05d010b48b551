package ttml

/*
 This file defines functions related to TTML document parsing.
*/

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

type xmlDocument struct {
	XMLName   xml.Name `xml:"tt"`
	FrameRate string   `xml:"frameRate,attr"`
	Head      xmlHead  `xml:"head"`
	Body      xmlBody  `xml:"body"`
}

type xmlHead struct {
	Styling xmlStyling `xml:"styling"`
}

type xmlStyling struct {
	Styles []xmlStyle `xml:"style"`
}

type xmlStyle struct {
	ID             string `xml:"id,attr"`
	Color          string `xml:"color,attr"`
	FontWeight     string `xml:"fontWeight,attr"`
	FontStyle      string `xml:"fontStyle,attr"`
	TextDecoration string `xml:"textDecoration,attr"`
}

type xmlBody struct {
	Divs []xmlDiv `xml:"div"`
}

type xmlDiv struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlParagraph struct {
	Begin string `xml:"begin,attr"`
	End   string `xml:"end,attr"`
	Style string `xml:"style,attr"`
	Inner []byte `xml:",innerxml"`
}

// Parse decodes a TTML/DFXP/SMPTE-TT document. The root's namespace URI is
// ignored; elements and attributes are matched by local name only, so the
// same grammar is accepted regardless of which of the three profile
// namespaces the document declares.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	var x xmlDocument
	dec := xml.NewDecoder(strings.NewReader(input))
	dec.Entity = make(map[string]string) // no external entity expansion
	if err := dec.Decode(&x); err != nil {
		if rerr := result.Report(opts, subtitle.ParseError{
			Code: subtitle.CodeInvalidFormat, Message: "malformed TTML document: " + err.Error(),
		}); rerr != nil {
			return doc, result, rerr
		}
		return doc, result, nil
	}

	fps := DefaultFrameRate
	if x.FrameRate != "" {
		if f, err := strconv.ParseFloat(x.FrameRate, 64); err == nil && f > 0 {
			fps = f
		}
	}
	doc.Metadata["ttml.frameRate"] = strconv.FormatFloat(fps, 'f', -1, 64)

	styleMap := make(map[string]*subtitle.InlineStyle, len(x.Head.Styling.Styles))
	for _, s := range x.Head.Styling.Styles {
		styleMap[s.ID] = inlineStyleFromAttrs(nil, s.Color, s.FontWeight, s.FontStyle, s.TextDecoration)
	}

	for _, div := range x.Body.Divs {
		for _, p := range div.Paragraphs {
			start, err := parseClockTime(p.Begin, fps)
			if err != nil {
				if rerr := result.Report(opts, subtitle.ParseError{
					Code: subtitle.CodeInvalidTimestamp, Message: "bad begin time", Raw: p.Begin,
				}); rerr != nil {
					return doc, result, rerr
				}
				continue
			}
			end, err := parseClockTime(p.End, fps)
			if err != nil {
				if rerr := result.Report(opts, subtitle.ParseError{
					Code: subtitle.CodeInvalidTimestamp, Message: "bad end time", Raw: p.End,
				}); rerr != nil {
					return doc, result, rerr
				}
				continue
			}
			var overrides *subtitle.EventOverrides
			if p.Style != "" {
				overrides = &subtitle.EventOverrides{Style: p.Style}
			}
			text, segments := decodeParagraphContent(p.Inner, styleMap)
			ev := subtitle.CreateEvent(start, end, text, overrides)
			ev.Segments = segments
			doc.AddEvent(ev)
		}
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

var clockTimeRe = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})(?:\.(\d+)|:(\d+))?$`)

func parseClockTime(s string, fps float64) (subtime.Time, error) {
	m := clockTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("ttml: invalid clock-time literal %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	mnt, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms := 0
	switch {
	case m[4] != "":
		frac := m[4]
		for len(frac) < 3 {
			frac += "0"
		}
		n, _ := strconv.Atoi(frac[:3])
		ms = n
	case m[5] != "":
		frames, _ := strconv.Atoi(m[5])
		ms = int(float64(frames) * 1000 / fps)
	}
	return subtime.Time(h*3600000 + mnt*60000 + sec*1000 + ms), nil
}

// decodeParagraphContent walks a <p>'s inner XML (text, <span>, <br/>)
// wrapped in a synthetic root, producing the plain-text concatenation and
// the style-tagged segments.
func decodeParagraphContent(inner []byte, styleMap map[string]*subtitle.InlineStyle) (string, []subtitle.TextSegment) {
	dec := xml.NewDecoder(strings.NewReader("<root>" + string(inner) + "</root>"))
	dec.Entity = map[string]string{
		"amp": "&", "lt": "<", "gt": ">", "apos": "'", "quot": "\"",
	}

	var plain strings.Builder
	var segments []subtitle.TextSegment
	var currentText strings.Builder
	var currentStyle *subtitle.InlineStyle

	flush := func() {
		if currentText.Len() > 0 {
			segments = append(segments, subtitle.TextSegment{
				Text:  currentText.String(),
				Style: currentStyle.Clone(),
			})
			currentText.Reset()
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "span":
				flush()
				currentStyle = spanStyle(t.Attr, styleMap)
			case "br":
				currentText.WriteByte('\n')
				plain.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "span" {
				flush()
				currentStyle = nil
			}
		case xml.CharData:
			currentText.Write(t)
			plain.Write(t)
		}
	}
	flush()
	return plain.String(), segments
}

func spanStyle(attrs []xml.Attr, styleMap map[string]*subtitle.InlineStyle) *subtitle.InlineStyle {
	var base *subtitle.InlineStyle
	for _, a := range attrs {
		if a.Name.Local == "style" {
			if s, ok := styleMap[a.Value]; ok {
				base = s.Clone()
			}
		}
	}
	var col, weight, style, decoration string
	for _, a := range attrs {
		switch a.Name.Local {
		case "color":
			col = a.Value
		case "fontWeight":
			weight = a.Value
		case "fontStyle":
			style = a.Value
		case "textDecoration":
			decoration = a.Value
		}
	}
	return inlineStyleFromAttrs(base, col, weight, style, decoration)
}

func inlineStyleFromAttrs(base *subtitle.InlineStyle, col, weight, style, decoration string) *subtitle.InlineStyle {
	s := base
	if s == nil {
		s = &subtitle.InlineStyle{}
	}
	if col != "" {
		if c, alpha, err := parseTTMLColor(col); err == nil {
			s.PrimaryColor = &c
			if alpha != nil {
				s.Alpha = alpha
			}
		}
	}
	if weight != "" {
		var b int
		switch weight {
		case "bold":
			b = 1
		case "normal":
			b = 0
		default:
			if n, err := strconv.Atoi(weight); err == nil {
				b = n
			}
		}
		s.Bold = &b
	}
	if style != "" {
		v := style == "italic"
		s.Italic = &v
	}
	if decoration != "" {
		v := strings.Contains(decoration, "underline")
		s.Underline = &v
	}
	if s.IsEmpty() {
		return nil
	}
	return s
}

func parseTTMLColor(s string) (color.Color, *byte, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 8 {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, nil, fmt.Errorf("ttml: invalid color literal %q", s)
		}
		r := byte(v >> 24)
		g := byte(v >> 16)
		b := byte(v >> 8)
		a := byte(v)
		c := color.New(r, g, b, 0)
		assAlpha := byte(0xFF - a)
		return c, &assAlpha, nil
	}
	if c, ok := color.RGBToPacked(s); ok {
		return c, nil, nil
	}
	return 0, nil, fmt.Errorf("ttml: invalid color literal %q", s)
}
