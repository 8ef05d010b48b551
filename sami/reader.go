package sami

/*
 This file defines functions related to SAMI document parsing.
*/

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/htmltags"
	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

var (
	reStyleBlock = regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style>`)
	reBodyBlock  = regexp.MustCompile(`(?is)<body\b[^>]*>(.*)</body>`)
	reSyncOpen   = regexp.MustCompile(`(?i)<sync\b([^>]*)>`)
	reStartAttr  = regexp.MustCompile(`(?i)\bstart\s*=\s*"?(\d+)"?`)
	rePClassAttr = regexp.MustCompile(`(?i)<p\b[^>]*\bclass\s*=\s*"?([^">\s]+)"?`)
	rePTag       = regexp.MustCompile(`(?i)</?p\b[^>]*>`)
	reSyncClose  = regexp.MustCompile(`(?i)</sync\s*>`)
)

type rawSync struct {
	start subtime.Time
	class string
	body  string
}

// Parse decodes a SAMI document with a tolerant token scan rather than
// encoding/xml, since real-world SAMI is frequently not well-formed XML.
// A <SYNC>'s end is the next <SYNC>'s Start; the last event gets zero
// duration.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	if m := reStyleBlock.FindStringSubmatch(input); m != nil {
		doc.Metadata["sami.style"] = strings.TrimSpace(m[1])
	}

	body := input
	if m := reBodyBlock.FindStringSubmatch(input); m != nil {
		body = m[1]
	}

	opens := reSyncOpen.FindAllStringSubmatchIndex(body, -1)
	var raws []rawSync
	for i, oi := range opens {
		attrs := body[oi[2]:oi[3]]
		contentStart := oi[1]
		contentEnd := len(body)
		if i+1 < len(opens) {
			contentEnd = opens[i+1][0]
		}
		content := body[contentStart:contentEnd]

		m := reStartAttr.FindStringSubmatch(attrs)
		if m == nil {
			if err := result.Report(opts, subtitle.ParseError{
				Code: subtitle.CodeInvalidTimestamp, Message: "SYNC tag missing Start attribute", Raw: attrs,
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			if err := result.Report(opts, subtitle.ParseError{
				Code: subtitle.CodeInvalidTimestamp, Message: "non-numeric Start attribute", Raw: m[1],
			}); err != nil {
				return doc, result, err
			}
			continue
		}

		class := ""
		if cm := rePClassAttr.FindStringSubmatch(content); cm != nil {
			class = cm[1]
		}
		raws = append(raws, rawSync{start: subtime.Time(n), class: class, body: content})
	}

	for i, rs := range raws {
		end := rs.start
		if i+1 < len(raws) {
			end = raws[i+1].start
		}
		text, segments := decodeSyncBody(rs.body)
		var overrides *subtitle.EventOverrides
		if rs.class != "" {
			overrides = &subtitle.EventOverrides{Style: rs.class}
		}
		ev := subtitle.CreateEvent(rs.start, end, text, overrides)
		ev.Segments = segments
		doc.AddEvent(ev)
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

func decodeSyncBody(raw string) (string, []subtitle.TextSegment) {
	cleaned := reSyncClose.ReplaceAllString(raw, "")
	cleaned = rePTag.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = decodeEntities(cleaned)
	segments := htmltags.ParseTags(cleaned)
	var text strings.Builder
	for _, seg := range segments {
		text.WriteString(seg.Text)
	}
	return text.String(), segments
}

func decodeEntities(s string) string {
	r := strings.NewReplacer(
		"&nbsp;", " ",
		"&NBSP;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&apos;", "'",
		"&#39;", "'",
		"&amp;", "&",
	)
	return r.Replace(s)
}
