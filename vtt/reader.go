package vtt

/*
 This file defines functions related to WebVTT parsing.
*/

import (
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Parse decodes a WebVTT document. The first line must be "WEBVTT"
// (optionally followed by trailing text); its absence is a document-wide
// failure.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	lines := splitLines(stripBOM(input))
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimSpace(lines[0]), "WEBVTT") {
		e := subtitle.ParseError{Code: subtitle.CodeInvalidFormat, Message: "missing WEBVTT header"}
		return doc, result, &e
	}

	for _, block := range splitBlocks(lines[1:]) {
		if len(block) == 0 {
			continue
		}
		first := strings.TrimSpace(block[0])
		switch {
		case strings.HasPrefix(first, "NOTE"):
			// Comment block: discarded entirely.
		case strings.HasPrefix(first, "STYLE"):
			appendStyleBlock(doc, block[1:])
		case first == "REGION":
			parseRegionBlock(doc, block[1:])
		default:
			if err := parseCueBlock(doc, block, opts, result); err != nil {
				return doc, result, err
			}
		}
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

func parseCueBlock(doc *subtitle.SubtitleDocument, block []string, opts subtitle.ParseOptions, result *subtitle.ParseResult) error {
	idx := 0
	var cueID string
	if !strings.Contains(block[0], "-->") {
		cueID = strings.TrimSpace(block[0])
		idx = 1
	}
	if idx >= len(block) {
		return result.Report(opts, subtitle.ParseError{
			Code:    subtitle.CodeInvalidFormat,
			Message: "cue block missing timing line",
			Raw:     strings.Join(block, "\n"),
		})
	}
	start, end, ok := parseCueTiming(block[idx])
	if !ok {
		return result.Report(opts, subtitle.ParseError{
			Code:    subtitle.CodeInvalidTimestamp,
			Message: "invalid cue timing",
			Raw:     block[idx],
		})
	}
	text := strings.Join(block[idx+1:], "\n")
	doc.AddEvent(subtitle.CreateEvent(start, end, text, &subtitle.EventOverrides{CueID: cueID}))
	return nil
}

func parseCueTiming(line string) (subtime.Time, subtime.Time, bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	startStr := strings.TrimSpace(parts[0])
	rightFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(rightFields) == 0 {
		return 0, 0, false
	}
	start, err1 := subtime.ParseVTT(startStr)
	end, err2 := subtime.ParseVTT(rightFields[0])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return start, end, true
}

func parseRegionBlock(doc *subtitle.SubtitleDocument, lines []string) {
	r := subtitle.Region{}
	for _, l := range lines {
		i := strings.IndexByte(l, ':')
		if i < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(l[:i]))
		val := strings.TrimSpace(l[i+1:])
		switch key {
		case "id":
			r.ID = val
		case "width":
			r.Width = val
		case "lines":
			if n, err := strconv.Atoi(val); err == nil {
				r.Lines = n
			}
		case "regionanchor":
			r.RegionAnchor = val
		case "viewportanchor":
			r.ViewportAnchor = val
		case "scroll":
			r.Scroll = val
		}
	}
	doc.Regions = append(doc.Regions, r)
}

// appendStyleBlock records a STYLE block's raw CSS text into the
// document's metadata — not surfaced by any operation in §4.F-§4.N, but
// kept for round-trip fidelity rather than discarded outright like NOTE.
func appendStyleBlock(doc *subtitle.SubtitleDocument, lines []string) {
	if len(lines) == 0 {
		return
	}
	body := strings.Join(lines, "\n")
	if existing, ok := doc.Metadata["vtt.style"]; ok {
		doc.Metadata["vtt.style"] = existing + "\n\n" + body
	} else {
		doc.Metadata["vtt.style"] = body
	}
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}

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

// splitBlocks groups non-blank lines together, using any run of blank
// lines as a block boundary.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}
