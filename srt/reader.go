package srt

/*
 This file defines functions related to SubRip parsing.
*/

import (
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Parse decodes a SubRip document: blocks separated by one or more blank
// lines, each block being an index line, a "start --> end" timing line,
// and one or more lines of text.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	for _, block := range splitBlocks(stripBOM(input)) {
		if len(block) < 2 {
			if err := result.Report(opts, subtitle.ParseError{
				Code:    subtitle.CodeInvalidFormat,
				Message: "block missing timing line",
				Raw:     strings.Join(block, "\n"),
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		start, end, ok := parseTimingLine(block[1])
		if !ok {
			if err := result.Report(opts, subtitle.ParseError{
				Code:    subtitle.CodeInvalidTimestamp,
				Message: "invalid timing line",
				Raw:     block[1],
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		text := strings.Join(block[2:], "\n")
		doc.AddEvent(subtitle.CreateEvent(start, end, text, nil))
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

func parseTimingLine(line string) (subtime.Time, subtime.Time, bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	startStr := strings.TrimSpace(parts[0])
	endFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endFields) == 0 {
		return 0, 0, false
	}
	start, err1 := subtime.ParseSRT(startStr)
	end, err2 := subtime.ParseSRT(endFields[0])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return start, end, true
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
func splitBlocks(s string) [][]string {
	var blocks [][]string
	var cur []string
	for _, l := range splitLines(s) {
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
