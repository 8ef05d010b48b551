package sbv

/*
 This file defines functions related to YouTube SBV caption parsing.
*/

import (
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

// Parse decodes an SBV caption file: blank-line separated blocks of a
// "H:MM:SS.mmm,H:MM:SS.mmm" timing line followed by one or more lines
// of text.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	for _, block := range splitBlocks(stripBOM(input)) {
		if len(block) < 2 {
			if err := result.Report(opts, subtitle.ParseError{
				Code:    subtitle.CodeMalformedEvent,
				Message: "block has no text line", Raw: strings.Join(block, "\n"),
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		start, end, ok := parseTimingLine(block[0])
		if !ok {
			if err := result.Report(opts, subtitle.ParseError{
				Code:    subtitle.CodeInvalidTimestamp,
				Message: "malformed SBV timing line", Raw: block[0],
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		text := strings.Join(block[1:], "\n")
		ev := subtitle.CreateEvent(start, end, text, nil)
		doc.AddEvent(ev)
	}
	return doc, result, nil
}

// ParseDefault parses with onError=throw, strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func parseTimingLine(line string) (subtime.Time, subtime.Time, bool) {
	parts := strings.SplitN(strings.TrimSpace(line), ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := subtime.ParseASS(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	end, err := subtime.ParseASS(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func splitBlocks(s string) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range splitLines(s) {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}
