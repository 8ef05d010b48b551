package microdvd

/*
 This file defines functions related to MicroDVD caption parsing.
*/

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

var reFrameLine = regexp.MustCompile(`^\{(-?\d+)\}\{(-?\d+)\}(.*)$`)

// Parse decodes a MicroDVD file at the default frame rate (DefaultFPS).
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	return ParseFPS(input, DefaultFPS, opts)
}

// ParseFPS decodes a MicroDVD file, converting frame numbers to
// milliseconds against fps. Lines that don't match the "{start}{end}"
// grammar are reported as MalformedEvent (dropped in collect mode,
// fatal in throw mode).
func ParseFPS(input string, fps float64, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}
	doc.Metadata["microdvd.fps"] = strconv.FormatFloat(fps, 'f', -1, 64)

	for _, line := range splitLines(stripBOM(input)) {
		trimmed := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		m := reFrameLine.FindStringSubmatch(trimmed)
		if m == nil {
			if err := result.Report(opts, subtitle.ParseError{
				Code: subtitle.CodeMalformedEvent, Message: "line does not match {start}{end}text", Raw: line,
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		startFrame, err1 := strconv.Atoi(m[1])
		endFrame, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			if err := result.Report(opts, subtitle.ParseError{
				Code: subtitle.CodeInvalidTimestamp, Message: "non-numeric frame number", Raw: line,
			}); err != nil {
				return doc, result, err
			}
			continue
		}
		start := subtime.Time(float64(startFrame) * 1000 / fps)
		end := subtime.Time(float64(endFrame) * 1000 / fps)
		text := strings.ReplaceAll(m[3], "|", "\n")
		doc.AddEvent(subtitle.CreateEvent(start, end, text, nil))
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false, DefaultFPS.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
