package lrc

/*
 This file defines functions related to LRC lyrics parsing.
*/

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/subtime"
	"github.com/gosubs/subtitles/subtitle"
)

var (
	reTimedLine = regexp.MustCompile(`^\[(\d{1,3}):(\d{2})\.(\d{2,3})\](.*)$`)
	reTag       = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)
)

const defaultLastDuration = 4000 // ms, matching common LRC player behavior

// Parse decodes an LRC file. Bracketed metadata tags preceding the
// first timed line populate doc.Info/doc.Metadata; an [offset:ms] tag
// is added to every parsed timestamp. Lines matching neither the timed
// nor the tag grammar are ignored unless opts.Strict is set; with Strict
// they are reported as INVALID_FORMAT according to opts.OnError.
func Parse(input string, opts subtitle.ParseOptions) (*subtitle.SubtitleDocument, *subtitle.ParseResult, error) {
	doc := subtitle.NewDocument()
	result := &subtitle.ParseResult{}

	var offset int64
	type timedLine struct {
		start subtime.Time
		text  string
	}
	var timed []timedLine

	for _, line := range splitLines(stripBOM(input)) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := reTimedLine.FindStringSubmatch(trimmed); m != nil {
			minutes, _ := strconv.Atoi(m[1])
			seconds, _ := strconv.Atoi(m[2])
			frac := m[3]
			var ms int
			switch len(frac) {
			case 2:
				n, _ := strconv.Atoi(frac)
				ms = n * 10
			case 3:
				ms, _ = strconv.Atoi(frac)
			}
			start := subtime.Time(minutes*60000 + seconds*1000 + ms)
			timed = append(timed, timedLine{start: start, text: m[4]})
			continue
		}
		if m := reTag.FindStringSubmatch(trimmed); m != nil {
			applyTag(doc, &offset, strings.ToLower(m[1]), m[2])
			continue
		}
		if opts.Strict {
			if err := result.Report(opts, subtitle.ParseError{
				Code: subtitle.CodeInvalidFormat, Message: "unrecognized LRC line", Raw: line,
			}); err != nil {
				return doc, result, err
			}
		}
	}

	for i, tl := range timed {
		start := tl.start + subtime.Time(offset)
		var end subtime.Time
		if i+1 < len(timed) {
			end = timed[i+1].start + subtime.Time(offset)
		} else {
			end = start + defaultLastDuration
		}
		doc.AddEvent(subtitle.CreateEvent(start, end, tl.text, nil))
	}
	return doc, result, nil
}

// ParseDefault parses with onError='throw', strict=false.
func ParseDefault(input string) (*subtitle.SubtitleDocument, error) {
	doc, _, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	return doc, err
}

func applyTag(doc *subtitle.SubtitleDocument, offset *int64, key, value string) {
	value = strings.TrimSpace(value)
	switch key {
	case "ar":
		doc.Info.Author = value
	case "ti":
		doc.Info.Title = value
	case "al":
		doc.Metadata["lrc.album"] = value
	case "by":
		doc.Metadata["lrc.creator"] = value
	case "offset":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			*offset = n
		}
	default:
		doc.Metadata["lrc."+key] = value
	}
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
