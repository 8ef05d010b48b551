package microdvd

/*
 This file defines functions related to MicroDVD caption generation.
*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/subtitle"
)

// Serialize renders doc as a MicroDVD file at DefaultFPS, or at the fps
// recorded in doc.Metadata["microdvd.fps"] if one was set by Parse.
func Serialize(doc *subtitle.SubtitleDocument, opts subtitle.SerializeOptions) (string, error) {
	fps := DefaultFPS
	if v, ok := doc.Metadata["microdvd.fps"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			fps = f
		}
	}
	return SerializeFPS(doc, fps, opts)
}

// SerializeFPS renders doc as a MicroDVD file, re-deriving frame
// numbers from each event's millisecond timing against fps.
func SerializeFPS(doc *subtitle.SubtitleDocument, fps float64, opts subtitle.SerializeOptions) (string, error) {
	var b strings.Builder
	for _, ev := range doc.Events {
		startFrame := int64(float64(ev.Start)*fps/1000 + 0.5)
		endFrame := int64(float64(ev.End)*fps/1000 + 0.5)
		text := strings.ReplaceAll(ev.Text, "\n", "|")
		fmt.Fprintf(&b, "{%d}{%d}%s\n", startFrame, endFrame, text)
	}
	return b.String(), nil
}

// SerializeDefault serializes with the library's baseline options.
func SerializeDefault(doc *subtitle.SubtitleDocument) string {
	s, _ := Serialize(doc, subtitle.SerializeOptions{})
	return s
}
