package vobsub

/*
 This file defines functions related to .idx sidecar parsing and
 generation.
*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtime"
)

// TimestampEntry is one "timestamp: ..., filepos: ..." line within a
// track block.
type TimestampEntry struct {
	Time    subtime.Time
	Filepos uint64
}

// Track is one "id: <lang>, index: <n>" block and its timestamps.
type Track struct {
	Lang    string
	Index   int
	Entries []TimestampEntry
}

// IdxFile is the decoded contents of a .idx sidecar.
type IdxFile struct {
	Width, Height int
	Palette       [16]color.Color
	Tracks        []Track
}

// fallbackPalette is used when the .idx carries no "palette:" line — a
// 16-step grayscale ramp from black to white, each entry with alpha byte
// 0xFF, the same alpha a 6-digit palette entry is given (the exact values
// a missing palette should resolve to are left unspecified by any DVD
// subpicture source we grounded on; this ramp keeps a missing-palette
// image legible rather than making an arbitrary color choice).
var fallbackPalette = [16]color.Color{
	color.New(0x00, 0x00, 0x00, 0xFF), color.New(0x11, 0x11, 0x11, 0xFF),
	color.New(0x22, 0x22, 0x22, 0xFF), color.New(0x33, 0x33, 0x33, 0xFF),
	color.New(0x44, 0x44, 0x44, 0xFF), color.New(0x55, 0x55, 0x55, 0xFF),
	color.New(0x66, 0x66, 0x66, 0xFF), color.New(0x77, 0x77, 0x77, 0xFF),
	color.New(0x88, 0x88, 0x88, 0xFF), color.New(0x99, 0x99, 0x99, 0xFF),
	color.New(0xAA, 0xAA, 0xAA, 0xFF), color.New(0xBB, 0xBB, 0xBB, 0xFF),
	color.New(0xCC, 0xCC, 0xCC, 0xFF), color.New(0xDD, 0xDD, 0xDD, 0xFF),
	color.New(0xEE, 0xEE, 0xEE, 0xFF), color.New(0xFF, 0xFF, 0xFF, 0xFF),
}

// ParseIdx decodes a .idx sidecar. Comments ("#...") and blank lines are
// ignored; missing size/palette fall back to 720x480 and fallbackPalette;
// a "timestamp:" line with no open track synthesizes {lang: "en", index:
// 0}.
func ParseIdx(input string) (*IdxFile, error) {
	idx := &IdxFile{Width: 720, Height: 480, Palette: fallbackPalette}

	for _, line := range strings.Split(stripIdxBOM(input), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(strings.ToLower(trimmed), "size:"):
			parseSizeLine(idx, trimmed[len("size:"):])
		case strings.HasPrefix(strings.ToLower(trimmed), "palette:"):
			parsePaletteLine(idx, trimmed[len("palette:"):])
		case strings.HasPrefix(strings.ToLower(trimmed), "id:"):
			parseIDLine(idx, trimmed[len("id:"):])
		case strings.HasPrefix(strings.ToLower(trimmed), "timestamp:"):
			parseTimestampLine(idx, trimmed[len("timestamp:"):])
		}
	}
	return idx, nil
}

func stripIdxBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}

func parseSizeLine(idx *IdxFile, rest string) {
	rest = strings.TrimSpace(rest)
	parts := strings.SplitN(rest, "x", 2)
	if len(parts) != 2 {
		return
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 == nil && err2 == nil {
		idx.Width, idx.Height = w, h
	}
}

func parsePaletteLine(idx *IdxFile, rest string) {
	parts := strings.Split(rest, ",")
	for i := 0; i < 16 && i < len(parts); i++ {
		hex := strings.TrimSpace(parts[i])
		if c, ok := parsePaletteColor(hex); ok {
			idx.Palette[i] = c
		}
	}
}

func parsePaletteColor(hex string) (color.Color, bool) {
	var r, g, b, a uint64
	var err error
	switch len(hex) {
	case 6:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err != nil {
			return 0, false
		}
		g, err = strconv.ParseUint(hex[2:4], 16, 8)
		if err != nil {
			return 0, false
		}
		b, err = strconv.ParseUint(hex[4:6], 16, 8)
		if err != nil {
			return 0, false
		}
		a = 0xFF
	case 8:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err != nil {
			return 0, false
		}
		g, err = strconv.ParseUint(hex[2:4], 16, 8)
		if err != nil {
			return 0, false
		}
		b, err = strconv.ParseUint(hex[4:6], 16, 8)
		if err != nil {
			return 0, false
		}
		a, err = strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	return color.New(byte(r), byte(g), byte(b), byte(a)), true
}

func parseIDLine(idx *IdxFile, rest string) {
	parts := strings.SplitN(rest, ",", 2)
	lang := strings.TrimSpace(parts[0])
	index := 0
	if len(parts) == 2 {
		if i := strings.Index(strings.ToLower(parts[1]), "index:"); i >= 0 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[1][i+len("index:"):])); err == nil {
				index = n
			}
		}
	}
	idx.Tracks = append(idx.Tracks, Track{Lang: lang, Index: index})
}

func parseTimestampLine(idx *IdxFile, rest string) {
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return
	}
	ts, err := subtime.ParseVobSub(strings.TrimSpace(parts[0]))
	if err != nil {
		return
	}
	filePart := strings.TrimSpace(parts[1])
	_, hexStr, ok := strings.Cut(strings.ToLower(filePart), "filepos:")
	if !ok {
		return
	}
	filepos, err := strconv.ParseUint(strings.TrimSpace(hexStr), 16, 64)
	if err != nil {
		return
	}
	if len(idx.Tracks) == 0 {
		idx.Tracks = append(idx.Tracks, Track{Lang: "en", Index: 0})
	}
	cur := &idx.Tracks[len(idx.Tracks)-1]
	cur.Entries = append(cur.Entries, TimestampEntry{Time: ts, Filepos: filepos})
}

// SerializeIdx renders idx as a .idx sidecar: the standard banner
// comment, size, palette (lower-case RRGGBB, comma-space separated),
// then one block per track.
func SerializeIdx(idx *IdxFile) string {
	var b strings.Builder
	b.WriteString("# VobSub index file, v7 (do not modify this line!)\n")
	b.WriteString(fmt.Sprintf("size: %dx%d\n", idx.Width, idx.Height))
	b.WriteString("palette: ")
	for i, c := range idx.Palette {
		if i > 0 {
			b.WriteString(", ")
		}
		r, g, bl, _ := c.RGBA()
		b.WriteString(fmt.Sprintf("%02x%02x%02x", r, g, bl))
	}
	b.WriteString("\n")
	for _, t := range idx.Tracks {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("id: %s, index: %d\n", t.Lang, t.Index))
		for _, e := range t.Entries {
			b.WriteString(fmt.Sprintf("timestamp: %s, filepos: %09x\n",
				subtime.FormatVobSub(e.Time), e.Filepos))
		}
	}
	return b.String()
}
