package subtitle

import "github.com/gosubs/subtitles/color"

// WrapStyle is the ASS wrap-style enumeration (0..3).
type WrapStyle int

const (
	WrapSmart     WrapStyle = 0
	WrapNone      WrapStyle = 1
	WrapSmartWide WrapStyle = 2
	WrapEvenSplit WrapStyle = 3
)

// Point is a layout override position (\pos, \org).
type Point struct {
	X, Y float64
}

// InlineStyle is a sparse set of optional dialogue-text style attributes.
// Every field is a pointer (or a presence-carrying value) so "absent" can
// be distinguished from "explicitly set to the zero value". An InlineStyle
// is considered null (IsEmpty) iff no field is set.
type InlineStyle struct {
	Italic    *bool
	Underline *bool
	Strikeout *bool

	// Bold is either a boolean (0/1) or a numeric font weight (100-900).
	// nil means unset; 0 means explicitly off; 1 means explicitly on;
	// any other value is a weight.
	Bold *int

	FontName     *string
	FontSize     *float64
	FontEncoding *int
	WrapStyle    *WrapStyle

	PrimaryColor   *color.Color
	SecondaryColor *color.Color
	OutlineColor   *color.Color
	BackColor      *color.Color

	Alpha         *byte
	PrimaryAlpha  *byte
	SecondaryAlpha *byte
	OutlineAlpha  *byte
	BackAlpha     *byte

	Alignment *int // 1..9, numpad convention
	Pos       *Point
}

// IsEmpty reports whether no attribute is set.
func (s *InlineStyle) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.Italic == nil && s.Underline == nil && s.Strikeout == nil &&
		s.Bold == nil && s.FontName == nil && s.FontSize == nil &&
		s.FontEncoding == nil && s.WrapStyle == nil &&
		s.PrimaryColor == nil && s.SecondaryColor == nil &&
		s.OutlineColor == nil && s.BackColor == nil &&
		s.Alpha == nil && s.PrimaryAlpha == nil && s.SecondaryAlpha == nil &&
		s.OutlineAlpha == nil && s.BackAlpha == nil &&
		s.Alignment == nil && s.Pos == nil
}

// Clone returns a deep copy so mutating the copy never affects the
// original — used by the ASS tag engine when it carries a style forward
// from one segment to the next.
func (s *InlineStyle) Clone() *InlineStyle {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// BorderStyle is the ASS BorderStyle style field: 1 means outline+shadow,
// 3 means opaque box.
type BorderStyle int

const (
	BorderOutline BorderStyle = 1
	BorderBox     BorderStyle = 3
)

// Style is a named, document-level collection of default typographic and
// geometric attributes referenced by events via SubtitleEvent.Style.
type Style struct {
	Name string

	FontName string
	FontSize float64

	PrimaryColor   color.Color
	SecondaryColor color.Color
	OutlineColor   color.Color
	BackColor      color.Color

	// Alphas default to 0 (opaque, per ASS convention) when unset.
	PrimaryAlpha   byte
	SecondaryAlpha byte
	OutlineAlpha   byte
	BackAlpha      byte

	Bold      bool
	Italic    bool
	Underline bool
	Strikeout bool

	ScaleX  float64
	ScaleY  float64
	Spacing float64
	Angle   float64

	BorderStyle BorderStyle
	Outline     float64
	Shadow      float64

	Alignment int
	MarginL   int
	MarginR   int
	MarginV   int
	Encoding  int
}

// DefaultStyle returns a Style populated with the library's baseline
// defaults (matches the common ASS "Default" style).
func DefaultStyle(name string) *Style {
	return &Style{
		Name:        name,
		FontName:    "Arial",
		FontSize:    48,
		PrimaryColor: color.White,
		SecondaryColor: color.Red,
		OutlineColor: color.Black,
		BackColor:    color.Black,
		ScaleX:       100,
		ScaleY:       100,
		BorderStyle:  BorderOutline,
		Outline:      2,
		Shadow:       2,
		Alignment:    2,
		MarginL:      10,
		MarginR:      10,
		MarginV:      10,
	}
}

// ScriptInfo holds document-level metadata.
type ScriptInfo struct {
	Title  string
	Author string

	PlayResX int
	PlayResY int

	ScaleBorderAndShadow bool
	WrapStyle            WrapStyle
}

// DefaultScriptInfo returns the coercion defaults (1920x1080) used whenever
// a parser fails to read an explicit resolution.
func DefaultScriptInfo() ScriptInfo {
	return ScriptInfo{PlayResX: 1920, PlayResY: 1080}
}
