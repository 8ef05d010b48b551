package asstags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtitle"
)

// SerializeTags is the inverse of ParseTags: given the ordered segments of
// a dialogue line, it emits the `{...}` blocks and literal runs that
// reproduce them, diffing each segment's style against the previous one so
// only the attributes that actually changed are re-emitted.
func SerializeTags(segments []subtitle.TextSegment) string {
	var b strings.Builder
	var prevStyle *subtitle.InlineStyle
	var prevEffects []subtitle.Effect

	for _, seg := range segments {
		block := diffStyle(prevStyle, seg.Style) + diffEffects(prevEffects, seg.Effects)
		if block != "" {
			b.WriteByte('{')
			b.WriteString(block)
			b.WriteByte('}')
		}
		b.WriteString(escape(seg.Text))
		prevStyle = seg.Style
		prevEffects = seg.Effects
	}
	return b.String()
}

// diffStyle emits the tags needed to move the live style from prev to cur.
// An attribute is re-emitted whenever it is set on cur and its value
// differs from (or is absent on) prev; attributes present on prev but
// cleared on cur are handled by falling back to a full \r when cur is
// empty, matching how ASS dialogue text actually expresses "go back to
// style defaults" (there is no per-attribute clear tag).
func diffStyle(prev, cur *subtitle.InlineStyle) string {
	if cur.IsEmpty() {
		if prev.IsEmpty() {
			return ""
		}
		return `\r`
	}
	var b strings.Builder

	if cur.Italic != nil && !boolPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *bool { return s.Italic }), cur.Italic) {
		b.WriteString(formatBoolTag("i", *cur.Italic))
	}
	if cur.Underline != nil && !boolPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *bool { return s.Underline }), cur.Underline) {
		b.WriteString(formatBoolTag("u", *cur.Underline))
	}
	if cur.Strikeout != nil && !boolPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *bool { return s.Strikeout }), cur.Strikeout) {
		b.WriteString(formatBoolTag("s", *cur.Strikeout))
	}
	if cur.Bold != nil && !intPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *int { return s.Bold }), cur.Bold) {
		fmt.Fprintf(&b, `\b%d`, *cur.Bold)
	}
	if cur.FontName != nil && !strPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *string { return s.FontName }), cur.FontName) {
		fmt.Fprintf(&b, `\fn%s`, *cur.FontName)
	}
	if cur.FontSize != nil && !floatPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *float64 { return s.FontSize }), cur.FontSize) {
		fmt.Fprintf(&b, `\fs%s`, trimFloat(*cur.FontSize))
	}
	if cur.FontEncoding != nil && !intPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *int { return s.FontEncoding }), cur.FontEncoding) {
		fmt.Fprintf(&b, `\fe%d`, *cur.FontEncoding)
	}
	if cur.WrapStyle != nil && !wrapPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *subtitle.WrapStyle { return s.WrapStyle }), cur.WrapStyle) {
		fmt.Fprintf(&b, `\q%d`, int(*cur.WrapStyle))
	}
	if cur.PrimaryColor != nil && !colorPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *color.Color { return s.PrimaryColor }), cur.PrimaryColor) {
		fmt.Fprintf(&b, `\1c%s`, ass8(*cur.PrimaryColor))
	}
	if cur.SecondaryColor != nil && !colorPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *color.Color { return s.SecondaryColor }), cur.SecondaryColor) {
		fmt.Fprintf(&b, `\2c%s`, ass8(*cur.SecondaryColor))
	}
	if cur.OutlineColor != nil && !colorPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *color.Color { return s.OutlineColor }), cur.OutlineColor) {
		fmt.Fprintf(&b, `\3c%s`, ass8(*cur.OutlineColor))
	}
	if cur.BackColor != nil && !colorPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *color.Color { return s.BackColor }), cur.BackColor) {
		fmt.Fprintf(&b, `\4c%s`, ass8(*cur.BackColor))
	}
	if cur.Alpha != nil && !bytePtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *byte { return s.Alpha }), cur.Alpha) {
		fmt.Fprintf(&b, `\alpha&H%02X&`, *cur.Alpha)
	}
	if cur.PrimaryAlpha != nil && !bytePtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *byte { return s.PrimaryAlpha }), cur.PrimaryAlpha) {
		fmt.Fprintf(&b, `\1a&H%02X&`, *cur.PrimaryAlpha)
	}
	if cur.SecondaryAlpha != nil && !bytePtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *byte { return s.SecondaryAlpha }), cur.SecondaryAlpha) {
		fmt.Fprintf(&b, `\2a&H%02X&`, *cur.SecondaryAlpha)
	}
	if cur.OutlineAlpha != nil && !bytePtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *byte { return s.OutlineAlpha }), cur.OutlineAlpha) {
		fmt.Fprintf(&b, `\3a&H%02X&`, *cur.OutlineAlpha)
	}
	if cur.BackAlpha != nil && !bytePtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *byte { return s.BackAlpha }), cur.BackAlpha) {
		fmt.Fprintf(&b, `\4a&H%02X&`, *cur.BackAlpha)
	}
	if cur.Alignment != nil && !intPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *int { return s.Alignment }), cur.Alignment) {
		fmt.Fprintf(&b, `\an%d`, *cur.Alignment)
	}
	if cur.Pos != nil && !pointPtrEq(fieldOf(prev, func(s *subtitle.InlineStyle) *subtitle.Point { return s.Pos }), cur.Pos) {
		fmt.Fprintf(&b, `\pos(%s,%s)`, trimFloat(cur.Pos.X), trimFloat(cur.Pos.Y))
	}
	return b.String()
}

// fieldOf reads a field off prev through get, tolerating a nil prev.
func fieldOf[T any](prev *subtitle.InlineStyle, get func(*subtitle.InlineStyle) *T) *T {
	if prev == nil {
		return nil
	}
	return get(prev)
}

func formatBoolTag(name string, v bool) string {
	if v {
		return `\` + name + `1`
	}
	return `\` + name + `0`
}

func boolPtrEq(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func bytePtrEq(a, b *byte) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func wrapPtrEq(a, b *subtitle.WrapStyle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func pointPtrEq(a, b *subtitle.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func colorPtrEq(a, b *color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ass8(c color.Color) string {
	r, g, bl, al := c.RGBA()
	return fmt.Sprintf("&H%02X%02X%02X%02X&", al, bl, g, r)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// diffEffects emits the tag for every effect present in cur whose
// formatted form differs from (or is absent from) prev. An effect that
// disappears between segments produces no tag of its own: ASS has no
// per-effect clear, so a dropped effect is only observable through an
// explicit \r, which diffStyle already emits when the style resets.
func diffEffects(prev, cur []subtitle.Effect) string {
	var b strings.Builder
	for _, e := range cur {
		if i := findEffect(prev, e.Kind); i >= 0 && effectEqual(prev[i], e) {
			continue
		}
		b.WriteString(formatEffect(e))
	}
	return b.String()
}

func effectEqual(a, b subtitle.Effect) bool {
	if a.Kind != b.Kind {
		return false
	}
	return formatEffect(a) == formatEffect(b)
}

func formatEffect(e subtitle.Effect) string {
	switch e.Kind {
	case subtitle.EffectKaraoke:
		k := e.Karaoke
		switch k.Mode {
		case subtitle.KaraokeFade:
			return fmt.Sprintf(`\kf%d`, k.DurationMS/10)
		case subtitle.KaraokeOutline:
			return fmt.Sprintf(`\ko%d`, k.DurationMS/10)
		default:
			return fmt.Sprintf(`\k%d`, k.DurationMS/10)
		}
	case subtitle.EffectKaraokeAbsolute:
		return fmt.Sprintf(`\kt%d`, e.KaraokeAbsolute.TimeMS)
	case subtitle.EffectBlur:
		return fmt.Sprintf(`\blur%s`, trimFloat(e.Blur.Strength))
	case subtitle.EffectBorder:
		var s strings.Builder
		fmt.Fprintf(&s, `\bord%s`, trimFloat(e.Border.Size))
		if e.Border.X != nil {
			fmt.Fprintf(&s, `\xbord%s`, trimFloat(*e.Border.X))
		}
		if e.Border.Y != nil {
			fmt.Fprintf(&s, `\ybord%s`, trimFloat(*e.Border.Y))
		}
		return s.String()
	case subtitle.EffectShadow:
		var s strings.Builder
		fmt.Fprintf(&s, `\shad%s`, trimFloat(e.Shadow.Depth))
		if e.Shadow.X != nil {
			fmt.Fprintf(&s, `\xshad%s`, trimFloat(*e.Shadow.X))
		}
		if e.Shadow.Y != nil {
			fmt.Fprintf(&s, `\yshad%s`, trimFloat(*e.Shadow.Y))
		}
		return s.String()
	case subtitle.EffectScale:
		var s strings.Builder
		if e.Scale.X != nil {
			fmt.Fprintf(&s, `\fscx%s`, trimFloat(*e.Scale.X))
		}
		if e.Scale.Y != nil {
			fmt.Fprintf(&s, `\fscy%s`, trimFloat(*e.Scale.Y))
		}
		return s.String()
	case subtitle.EffectRotate:
		var s strings.Builder
		if e.Rotate.X != nil {
			fmt.Fprintf(&s, `\frx%s`, trimFloat(*e.Rotate.X))
		}
		if e.Rotate.Y != nil {
			fmt.Fprintf(&s, `\fry%s`, trimFloat(*e.Rotate.Y))
		}
		if e.Rotate.Z != nil {
			fmt.Fprintf(&s, `\frz%s`, trimFloat(*e.Rotate.Z))
		}
		return s.String()
	case subtitle.EffectShear:
		var s strings.Builder
		if e.Shear.X != nil {
			fmt.Fprintf(&s, `\fax%s`, trimFloat(*e.Shear.X))
		}
		if e.Shear.Y != nil {
			fmt.Fprintf(&s, `\fay%s`, trimFloat(*e.Shear.Y))
		}
		return s.String()
	case subtitle.EffectSpacing:
		return fmt.Sprintf(`\fsp%s`, trimFloat(e.Spacing.Value))
	case subtitle.EffectFade:
		return fmt.Sprintf(`\fad(%d,%d)`, e.Fade.In, e.Fade.Out)
	case subtitle.EffectFadeComplex:
		fc := e.FadeComplex
		return fmt.Sprintf(`\fade(%d,%d,%d,%d,%d,%d,%d)`,
			fc.Alphas[0], fc.Alphas[1], fc.Alphas[2],
			fc.Times[0], fc.Times[1], fc.Times[2], fc.Times[3])
	case subtitle.EffectMove:
		mv := e.Move
		if mv.T1 != nil && mv.T2 != nil {
			return fmt.Sprintf(`\move(%s,%s,%s,%s,%d,%d)`,
				trimFloat(mv.FromX), trimFloat(mv.FromY), trimFloat(mv.ToX), trimFloat(mv.ToY), *mv.T1, *mv.T2)
		}
		return fmt.Sprintf(`\move(%s,%s,%s,%s)`, trimFloat(mv.FromX), trimFloat(mv.FromY), trimFloat(mv.ToX), trimFloat(mv.ToY))
	case subtitle.EffectClip:
		if e.Clip.Inverse {
			return fmt.Sprintf(`\iclip(%s)`, e.Clip.Path)
		}
		return fmt.Sprintf(`\clip(%s)`, e.Clip.Path)
	case subtitle.EffectDrawing:
		return fmt.Sprintf(`\p%d`, e.Drawing.Scale)
	case subtitle.EffectDrawingBaseline:
		return fmt.Sprintf(`\pbo%s`, trimFloat(e.DrawingBaseline.Offset))
	case subtitle.EffectOrigin:
		return fmt.Sprintf(`\org(%s,%s)`, trimFloat(e.Origin.X), trimFloat(e.Origin.Y))
	case subtitle.EffectReset:
		if e.Reset.Style != nil {
			return `\r` + *e.Reset.Style
		}
		return `\r`
	case subtitle.EffectAnimate:
		an := e.Animate
		var args []string
		if an.Start != nil && an.End != nil {
			args = append(args, strconv.Itoa(*an.Start), strconv.Itoa(*an.End))
		}
		if an.Accel != nil {
			args = append(args, trimFloat(*an.Accel))
		}
		args = append(args, an.Target)
		return fmt.Sprintf(`\t(%s)`, strings.Join(args, ","))
	case subtitle.EffectUnknown:
		return e.Unknown.Raw
	default:
		return ""
	}
}
