package asstags

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtitle"
)

// dispatchCtx bundles the three rolling accumulators a tag handler may
// mutate, plus a convenience for lazily materializing the style.
type dispatchCtx struct {
	style   **subtitle.InlineStyle
	changed *bool
	effects *[]subtitle.Effect
}

func (c *dispatchCtx) ensureStyle() *subtitle.InlineStyle {
	if *c.style == nil {
		*c.style = &subtitle.InlineStyle{}
	}
	*c.changed = true
	return *c.style
}

type rule struct {
	re      *regexp.Regexp
	handler func(ctx *dispatchCtx, m []string)
}

var anchor = func(pat string) *regexp.Regexp { return regexp.MustCompile("^" + pat + "$") }

var numPat = `-?\d+(?:\.\d+)?`

var rules = []rule{
	{anchor(`b(-?\d+)`), handleBold},
	{anchor(`([ius])([01])`), handleBoolToggle},
	{anchor(`fn(.*)`), handleFontName},
	{anchor(`fs(` + numPat + `)`), handleFontSize},
	{anchor(`an([1-9])`), handleAlignment},
	{anchor(`a(\d{1,2})`), handleLegacyAlignment},
	{anchor(`fe(-?\d+)`), handleFontEncoding},
	{anchor(`q([0-3])`), handleWrapStyle},
	{anchor(`1?c([^(]+)`), handleColorPrimary},
	{anchor(`2c(.+)`), handleColorSecondary},
	{anchor(`3c(.+)`), handleColorOutline},
	{anchor(`4c(.+)`), handleColorBack},
	{anchor(`alpha(.+)`), handleAlphaGlobal},
	{anchor(`1a(.+)`), handleAlphaPrimary},
	{anchor(`2a(.+)`), handleAlphaSecondary},
	{anchor(`3a(.+)`), handleAlphaOutline},
	{anchor(`4a(.+)`), handleAlphaBack},
	{anchor(`pos\(([^)]*)\)`), handlePos},
	{anchor(`org\(([^)]*)\)`), handleOrigin},
	{anchor(`kf(\d+)`), handleKaraokeFade},
	{anchor(`K(\d+)`), handleKaraokeFade},
	{anchor(`ko(\d+)`), handleKaraokeOutline},
	{anchor(`k(\d+)`), handleKaraokeFill},
	{anchor(`kt(\d+)`), handleKaraokeAbsolute},
	{anchor(`blur(` + numPat + `)`), handleBlur},
	{anchor(`be(` + numPat + `)`), handleBlur},
	{anchor(`bord(` + numPat + `)`), handleBorder},
	{anchor(`xbord(` + numPat + `)`), handleXBord},
	{anchor(`ybord(` + numPat + `)`), handleYBord},
	{anchor(`shad(` + numPat + `)`), handleShadow},
	{anchor(`xshad(` + numPat + `)`), handleXShad},
	{anchor(`yshad(` + numPat + `)`), handleYShad},
	{anchor(`fscx(` + numPat + `)`), handleScaleX},
	{anchor(`fscy(` + numPat + `)`), handleScaleY},
	{anchor(`frx(` + numPat + `)`), handleRotateX},
	{anchor(`fry(` + numPat + `)`), handleRotateY},
	{anchor(`frz(` + numPat + `)`), handleRotateZ},
	{anchor(`fr(` + numPat + `)`), handleRotateZ},
	{anchor(`fax(` + numPat + `)`), handleShearX},
	{anchor(`fay(` + numPat + `)`), handleShearY},
	{anchor(`fsp(` + numPat + `)`), handleSpacing},
	{anchor(`fad\((-?\d+),(-?\d+)\)`), handleFadeSimple},
	{anchor(`fade\(([^)]*)\)`), handleFadeComplex},
	{anchor(`move\(([^)]*)\)`), handleMove},
	{anchor(`clip\((.*)\)`), handleClip},
	{anchor(`iclip\((.*)\)`), handleIClip},
	{anchor(`p(\d+)`), handleDrawing},
	{anchor(`pbo(` + numPat + `)`), handleDrawingBaseline},
	{anchor(`r(.*)`), handleReset},
	{anchor(`t\((.*)\)`), handleAnimate},
}

// dispatchFragment matches a single tag fragment (without its leading
// backslash) against the rule table in order and runs the first handler
// whose pattern matches. Unmatched fragments become an unknown effect.
func dispatchFragment(frag string, style **subtitle.InlineStyle, changed *bool, effects *[]subtitle.Effect) {
	if frag == "" {
		return
	}
	ctx := &dispatchCtx{style: style, changed: changed, effects: effects}
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(frag); m != nil {
			r.handler(ctx, m)
			return
		}
	}
	replaceEffect(effects, subtitle.Effect{
		Kind:    subtitle.EffectUnknown,
		Unknown: &subtitle.UnknownEffect{Format: fragmentName(frag), Raw: `\` + frag},
	})
}

// fragmentName extracts the leading alphabetic run of a fragment, used as
// UnknownEffect.Format.
func fragmentName(frag string) string {
	i := 0
	for i < len(frag) && isAlpha(frag[i]) {
		i++
	}
	if i == 0 {
		return frag
	}
	return frag[:i]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// --- style handlers ---

func handleBold(ctx *dispatchCtx, m []string) {
	n, ok := parseInt(m[1])
	if !ok {
		return
	}
	ctx.ensureStyle().Bold = &n
}

func handleBoolToggle(ctx *dispatchCtx, m []string) {
	v := m[2] == "1"
	s := ctx.ensureStyle()
	switch m[1] {
	case "i":
		s.Italic = &v
	case "u":
		s.Underline = &v
	case "s":
		s.Strikeout = &v
	}
}

func handleFontName(ctx *dispatchCtx, m []string) {
	name := m[1]
	ctx.ensureStyle().FontName = &name
}

func handleFontSize(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	ctx.ensureStyle().FontSize = &v
}

func handleAlignment(ctx *dispatchCtx, m []string) {
	v, _ := parseInt(m[1])
	ctx.ensureStyle().Alignment = &v
}

func handleLegacyAlignment(ctx *dispatchCtx, m []string) {
	v, ok := parseInt(m[1])
	if !ok {
		return
	}
	var mapped int
	switch {
	case v >= 1 && v <= 3:
		mapped = v
	case v >= 5 && v <= 7:
		mapped = v + 2
	case v >= 9 && v <= 11:
		mapped = v - 5
	default:
		return
	}
	ctx.ensureStyle().Alignment = &mapped
}

func handleFontEncoding(ctx *dispatchCtx, m []string) {
	v, ok := parseInt(m[1])
	if !ok {
		return
	}
	ctx.ensureStyle().FontEncoding = &v
}

func handleWrapStyle(ctx *dispatchCtx, m []string) {
	v, ok := parseInt(m[1])
	if !ok {
		return
	}
	ws := subtitle.WrapStyle(v)
	ctx.ensureStyle().WrapStyle = &ws
}

func handleColorPrimary(ctx *dispatchCtx, m []string) {
	c, err := color.ParseASS(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().PrimaryColor = &c
}

func handleColorSecondary(ctx *dispatchCtx, m []string) {
	c, err := color.ParseASS(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().SecondaryColor = &c
}

func handleColorOutline(ctx *dispatchCtx, m []string) {
	c, err := color.ParseASS(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().OutlineColor = &c
}

func handleColorBack(ctx *dispatchCtx, m []string) {
	c, err := color.ParseASS(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().BackColor = &c
}

func handleAlphaGlobal(ctx *dispatchCtx, m []string) {
	a, err := color.ParseASSAlpha(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().Alpha = &a
}

func handleAlphaPrimary(ctx *dispatchCtx, m []string) {
	a, err := color.ParseASSAlpha(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().PrimaryAlpha = &a
}

func handleAlphaSecondary(ctx *dispatchCtx, m []string) {
	a, err := color.ParseASSAlpha(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().SecondaryAlpha = &a
}

func handleAlphaOutline(ctx *dispatchCtx, m []string) {
	a, err := color.ParseASSAlpha(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().OutlineAlpha = &a
}

func handleAlphaBack(ctx *dispatchCtx, m []string) {
	a, err := color.ParseASSAlpha(m[1])
	if err != nil {
		return
	}
	ctx.ensureStyle().BackAlpha = &a
}

func handlePos(ctx *dispatchCtx, m []string) {
	args := splitArgs(m[1])
	if len(args) != 2 {
		return
	}
	x, ok1 := parseFloat(args[0])
	y, ok2 := parseFloat(args[1])
	if !ok1 || !ok2 {
		return
	}
	ctx.ensureStyle().Pos = &subtitle.Point{X: x, Y: y}
}

// --- effect handlers ---

func handleOrigin(ctx *dispatchCtx, m []string) {
	args := splitArgs(m[1])
	if len(args) != 2 {
		return
	}
	x, ok1 := parseFloat(args[0])
	y, ok2 := parseFloat(args[1])
	if !ok1 || !ok2 {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectOrigin, Origin: &subtitle.OriginEffect{X: x, Y: y}})
}

func handleKaraokeFill(ctx *dispatchCtx, m []string) {
	n, _ := parseInt(m[1])
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectKaraoke, Karaoke: &subtitle.KaraokeEffect{DurationMS: n * 10, Mode: subtitle.KaraokeFill}})
}

func handleKaraokeFade(ctx *dispatchCtx, m []string) {
	n, _ := parseInt(m[1])
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectKaraoke, Karaoke: &subtitle.KaraokeEffect{DurationMS: n * 10, Mode: subtitle.KaraokeFade}})
}

func handleKaraokeOutline(ctx *dispatchCtx, m []string) {
	n, _ := parseInt(m[1])
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectKaraoke, Karaoke: &subtitle.KaraokeEffect{DurationMS: n * 10, Mode: subtitle.KaraokeOutline}})
}

func handleKaraokeAbsolute(ctx *dispatchCtx, m []string) {
	n, _ := parseInt(m[1])
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectKaraokeAbsolute, KaraokeAbsolute: &subtitle.KaraokeAbsoluteEffect{TimeMS: n}})
}

func handleBlur(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectBlur, Blur: &subtitle.BlurEffect{Strength: v}})
}

func handleBorder(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectBorder, Border: &subtitle.BorderEffect{Size: v}})
}

func augmentBorder(effects *[]subtitle.Effect, setX bool, v float64) {
	if i := findEffect(*effects, subtitle.EffectBorder); i >= 0 {
		if setX {
			(*effects)[i].Border.X = &v
		} else {
			(*effects)[i].Border.Y = &v
		}
		return
	}
	b := &subtitle.BorderEffect{}
	if setX {
		b.X = &v
	} else {
		b.Y = &v
	}
	*effects = append(*effects, subtitle.Effect{Kind: subtitle.EffectBorder, Border: b})
}

func handleXBord(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentBorder(ctx.effects, true, v)
}

func handleYBord(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentBorder(ctx.effects, false, v)
}

func handleShadow(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectShadow, Shadow: &subtitle.ShadowEffect{Depth: v}})
}

func augmentShadow(effects *[]subtitle.Effect, setX bool, v float64) {
	if i := findEffect(*effects, subtitle.EffectShadow); i >= 0 {
		if setX {
			(*effects)[i].Shadow.X = &v
		} else {
			(*effects)[i].Shadow.Y = &v
		}
		return
	}
	sh := &subtitle.ShadowEffect{}
	if setX {
		sh.X = &v
	} else {
		sh.Y = &v
	}
	*effects = append(*effects, subtitle.Effect{Kind: subtitle.EffectShadow, Shadow: sh})
}

func handleXShad(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentShadow(ctx.effects, true, v)
}

func handleYShad(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentShadow(ctx.effects, false, v)
}

func handleScaleX(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	if i := findEffect(*ctx.effects, subtitle.EffectScale); i >= 0 {
		(*ctx.effects)[i].Scale.X = &v
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectScale, Scale: &subtitle.ScaleEffect{X: &v}})
}

func handleScaleY(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	if i := findEffect(*ctx.effects, subtitle.EffectScale); i >= 0 {
		(*ctx.effects)[i].Scale.Y = &v
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectScale, Scale: &subtitle.ScaleEffect{Y: &v}})
}

func augmentRotate(effects *[]subtitle.Effect, axis byte, v float64) {
	if i := findEffect(*effects, subtitle.EffectRotate); i >= 0 {
		switch axis {
		case 'x':
			(*effects)[i].Rotate.X = &v
		case 'y':
			(*effects)[i].Rotate.Y = &v
		case 'z':
			(*effects)[i].Rotate.Z = &v
		}
		return
	}
	r := &subtitle.RotateEffect{}
	switch axis {
	case 'x':
		r.X = &v
	case 'y':
		r.Y = &v
	case 'z':
		r.Z = &v
	}
	*effects = append(*effects, subtitle.Effect{Kind: subtitle.EffectRotate, Rotate: r})
}

func handleRotateX(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentRotate(ctx.effects, 'x', v)
}

func handleRotateY(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentRotate(ctx.effects, 'y', v)
}

func handleRotateZ(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentRotate(ctx.effects, 'z', v)
}

func augmentShear(effects *[]subtitle.Effect, setX bool, v float64) {
	if i := findEffect(*effects, subtitle.EffectShear); i >= 0 {
		if setX {
			(*effects)[i].Shear.X = &v
		} else {
			(*effects)[i].Shear.Y = &v
		}
		return
	}
	sh := &subtitle.ShearEffect{}
	if setX {
		sh.X = &v
	} else {
		sh.Y = &v
	}
	*effects = append(*effects, subtitle.Effect{Kind: subtitle.EffectShear, Shear: sh})
}

func handleShearX(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentShear(ctx.effects, true, v)
}

func handleShearY(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	augmentShear(ctx.effects, false, v)
}

func handleSpacing(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectSpacing, Spacing: &subtitle.SpacingEffect{Value: v}})
}

func handleFadeSimple(ctx *dispatchCtx, m []string) {
	in, ok1 := parseInt(m[1])
	out, ok2 := parseInt(m[2])
	if !ok1 || !ok2 {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectFade, Fade: &subtitle.FadeEffect{In: in, Out: out}})
}

func handleFadeComplex(ctx *dispatchCtx, m []string) {
	args := splitArgs(m[1])
	if len(args) != 7 {
		return
	}
	var vals [7]int
	for i, a := range args {
		v, ok := parseInt(a)
		if !ok {
			return
		}
		vals[i] = v
	}
	replaceEffect(ctx.effects, subtitle.Effect{
		Kind: subtitle.EffectFadeComplex,
		FadeComplex: &subtitle.FadeComplexEffect{
			Alphas: [3]int{vals[0], vals[1], vals[2]},
			Times:  [4]int{vals[3], vals[4], vals[5], vals[6]},
		},
	})
}

func handleMove(ctx *dispatchCtx, m []string) {
	args := splitArgs(m[1])
	if len(args) != 4 && len(args) != 6 {
		return
	}
	vals := make([]float64, len(args))
	for i, a := range args {
		v, ok := parseFloat(a)
		if !ok {
			return
		}
		vals[i] = v
	}
	mv := &subtitle.MoveEffect{FromX: vals[0], FromY: vals[1], ToX: vals[2], ToY: vals[3]}
	if len(vals) == 6 {
		t1 := int(vals[4])
		t2 := int(vals[5])
		mv.T1 = &t1
		mv.T2 = &t2
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectMove, Move: mv})
}

func handleClip(ctx *dispatchCtx, m []string) {
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectClip, Clip: &subtitle.ClipEffect{Path: m[1], Inverse: false}})
}

func handleIClip(ctx *dispatchCtx, m []string) {
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectClip, Clip: &subtitle.ClipEffect{Path: m[1], Inverse: true}})
}

func handleDrawing(ctx *dispatchCtx, m []string) {
	n, ok := parseInt(m[1])
	if !ok {
		return
	}
	if n == 0 {
		removeEffect(ctx.effects, subtitle.EffectDrawing)
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectDrawing, Drawing: &subtitle.DrawingEffect{Scale: n}})
}

func handleDrawingBaseline(ctx *dispatchCtx, m []string) {
	v, ok := parseFloat(m[1])
	if !ok {
		return
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectDrawingBaseline, DrawingBaseline: &subtitle.DrawingBaselineEffect{Offset: v}})
}

func handleReset(ctx *dispatchCtx, m []string) {
	var stylePtr *string
	if m[1] != "" {
		s := m[1]
		stylePtr = &s
	}
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectReset, Reset: &subtitle.ResetEffect{Style: stylePtr}})
	*ctx.style = nil
	*ctx.changed = false
}

// handleAnimate implements \t(...), whose grammar is one of:
//
//	\t(style-text)
//	\t(accel,style-text)
//	\t(t1,t2,style-text)
//	\t(t1,t2,accel,style-text)
//
// The style-text itself may contain commas (nested tag arguments), so
// rather than fix the split count up front this greedily consumes up to
// three leading comma-separated fields that look like plain numbers and
// treats everything after as the target, rejoined with commas.
func handleAnimate(ctx *dispatchCtx, m []string) {
	parts := splitArgs(m[1])
	an := &subtitle.AnimateEffect{}

	numeric := 0
	for numeric < len(parts)-1 && numeric < 3 && isNumeric(parts[numeric]) {
		numeric++
	}
	switch numeric {
	case 1:
		if v, ok := parseFloat(parts[0]); ok {
			an.Accel = &v
		}
	case 2:
		if s, ok := parseInt(parts[0]); ok {
			an.Start = &s
		}
		if e, ok := parseInt(parts[1]); ok {
			an.End = &e
		}
	case 3:
		if s, ok := parseInt(parts[0]); ok {
			an.Start = &s
		}
		if e, ok := parseInt(parts[1]); ok {
			an.End = &e
		}
		if a, ok := parseFloat(parts[2]); ok {
			an.Accel = &a
		}
	}
	an.Target = strings.Join(parts[numeric:], ",")
	replaceEffect(ctx.effects, subtitle.Effect{Kind: subtitle.EffectAnimate, Animate: an})
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
