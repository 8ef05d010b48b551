package asstags

import (
	"github.com/gosubs/subtitles/color"
	"github.com/gosubs/subtitles/subtitle"
)

// copyEffects returns a deep copy of effects so a later augment-or-create
// mutation on the live accumulator never reaches back into a segment that
// already captured a snapshot of it.
func copyEffects(effects []subtitle.Effect) []subtitle.Effect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]subtitle.Effect, len(effects))
	for i, e := range effects {
		out[i] = cloneEffect(e)
	}
	return out
}

func cloneEffect(e subtitle.Effect) subtitle.Effect {
	c := e
	switch e.Kind {
	case subtitle.EffectKaraoke:
		v := *e.Karaoke
		c.Karaoke = &v
	case subtitle.EffectKaraokeAbsolute:
		v := *e.KaraokeAbsolute
		c.KaraokeAbsolute = &v
	case subtitle.EffectBlur:
		v := *e.Blur
		c.Blur = &v
	case subtitle.EffectBorder:
		v := *e.Border
		v.X = clonePtr(e.Border.X)
		v.Y = clonePtr(e.Border.Y)
		c.Border = &v
	case subtitle.EffectShadow:
		v := *e.Shadow
		v.X = clonePtr(e.Shadow.X)
		v.Y = clonePtr(e.Shadow.Y)
		c.Shadow = &v
	case subtitle.EffectScale:
		v := *e.Scale
		v.X = clonePtr(e.Scale.X)
		v.Y = clonePtr(e.Scale.Y)
		c.Scale = &v
	case subtitle.EffectRotate:
		v := *e.Rotate
		v.X = clonePtr(e.Rotate.X)
		v.Y = clonePtr(e.Rotate.Y)
		v.Z = clonePtr(e.Rotate.Z)
		c.Rotate = &v
	case subtitle.EffectShear:
		v := *e.Shear
		v.X = clonePtr(e.Shear.X)
		v.Y = clonePtr(e.Shear.Y)
		c.Shear = &v
	case subtitle.EffectSpacing:
		v := *e.Spacing
		c.Spacing = &v
	case subtitle.EffectFade:
		v := *e.Fade
		c.Fade = &v
	case subtitle.EffectFadeComplex:
		v := *e.FadeComplex
		c.FadeComplex = &v
	case subtitle.EffectMove:
		v := *e.Move
		v.T1 = cloneIntPtr(e.Move.T1)
		v.T2 = cloneIntPtr(e.Move.T2)
		c.Move = &v
	case subtitle.EffectClip:
		v := *e.Clip
		c.Clip = &v
	case subtitle.EffectDrawing:
		v := *e.Drawing
		c.Drawing = &v
	case subtitle.EffectDrawingBaseline:
		v := *e.DrawingBaseline
		c.DrawingBaseline = &v
	case subtitle.EffectOrigin:
		v := *e.Origin
		c.Origin = &v
	case subtitle.EffectReset:
		v := *e.Reset
		if e.Reset.Style != nil {
			s := *e.Reset.Style
			v.Style = &s
		}
		c.Reset = &v
	case subtitle.EffectAnimate:
		v := *e.Animate
		v.Start = cloneIntPtr(e.Animate.Start)
		v.End = cloneIntPtr(e.Animate.End)
		v.Accel = clonePtr(e.Animate.Accel)
		c.Animate = &v
	case subtitle.EffectImage:
		v := *e.Image
		if e.Image.Data != nil {
			v.Data = append([]byte(nil), e.Image.Data...)
		}
		if e.Image.Palette != nil {
			v.Palette = append([]color.Color(nil), e.Image.Palette...)
		}
		c.Image = &v
	case subtitle.EffectVobSub:
		v := *e.VobSub
		c.VobSub = &v
	case subtitle.EffectUnknown:
		v := *e.Unknown
		c.Unknown = &v
	}
	return c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// replaceEffect removes any existing effect of the same Kind, then appends
// the new one.
func replaceEffect(effects *[]subtitle.Effect, e subtitle.Effect) {
	removeEffect(effects, e.Kind)
	*effects = append(*effects, e)
}

func removeEffect(effects *[]subtitle.Effect, kind subtitle.EffectKind) {
	out := (*effects)[:0]
	for _, e := range *effects {
		if e.Kind != kind {
			out = append(out, e)
		}
	}
	*effects = out
}

func findEffect(effects []subtitle.Effect, kind subtitle.EffectKind) int {
	for i, e := range effects {
		if e.Kind == kind {
			return i
		}
	}
	return -1
}
