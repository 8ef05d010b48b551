package subtitle

import "github.com/gosubs/subtitles/color"

// EffectKind discriminates the Effect tagged union. Exactly one of the
// pointer fields on a matching Effect value is non-nil for its Kind.
type EffectKind int

const (
	EffectKaraoke EffectKind = iota
	EffectKaraokeAbsolute
	EffectBlur
	EffectBorder
	EffectShadow
	EffectScale
	EffectRotate
	EffectShear
	EffectSpacing
	EffectFade
	EffectFadeComplex
	EffectMove
	EffectClip
	EffectDrawing
	EffectDrawingBaseline
	EffectOrigin
	EffectReset
	EffectAnimate
	EffectImage
	EffectVobSub
	EffectUnknown
)

// KaraokeMode is the fill behavior of a \k/\K/\kf/\ko tag.
type KaraokeMode int

const (
	KaraokeFill KaraokeMode = iota
	KaraokeFade
	KaraokeOutline
)

// KaraokeEffect is \k (mode=fill), \K/\kf (mode=fade), \ko (mode=outline).
type KaraokeEffect struct {
	DurationMS int
	Mode       KaraokeMode
}

// KaraokeAbsoluteEffect is \kt.
type KaraokeAbsoluteEffect struct {
	TimeMS int
}

// BlurEffect is \blur or \be.
type BlurEffect struct {
	Strength float64
}

// BorderEffect is \bord/\xbord/\ybord.
type BorderEffect struct {
	Size float64
	X    *float64
	Y    *float64
}

// ShadowEffect is \shad/\xshad/\yshad.
type ShadowEffect struct {
	Depth float64
	X     *float64
	Y     *float64
}

// ScaleEffect is \fscx/\fscy. X/Y are nil when that axis was not set by the
// source tag, matching RotateEffect/ShearEffect's per-axis-optional shape.
type ScaleEffect struct {
	X, Y *float64
}

// RotateEffect is \frx/\fry/\frz (\fr aliases \frz).
type RotateEffect struct {
	X, Y, Z *float64
}

// ShearEffect is \fax/\fay.
type ShearEffect struct {
	X, Y *float64
}

// SpacingEffect is \fsp.
type SpacingEffect struct {
	Value float64
}

// FadeEffect is the simple two-argument \fad(in,out).
type FadeEffect struct {
	In, Out int
}

// FadeComplexEffect is the seven-argument \fade(a1,a2,a3,t1,t2,t3,t4).
type FadeComplexEffect struct {
	Alphas [3]int
	Times  [4]int
}

// MoveEffect is \move(x1,y1,x2,y2[,t1,t2]).
type MoveEffect struct {
	FromX, FromY float64
	ToX, ToY     float64
	T1, T2       *int
}

// ClipEffect is \clip(...)/\iclip(...). Path is kept verbatim, including
// whichever of the two parenthesized forms (scale+drawing, or rectangle)
// the source used — this package does not interpret it further.
type ClipEffect struct {
	Path    string
	Inverse bool
}

// DrawingEffect is \p<n> (n>0); \p0 removes it (represented by omitting the
// effect, not by a zero-value DrawingEffect).
type DrawingEffect struct {
	Scale    int
	Commands string
}

// DrawingBaselineEffect is \pbo.
type DrawingBaselineEffect struct {
	Offset float64
}

// OriginEffect is \org(x,y).
type OriginEffect struct {
	X, Y float64
}

// ResetEffect is \r or \r<style>.
type ResetEffect struct {
	Style *string
}

// AnimateEffect is \t(...).
type AnimateEffect struct {
	Start  *int
	End    *int
	Accel  *float64
	Target string
}

// ImageFormat distinguishes the two VobSub/PGS-style embedded-image
// encodings an effect can carry.
type ImageFormat int

const (
	ImageRLE ImageFormat = iota
	ImageIndexed
)

// ImageEffect carries a picture-based caption bitmap inline on a segment.
type ImageEffect struct {
	Format  ImageFormat
	Width   int
	Height  int
	X, Y    int
	Data    []byte
	Palette []color.Color
}

// VobSubEffect carries VobSub-specific per-subpicture metadata that has no
// ASS tag equivalent but still travels with a segment.
type VobSubEffect struct {
	Forced        bool
	OriginalIndex int
}

// UnknownEffect preserves an override tag fragment this engine does not
// recognize, so re-serialization does not silently drop it.
type UnknownEffect struct {
	Format string
	Raw    string
}

// Effect is a tagged union over the variants above. Exactly the field
// named after Kind is populated; the rest are nil.
type Effect struct {
	Kind EffectKind

	Karaoke         *KaraokeEffect
	KaraokeAbsolute *KaraokeAbsoluteEffect
	Blur            *BlurEffect
	Border          *BorderEffect
	Shadow          *ShadowEffect
	Scale           *ScaleEffect
	Rotate          *RotateEffect
	Shear           *ShearEffect
	Spacing         *SpacingEffect
	Fade            *FadeEffect
	FadeComplex     *FadeComplexEffect
	Move            *MoveEffect
	Clip            *ClipEffect
	Drawing         *DrawingEffect
	DrawingBaseline *DrawingBaselineEffect
	Origin          *OriginEffect
	Reset           *ResetEffect
	Animate         *AnimateEffect
	Image           *ImageEffect
	VobSub          *VobSubEffect
	Unknown         *UnknownEffect
}
