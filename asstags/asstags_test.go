package asstags

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

func TestParseTagsSplitsOnStyleChange(t *testing.T) {
	is := is.New(t)

	segs := ParseTags(`Hello {\b1}bold{\b0} world`)
	is.Equal(len(segs), 3)
	is.Equal(segs[0].Text, "Hello ")
	is.True(segs[0].Style == nil)

	is.Equal(segs[1].Text, "bold")
	is.True(segs[1].Style != nil)
	is.True(segs[1].Style.Bold != nil)
	is.Equal(*segs[1].Style.Bold, 1)

	is.Equal(segs[2].Text, " world")
	is.True(segs[2].Style != nil)
	is.True(segs[2].Style.Bold != nil)
	is.Equal(*segs[2].Style.Bold, 0)
}

func TestItalicColorSegmentSplit(t *testing.T) {
	require := require.New(t)

	segs := ParseTags(`{\i1\c&H0000FF&}red italic{\i0}plain`)
	require.Len(segs, 2)
	require.NotNil(segs[0].Style.Italic)
	require.True(*segs[0].Style.Italic)
	require.NotNil(segs[0].Style.PrimaryColor)
	require.Equal("red italic", segs[0].Text)

	require.NotNil(segs[1].Style.Italic)
	require.False(*segs[1].Style.Italic)
	require.Equal("plain", segs[1].Text)
}

func TestKaraokeFillReplacesNotAugments(t *testing.T) {
	segs := ParseTags(`{\k30}Ka{\k40}ra{\k50}o`)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	want := []int{300, 400, 500}
	for i, seg := range segs {
		if len(seg.Effects) != 1 {
			t.Fatalf("segment %d: expected exactly 1 effect, got %d", i, len(seg.Effects))
		}
		k := seg.Effects[0].Karaoke
		if k == nil || k.DurationMS != want[i] {
			t.Fatalf("segment %d: expected karaoke duration %dms, got %+v", i, want[i], k)
		}
	}
}

func TestBorderAugmentsXYWithoutClobberingSize(t *testing.T) {
	segs := ParseTags(`{\bord4\xbord2}text`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	e := segs[0].Effects[0]
	if e.Kind != subtitle.EffectBorder {
		t.Fatalf("expected border effect, got kind %v", e.Kind)
	}
	if e.Border.Size != 4 {
		t.Fatalf("expected size 4, got %v", e.Border.Size)
	}
	if e.Border.X == nil || *e.Border.X != 2 {
		t.Fatalf("expected xbord 2, got %v", e.Border.X)
	}
}

func TestEffectsPersistAcrossSegmentsUntilReset(t *testing.T) {
	segs := ParseTags(`{\fad(100,200)}a{\b1}b{\r}c`)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	for i := 0; i < 2; i++ {
		if len(segs[i].Effects) != 1 || segs[i].Effects[0].Kind != subtitle.EffectFade {
			t.Fatalf("segment %d: expected fade effect to persist, got %+v", i, segs[i].Effects)
		}
	}
	// After \r the fade effect is still recorded (as a pending re-emission
	// history), but style resets to nil.
	if segs[2].Style != nil {
		t.Fatalf("expected style reset to nil after \\r, got %+v", segs[2].Style)
	}
}

func TestLegacyAlignmentMapping(t *testing.T) {
	cases := map[string]int{
		`{\a1}x`:  1,
		`{\a6}x`:  8,
		`{\a10}x`: 5,
	}
	for input, want := range cases {
		segs := ParseTags(input)
		if len(segs) != 1 || segs[0].Style == nil || segs[0].Style.Alignment == nil {
			t.Fatalf("%q: expected alignment to be set", input)
		}
		if *segs[0].Style.Alignment != want {
			t.Fatalf("%q: expected alignment %d, got %d", input, want, *segs[0].Style.Alignment)
		}
	}
}

func TestUnmatchedBraceIsLiteral(t *testing.T) {
	segs := ParseTags(`plain { text without closing brace`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != `plain { text without closing brace` {
		t.Fatalf("unexpected text: %q", segs[0].Text)
	}
}

func TestUnknownTagPreservedForRoundTrip(t *testing.T) {
	segs := ParseTags(`{\xyz123}text`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	e := segs[0].Effects[0]
	if e.Kind != subtitle.EffectUnknown || e.Unknown.Raw != `\xyz123` {
		t.Fatalf("expected unknown effect to preserve raw fragment, got %+v", e)
	}
}

func TestEscapeSequences(t *testing.T) {
	segs := ParseTags(`line one\Nline two\hspace`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	want := "line one\nline two space"
	if segs[0].Text != want {
		t.Fatalf("got %q, want %q", segs[0].Text, want)
	}
}

func TestSerializeTagsRoundTripAsMultisetOfEffects(t *testing.T) {
	inputs := []string{
		`Hello {\b1}bold{\b0} world`,
		`{\i1\c&H0000FF&}red italic{\i0}plain`,
		`{\k30}Ka{\k40}ra{\k50}o`,
		`{\fad(100,200)}a{\b1}b{\r}c`,
		`{\pos(10,20)\an5}centered`,
		`{\t(0,500,\frz360)}spin`,
	}
	for _, in := range inputs {
		segs := ParseTags(in)
		out := SerializeTags(segs)
		reparsed := ParseTags(out)

		if len(reparsed) != len(segs) {
			t.Fatalf("input %q: round-trip segment count mismatch: got %d, want %d (serialized=%q)",
				in, len(reparsed), len(segs), out)
		}
		for i := range segs {
			if reparsed[i].Text != segs[i].Text {
				t.Fatalf("input %q: segment %d text mismatch: got %q, want %q", in, i, reparsed[i].Text, segs[i].Text)
			}
			if diff := cmp.Diff(sortedKinds(segs[i].Effects), sortedKinds(reparsed[i].Effects)); diff != "" {
				t.Fatalf("input %q: segment %d effect kinds mismatch (-want +got):\n%s", in, i, diff)
			}
		}
	}
}

func sortedKinds(effects []subtitle.Effect) []subtitle.EffectKind {
	kinds := make([]subtitle.EffectKind, len(effects))
	for i, e := range effects {
		kinds[i] = e.Kind
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
