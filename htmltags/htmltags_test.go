package htmltags

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

func TestBoldItalicNesting(t *testing.T) {
	require := require.New(t)
	segs := ParseTags("plain <b>bold<i>bold italic</i></b> tail")
	require.Len(segs, 4)
	require.Equal("plain ", segs[0].Text)
	require.Nil(segs[0].Style)

	require.Equal("bold", segs[1].Text)
	require.NotNil(segs[1].Style.Bold)
	require.Equal(1, *segs[1].Style.Bold)
	require.Nil(segs[1].Style.Italic)

	require.Equal("bold italic", segs[2].Text)
	require.NotNil(segs[2].Style.Bold)
	require.NotNil(segs[2].Style.Italic)
	require.True(*segs[2].Style.Italic)

	require.Equal(" tail", segs[3].Text)
	require.Nil(segs[3].Style)
}

func TestStackNeverUnderflows(t *testing.T) {
	segs := ParseTags("</b></i>text</u>")
	if len(segs) != 1 || segs[0].Text != "text" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
	if segs[0].Style != nil {
		t.Fatalf("expected no style after unmatched closes, got %+v", segs[0].Style)
	}
}

func TestFontColorByteSwap(t *testing.T) {
	segs := ParseTags(`<font color="#ff0000">red</font>`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Style == nil || segs[0].Style.PrimaryColor == nil {
		t.Fatalf("expected primary color to be set")
	}
	r, g, b, a := segs[0].Style.PrimaryColor.RGBA()
	if r != 0xff || g != 0 || b != 0 || a != 0 {
		t.Fatalf("unexpected color components: r=%x g=%x b=%x a=%x", r, g, b, a)
	}
}

func TestVoiceClassLangPushTransparentFrame(t *testing.T) {
	segs := ParseTags(`<v Roger>Hello <c.loud>world</c></v>`)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Style != nil {
		t.Fatalf("expected voice tag to carry no style, got %+v", segs[0].Style)
	}
	if len(segs[0].Effects) != 1 || segs[0].Effects[0].Kind != subtitle.EffectUnknown {
		t.Fatalf("expected voice tag preserved as unknown effect, got %+v", segs[0].Effects)
	}
	if segs[1].Style != nil {
		t.Fatalf("expected class tag to carry no style, got %+v", segs[1].Style)
	}
}

func TestUnmatchedOpenBracketIsLiteral(t *testing.T) {
	segs := ParseTags("a < b")
	if len(segs) != 1 || segs[0].Text != "a < b" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestStripTags(t *testing.T) {
	got := StripTags(`<b>bold</b> and <font color="#fff">white</font>`)
	want := "bold and white"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	inputs := []string{
		"plain <b>bold<i>bold italic</i></b> tail",
		`<font color="#ff00aa">pink</font>`,
		"<u>under<s>under strike</s></u>",
	}
	for _, in := range inputs {
		segs := ParseTags(in)
		out := SerializeTags(segs)
		reparsed := ParseTags(out)
		if len(reparsed) != len(segs) {
			t.Fatalf("input %q: segment count mismatch after round trip: got %d, want %d (out=%q)",
				in, len(reparsed), len(segs), out)
		}
		for i := range segs {
			if reparsed[i].Text != segs[i].Text {
				t.Fatalf("input %q: segment %d text mismatch: got %q want %q", in, i, reparsed[i].Text, segs[i].Text)
			}
		}
	}
}
