package color

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
)

func TestParseASS(t *testing.T) {
	is := is.New(t)

	c, err := ParseASS("&H00FFFFFF&")
	is.NoErr(err) // must parse 8-digit literal
	is.Equal(c, White)

	c, err = ParseASS("&HFF0000")
	is.NoErr(err) // trailing & is optional
	is.Equal(c, Blue)

	c, err = ParseASS("red")
	is.NoErr(err) // canonical color name
	is.Equal(c, Red)

	_, err = ParseASS("not-a-color")
	is.True(err != nil) // must reject garbage
}

func TestParseASSAlpha(t *testing.T) {
	a, err := ParseASSAlpha("&HFF&")
	require.NoError(t, err)
	require.Equal(t, byte(0xFF), a)

	_, err = ParseASSAlpha("&HGG&")
	require.Error(t, err)
}

func TestFormatASS(t *testing.T) {
	require.Equal(t, "&H00FFFFFF&", FormatASS(White))
	require.Equal(t, "&HFF000000&", FormatASS(Transparent))
}

func TestRGBRoundTrip(t *testing.T) {
	c, ok := RGBToPacked("#336699")
	require.True(t, ok)
	require.Equal(t, "#336699", PackedToRGB(c))
}

func TestFromRGBAInvariant(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for a := 0; a < 256; a += 17 {
			c := New(byte(r), 0x22, 0x33, byte(a))
			gr, gg, gb, ga := c.RGBA()
			require.Equal(t, byte(r), gr)
			require.Equal(t, byte(0x22), gg)
			require.Equal(t, byte(0x33), gb)
			require.Equal(t, byte(a), ga)
		}
	}
}

func TestBlend(t *testing.T) {
	black := New(0, 0, 0, 0)
	white := New(255, 255, 255, 0)
	mid := Blend(black, white, 0.5)
	r, _, _, _ := mid.RGBA()
	require.InDelta(t, 128, int(r), 1)
}
