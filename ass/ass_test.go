package ass

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

const sampleScript = `[Script Info]
Title: Example
Original Script: Someone
PlayResX: 1280
PlayResY: 720
ScaledBorderAndShadow: yes
WrapStyle: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,48,&H00FFFFFF&,&H000000FF&,&H00000000&,&H00000000&,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,Hello, world
Comment: 0,0:00:00.00,0:00:00.00,,,0,0,0,,director's note
Dialogue: 0,0:00:05.00,0:00:08.00,Default,,0,0,0,,Second line
`

func TestParseScriptInfo(t *testing.T) {
	is := is.New(t)
	doc, _, err := Parse(sampleScript, subtitle.ParseOptions{})
	is.NoErr(err)
	is.Equal(doc.Info.Title, "Example")
	is.Equal(doc.Info.Author, "Someone")
	is.Equal(doc.Info.PlayResX, 1280)
	is.Equal(doc.Info.PlayResY, 720)
	is.True(doc.Info.ScaleBorderAndShadow)
}

func TestParseStyles(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleScript, subtitle.ParseOptions{})
	require.NoError(err)
	st := doc.StyleByName("Default")
	require.NotNil(st)
	require.Equal("Arial", st.FontName)
	require.Equal(float64(48), st.FontSize)
	require.False(st.Bold)
	require.Equal(subtitle.BorderOutline, st.BorderStyle)
}

func TestParseEventsCanonicalFastPath(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleScript, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 2)
	require.Equal("Hello, world", doc.Events[0].Text)
	require.Equal("Second line", doc.Events[1].Text)
	require.Len(doc.Comments, 1)
	require.Equal("director's note", doc.Comments[0].Text)
	require.Equal(1, doc.Comments[0].BeforeEventIndex)
}

func TestParseEventsSlowPathCustomFormat(t *testing.T) {
	require := require.New(t)
	script := `[Events]
Format: Start, End, Text
Dialogue: 0:00:01.00,0:00:02.00,a, b, c
`
	doc, _, err := Parse(script, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 1)
	require.Equal("a, b, c", doc.Events[0].Text)
}

func TestInvalidTimestampCollectDropsEvent(t *testing.T) {
	require := require.New(t)
	script := `[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,not-a-time,0:00:02.00,Default,,0,0,0,,bad
Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,good
`
	doc, result, err := Parse(script, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	require.NoError(err)
	require.Len(doc.Events, 1)
	require.Equal("good", doc.Events[0].Text)
	require.Len(result.Errors, 1)
	require.Equal(subtitle.CodeInvalidTimestamp, result.Errors[0].Code)
}

func TestInvalidTimestampThrowAborts(t *testing.T) {
	require := require.New(t)
	script := `[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,not-a-time,0:00:02.00,Default,,0,0,0,,bad
`
	_, _, err := Parse(script, subtitle.ParseOptions{OnError: subtitle.OnErrorThrow})
	require.Error(err)
}

func TestUnknownSectionSkipped(t *testing.T) {
	require := require.New(t)
	script := `[Aegisub Project Garbage]
Some: stuff
Another: thing

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,hi
`
	doc, _, err := Parse(script, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 1)
}

func TestFontsAndGraphicsBlobAssembly(t *testing.T) {
	require := require.New(t)
	script := `[Fonts]
fontname: arial.ttf
AAAA
BBBB
fontname: other.ttf
CCCC

[Graphics]
filename: pic.png
DDDD
`
	doc, _, err := Parse(script, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Fonts, 2)
	require.Equal("arial.ttf", doc.Fonts[0].Name)
	require.Equal("AAAABBBB", doc.Fonts[0].Data)
	require.Equal("other.ttf", doc.Fonts[1].Name)
	require.Equal("CCCC", doc.Fonts[1].Data)
	require.Len(doc.Graphics, 1)
	require.Equal("DDDD", doc.Graphics[0].Data)
}

func TestSerializeRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleScript, subtitle.ParseOptions{})
	require.NoError(err)

	out := SerializeDefault(doc)
	require.True(strings.Contains(out, "[Script Info]"))
	require.True(strings.Contains(out, "[V4+ Styles]"))
	require.True(strings.Contains(out, "[Events]"))

	reparsed, err := ParseDefault(out)
	require.NoError(err)
	require.Equal(doc.Info.Title, reparsed.Info.Title)
	require.Len(reparsed.Events, len(doc.Events))
	for i := range doc.Events {
		require.Equal(doc.Events[i].Text, reparsed.Events[i].Text)
		require.Equal(doc.Events[i].Start, reparsed.Events[i].Start)
		require.Equal(doc.Events[i].End, reparsed.Events[i].End)
	}
	require.Len(reparsed.Comments, len(doc.Comments))
	for i := range doc.Comments {
		require.Equal(doc.Comments[i].Text, reparsed.Comments[i].Text)
		require.Equal(doc.Comments[i].BeforeEventIndex, reparsed.Comments[i].BeforeEventIndex)
	}
}

func TestSectionHeaderCaseInsensitive(t *testing.T) {
	require := require.New(t)
	script := "[script INFO]\nTitle: lower\n\n[EVENTS]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\nDialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,hi\n"
	doc, _, err := Parse(script, subtitle.ParseOptions{})
	require.NoError(err)
	require.Equal("lower", doc.Info.Title)
	require.Len(doc.Events, 1)
}
