package vtt

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

const sampleVTT = `WEBVTT - sample

REGION
id:fred
width:40%
lines:3
regionanchor:0%,100%
viewportanchor:10%,90%
scroll:up

NOTE This is a comment
spanning two lines

STYLE
::cue {
  color: yellow;
}

1
00:00:01.000 --> 00:00:04.000 region:fred
Hello <b>world</b>

00:00:05.000 --> 00:00:08.000
No id here
`

func TestMissingHeaderFails(t *testing.T) {
	is := is.New(t)
	_, _, err := Parse("not a vtt file", subtitle.ParseOptions{})
	is.True(err != nil)
}

func TestParseCuesWithAndWithoutID(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleVTT, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 2)
	require.Equal("1", doc.Events[0].CueID)
	require.Equal("Hello <b>world</b>", doc.Events[0].Text)
	require.EqualValues(1000, doc.Events[0].Start)
	require.EqualValues(4000, doc.Events[0].End)
	require.Equal("", doc.Events[1].CueID)
	require.Equal("No id here", doc.Events[1].Text)
}

func TestRegionCaptured(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleVTT, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Regions, 1)
	r := doc.Regions[0]
	require.Equal("fred", r.ID)
	require.Equal("40%", r.Width)
	require.Equal(3, r.Lines)
	require.Equal("0%,100%", r.RegionAnchor)
	require.Equal("10%,90%", r.ViewportAnchor)
	require.Equal("up", r.Scroll)
}

func TestStyleBlockCapturedNoteDiscarded(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleVTT, subtitle.ParseOptions{})
	require.NoError(err)
	require.Contains(doc.Metadata["vtt.style"], "color: yellow")
	require.Empty(doc.Comments)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleVTT, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	require.Contains(out, "WEBVTT")
	require.Contains(out, "REGION")

	reparsed, err := ParseDefault(out)
	require.NoError(err)
	require.Len(reparsed.Events, len(doc.Events))
	for i := range doc.Events {
		require.Equal(doc.Events[i].Text, reparsed.Events[i].Text)
		require.Equal(doc.Events[i].CueID, reparsed.Events[i].CueID)
	}
	require.Len(reparsed.Regions, len(doc.Regions))
}
