package srt

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:04,000
Hello, world

2
00:00:05,000 --> 00:00:08,500
Second line
with a wrapped second row
`

func TestParseBlocks(t *testing.T) {
	is := is.New(t)
	doc, _, err := Parse(sampleSRT, subtitle.ParseOptions{})
	is.NoErr(err)
	is.Equal(len(doc.Events), 2)
	is.Equal(doc.Events[0].Text, "Hello, world")
	is.Equal(doc.Events[1].Text, "Second line\nwith a wrapped second row")
}

func TestParseTimingExact(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSRT, subtitle.ParseOptions{})
	require.NoError(err)
	require.EqualValues(1000, doc.Events[0].Start)
	require.EqualValues(4000, doc.Events[0].End)
	require.EqualValues(8500, doc.Events[1].End)
}

func TestMalformedBlockCollect(t *testing.T) {
	require := require.New(t)
	input := "1\n\n2\n00:00:01,000 --> 00:00:02,000\nok\n"
	doc, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	require.NoError(err)
	require.Len(doc.Events, 1)
	require.Equal("ok", doc.Events[0].Text)
	require.Len(result.Errors, 1)
}

func TestSerializeRenumbersFromOne(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSRT, subtitle.ParseOptions{})
	require.NoError(err)
	doc.Events[0].ID = 999 // numbering is positional, not ID-based

	out := SerializeDefault(doc)
	require.Contains(out, "1\n00:00:01,000 --> 00:00:04,000\nHello, world")
	require.Contains(out, "2\n00:00:05,000 --> 00:00:08,500\n")
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSRT, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	reparsed, err := ParseDefault(out)
	require.NoError(err)
	require.Len(reparsed.Events, len(doc.Events))
	for i := range doc.Events {
		require.Equal(doc.Events[i].Text, reparsed.Events[i].Text)
		require.Equal(doc.Events[i].Start, reparsed.Events[i].Start)
		require.Equal(doc.Events[i].End, reparsed.Events[i].End)
	}
}
