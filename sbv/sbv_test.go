package sbv

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

const sampleSBV = `0:00:01.000,0:00:04.500
Hello there

0:00:05.000,0:00:07.250
Line one
Line two
`

func TestParseBlocks(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSBV, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 2)
	require.EqualValues(1000, doc.Events[0].Start)
	require.EqualValues(4500, doc.Events[0].End)
	require.Equal("Hello there", doc.Events[0].Text)
	require.Equal("Line one\nLine two", doc.Events[1].Text)
}

func TestMalformedTimingCollected(t *testing.T) {
	is := is.New(t)
	input := "not a timing line\nsome text\n\n0:00:01.000,0:00:02.000\nok\n"
	doc, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	is.NoErr(err)
	is.Equal(len(doc.Events), 1)
	is.Equal(len(result.Errors), 1)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSBV, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	reparsed, err := ParseDefault(out)
	require.NoError(err)
	require.Len(reparsed.Events, len(doc.Events))
	for i := range doc.Events {
		require.Equal(doc.Events[i].Start, reparsed.Events[i].Start)
		require.Equal(doc.Events[i].End, reparsed.Events[i].End)
		require.Equal(doc.Events[i].Text, reparsed.Events[i].Text)
	}
}
