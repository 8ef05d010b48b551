package lrc

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

const sampleLRC = `[ar:Some Artist]
[ti:Some Song]
[offset:500]
[00:01.00]First line
[00:05.50]Second line
[00:10.00]Third line
`

func TestParseTagsAndTiming(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleLRC, subtitle.ParseOptions{})
	require.NoError(err)
	require.Equal("Some Artist", doc.Info.Author)
	require.Equal("Some Song", doc.Info.Title)
	require.Len(doc.Events, 3)
	// offset:500 is additive
	require.EqualValues(1500, doc.Events[0].Start)
	require.EqualValues(6000, doc.Events[0].End)
	require.Equal("First line", doc.Events[0].Text)
}

func TestLastLineGetsSynthesizedDuration(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleLRC, subtitle.ParseOptions{})
	require.NoError(err)
	last := doc.Events[len(doc.Events)-1]
	require.EqualValues(last.Start+4000, last.End)
}

func TestUnrecognizedLineIgnoredInCollectMode(t *testing.T) {
	is := is.New(t)
	input := "some random line\n[00:01.00]ok\n"
	doc, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	is.NoErr(err)
	is.Equal(len(doc.Events), 1)
	is.Equal(len(result.Errors), 0)
}

func TestUnrecognizedLineReportedInStrictMode(t *testing.T) {
	is := is.New(t)
	input := "some random line\n[00:01.00]ok\n"
	_, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect, Strict: true})
	is.NoErr(err)
	is.Equal(len(result.Errors), 1)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleLRC, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	reparsed, err := ParseDefault(out)
	require.NoError(err)
	require.Len(reparsed.Events, len(doc.Events))
	for i := range doc.Events {
		require.Equal(doc.Events[i].Text, reparsed.Events[i].Text)
		require.InDelta(int64(doc.Events[i].Start), int64(reparsed.Events[i].Start), 10)
	}
}
