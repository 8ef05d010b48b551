package microdvd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtestutil"
	"github.com/gosubs/subtitles/subtitle"
)

const sampleMicroDVD = `{0}{24}First line
{25}{50}Second|line with break
{51}{75}{y:b}Bold line
`

func TestParseFrameNumbers(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleMicroDVD, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 3)
	// frame 0 at 23.976 fps -> 0ms, frame 24 -> 24*1000/23.976 ~= 1001ms
	require.EqualValues(0, doc.Events[0].Start)
	require.InDelta(1001, int64(doc.Events[0].End), 1)
	require.Equal("First line", doc.Events[0].Text)
}

func TestParsePipeJoinedLinesBecomeNewlines(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleMicroDVD, subtitle.ParseOptions{})
	require.NoError(err)
	require.Equal("Second\nline with break", doc.Events[1].Text)
}

func TestParseInlineTagsPreservedVerbatim(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleMicroDVD, subtitle.ParseOptions{})
	require.NoError(err)
	require.Equal("{y:b}Bold line", doc.Events[2].Text)
}

func TestMalformedLineCollected(t *testing.T) {
	require := require.New(t)
	input := "not a caption line\n{0}{24}ok\n"
	doc, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	require.NoError(err)
	require.Len(doc.Events, 1)
	require.Len(result.Errors, 1)
}

func TestRoundTripAtDefaultFPS(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleMicroDVD, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	reparsed, err := ParseDefault(out)
	require.NoError(err)
	subtestutil.RequireEventTimingWithin(t, doc.Events, reparsed.Events, 1)
}

func TestRoundTripAtCustomFPS(t *testing.T) {
	require := require.New(t)
	doc, _, err := ParseFPS(sampleMicroDVD, 25, subtitle.ParseOptions{})
	require.NoError(err)
	out, err := SerializeFPS(doc, 25, subtitle.SerializeOptions{})
	require.NoError(err)
	reparsed, _, err := ParseFPS(out, 25, subtitle.ParseOptions{})
	require.NoError(err)
	for i := range doc.Events {
		require.InDelta(int64(doc.Events[i].Start), int64(reparsed.Events[i].Start), 1)
	}
}
