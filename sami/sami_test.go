package sami

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtestutil"
	"github.com/gosubs/subtitles/subtitle"
)

const sampleSAMI = `<SAMI>
<HEAD>
<STYLE TYPE="text/css">
.ENCC {Name:English; lang:en-US; SAMIType:CC;}
</STYLE>
</HEAD>
<BODY>
<SYNC Start=1000><P Class=ENCC>First <b>bold</b> line
<SYNC Start=4000><P Class=ENCC>Second line&nbsp;
<SYNC Start=7000><P Class=ENCC>&nbsp;
</BODY>
</SAMI>
`

func TestParseSyncsAndEndFromNextStart(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSAMI, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 3)
	require.EqualValues(1000, doc.Events[0].Start)
	require.EqualValues(4000, doc.Events[0].End)
	require.EqualValues(4000, doc.Events[1].Start)
	require.EqualValues(7000, doc.Events[1].End)
}

func TestLastSyncGetsZeroDuration(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSAMI, subtitle.ParseOptions{})
	require.NoError(err)
	last := doc.Events[len(doc.Events)-1]
	require.Equal(last.Start, last.End)
}

func TestNbspDecodesToNonBreakingSpace(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSAMI, subtitle.ParseOptions{})
	require.NoError(err)
	require.Contains(doc.Events[1].Text, " ")
}

func TestInlineBoldTagBecomesSegment(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSAMI, subtitle.ParseOptions{})
	require.NoError(err)
	ev := doc.Events[0]
	var foundBold bool
	for _, seg := range ev.Segments {
		if seg.Text == "bold" {
			foundBold = true
			require.NotNil(seg.Style)
			require.NotNil(seg.Style.Bold)
		}
	}
	require.True(foundBold)
}

func TestMissingStartAttributeCollected(t *testing.T) {
	require := require.New(t)
	input := "<SAMI><BODY><SYNC><P Class=ENCC>bad</SYNC><SYNC Start=500><P Class=ENCC>ok</BODY></SAMI>"
	doc, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	require.NoError(err)
	require.Len(doc.Events, 1)
	require.Len(result.Errors, 1)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleSAMI, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	reparsed, err := ParseDefault(out)
	require.NoError(err)
	subtestutil.RequireEventTimingWithin(t, doc.Events, reparsed.Events, 0)
}
