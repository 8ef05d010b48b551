package ttml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtestutil"
	"github.com/gosubs/subtitles/subtitle"
)

const sampleTTML = `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns="http://www.w3.org/ns/ttml" ttp:frameRate="25" xmlns:ttp="http://www.w3.org/ns/ttml#parameter" xmlns:tts="http://www.w3.org/ns/ttml#styling">
  <head>
    <styling>
      <style id="s1" tts:color="#FF0000" tts:fontWeight="bold"/>
    </styling>
  </head>
  <body>
    <div>
      <p begin="00:00:01.000" end="00:00:04.500">Plain line</p>
      <p begin="00:00:05.000" end="00:00:06.000">First<br/>Second <span style="s1">red bold</span></p>
    </div>
  </body>
</tt>`

func TestParseBasicTimingAndText(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleTTML, subtitle.ParseOptions{})
	require.NoError(err)
	require.Len(doc.Events, 2)
	require.EqualValues(1000, doc.Events[0].Start)
	require.EqualValues(4500, doc.Events[0].End)
	require.Equal("Plain line", doc.Events[0].Text)
}

func TestParseBreakBecomesNewline(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleTTML, subtitle.ParseOptions{})
	require.NoError(err)
	require.Contains(doc.Events[1].Text, "First\nSecond")
}

func TestParseSpanStyleResolvesFromStyling(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleTTML, subtitle.ParseOptions{})
	require.NoError(err)
	ev := doc.Events[1]
	require.NotEmpty(ev.Segments)
	var found bool
	for _, seg := range ev.Segments {
		if seg.Text == "red bold" {
			found = true
			require.NotNil(seg.Style)
			require.NotNil(seg.Style.Bold)
			require.Equal(1, *seg.Style.Bold)
			require.NotNil(seg.Style.PrimaryColor)
		}
	}
	require.True(found)
}

func TestMalformedTimeReported(t *testing.T) {
	require := require.New(t)
	input := `<tt xmlns="http://www.w3.org/ns/ttml"><body><div><p begin="bogus" end="00:00:01.000">x</p></div></body></tt>`
	_, result, err := Parse(input, subtitle.ParseOptions{OnError: subtitle.OnErrorCollect})
	require.NoError(err)
	require.Len(result.Errors, 1)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	doc, _, err := Parse(sampleTTML, subtitle.ParseOptions{})
	require.NoError(err)
	out := SerializeDefault(doc)
	reparsed, err := ParseDefault(out)
	require.NoError(err)
	subtestutil.RequireEventTimingWithin(t, doc.Events, reparsed.Events, 0)
}
