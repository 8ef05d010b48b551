package subtime

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
)

func TestParseASS(t *testing.T) {
	is := is.New(t)

	tm, err := ParseASS("0:00:01.00")
	is.NoErr(err)
	is.Equal(tm, Time(1000))

	tm, err = ParseASS("1:02:03.456")
	is.NoErr(err)
	is.Equal(tm, Time(1*msPerHour+2*msPerMinute+3*msPerSecond+456))

	_, err = ParseASS("0:00:01.0")
	is.True(err != nil) // 1-digit fraction rejected under strict reading

	_, err = ParseASS("0:00:01.0000")
	is.True(err != nil) // 4-digit fraction rejected too
}

func TestFormatASSRoundTrip(t *testing.T) {
	for ms := 0; ms < 24*3600*1000; ms += 997 {
		got, err := ParseASS(FormatASS(Time(ms)))
		require.NoError(t, err)
		// ASS only carries centisecond precision.
		require.InDelta(t, ms, int(got), 10)
	}
}

func TestSRTRoundTrip(t *testing.T) {
	for ms := 0; ms < 24*3600*1000; ms += 1013 {
		got, err := ParseSRT(FormatSRT(Time(ms)))
		require.NoError(t, err)
		require.Equal(t, ms, int(got))
	}
}

func TestVTTBothForms(t *testing.T) {
	tm, err := ParseVTT("01:02:03.456")
	require.NoError(t, err)
	require.Equal(t, Time(1*msPerHour+2*msPerMinute+3*msPerSecond+456), tm)

	tm, err = ParseVTT("02:03.456")
	require.NoError(t, err)
	require.Equal(t, Time(2*msPerMinute+3*msPerSecond+456), tm)

	_, err = ParseVTT("bad")
	require.Error(t, err)
}

func TestVobSubRoundTrip(t *testing.T) {
	for ms := 0; ms < 24*3600*1000; ms += 1009 {
		got, err := ParseVobSub(FormatVobSub(Time(ms)))
		require.NoError(t, err)
		require.Equal(t, ms, int(got))
	}
}
