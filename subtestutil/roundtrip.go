package subtestutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosubs/subtitles/subtitle"
)

// RequireEventTimingWithin asserts that want and got have the same number
// of events, equal Text, and Start/End within toleranceMs of each other.
// toleranceMs absorbs the lossy round trips that formats with coarser time
// resolution (LRC's centiseconds, MicroDVD's frame numbers) can't avoid.
func RequireEventTimingWithin(t testing.TB, want, got []*subtitle.SubtitleEvent, toleranceMs int64) {
	t.Helper()
	r := require.New(t)
	r.Len(got, len(want), "event count mismatch")
	for i := range want {
		r.Equalf(want[i].Text, got[i].Text, "event %d text mismatch", i)
		r.InDeltaf(int64(want[i].Start), int64(got[i].Start), float64(toleranceMs), "event %d start mismatch", i)
		r.InDeltaf(int64(want[i].End), int64(got[i].End), float64(toleranceMs), "event %d end mismatch", i)
	}
}

// RequireNoParseErrors fails the test if result carries any collected
// diagnostics, printing each one's Error() string for quick triage.
func RequireNoParseErrors(t testing.TB, result *subtitle.ParseResult) {
	t.Helper()
	if result == nil || len(result.Errors) == 0 {
		return
	}
	msgs := make([]string, len(result.Errors))
	for i := range result.Errors {
		msgs[i] = result.Errors[i].Error()
	}
	t.Fatalf("unexpected parse errors: %v", msgs)
}
