package subtitle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateEventAssignsMonotonicUniqueIDs(t *testing.T) {
	a := CreateEvent(0, 1000, "a", nil)
	b := CreateEvent(1000, 2000, "b", nil)
	require.Less(t, a.ID, b.ID)
	require.NotEqual(t, a.ID, b.ID)
}

func TestReserveIDsReturnsContiguousBlock(t *testing.T) {
	first := ReserveIDs(5)
	// ReserveIDs(5) hands back a 5-wide block [first, first+4]; the counter
	// has already advanced past it, so the very next NextID() call resumes
	// immediately after the block.
	require.Equal(t, first+5, NextID())
}

func TestSetStyleLastWriterWinsInPlace(t *testing.T) {
	doc := NewDocument()
	doc.SetStyle(&Style{Name: "Default", FontSize: 10})
	doc.SetStyle(&Style{Name: "Other", FontSize: 20})
	doc.SetStyle(&Style{Name: "Default", FontSize: 99})

	require.Len(t, doc.Styles, 2)
	require.Equal(t, "Default", doc.Styles[0].Name)
	require.Equal(t, float64(99), doc.Styles[0].FontSize)
}

func TestAddCommentCapturesBeforeEventIndex(t *testing.T) {
	doc := NewDocument()
	doc.AddEvent(CreateEvent(0, 1000, "one", nil))
	doc.AddComment("note")
	doc.AddEvent(CreateEvent(1000, 2000, "two", nil))

	require.Len(t, doc.Comments, 1)
	require.Equal(t, 1, doc.Comments[0].BeforeEventIndex)
}

func TestInlineStyleIsEmpty(t *testing.T) {
	var s InlineStyle
	require.True(t, s.IsEmpty())

	b := true
	s.Italic = &b
	require.False(t, s.IsEmpty())
}
