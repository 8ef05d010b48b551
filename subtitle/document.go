package subtitle

import "github.com/gosubs/subtitles/subtime"

// TextSegment is a maximal run of dialogue text sharing one inline style
// and effect set. Segments are ordered; concatenating Text across a
// SubtitleEvent's Segments yields its plain text.
type TextSegment struct {
	Text    string
	Style   *InlineStyle
	Effects []Effect
}

// SubtitleEvent is one dialogue line.
//
// Invariants: Start <= End; ID is unique within a document. Segments is nil
// until a rich (tag-aware) parse has been requested, in which case Text
// remains authoritative. Once Dirty is set, Segments is authoritative and
// Text may be regenerated from it on serialization.
type SubtitleEvent struct {
	ID    uint64
	Start subtime.Time
	End   subtime.Time

	Layer   int
	Style   string
	Actor   string
	MarginL int
	MarginR int
	MarginV int
	Effect  string

	// CueID is WebVTT's optional cue identifier line. Empty for formats
	// that have no equivalent concept.
	CueID string

	Text     string
	Segments []TextSegment
	Dirty    bool
}

// EventOverrides is the optional set of fields CreateEvent accepts besides
// start/end/text.
type EventOverrides struct {
	Style   string
	Actor   string
	Layer   int
	MarginL int
	MarginR int
	MarginV int
	Effect  string
	CueID   string
}

// CreateEvent builds a SubtitleEvent with a fresh id, empty segments and
// Dirty=false.
func CreateEvent(start, end subtime.Time, text string, overrides *EventOverrides) *SubtitleEvent {
	ev := &SubtitleEvent{
		ID:    NextID(),
		Start: start,
		End:   end,
		Text:  text,
	}
	if overrides != nil {
		ev.Style = overrides.Style
		ev.Actor = overrides.Actor
		ev.Layer = overrides.Layer
		ev.MarginL = overrides.MarginL
		ev.MarginR = overrides.MarginR
		ev.MarginV = overrides.MarginV
		ev.Effect = overrides.Effect
		ev.CueID = overrides.CueID
	}
	return ev
}

// Comment is a parsed `Comment:` line, or a format-equivalent out-of-band
// note. BeforeEventIndex is the number of events already appended to the
// document at the moment the comment was observed, so round-trip
// serialization can re-emit it at the same relative position.
type Comment struct {
	Text             string
	BeforeEventIndex int
}

// Region is a WebVTT REGION block.
type Region struct {
	ID              string
	Width           string
	Lines           int
	RegionAnchor    string
	ViewportAnchor  string
	Scroll          string
}

// EmbeddedFile is a base64-carried ASS [Fonts]/[Graphics] attachment.
type EmbeddedFile struct {
	Name string
	Data string // base64
}

// SubtitleDocument is the canonical in-memory subtitle document every
// format parser produces and every serializer consumes.
type SubtitleDocument struct {
	Info   ScriptInfo
	Styles []*Style // insertion order; AddStyle is last-writer-wins by name

	Events   []*SubtitleEvent
	Comments []Comment

	Regions  []Region
	Fonts    []EmbeddedFile
	Graphics []EmbeddedFile

	// Metadata holds format-specific header data that has no home in
	// ScriptInfo (TTML ttp:frameRate, SAMI <STYLE> text, LRC tags...).
	Metadata map[string]string
}

// NewDocument returns an empty document with default ScriptInfo.
func NewDocument() *SubtitleDocument {
	return &SubtitleDocument{
		Info:     DefaultScriptInfo(),
		Metadata: make(map[string]string),
	}
}

// AddEvent appends ev, preserving source order.
func (d *SubtitleDocument) AddEvent(ev *SubtitleEvent) {
	d.Events = append(d.Events, ev)
}

// AddComment appends a comment, stamping it with the current event count.
func (d *SubtitleDocument) AddComment(text string) {
	d.Comments = append(d.Comments, Comment{Text: text, BeforeEventIndex: len(d.Events)})
}

// StyleByName returns the style with the given name, or nil.
func (d *SubtitleDocument) StyleByName(name string) *Style {
	for _, s := range d.Styles {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SetStyle inserts or replaces (last-writer-wins, in place) the style named
// st.Name.
func (d *SubtitleDocument) SetStyle(st *Style) {
	for i, s := range d.Styles {
		if s.Name == st.Name {
			d.Styles[i] = st
			return
		}
	}
	d.Styles = append(d.Styles, st)
}
