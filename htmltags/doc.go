/*
Package htmltags implements the SRT/VTT HTML-like tag engine: the
`<b>`/`<i>`/`<u>`/`<font color="...">` markup shared by SRT and the
richer `<v>`/`<c>`/`<lang>`/timestamp-cue extensions VTT layers on top.

Unlike the ASS override-tag engine, this markup is properly nested:
every opening tag has (or should have) a matching close, so the active
style at any point is modeled as a stack rather than a flat
accumulator. ParseTags walks the stack and emits subtitle.TextSegment
values at each tag boundary; SerializeTags renders each segment back
into a self-contained, correctly nested tag span. StripTags discards
all markup and returns plain text.
*/
package htmltags
