/*
Package microdvd parses and serializes MicroDVD `.sub` caption files:
one `{start}{end}text` line per event, where start/end are frame
numbers rather than timestamps, converted to milliseconds against a
caller-supplied (or default) frame rate. Inline `{y:b/i/u}` whole-line
style tags and `{c:$BBGGRR}` color tags, and `|`-joined multi-line cues,
are preserved in Text verbatim except for the `|` separator itself,
which round-trips as a newline in the document model.
*/
package microdvd

// DefaultFPS is used whenever a caller doesn't supply one — the most
// common MicroDVD authoring rate.
const DefaultFPS = 23.976
