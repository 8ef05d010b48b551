/*
Package ttml parses and serializes the TTML/DFXP/SMPTE-TT subtitle XML
family. The three profiles share one grammar under different root
namespace URIs, so reads are namespace-agnostic (elements and attributes
are matched by local name only); writes always emit the TTML namespace.
Only the clock-time profile is supported for `begin`/`end` timestamps:
`HH:MM:SS.mmm` or `HH:MM:SS:ff` (frames, against the `tt` element's
`ttp:frameRate`, default 30 when absent).
*/
package ttml

// DefaultFrameRate is used for the frame-based clock-time profile when
// a document carries no ttp:frameRate attribute.
const DefaultFrameRate = 30.0
