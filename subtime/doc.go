/*
Package subtime implements the per-format timestamp grammars shared by the
subtitle codecs: ASS's variable-hour "H:MM:SS.cc" form, SRT's fixed
"HH:MM:SS,mmm", WebVTT's "HH:MM:SS.mmm" / "MM:SS.mmm", and VobSub idx's
"HH:MM:SS:mmm".

Time is represented as milliseconds in a signed 32-bit integer. Negative
values never occur in a parsed document; a negative intermediate inside a
parser always means failure, never a real time, and parsers here return
ErrInvalidTimestamp instead of letting one escape.
*/
package subtime
