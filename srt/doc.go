/*
Package srt parses and serializes SubRip (.srt) subtitle files: blank-line
separated blocks of an index, a "start --> end" timing line, and one or
more lines of text. The `<b>`/`<i>`/`<u>`/`<font color>` markup embedded in
the text is left to the htmltags package — Parse stores Text verbatim.
*/
package srt
