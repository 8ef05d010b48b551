/*
Package sami parses and serializes SAMI (Synchronized Accessible Media
Interchange) caption files: `<SAMI><HEAD><STYLE>...</STYLE></HEAD><BODY>
<SYNC Start=ms><P class=...>text</SYNC>`. SAMI has no explicit end time;
each `<SYNC>`'s end is the next `<SYNC>`'s start, and the last event gets
zero duration. Real-world SAMI is frequently not well-formed XML (missing
closing tags, unescaped ampersands, mismatched case), so this package
scans it with a tolerant token reader rather than encoding/xml.
*/
package sami
