/*
Package lrc parses and serializes LRC timed-lyrics files: bracketed
metadata tags ([ar:...], [ti:...], [al:...], [by:...], [offset:...])
followed by one `[mm:ss.xx]text` line per event. LRC carries no end
time; Parse synthesizes one from the next timed line's start (or
start+4000ms for the last line).
*/
package lrc
