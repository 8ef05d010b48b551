/*
Package vtt parses and serializes WebVTT (.vtt) files: the mandatory
WEBVTT header, cue blocks (optional id, timing line, text), and the NOTE/
STYLE/REGION block types. Inline `<b>`/`<i>`/`<u>`/`<v>`/`<c>`/`<lang>`/
timestamp markup is left to the htmltags package.
*/
package vtt
