/*
Package sbv parses and serializes YouTube's SubViewer-derived caption
format: blank-line separated blocks of a comma-separated start/end
timing line followed by one or more lines of text. There is no file
header and no index/id column.
*/
package sbv
