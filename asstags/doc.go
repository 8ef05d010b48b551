/*
Package asstags implements the ASS/SSA override-tag engine: the small tag
language embedded in `{...}` blocks inside dialogue text.

ParseTags lexes a dialogue string into subtitle.TextSegment values, each
carrying an inline style snapshot and the effects active for that run of
text. SerializeTags does the inverse, emitting only the tags needed to
move from one segment's style to the next.

The engine is a single-pass streaming state machine with two states,
OUTSIDE_BRACE and INSIDE_BRACE: see lex.go. Tag dispatch within a `{...}`
block tries an ordered table of anchored regular expressions, compiled
once at package initialization, against each tag fragment; the first rule
that matches handles it (see rules.go). Effect mutation follows fixed
"replace" or "augment-or-create" rules per variant — see effects.go.
*/
package asstags
