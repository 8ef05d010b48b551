/*
Package ass parses and serializes Advanced SubStation Alpha (.ass/.ssa)
scripts: the [Script Info], [V4+ Styles]/[V4 Styles], [Events], [Fonts]
and [Graphics] sections.

Dialogue text is kept verbatim on parse — the `{...}` override-tag text
inside an event is not decoded into segments until a caller asks for it
via the asstags package. This mirrors how the document model separates
"what the wire format said" from "what the tag engine makes of it".
*/
package ass
