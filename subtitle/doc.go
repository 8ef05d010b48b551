/*
Package subtitle defines the canonical in-memory subtitle document shared
by every format in this module: styles, inline overrides, graphic-caption
effects, events, and the document that holds them.

Every format-specific parser builds one of these from its own wire syntax;
every serializer walks one back out. Manipulating a document (reordering
events, rewriting styles, editing segments) is format-agnostic — only
Parse/Serialize at the edges know the wire format.

Document identity (SubtitleEvent.ID) is issued from a single process-wide
atomic counter, see NextID and ReserveIDs.
*/
package subtitle
