/*
Package vobsub implements the VobSub DVD subpicture pipeline: the `.idx`
sidecar text format (track/timestamp/palette metadata), the `.sub` binary
MPEG program-stream packet framer that carries each subtitle's image data,
and the 2-bits-per-pixel run-length image codec used inside each packet.

The three pieces compose but are independently usable: ParseIdx/
SerializeIdx for the sidecar, ParseSub/SerializeSub for packet framing,
DecodeRLE/EncodeRLE for the image codec itself.
*/
package vobsub
