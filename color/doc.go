/*
Package color implements the packed 32-bit color representation shared by
every subtitle codec in this module.

A Color is stored in AABBGGRR byte layout (alpha highest byte, red lowest),
matching the wire encoding ASS/SSA uses for &HAABBGGRR& literals. This
layout is the reason the SRT/VTT HTML codecs (#RRGGBB) need an explicit
byte swap on the way in and out: see RGBToPacked/PackedToRGB.

Per the ASS convention, an alpha byte of 0 means fully opaque and 0xFF
means fully transparent — the inverse of what most other systems use.
*/
package color
