package vobsub

/*
 This file defines functions related to the .sub MPEG program-stream
 packet framer: locating a subtitle PES payload at a given byte offset,
 assembling the SPU it carries, and writing packets back out as PS
 packs with retro-filled filepos values.
*/

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

var (
	ErrTruncated      = errors.New("vobsub: truncated pack/PES data")
	ErrBadStartCode   = errors.New("vobsub: bad MPEG-PS start code")
	ErrInconsistentSPU = errors.New("vobsub: SPU length does not match assembled payload")
)

const (
	packStartCode = 0x000001BA
	pesStartCode  = 0x000001
	privateStream1 = 0xBD
)

// SubtitlePacket is one decoded DVD subpicture unit.
type SubtitlePacket struct {
	PTS      int64 // milliseconds
	Duration int64 // milliseconds
	X, Y     int
	Width    int
	Height   int
	RLEData  []byte
	Forced   bool
}

// FrameError reports a recoverable packet-framing failure, tagged with
// the byte offset the caller supplied, per the MalformedEvent policy:
// always recoverable, the packet is skipped and this error recorded.
type FrameError struct {
	Offset uint64
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("vobsub: frame at offset 0x%x: %v", e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// ParsePacketAt locates the PS pack at offset within sub and assembles
// the subtitle PES payload it starts, following continuation packs
// until the SPU's declared length is satisfied. Returns a *FrameError
// (never a bare error) on truncation, a bad start code, or an SPU
// whose length disagrees with what was assembled.
func ParsePacketAt(sub []byte, offset uint64) (*SubtitlePacket, error) {
	payload, pts, err := assembleSPU(sub, int(offset))
	if err != nil {
		return nil, &FrameError{Offset: offset, Err: err}
	}
	pkt, err := decodeSPU(payload)
	if err != nil {
		return nil, &FrameError{Offset: offset, Err: err}
	}
	pkt.PTS = pts
	return pkt, nil
}

// assembleSPU walks PS packs starting at pos, concatenating each
// private_stream_1 PES payload, until the SPU's own declared size
// (its first two bytes, big-endian) has been satisfied.
func assembleSPU(sub []byte, pos int) ([]byte, int64, error) {
	var out []byte
	var pts int64
	gotPTS := false
	declared := -1

	for {
		if pos >= len(sub) {
			return nil, 0, ErrTruncated
		}
		next, payload, framePTS, hasPTS, err := readPack(sub, pos)
		if err != nil {
			return nil, 0, err
		}
		if hasPTS && !gotPTS {
			pts = framePTS
			gotPTS = true
		}
		out = append(out, payload...)
		if declared < 0 && len(out) >= 2 {
			declared = int(binary.BigEndian.Uint16(out[0:2]))
		}
		pos = next
		if declared >= 0 && len(out) >= declared {
			break
		}
		if next >= len(sub) {
			break
		}
	}
	if declared < 0 || len(out) < declared {
		return nil, 0, ErrInconsistentSPU
	}
	return out[:declared], pts, nil
}

// readPack parses one PS pack (pack header + one PES packet) starting
// at pos. Returns the offset of the next pack, the PES payload bytes
// carried by this pack, and the PTS if this PES header carried one.
func readPack(sub []byte, pos int) (nextPos int, payload []byte, pts int64, hasPTS bool, err error) {
	if pos+4 > len(sub) {
		return 0, nil, 0, false, ErrTruncated
	}
	if binary.BigEndian.Uint32(sub[pos:pos+4]) != packStartCode {
		return 0, nil, 0, false, ErrBadStartCode
	}
	pos += 4

	r := bitio.NewReader(bytes.NewReader(sub[pos:]))
	stuffingLen, err := readPackHeaderFixed(r)
	if err != nil {
		return 0, nil, 0, false, err
	}
	pos += 10 // fixed MPEG-2 pack_header portion after the start code
	pos += stuffingLen
	if pos > len(sub) {
		return 0, nil, 0, false, ErrTruncated
	}

	if pos+6 > len(sub) {
		return 0, nil, 0, false, ErrTruncated
	}
	prefix := uint32(sub[pos])<<16 | uint32(sub[pos+1])<<8 | uint32(sub[pos+2])
	if prefix != pesStartCode {
		return 0, nil, 0, false, ErrBadStartCode
	}
	streamID := sub[pos+3]
	pesLen := int(binary.BigEndian.Uint16(sub[pos+4 : pos+6]))
	pesStart := pos + 6
	pesEnd := pesStart + pesLen
	if pesLen == 0 || pesEnd > len(sub) {
		return 0, nil, 0, false, ErrTruncated
	}
	if streamID != privateStream1 {
		return pesEnd, nil, 0, false, nil
	}

	body, bodyPTS, bodyHasPTS, err := parsePESHeader(sub[pesStart:pesEnd])
	if err != nil {
		return 0, nil, 0, false, err
	}
	// private_stream_1 payload is prefixed with a 1-byte sub-stream id.
	if len(body) < 1 {
		return 0, nil, 0, false, ErrTruncated
	}
	return pesEnd, body[1:], bodyPTS, bodyHasPTS, nil
}

// readPackHeaderFixed consumes the 80-bit MPEG-2 pack_header fixed
// portion (SCR, mux rate, reserved bits, stuffing length) and returns
// the stuffing_length field in bytes.
func readPackHeaderFixed(r *bitio.Reader) (int, error) {
	if _, err := r.ReadBits(2); err != nil { // '01'
		return 0, err
	}
	if _, err := r.ReadBits(3); err != nil { // SCR[32..30]
		return 0, err
	}
	if _, err := r.ReadBits(1); err != nil { // marker
		return 0, err
	}
	if _, err := r.ReadBits(15); err != nil { // SCR[29..15]
		return 0, err
	}
	if _, err := r.ReadBits(1); err != nil { // marker
		return 0, err
	}
	if _, err := r.ReadBits(15); err != nil { // SCR[14..0]
		return 0, err
	}
	if _, err := r.ReadBits(1); err != nil { // marker
		return 0, err
	}
	if _, err := r.ReadBits(9); err != nil { // SCR extension
		return 0, err
	}
	if _, err := r.ReadBits(1); err != nil { // marker
		return 0, err
	}
	if _, err := r.ReadBits(22); err != nil { // program_mux_rate
		return 0, err
	}
	if _, err := r.ReadBits(1); err != nil { // marker
		return 0, err
	}
	if _, err := r.ReadBits(1); err != nil { // marker
		return 0, err
	}
	if _, err := r.ReadBits(5); err != nil { // reserved
		return 0, err
	}
	stuffing, err := r.ReadBits(3)
	if err != nil {
		return 0, err
	}
	return int(stuffing), nil
}

// parsePESHeader strips the PES header from a private_stream_1 payload
// and returns the remaining bytes plus the PTS if present, converted to
// milliseconds via the 90kHz PS clock.
func parsePESHeader(pes []byte) (body []byte, pts int64, hasPTS bool, err error) {
	if len(pes) < 3 {
		return nil, 0, false, ErrTruncated
	}
	flags1 := pes[1]
	headerDataLen := int(pes[2])
	rest := pes[3:]
	if headerDataLen > len(rest) {
		return nil, 0, false, ErrTruncated
	}
	ptsDtsFlags := (flags1 >> 6) & 0x03
	optional := rest[:headerDataLen]
	if ptsDtsFlags == 0x02 || ptsDtsFlags == 0x03 {
		if len(optional) < 5 {
			return nil, 0, false, ErrTruncated
		}
		ticks := pts90kHzFromBytes(optional)
		pts = ticks * 1000 / 90000
		hasPTS = true
	}
	return rest[headerDataLen:], pts, hasPTS, nil
}

// pts90kHzFromBytes decodes the 5-byte PTS-only field (marker '0010' or
// '0011' in the top nibble) into raw 90kHz ticks.
func pts90kHzFromBytes(b []byte) int64 {
	v := (int64(b[0]&0x0E) << 29) |
		(int64(b[1]) << 22) |
		(int64(b[2]&0xFE) << 14) |
		(int64(b[3]) << 7) |
		int64(b[4]>>1)
	return v
}

// decodeSPU parses an assembled SPU payload: its size/offset header,
// the RLE image data, and the linked control-sequence list, returning
// the subset of SPU control commands needed for static image captions.
func decodeSPU(spu []byte) (*SubtitlePacket, error) {
	if len(spu) < 4 {
		return nil, ErrTruncated
	}
	csOffset := int(binary.BigEndian.Uint16(spu[2:4]))
	if csOffset < 4 || csOffset > len(spu) {
		return nil, ErrInconsistentSPU
	}
	pkt := &SubtitlePacket{RLEData: spu[4:csOffset]}
	if err := walkControlSequences(spu, csOffset, pkt); err != nil {
		return nil, err
	}
	return pkt, nil
}

// walkControlSequences follows the SPU's linked list of control-sequence
// blocks (date, next-block offset, commands...) applying the subset of
// commands relevant to static image captions: SET_COLOR, SET_CONTRAST,
// SET_DAREA, SET_DSPXA, start/stop/forced-start display.
func walkControlSequences(spu []byte, offset int, pkt *SubtitlePacket) error {
	visited := map[int]bool{}
	for {
		if visited[offset] || offset+4 > len(spu) {
			return nil
		}
		visited[offset] = true
		date := binary.BigEndian.Uint16(spu[offset : offset+2])
		next := int(binary.BigEndian.Uint16(spu[offset+2 : offset+4]))
		pos := offset + 4
		for pos < len(spu) {
			cmd := spu[pos]
			pos++
			switch cmd {
			case 0x00: // FSTA_DSP - forced start
				pkt.Forced = true
			case 0x01: // STA_DSP - start display
			case 0x02: // STP_DSP - stop display
				pkt.Duration = int64(date) * 1024 / 90
			case 0x03: // SET_COLOR - 2 bytes, not needed for geometry/timing
				if pos+2 > len(spu) {
					return ErrTruncated
				}
				pos += 2
			case 0x04: // SET_CONTRAST - 2 bytes
				if pos+2 > len(spu) {
					return ErrTruncated
				}
				pos += 2
			case 0x05: // SET_DAREA - 6 bytes of packed 12-bit coordinates
				if pos+6 > len(spu) {
					return ErrTruncated
				}
				x1, x2, y1, y2 := readDisplayArea(spu[pos : pos+6])
				pkt.X, pkt.Y = x1, y1
				pkt.Width = x2 - x1 + 1
				pkt.Height = y2 - y1 + 1
				pos += 6
			case 0x06: // SET_DSPXA - pixel data addresses, 4 bytes
				if pos+4 > len(spu) {
					return ErrTruncated
				}
				pos += 4
			case 0xFF: // CMD_END
				goto doneCommands
			default:
				return ErrInconsistentSPU
			}
		}
	doneCommands:
		if next == offset || next >= len(spu) {
			return nil
		}
		offset = next
	}
}

// readDisplayArea unpacks the 6-byte SET_DAREA payload: four 12-bit
// fields (x1, x2, y1, y2) packed two per 3 bytes, via bitio for the
// sub-byte reads.
func readDisplayArea(b []byte) (x1, x2, y1, y2 int) {
	r := bitio.NewReader(bytes.NewReader(b))
	x1b, _ := r.ReadBits(12)
	x2b, _ := r.ReadBits(12)
	y1b, _ := r.ReadBits(12)
	y2b, _ := r.ReadBits(12)
	return int(x1b), int(x2b), int(y1b), int(y2b)
}

// SerializePackets renders packets as a stream of PS packs, one per
// packet, and returns the byte offset each packet's pack started at so
// the caller can retro-fill filepos values into an IdxFile before
// serializing it.
func SerializePackets(packets []*SubtitlePacket) (data []byte, fileposList []uint64) {
	var buf bytes.Buffer
	fileposList = make([]uint64, len(packets))
	for i, pkt := range packets {
		fileposList[i] = uint64(buf.Len())
		writePack(&buf, pkt)
	}
	return buf.Bytes(), fileposList
}

func writePack(buf *bytes.Buffer, pkt *SubtitlePacket) {
	spu := buildSPU(pkt)
	pesBody := buildPESPrivateStream1(pkt, spu)

	binary.Write(buf, binary.BigEndian, uint32(packStartCode))
	w := bitio.NewWriter(buf)
	writePackHeaderFixed(w, pkt.PTS)
	w.Close()

	buf.Write([]byte{0x00, 0x00, 0x01, privateStream1})
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(pesBody)))
	buf.Write(lenBuf[:])
	buf.Write(pesBody)
}

func writePackHeaderFixed(w *bitio.Writer, ptsMs int64) {
	scr := uint64(ptsMs) * 90
	w.WriteBits(0x01, 2)
	w.WriteBits(scr>>30, 3)
	w.WriteBool(true)
	w.WriteBits(scr>>15, 15)
	w.WriteBool(true)
	w.WriteBits(scr, 15)
	w.WriteBool(true)
	w.WriteBits(0, 9)
	w.WriteBool(true)
	w.WriteBits(0, 22) // program_mux_rate, unused by readers of static captions
	w.WriteBool(true)
	w.WriteBool(true)
	w.WriteBits(0, 5) // reserved
	w.WriteBits(0, 3) // stuffing_length
}

func buildPESPrivateStream1(pkt *SubtitlePacket, spu []byte) []byte {
	var b bytes.Buffer
	flags1 := byte(0x80) // '10' marker
	flags2 := byte(0x80) // PTS_DTS_flags = '10' (PTS only)
	b.WriteByte(flags1)
	b.WriteByte(flags2)
	b.WriteByte(5) // PES_header_data_length: just the PTS field
	b.Write(encodePTS(pkt.PTS))
	b.WriteByte(0x00) // private_stream_1 sub-stream id
	b.Write(spu)
	return b.Bytes()
}

func encodePTS(ptsMs int64) []byte {
	ticks := uint64(ptsMs) * 90000 / 1000
	var out [5]byte
	out[0] = 0x20 | byte((ticks>>29)&0x0E) | 0x01
	out[1] = byte(ticks >> 22)
	out[2] = byte((ticks>>14)&0xFE) | 0x01
	out[3] = byte(ticks >> 7)
	out[4] = byte((ticks<<1)&0xFE) | 0x01
	return out[:]
}

// buildSPU re-assembles the size/offset header, RLE data and a minimal
// two-block control sequence (start display, then stop display after
// pkt.Duration) for a single packet.
func buildSPU(pkt *SubtitlePacket) []byte {
	var cs bytes.Buffer
	startOffset := 4 + len(pkt.RLEData)

	// First control block: runs at date=0, sets area/color/contrast and
	// starts display; points at the stop block that follows it.
	firstLen := 4 + 1 + 6 + 1 + 2 + 1 + 2 + 1 + 1 // area cmd + color + contrast + start + end
	stopOffset := startOffset + firstLen
	cs.Write(u16(0))
	cs.Write(u16(uint16(stopOffset)))
	cs.WriteByte(0x05)
	cs.Write(packDisplayArea(pkt.X, pkt.Y, pkt.X+pkt.Width-1, pkt.Y+pkt.Height-1))
	cs.WriteByte(0x03)
	cs.Write([]byte{0x00, 0x00})
	cs.WriteByte(0x04)
	cs.Write([]byte{0xFF, 0xFF})
	if pkt.Forced {
		cs.WriteByte(0x00)
	} else {
		cs.WriteByte(0x01)
	}
	cs.WriteByte(0xFF)

	// Second control block: the stop-display command, self-terminating.
	stopTicks := uint16(pkt.Duration * 90 / 1024)
	cs.Write(u16(stopTicks))
	cs.Write(u16(uint16(stopOffset)))
	cs.WriteByte(0x02)
	cs.WriteByte(0xFF)

	var spu bytes.Buffer
	spu.Write(pkt.RLEData)
	full := append([]byte{0, 0, 0, 0}, spu.Bytes()...)
	full = append(full, cs.Bytes()...)
	binary.BigEndian.PutUint16(full[0:2], uint16(len(full)))
	binary.BigEndian.PutUint16(full[2:4], uint16(startOffset))
	return full
}

func u16(v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return b[:]
}

func packDisplayArea(x1, y1, x2, y2 int) []byte {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.WriteBits(uint64(x1), 12)
	w.WriteBits(uint64(x2), 12)
	w.WriteBits(uint64(y1), 12)
	w.WriteBits(uint64(y2), 12)
	w.Close()
	return buf.Bytes()
}
