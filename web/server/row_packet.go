package server

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/golang/snappy"
)

// rowPacketHeaderSize is row, width, completed and total as little-endian uint32s
const rowPacketHeaderSize = 16

// ErrBadRowPacket is returned for row packets that cannot be decoded
var ErrBadRowPacket = errors.New("malformed row packet")

// RowPacket is one finished scanline as sent over the render socket.
// On the wire it is the snappy block encoding of the header followed by the
// packed RGB bytes of the row.
type RowPacket struct {
	Row       int    // Framebuffer row, 0 at the top
	Width     int    // Pixels in the row
	Completed int    // Rows finished so far
	Total     int    // Rows in the image
	Pixels    []byte // Packed RGB, 3 bytes per pixel
}

// EncodeRowPacket serializes and compresses a row packet
func EncodeRowPacket(p RowPacket) []byte {
	raw := make([]byte, rowPacketHeaderSize+len(p.Pixels))
	binary.LittleEndian.PutUint32(raw[0:4], uint32(p.Row))
	binary.LittleEndian.PutUint32(raw[4:8], uint32(p.Width))
	binary.LittleEndian.PutUint32(raw[8:12], uint32(p.Completed))
	binary.LittleEndian.PutUint32(raw[12:16], uint32(p.Total))
	copy(raw[rowPacketHeaderSize:], p.Pixels)
	return snappy.Encode(nil, raw)
}

// DecodeRowPacket decompresses and parses a row packet
func DecodeRowPacket(data []byte) (RowPacket, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return RowPacket{}, fmt.Errorf("%w: %v", ErrBadRowPacket, err)
	}
	if len(raw) < rowPacketHeaderSize {
		return RowPacket{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrBadRowPacket, len(raw))
	}

	p := RowPacket{
		Row:       int(binary.LittleEndian.Uint32(raw[0:4])),
		Width:     int(binary.LittleEndian.Uint32(raw[4:8])),
		Completed: int(binary.LittleEndian.Uint32(raw[8:12])),
		Total:     int(binary.LittleEndian.Uint32(raw[12:16])),
		Pixels:    raw[rowPacketHeaderSize:],
	}
	if len(p.Pixels) != p.Width*3 {
		return RowPacket{}, fmt.Errorf("%w: %d pixel bytes for width %d", ErrBadRowPacket, len(p.Pixels), p.Width)
	}
	return p, nil
}
