package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// rawFrameMagic identifies a zstd-compressed packed RGB frame
var rawFrameMagic = [4]byte{'W', 'R', 'G', 'B'}

// rawFrameHeaderSize is magic + width + height
const rawFrameHeaderSize = 12

// ErrBadRawFrame is returned for frames with a wrong magic or inconsistent size
var ErrBadRawFrame = errors.New("malformed raw frame")

// RawFrame is packed 8-bit RGB pixel data, row 0 at the top
type RawFrame struct {
	Width  int
	Height int
	Pix    []byte
}

// WriteRawFrame writes a little-endian header and the pixels as one zstd stream
func WriteRawFrame(w io.Writer, frame RawFrame) error {
	if frame.Width <= 0 || frame.Height <= 0 || len(frame.Pix) != frame.Width*frame.Height*3 {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrBadRawFrame, frame.Width, frame.Height, len(frame.Pix))
	}

	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	header := make([]byte, rawFrameHeaderSize)
	copy(header[0:4], rawFrameMagic[:])
	binary.LittleEndian.PutUint32(header[4:8], uint32(frame.Width))
	binary.LittleEndian.PutUint32(header[8:12], uint32(frame.Height))

	if _, err := encoder.Write(header); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to write frame header: %w", err)
	}
	if _, err := encoder.Write(frame.Pix); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to write frame pixels: %w", err)
	}
	return encoder.Close()
}

// ReadRawFrame decodes a frame written by WriteRawFrame
func ReadRawFrame(r io.Reader) (*RawFrame, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	header := make([]byte, rawFrameHeaderSize)
	if _, err := io.ReadFull(decoder, header); err != nil {
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}
	if [4]byte(header[0:4]) != rawFrameMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadRawFrame, header[0:4])
	}

	width := int(binary.LittleEndian.Uint32(header[4:8]))
	height := int(binary.LittleEndian.Uint32(header[8:12]))
	if width <= 0 || height <= 0 || width > 1<<15 || height > 1<<15 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadRawFrame, width, height)
	}

	pix := make([]byte, width*height*3)
	if _, err := io.ReadFull(decoder, pix); err != nil {
		return nil, fmt.Errorf("%w: pixel data truncated: %v", ErrBadRawFrame, err)
	}

	return &RawFrame{Width: width, Height: height, Pix: pix}, nil
}

// SaveRawFrame writes a compressed frame to filename (conventionally *.rgb.zst)
func SaveRawFrame(filename string, frame RawFrame) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create raw frame file: %w", err)
	}

	buffered := bufio.NewWriter(file)
	if err := WriteRawFrame(buffered, frame); err != nil {
		file.Close()
		return err
	}
	if err := buffered.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush raw frame: %w", err)
	}
	return file.Close()
}

// LoadRawFrame reads a compressed frame from filename
func LoadRawFrame(filename string) (*RawFrame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw frame file: %w", err)
	}
	defer file.Close()

	return ReadRawFrame(bufio.NewReader(file))
}
