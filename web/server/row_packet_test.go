package server

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang/snappy"
)

func TestRowPacket_RoundTrip(t *testing.T) {
	original := RowPacket{
		Row:       7,
		Width:     4,
		Completed: 3,
		Total:     10,
		Pixels:    []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 10, 20, 30},
	}

	decoded, err := DecodeRowPacket(EncodeRowPacket(original))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded.Row != 7 || decoded.Width != 4 || decoded.Completed != 3 || decoded.Total != 10 {
		t.Errorf("Expected header %+v, got %+v", original, decoded)
	}
	if !bytes.Equal(decoded.Pixels, original.Pixels) {
		t.Errorf("Expected pixels %v, got %v", original.Pixels, decoded.Pixels)
	}
}

func TestRowPacket_Compresses(t *testing.T) {
	// A uniform row compresses well below its raw size
	pixels := bytes.Repeat([]byte{40, 80, 120}, 512)
	encoded := EncodeRowPacket(RowPacket{Row: 0, Width: 512, Completed: 1, Total: 1, Pixels: pixels})
	if len(encoded) >= len(pixels) {
		t.Errorf("Expected compressed packet smaller than %d bytes, got %d", len(pixels), len(encoded))
	}
}

func TestDecodeRowPacket_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not snappy", []byte{0xff, 0xff, 0xff, 0xff}},
		{"short header", snappy.Encode(nil, []byte{1, 2, 3})},
		{"width mismatch", EncodeRowPacket(RowPacket{Width: 2, Pixels: []byte{1, 2, 3}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRowPacket(tt.data); !errors.Is(err, ErrBadRowPacket) {
				t.Errorf("Expected ErrBadRowPacket, got %v", err)
			}
		})
	}
}
