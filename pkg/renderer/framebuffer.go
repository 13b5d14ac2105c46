package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FrameBuffer holds packed 8-bit RGB pixels with row 0 at the top
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// Set stores a color at (x, y), clamping each channel to [0,1] first
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	c = c.Clamp(0, 1)
	i := (y*fb.Width + x) * 3
	fb.Pix[i] = byte(255 * c.X)
	fb.Pix[i+1] = byte(255 * c.Y)
	fb.Pix[i+2] = byte(255 * c.Z)
}

// At returns the RGB bytes at (x, y)
func (fb *FrameBuffer) At(x, y int) (r, g, b byte) {
	i := (y*fb.Width + x) * 3
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}

// Row returns the packed bytes of row y. The slice aliases the buffer.
func (fb *FrameBuffer) Row(y int) []byte {
	start := y * fb.Width * 3
	return fb.Pix[start : start+fb.Width*3]
}

// ToImage converts the buffer to an opaque RGBA image for encoding
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
