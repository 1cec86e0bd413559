/*
Package pixel implements the per-pixel conversions from the native encodings
found in framebuffer dumps to 8-bit RGB.

Every conversion is a pure function of the raw bits and cannot fail; out of
range intermediate values are clamped or masked.
*/
package pixel

import "github.com/bodgit/fbdecode/rgb"

// Converter is implemented by any native pixel representation that can
// produce an 8-bit RGB triple.
type Converter interface {
	RGB() rgb.Color
}

// RGB is a pixel already stored as red, green and blue bytes.
type RGB [3]uint8

// FromBGR returns the pixel stored as blue, green and red in the first three
// bytes of b.
func FromBGR(b []byte) RGB {
	return RGB{b[2], b[1], b[0]}
}

func (p RGB) RGB() rgb.Color {
	return rgb.Color{R: p[0], G: p[1], B: p[2]}
}

func (p RGB) RGBA() (r, g, b, a uint32) {
	return p.RGB().RGBA()
}

// XRGB8888 is a pixel packed into a 32-bit word with red in bits 16-23, green
// in bits 8-15 and blue in bits 0-7. The top byte is ignored.
type XRGB8888 uint32

func (p XRGB8888) RGB() rgb.Color {
	return rgb.Color{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

func (p XRGB8888) RGBA() (r, g, b, a uint32) {
	return p.RGB().RGBA()
}

// RGB565 is a pixel packed into 16 bits as RRRRRGGGGGGBBBBB.
type RGB565 uint16

const (
	mask5 = 1<<5 - 1
	mask6 = 1<<6 - 1
)

// The scale factors map the full 5 and 6-bit ranges onto 0-255 and match
// the rounding of the hardware color converter bit for bit.
func expand5(v uint16) uint8 {
	return uint8((v*527 + 23) >> 6)
}

func expand6(v uint16) uint8 {
	return uint8((v*259 + 33) >> 6)
}

func (p RGB565) RGB() rgb.Color {
	return rgb.Color{
		R: expand5(uint16(p>>11) & mask5),
		G: expand6(uint16(p>>5) & mask6),
		B: expand5(uint16(p) & mask5),
	}
}

func (p RGB565) RGBA() (r, g, b, a uint32) {
	return p.RGB().RGBA()
}

// YUV is a single luma sample with its chroma pair, using the BT.601
// limited range coefficients.
type YUV struct {
	Y, U, V uint8
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

func (p YUV) RGB() rgb.Color {
	c := int(p.Y) - 16
	d := int(p.U) - 128
	e := int(p.V) - 128

	return rgb.Color{
		R: clamp((298*c + 409*e + 128) >> 8),
		G: clamp((298*c - 100*d - 208*e + 128) >> 8),
		B: clamp((298*c + 516*d + 128) >> 8),
	}
}

func (p YUV) RGBA() (r, g, b, a uint32) {
	return p.RGB().RGBA()
}
