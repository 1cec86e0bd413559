package pixel

import "github.com/bodgit/fbdecode/rgb"

// AverageSamples is the number of samples an Average must be given before
// reading its result.
const AverageSamples = 16

const (
	maskRB = 0x00ff00ff
	maskG  = 0x0000ff00
)

// Average is a box filter over exactly AverageSamples packed XRGB8888 words.
// Red and blue are summed together in one word; the per-channel sums of 16
// bytes never carry into the neighbouring channel.
type Average struct {
	rb uint32
	g  uint32
}

// Add accumulates one packed word.
func (a *Average) Add(v uint32) {
	a.rb += v & maskRB
	a.g += v & maskG
}

// RGB returns the mean of the accumulated samples. The result is only
// meaningful after exactly AverageSamples calls to Add.
func (a *Average) RGB() rgb.Color {
	rb := a.rb / AverageSamples
	g := a.g / AverageSamples >> 8
	return rgb.Color{R: uint8(rb >> 16), G: uint8(g), B: uint8(rb)}
}

// Reset clears the accumulator for reuse.
func (a *Average) Reset() {
	a.rb, a.g = 0, 0
}
