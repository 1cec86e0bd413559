/*
Package dump implements a decoder and encoder for framebuffer dump files.

A dump file is a 56 byte little-endian header describing the pixel format and
geometry of the captured framebuffer, followed by the raw contents of up to
three planes exactly as they were read from memory. The header records the
length of each plane and a checksum over all of them, computed with the crc32
package.

	Offset  Size  Field
	0       4     magic "FBDP"
	4       1     version, currently 1
	5       1     format
	6       2     reserved, zero
	8       8     width and height
	16      12    pitch of each plane in bytes
	28      4     tile size
	32      8     tiles across and down
	40      12    length of each plane in bytes
	52      4     checksum

The package registers itself with the image package so image.Decode
understands dump files.
*/
package dump

import (
	"fmt"
	"strings"
)

const (
	magic        = "FBDP"
	version      = 1
	headerSize   = 56
	maxPlanes    = 3
	maxPlaneSize = 1 << 28
)

// Format identifies the pixel encoding and memory layout of a dump.
type Format uint8

// Supported formats
const (
	Packed        Format = iota + 1 // 32-bit XRGB8888 words, row major
	RGB565                          // 16-bit RGB565, row major
	YUV420                          // three planes of YUV 4:2:0
	YUV420Half                      // YUV420 decoded at half resolution
	TiledAveraged                   // 32x32 tiles, 4x4 box filtered
	TiledDirect                     // 32x32 tiles
)

var formatNames = map[Format]string{
	Packed:        "packed",
	RGB565:        "rgb565",
	YUV420:        "yuv420",
	YUV420Half:    "yuv420-half",
	TiledAveraged: "tiled-averaged",
	TiledDirect:   "tiled",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func (f Format) valid() bool {
	_, ok := formatNames[f]
	return ok
}

// planes returns the number of planes the format uses.
func (f Format) planes() int {
	switch f {
	case YUV420, YUV420Half:
		return maxPlanes
	default:
		return 1
	}
}

// ParseFormat returns the Format with the given name.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("dump: unknown format %q", s)
}
