package dump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"github.com/bodgit/fbdecode/tile"
)

var (
	errNotEnough = errors.New("dump: not enough image data")
	errTooMuch   = errors.New("dump: too much image data")
	errBadMagic  = errors.New("dump: invalid magic or version")
	errBadFormat = errors.New("dump: invalid format")
	errBadHeader = errors.New("dump: invalid header")
	errChecksum  = errors.New("dump: checksum mismatch")
)

// Header describes the layout of the planes in a dump. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Header struct {
	Format Format

	// Size is the visible size of the framebuffer in source pixels
	Size image.Point

	// Pitch is the distance in bytes between rows in each plane, unused
	// by the tiled formats
	Pitch [maxPlanes]int

	// TileSize and Tiles describe the grid used by the tiled formats
	TileSize int
	Tiles    image.Point

	// Length is the size in bytes of each plane
	Length [maxPlanes]int

	// Checksum is the crc32 checksum of the planes
	Checksum uint32
}

// On-disk layout, every field is little-endian
type header struct {
	Magic    [4]byte
	Version  uint8
	Format   uint8
	Reserved uint16
	Width    uint32
	Height   uint32
	Pitch    [maxPlanes]uint32
	TileSize uint32
	TilesX   uint32
	TilesY   uint32
	Length   [maxPlanes]uint32
	Checksum uint32
}

// Bounds returns the bounds of the image the dump decodes to.
func (h Header) Bounds() image.Rectangle {
	size := h.Size
	switch h.Format {
	case YUV420Half:
		size = size.Div(2)
	case TiledAveraged:
		size = size.Div(tile.Scale)
	}
	return image.Rectangle{Max: size}
}

func inRange(v int) bool {
	return v >= 0 && v <= maxPlaneSize
}

func (h Header) validate() error {
	if !h.Format.valid() {
		return errBadFormat
	}
	if !inRange(h.Size.X) || !inRange(h.Size.Y) || !inRange(h.TileSize) || !inRange(h.Tiles.X) || !inRange(h.Tiles.Y) {
		return errBadHeader
	}
	// A grid of tiles can never be larger than a plane
	if int64(h.Tiles.X)*int64(h.Tiles.Y) > maxPlaneSize/(tile.Size*tile.Size*4) {
		return errBadHeader
	}
	for i, l := range h.Length {
		if !inRange(h.Pitch[i]) || !inRange(l) {
			return errBadHeader
		}
		if i >= h.Format.planes() && l > 0 {
			return errBadHeader
		}
	}
	return nil
}

// MarshalBinary encodes the header into binary form and returns the result
func (h Header) MarshalBinary() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	w := header{
		Version:  version,
		Format:   uint8(h.Format),
		Width:    uint32(h.Size.X),
		Height:   uint32(h.Size.Y),
		TileSize: uint32(h.TileSize),
		TilesX:   uint32(h.Tiles.X),
		TilesY:   uint32(h.Tiles.Y),
		Checksum: h.Checksum,
	}
	copy(w.Magic[:], magic)
	for i := range h.Pitch {
		w.Pitch[i] = uint32(h.Pitch[i])
		w.Length[i] = uint32(h.Length[i])
	}

	b := new(bytes.Buffer)
	if err := binary.Write(b, binary.LittleEndian, &w); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from binary form
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < headerSize {
		return errNotEnough
	}
	if len(b) > headerSize {
		return errTooMuch
	}

	var r header
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &r); err != nil {
		return err
	}

	if string(r.Magic[:]) != magic || r.Version != version {
		return errBadMagic
	}

	n := Header{
		Format:   Format(r.Format),
		Size:     image.Pt(int(r.Width), int(r.Height)),
		TileSize: int(r.TileSize),
		Tiles:    image.Pt(int(r.TilesX), int(r.TilesY)),
		Checksum: r.Checksum,
	}
	for i := range r.Pitch {
		n.Pitch[i] = int(r.Pitch[i])
		n.Length[i] = int(r.Length[i])
	}

	if err := n.validate(); err != nil {
		return err
	}

	*h = n
	return nil
}
