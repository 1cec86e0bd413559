/*
Package crc32 implements a 32-bit cyclic redundancy check, or CRC-32, over a
stream of little-endian 32-bit words.

It uses the standard CRC-32 normal polynomial, most significant bit first,
but feeds each complete word most significant byte first. This matches how
framebuffer hardware checksums a buffer one word at a time, so the checksum
of a dump does not depend on the byte order it was saved in. Trailing bytes
that do not form a complete word are fed in order.
*/
package crc32

import (
	"hash"
	crc "hash/crc32"
)

const wordSize = 4

func makeTable(poly uint32) *crc.Table {
	t := new(crc.Table)
	for i := 0; i < 256; i++ {
		crc := uint32(i << 24)
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

const polynomial = 0x04c11db7

var table = makeTable(polynomial)

// Seed is the initial value used by Checksum.
const Seed = 0xffffffff

func updateByte(crc uint32, tab *crc.Table, b byte) uint32 {
	return crc<<8 ^ tab[byte(crc>>24)^b]
}

func update(crc uint32, tab *crc.Table, p []byte) uint32 {
	n := len(p) &^ (wordSize - 1)
	for i := 0; i < n; i++ {
		crc = updateByte(crc, tab, p[i^3])
	}
	for _, b := range p[n:] {
		crc = updateByte(crc, tab, b)
	}
	return crc
}

// Update returns the result of adding the bytes in p to the crc. p should be
// a whole number of words unless it is the end of the stream.
func Update(crc uint32, p []byte) uint32 {
	return update(crc, table, p)
}

// Checksum returns the CRC-32 checksum of data.
func Checksum(data []byte) uint32 { return Update(Seed, data) }

type digest struct {
	crc  uint32
	tab  *crc.Table
	word [wordSize]byte
	n    int
}

// New creates a new hash.Hash32 computing the CRC-32 checksum starting from
// Seed. Writes may be split anywhere, incomplete words are held back until
// they are completed or the sum is read. Its Sum method will lay the value
// out in big-endian byte order.
func New() hash.Hash32 {
	return &digest{crc: Seed, tab: table}
}

func (d *digest) Size() int { return crc.Size }

func (d *digest) BlockSize() int { return wordSize }

func (d *digest) Reset() { d.crc, d.n = Seed, 0 }

func (d *digest) Write(p []byte) (n int, err error) {
	n = len(p)
	if d.n > 0 {
		c := copy(d.word[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n < wordSize {
			return
		}
		d.crc = update(d.crc, d.tab, d.word[:])
		d.n = 0
	}
	full := len(p) &^ (wordSize - 1)
	d.crc = update(d.crc, d.tab, p[:full])
	d.n = copy(d.word[:], p[full:])
	return
}

func (d *digest) Sum32() uint32 { return update(d.crc, d.tab, d.word[:d.n]) }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
