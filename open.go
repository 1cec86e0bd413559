package fbdecode

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/fbdecode/dump"
	"github.com/klauspost/compress/zstd"
)

const (
	dumpExt = ".fbd"
	zstdExt = ".zst"
)

// isDump reports whether the file name looks like a dump, optionally
// compressed with zstd.
func isDump(file string) bool {
	return filepath.Ext(strings.TrimSuffix(file, zstdExt)) == dumpExt
}

// baseName strips the dump and compression extensions from file.
func baseName(file string) string {
	return strings.TrimSuffix(strings.TrimSuffix(file, zstdExt), dumpExt)
}

// readDump reads the dump in file, decompressing it first if it ends with
// .zst. It also returns the SHA-1 of the uncompressed dump.
func readDump(file string) (*dump.Dump, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(file) == zstdExt {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, "", err
		}
		defer zr.Close()
		r = zr
	}

	h := sha1.New()
	d, err := dump.Read(io.TeeReader(r, h))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}

	return d, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// OutputName returns the name of the image written for the dump in file.
func OutputName(file string, format OutputFormat) string {
	return baseName(file) + format.Ext()
}
