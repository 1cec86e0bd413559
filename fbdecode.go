/*
Package fbdecode converts framebuffer dump files into ordinary image files and
keeps a catalog of everything it has converted.

The decoding itself is done by the pixel, linear and tile packages which
work purely in memory; this package supplies the file handling around them.
*/
package fbdecode

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
)

var errEmptyImage = errors.New("fbdecode: dump decodes to an empty image")

// Converter converts dump files using a single output format.
type Converter struct {
	catalog *Catalog
	logger  *log.Logger
	format  OutputFormat
}

// New returns a Converter writing images in the given format. catalog may be
// nil in which case conversions are not recorded.
func New(catalog *Catalog, logger *log.Logger, format OutputFormat) *Converter {
	return &Converter{
		catalog: catalog,
		logger:  logger,
		format:  format,
	}
}

// ConvertFile decodes the dump in file in and writes it as an image to out.
func (c *Converter) ConvertFile(in, out string) error {
	d, sha, err := readDump(in)
	if err != nil {
		return err
	}

	m, err := d.Image()
	if err != nil {
		return err
	}
	if m.Bounds().Empty() {
		return fmt.Errorf("%s: %w", in, errEmptyImage)
	}

	if err := c.format.Save(out, m); err != nil {
		return err
	}
	c.logger.Printf("Converted \"%s\" (%s, %dx%d) to \"%s\"\n", in, d.Format, m.Bounds().Dx(), m.Bounds().Dy(), out)

	if c.catalog == nil {
		return nil
	}

	preview, err := Preview(m)
	if err != nil {
		return err
	}

	id, err := c.catalog.Add(Entry{
		Name:    filepath.Base(in),
		SHA1:    sha,
		Format:  d.Format,
		Width:   m.Bounds().Dx(),
		Height:  m.Bounds().Dy(),
		Preview: preview,
	})
	if err != nil {
		return err
	}
	c.logger.Printf("Catalogued \"%s\" as %s\n", in, id)

	return nil
}
