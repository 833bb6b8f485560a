package sheetload

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/cockroachdb/sheetcmp/sheet"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
)

// Detect picks a loader from the first bytes of the input. Zip archives are
// read as xlsx workbooks and anything else as delimited text with inferred
// types. Legacy compound-document workbooks are rejected.
type Detect struct {
	// Sheet is passed on to the XLSX loader.
	Sheet string
}

var _ Loader = (*Detect)(nil)

func (d *Detect) Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(oleMagic))
	if err != nil && err != io.EOF {
		return nil, unreadable(err, name)
	}
	switch {
	case bytes.HasPrefix(magic, zipMagic):
		return (&XLSX{Sheet: d.Sheet}).Load(ctx, name, br)
	case bytes.HasPrefix(magic, oleMagic):
		return nil, unreadablef(name, "legacy .xls workbooks are not supported; save the file as .xlsx")
	}
	return (&CSV{InferTypes: true}).Load(ctx, name, br)
}
