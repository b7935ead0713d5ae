package needletail

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Magic bytes of the supported compression containers.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DecompressionReader wraps r with the decompressor its leading magic bytes
// call for: gzip, bzip2, xz or zstandard. A stream in no known container
// passes through untouched, so the result can always be handed straight to
// ParseSequences.
//
// When the result implements io.Closer, closing it releases the
// decompressor's resources; the underlying reader is never closed.
func DecompressionReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("error opening gzip stream: %w", err)
		}
		return zr, nil
	case bytes.HasPrefix(magic, bzip2Magic):
		return bzip2.NewReader(br), nil
	case bytes.HasPrefix(magic, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("error opening xz stream: %w", err)
		}
		return xr, nil
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("error opening zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return br, nil
	}
}

// ParseFile opens path and streams its records the way ParseSequences does,
// transparently decompressing the containers DecompressionReader knows. The
// path "-" reads standard input.
func ParseFile(path string, ftCallback FormatCallback, cb Callback, opts ...Option) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	dr, err := DecompressionReader(r)
	if err != nil {
		return err
	}
	if c, ok := dr.(io.Closer); ok {
		defer c.Close()
	}

	return ParseSequences(dr, ftCallback, cb, opts...)
}
