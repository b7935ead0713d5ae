// Package buffer implements the chunked read window the format parsers scan
// over.
package buffer

import "io"

// DefaultSize is the chunk size used when New is given a size of zero or
// less.
const DefaultSize = 64 * 1024

// maxConsecutiveEmptyReads bounds how many times Refill tolerates a reader
// returning (0, nil) before giving up with io.ErrNoProgress.
const maxConsecutiveEmptyReads = 100

// Buffer is a growable window over an io.Reader, filled one chunk at a time.
// Parsed bytes are released with Consume; Refill drops them and reads more
// from the source, growing the window when an unconsumed record spans the
// whole of it.
//
// Slices returned by Remaining alias the window and are invalidated by the
// next Refill or Compact.
type Buffer struct {
	r        io.Reader
	buf      []byte
	off      int
	last     bool
	consumed int64
}

// New returns a Buffer reading from r in chunks of the given size. No bytes
// are read until the first Refill.
func New(r io.Reader, size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Buffer{
		r:   r,
		buf: make([]byte, 0, size),
	}
}

// Refill compacts the window and reads the next chunk from the source.
// Reaching the end of the source is not an error; it marks the Buffer as
// holding the final chunk. Once final, Refill does nothing.
func (b *Buffer) Refill() error {
	if b.last {
		return nil
	}

	b.Compact()

	// A record spanning the whole window leaves no room to read into.
	if len(b.buf) == cap(b.buf) {
		grown := make([]byte, len(b.buf), 2*cap(b.buf))
		copy(grown, b.buf)
		b.buf = grown
	}

	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := b.r.Read(b.buf[len(b.buf):cap(b.buf)])
		b.buf = b.buf[:len(b.buf)+n]

		if err == io.EOF {
			b.last = true
			return nil
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return io.ErrNoProgress
}

// Remaining returns the unconsumed window. The slice is only valid until the
// next Refill or Compact.
func (b *Buffer) Remaining() []byte {
	return b.buf[b.off:]
}

// Consume releases the first n bytes of the window. It panics when n
// overruns the window.
func (b *Buffer) Consume(n int) {
	if n < 0 || n > len(b.buf)-b.off {
		panic("buffer: consume past end of window")
	}
	b.off += n
	b.consumed += int64(n)
}

// Compact drops consumed bytes, moving the window to the front of its
// backing array. The window's contents are unchanged.
func (b *Buffer) Compact() {
	if b.off == 0 {
		return
	}
	n := copy(b.buf, b.buf[b.off:])
	b.buf = b.buf[:n]
	b.off = 0
}

// Last reports whether the window holds the final chunk of the source. It
// never reverts to false once set.
func (b *Buffer) Last() bool {
	return b.last
}

// Consumed returns the total number of bytes released over the Buffer's
// lifetime.
func (b *Buffer) Consumed() int64 {
	return b.consumed
}
