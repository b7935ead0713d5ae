package fasta

import (
	"bytes"
	"fmt"
	"io"

	"github.com/luizirber/needletail/sequence"
)

var (
	sentinel = []byte{'>'}
	newline  = []byte{'\n'}
)

// Record is one FASTA record located inside a scan window. ID is the header
// line after the '>' sentinel; Seq holds the raw residue bytes, line breaks
// included, with the record's own line terminator stripped. Both alias the
// window they were scanned from.
type Record struct {
	ID  []byte
	Seq []byte
}

// Sequence materializes the record, collapsing line-wrapped residues into
// one contiguous run.
func (r Record) Sequence() *sequence.Sequence {
	return &sequence.Sequence{ID: r.ID, Seq: sequence.StripWhitespace(r.Seq)}
}

// Reader scans FASTA records out of a byte window. The window must begin at
// a record boundary, on a '>' sentinel.
type Reader struct {
	buf  []byte
	pos  int
	last bool
}

// NewReader returns a Reader over a complete input.
func NewReader(buf []byte) *Reader {
	return NewChunkReader(buf, true)
}

// NewChunkReader returns a Reader over one chunk of a larger stream. last
// marks the chunk that holds the end of the stream; without it a record
// cannot claim the tail of the window, since the following chunk may open
// with more of it.
func NewChunkReader(buf []byte, last bool) *Reader {
	return &Reader{buf: buf, last: last}
}

// Next scans the next record out of the window. It returns ok=false with a
// nil error when the window holds no further complete record; on a chunk
// that is not the last, that means the caller should refill and rescan.
//
// The returned record aliases the window and is only valid while the window
// is.
func (r *Reader) Next() (rec Record, ok bool, err error) {
	buf := r.buf[r.pos:]
	// Trailing line breaks are not a record; Finish checks whether the
	// stream may end on them.
	if len(bytes.Trim(buf, "\r\n")) == 0 {
		return Record{}, false, nil
	}
	if buf[0] != '>' {
		return Record{}, false, sequence.NewParseError("Record header does not start with '>'", sequence.ErrorKindInvalidHeader).
			WithContext(buf)
	}

	idEnd := bytes.IndexByte(buf, '\n') + 1
	if idEnd == 0 {
		return Record{}, false, nil
	}
	id := sequence.TrimCR(buf[1 : idEnd-1])

	var seqEnd int
	switch i := nextSentinel(buf[idEnd:]); {
	case i >= 0:
		seqEnd = idEnd + i
	case r.last:
		seqEnd = len(buf)
	default:
		return Record{}, false, nil
	}
	if seqEnd == idEnd {
		return Record{}, false, sequence.NewParseError("Sequence completely empty", sequence.ErrorKindPrematureEOF).
			WithContext(id)
	}

	seq := buf[idEnd:seqEnd]
	if seq[len(seq)-1] == '\n' {
		seq = seq[:len(seq)-1]
	}
	seq = sequence.TrimCR(seq)

	r.pos += seqEnd
	return Record{ID: id, Seq: seq}, true, nil
}

// NextSequence scans the next record and materializes it.
func (r *Reader) NextSequence() (*sequence.Sequence, bool, error) {
	rec, ok, err := r.Next()
	if !ok || err != nil {
		return nil, false, err
	}
	return rec.Sequence(), true, nil
}

// Used returns how many window bytes the records returned so far occupied,
// line terminators included.
func (r *Reader) Used() int {
	return r.pos
}

// Finish reports whether the stream may stop at the point scanning reached.
// Anything but line breaks after the last record is an error, as is ending
// on a chunk that was not the final one.
func (r *Reader) Finish() error {
	return sequence.CheckEnd(r.buf[r.pos:], r.last)
}

// nextSentinel returns the offset just past the newline that precedes the
// next '>' at the start of a line, or -1. A '>' anywhere else is residue
// data.
func nextSentinel(buf []byte) int {
	off := 0
	for {
		i := bytes.IndexByte(buf[off:], '\n')
		if i < 0 {
			return -1
		}
		off += i + 1
		if off < len(buf) && buf[off] == '>' {
			return off
		}
		if off == len(buf) {
			return -1
		}
	}
}

// Write writes rec to w in FASTA framing: '>', the id, a newline, the
// residues, a newline. It returns the number of bytes written.
func Write(w io.Writer, rec Record) (int64, error) {
	var total int64

	n, err := w.Write(sentinel)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing sentinel: %w", err)
	}

	n, err = w.Write(rec.ID)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing id: %w", err)
	}

	n, err = w.Write(newline)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing header newline: %w", err)
	}

	n, err = w.Write(rec.Seq)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing sequence: %w", err)
	}

	n, err = w.Write(newline)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing trailing newline: %w", err)
	}

	return total, nil
}
