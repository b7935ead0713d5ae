package fastq

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/luizirber/needletail/sequence"
)

var (
	sentinel  = []byte{'@'}
	newline   = []byte{'\n'}
	separator = []byte("\n+\n")

	// ErrNoQuality is returned by Write when handed a record without
	// quality scores; such records have no FASTQ representation.
	ErrNoQuality = errors.New("fastq: record has no quality scores")
)

// Record is one FASTQ record located inside a scan window. All fields alias
// the window they were scanned from, with line terminators stripped.
type Record struct {
	ID   []byte
	Seq  []byte
	Qual []byte
}

// Sequence materializes the record. FASTQ residues never wrap, so no
// normalization is needed.
func (r Record) Sequence() *sequence.Sequence {
	return &sequence.Sequence{ID: r.ID, Seq: r.Seq, Qual: r.Qual}
}

// Reader scans FASTQ records out of a byte window. Records are strict
// four-line blocks: '@' and the id, the residues, a '+' line, and the
// quality scores. The window must begin at a record boundary.
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
// marks the chunk that holds the end of the stream.
func NewChunkReader(buf []byte, last bool) *Reader {
	return &Reader{buf: buf, last: last}
}

// Next scans the next record out of the window. It returns ok=false with a
// nil error when the window holds no further complete record; on a chunk
// that is not the last, that means the caller should refill and rescan.
func (r *Reader) Next() (rec Record, ok bool, err error) {
	buf := r.buf[r.pos:]
	// Trailing line breaks are not a record; Finish checks whether the
	// stream may end on them.
	if len(bytes.Trim(buf, "\r\n")) == 0 {
		return Record{}, false, nil
	}
	if buf[0] != '@' {
		return Record{}, false, sequence.NewParseError("Record header does not start with '@'", sequence.ErrorKindInvalidHeader).
			WithContext(buf)
	}

	idEnd := bytes.IndexByte(buf, '\n') + 1
	if idEnd == 0 {
		return Record{}, false, nil
	}
	id := sequence.TrimCR(buf[1 : idEnd-1])

	seqEnd := bytes.IndexByte(buf[idEnd:], '\n') + 1
	if seqEnd == 0 {
		return Record{}, false, nil
	}
	seqEnd += idEnd
	seq := sequence.TrimCR(buf[idEnd : seqEnd-1])

	plusEnd := bytes.IndexByte(buf[seqEnd:], '\n') + 1
	if plusEnd == 0 {
		return Record{}, false, nil
	}
	plusEnd += seqEnd
	plus := sequence.TrimCR(buf[seqEnd : plusEnd-1])
	if len(plus) == 0 || plus[0] != '+' {
		return Record{}, false, sequence.NewParseError("Record missing '+' line", sequence.ErrorKindInvalidRecord).
			WithContext(id)
	}

	// The quality line may run to the end of the input without a
	// terminator, like the last line of a FASTA file.
	var qualEnd int
	switch i := bytes.IndexByte(buf[plusEnd:], '\n'); {
	case i >= 0:
		qualEnd = plusEnd + i + 1
	case r.last:
		qualEnd = len(buf)
	default:
		return Record{}, false, nil
	}

	qual := buf[plusEnd:qualEnd]
	if n := len(qual); n > 0 && qual[n-1] == '\n' {
		qual = qual[:n-1]
	}
	qual = sequence.TrimCR(qual)

	if len(qual) != len(seq) {
		return Record{}, false, sequence.NewParseError("Quality length does not match sequence length", sequence.ErrorKindInvalidRecord).
			WithContext(id)
	}

	r.pos += qualEnd
	return Record{ID: id, Seq: seq, Qual: qual}, true, nil
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
func (r *Reader) Finish() error {
	return sequence.CheckEnd(r.buf[r.pos:], r.last)
}

// Write writes rec to w in FASTQ framing: the '@' header line, the
// residues, a bare '+' line, the quality scores. It returns the number of
// bytes written.
func Write(w io.Writer, rec Record) (int64, error) {
	if rec.Qual == nil {
		return 0, ErrNoQuality
	}

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

	n, err = w.Write(separator)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing separator: %w", err)
	}

	n, err = w.Write(rec.Qual)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing quality: %w", err)
	}

	n, err = w.Write(newline)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("error writing trailing newline: %w", err)
	}

	return total, nil
}
