package needletail

import (
	"errors"
	"io"
	"iter"

	"github.com/luizirber/needletail/buffer"
	"github.com/luizirber/needletail/fasta"
	"github.com/luizirber/needletail/fastq"
	"github.com/luizirber/needletail/sequence"
)

// Format identifies a supported sequence format.
type Format uint8

const (
	FormatFASTA Format = iota
	FormatFASTQ
)

func (f Format) String() string {
	switch f {
	case FormatFASTA:
		return "FASTA"
	case FormatFASTQ:
		return "FASTQ"
	default:
		return "unknown"
	}
}

// FormatCallback receives the sniffed format, once, before the first record
// is delivered.
type FormatCallback func(Format)

// Callback receives each parsed record, in stream order. Returning a
// non-nil error stops the stream; ParseSequences hands that error back
// unchanged.
//
// The Sequence aliases the parser's read window and is only valid for the
// duration of the call. Use Sequence.Copy to retain one.
type Callback func(*sequence.Sequence) error

// ErrNilCallback is returned when ParseSequences is given no record
// callback. The format callback is optional; the record callback is not.
var ErrNilCallback = errors.New("needletail: record callback is required")

// errStopIteration aborts the parse when a Records consumer breaks out of
// its loop early. It never escapes to callers.
var errStopIteration = errors.New("needletail: stop iteration")

// recordReader is the chunk-scanning surface shared by the format parsers.
type recordReader interface {
	NextSequence() (*sequence.Sequence, bool, error)
	Used() int
	Finish() error
}

// ParseSequences detects the format of r from its first byte, reports it
// through ftCallback (when non-nil), and streams every record to cb. The
// input is read one chunk at a time; memory use stays bounded by the
// longest single record.
//
// Malformed input surfaces as a *sequence.ParseError carrying the index of
// the record being parsed. Failures of r itself are returned unchanged.
func ParseSequences(r io.Reader, ftCallback FormatCallback, cb Callback, opts ...Option) error {
	if cb == nil {
		return ErrNilCallback
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store := buffer.New(r, o.bufferSize)
	if err := store.Refill(); err != nil {
		return err
	}

	format, err := sniff(store.Remaining())
	if err != nil {
		return err
	}
	if ftCallback != nil {
		ftCallback(format)
	}

	var newReader func(buf []byte, last bool) recordReader
	switch format {
	case FormatFASTA:
		newReader = func(buf []byte, last bool) recordReader { return fasta.NewChunkReader(buf, last) }
	case FormatFASTQ:
		newReader = func(buf []byte, last bool) recordReader { return fastq.NewChunkReader(buf, last) }
	}

	var count uint64
	for {
		rec := newReader(store.Remaining(), store.Last())
		for {
			seq, ok, err := rec.NextSequence()
			if err != nil {
				return attribute(err, count)
			}
			if !ok {
				break
			}
			count++
			if err := cb(seq); err != nil {
				return err
			}
		}
		store.Consume(rec.Used())

		if store.Last() {
			return attribute(rec.Finish(), count)
		}
		if err := store.Refill(); err != nil {
			return err
		}
	}
}

// sniff determines the stream format from the leading byte of the first
// chunk.
func sniff(window []byte) (Format, error) {
	if len(window) > 0 {
		switch window[0] {
		case '>':
			return FormatFASTA, nil
		case '@':
			return FormatFASTQ, nil
		}
	}
	return 0, sequence.NewParseError("Could not detect file type", sequence.ErrorKindInvalidHeader).
		WithContext(window)
}

// attribute stamps parse failures with the index of the record they
// occurred in, counting from one. Everything else passes through untouched.
func attribute(err error, parsed uint64) error {
	var parseErr *sequence.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.WithRecord(parsed + 1)
	}
	return err
}

// Records returns an iterator over every record in r, in stream order. A
// malformed stream yields the terminal error as the final pair; breaking
// out of the loop early just stops the parse.
//
//	for seq, err := range needletail.Records(f) {
//	    if err != nil {
//	        return err
//	    }
//	    process(seq)
//	}
//
// Like the Callback argument of ParseSequences, yielded Sequences are only
// valid until the next iteration.
func Records(r io.Reader, opts ...Option) iter.Seq2[*sequence.Sequence, error] {
	return func(yield func(*sequence.Sequence, error) bool) {
		err := ParseSequences(r, nil, func(seq *sequence.Sequence) error {
			if !yield(seq, nil) {
				return errStopIteration
			}
			return nil
		}, opts...)
		if err != nil && !errors.Is(err, errStopIteration) {
			yield(nil, err)
		}
	}
}
