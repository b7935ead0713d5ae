package sequence

import (
	"fmt"
	"strings"
)

// contextSize bounds how much surrounding input a ParseError carries.
const contextSize = 16

// ErrorKind classifies parse failures.
type ErrorKind uint8

const (
	// ErrorKindInvalidHeader marks input whose leading byte matches no known
	// format, or a record header that breaks its format's framing.
	ErrorKindInvalidHeader ErrorKind = iota
	// ErrorKindInvalidRecord marks a record whose body is structurally broken.
	ErrorKindInvalidRecord
	// ErrorKindPrematureEOF marks input that stopped mid-record or carried
	// trailing bytes that belong to no record.
	ErrorKindPrematureEOF
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidHeader:
		return "invalid header"
	case ErrorKindInvalidRecord:
		return "invalid record"
	case ErrorKindPrematureEOF:
		return "premature EOF"
	default:
		return "unknown"
	}
}

// ParseError describes malformed input. It is the only error the scanners
// produce themselves; failures of the underlying reader pass through
// untouched.
type ParseError struct {
	Msg  string
	Kind ErrorKind
	// Record is the one-based index of the record being parsed when the
	// failure occurred. Zero marks failures before any record was read,
	// such as an unrecognized leading byte.
	Record uint64
	// Context holds up to 16 bytes of input surrounding the failure.
	Context string
}

// NewParseError returns a ParseError with no record index or context.
func NewParseError(msg string, kind ErrorKind) *ParseError {
	return &ParseError{Msg: msg, Kind: kind}
}

// WithContext attaches surrounding input to help locate the failure,
// truncated to 16 bytes. It returns the receiver.
func (e *ParseError) WithContext(b []byte) *ParseError {
	if len(b) > contextSize {
		b = b[:contextSize]
	}
	e.Context = string(b)
	return e
}

// WithRecord sets the one-based record index. It returns the receiver.
func (e *ParseError) WithRecord(n uint64) *ParseError {
	e.Record = n
	return e
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("sequence: ")
	b.WriteString(e.Msg)
	fmt.Fprintf(&b, " (%s, record %d", e.Kind, e.Record)
	if e.Context != "" {
		fmt.Fprintf(&b, ", near %q", e.Context)
	}
	b.WriteString(")")
	return b.String()
}

// CheckEnd reports whether a record stream may stop at tail. A stream may
// only stop on a final chunk, and only line break bytes may trail the last
// record.
func CheckEnd(tail []byte, last bool) error {
	if !last {
		return NewParseError("File ended abruptly", ErrorKindPrematureEOF)
	}
	for _, c := range tail {
		if c != '\r' && c != '\n' {
			return NewParseError("File had extra data past end of records", ErrorKindPrematureEOF).
				WithContext(tail)
		}
	}
	return nil
}
