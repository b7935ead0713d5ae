package sequence

import "bytes"

// StripWhitespace removes every newline and carriage return from b, joining
// line-wrapped residues into one contiguous run. Input without line breaks is
// returned as-is, without copying. The result is stable: stripping an already
// stripped slice changes nothing.
func StripWhitespace(b []byte) []byte {
	i := bytes.IndexAny(b, "\r\n")
	if i < 0 {
		return b
	}
	out := make([]byte, i, len(b))
	copy(out, b[:i])
	for _, c := range b[i:] {
		if c == '\n' || c == '\r' {
			continue
		}
		out = append(out, c)
	}
	return out
}

// TrimCR strips a single trailing carriage return, left behind when a CRLF
// terminated line is split on '\n'.
func TrimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}
