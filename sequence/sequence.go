package sequence

// A Sequence is one parsed record: the identifier from the header line, the
// residues with line breaks removed, and the per-residue quality scores for
// formats that carry them. Qual is nil for FASTA records.
//
// Sequences handed to streaming callbacks alias the parser's internal buffer
// and are only valid until the callback returns. Use Copy to retain one.
type Sequence struct {
	ID   []byte
	Seq  []byte
	Qual []byte
}

// Copy returns a Sequence backed by freshly allocated memory.
func (s *Sequence) Copy() *Sequence {
	out := &Sequence{
		ID:  append([]byte(nil), s.ID...),
		Seq: append([]byte(nil), s.Seq...),
	}
	if s.Qual != nil {
		out.Qual = append([]byte(nil), s.Qual...)
	}
	return out
}

// complement maps an IUPAC nucleotide code to its complement. Case is
// preserved and anything unrecognized maps to zero.
var complement [256]byte

func init() {
	pairs := []struct{ code, comp byte }{
		{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'}, {'U', 'A'},
		{'R', 'Y'}, {'Y', 'R'}, {'S', 'S'}, {'W', 'W'},
		{'K', 'M'}, {'M', 'K'}, {'B', 'V'}, {'V', 'B'},
		{'D', 'H'}, {'H', 'D'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complement[p.code] = p.comp
		complement[p.code+'a'-'A'] = p.comp + 'a' - 'A'
	}
}

// ReverseComplement returns the reverse complement of the residues using
// IUPAC nucleotide codes. Case is preserved and unrecognized bytes become
// 'N'. The receiver is left untouched.
func (s *Sequence) ReverseComplement() []byte {
	n := len(s.Seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[s.Seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}
