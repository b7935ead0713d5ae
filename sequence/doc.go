// Package sequence defines the value model shared by the FASTA and FASTQ
// parsers: the Sequence record type, the ParseError type raised on malformed
// input, and helpers for normalizing the line breaks found inside records.
//
// Basic usage:
//
//	seq := sequence.Sequence{
//	    ID:  []byte("read1"),
//	    Seq: []byte("ACGTACGT"),
//	}
//
//	rc := seq.ReverseComplement()
//	fmt.Printf("%s\n", rc)
//
//	// Distinguish malformed input from reader failures
//	var parseErr *sequence.ParseError
//	if errors.As(err, &parseErr) {
//	    fmt.Printf("bad record %d: %s\n", parseErr.Record, parseErr.Msg)
//	}
package sequence
