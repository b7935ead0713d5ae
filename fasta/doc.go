// Package fasta implements an incremental scanner and writer for the FASTA
// sequence format. Records open with a '>' sentinel at the start of a line;
// the residues run until the next sentinel line or the end of the input, and
// may wrap across any number of lines.
//
// The scanner works over byte windows rather than an io.Reader, so that a
// caller refilling a window chunk by chunk can tell an incomplete trailing
// record apart from a malformed one:
//
//	r := fasta.NewChunkReader(window, last)
//	for {
//	    rec, ok, err := r.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if !ok {
//	        break // refill the window and rescan
//	    }
//	    fmt.Printf("%s: %d bytes\n", rec.ID, len(rec.Seq))
//	}
//
//	// Writing a record
//	n, err := fasta.Write(&buf, fasta.Record{
//	    ID:  []byte("read1"),
//	    Seq: []byte("ACGT"),
//	})
//
// Records returned by Next alias the window; materialize them with
// Record.Sequence before the window is refilled.
package fasta
