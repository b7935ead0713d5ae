package fasta_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/luizirber/needletail/fasta"
	"github.com/luizirber/needletail/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	id  string
	seq string
}

// drain scans every record out of r, failing the test on a parse error.
func drain(t *testing.T, r *fasta.Reader) []rec {
	t.Helper()
	var out []rec
	for {
		record, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, rec{id: string(record.ID), seq: string(record.Seq)})
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []rec
	}{
		{
			name:  "two records",
			input: ">test\nAGCT\n>test2\nGATC",
			want:  []rec{{id: "test", seq: "AGCT"}, {id: "test2", seq: "GATC"}},
		},
		{
			name:  "trailing newline",
			input: ">test\nAGCT\n>test2\nGATC\n",
			want:  []rec{{id: "test", seq: "AGCT"}, {id: "test2", seq: "GATC"}},
		},
		{
			name:  "wrapped residues keep interior breaks",
			input: ">test\nAGCT\nTCG\n>test2\nG",
			want:  []rec{{id: "test", seq: "AGCT\nTCG"}, {id: "test2", seq: "G"}},
		},
		{
			name:  "crlf line endings",
			input: ">test\r\nAGCT\r\n>test2\r\nGATC\r\n",
			want:  []rec{{id: "test", seq: "AGCT"}, {id: "test2", seq: "GATC"}},
		},
		{
			name:  "empty id and empty residues",
			input: ">\n\n>shine\nAGGAGGU",
			want:  []rec{{id: "", seq: ""}, {id: "shine", seq: "AGGAGGU"}},
		},
		{
			name:  "empty crlf records",
			input: ">\r\n\r\n>shine\r\nAGGAGGU",
			want:  []rec{{id: "", seq: ""}, {id: "shine", seq: "AGGAGGU"}},
		},
		{
			name:  "sentinel mid line is residue data",
			input: ">test\nAC>GT\n>test2\nG",
			want:  []rec{{id: "test", seq: "AC>GT"}, {id: "test2", seq: "G"}},
		},
		{
			name:  "bare trailing carriage return is stripped",
			input: ">test\r\nAGCT\r",
			want:  []rec{{id: "test", seq: "AGCT"}},
		},
		{
			name:  "single record without terminator",
			input: ">test\nACGT",
			want:  []rec{{id: "test", seq: "ACGT"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := drain(t, fasta.NewReader([]byte(tt.input)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextIncompleteChunk(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []rec
	}{
		{name: "bare sentinel", input: ">"},
		{name: "header without terminator", input: ">test"},
		{name: "header only", input: ">test\n"},
		{name: "residues may continue", input: ">test\nACG"},
		{name: "terminator but no following sentinel", input: ">test\nACGT\n"},
		{
			name:  "only the closed record is returned",
			input: ">test\nACGT\n>t2\nGG",
			want:  []rec{{id: "test", seq: "ACGT"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fasta.NewChunkReader([]byte(tt.input), false)
			got := drain(t, r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextEmptySequence(t *testing.T) {
	r := fasta.NewReader([]byte(">test\nACGT\n>test2\n"))

	_, ok, err := r.Next()
	require.True(t, ok)
	require.NoError(t, err)

	_, ok, err = r.Next()
	assert.False(t, ok)

	var parseErr *sequence.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Sequence completely empty", parseErr.Msg)
	assert.Equal(t, sequence.ErrorKindPrematureEOF, parseErr.Kind)
	assert.Equal(t, "test2", parseErr.Context)
}

func TestNextBadHeader(t *testing.T) {
	r := fasta.NewReader([]byte("this is not a fasta file"))

	_, ok, err := r.Next()
	assert.False(t, ok)

	var parseErr *sequence.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Record header does not start with '>'", parseErr.Msg)
	assert.Equal(t, sequence.ErrorKindInvalidHeader, parseErr.Kind)
	assert.Equal(t, "this is not a fa", parseErr.Context)
}

func TestUsed(t *testing.T) {
	r := fasta.NewChunkReader([]byte(">test\nAGCT\n>t2\nGG"), false)
	assert.Equal(t, 0, r.Used())

	_, ok, err := r.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, 11, r.Used())

	// The open trailing record claims nothing.
	_, ok, err = r.Next()
	require.False(t, ok)
	require.NoError(t, err)
	assert.Equal(t, 11, r.Used())
}

func TestFinish(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		last    bool
		wantErr string
	}{
		{
			name:  "all records consumed",
			input: ">test\nACGT\n",
			last:  true,
		},
		{
			name:  "line breaks may trail",
			input: ">test\nACGT\n\r\n\n",
			last:  true,
		},
		{
			name:  "window of only line breaks",
			input: "\n\r\n",
			last:  true,
		},
		{
			name:    "incomplete record on the final chunk",
			input:   ">test\nACGT\n>test2",
			last:    true,
			wantErr: "File had extra data past end of records",
		},
		{
			name:    "stream cut off before the final chunk",
			input:   ">test\nACGT\n",
			last:    false,
			wantErr: "File ended abruptly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fasta.NewChunkReader([]byte(tt.input), tt.last)
			for {
				_, ok, err := r.Next()
				if tt.last && tt.wantErr == "" {
					require.NoError(t, err)
				}
				if !ok {
					break
				}
			}

			err := r.Finish()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var parseErr *sequence.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantErr, parseErr.Msg)
			assert.Equal(t, sequence.ErrorKindPrematureEOF, parseErr.Kind)
		})
	}
}

func TestSequenceMaterialize(t *testing.T) {
	r := fasta.NewReader([]byte(">test\nAGCT\r\nTCG\n"))

	seq, ok, err := r.NextSequence()
	require.True(t, ok)
	require.NoError(t, err)

	assert.Equal(t, "test", string(seq.ID))
	assert.Equal(t, "AGCTTCG", string(seq.Seq))
	assert.Nil(t, seq.Qual)
}

var errWrite = errors.New("its a me errorio")

type mockWriter struct {
	errorCounter int
	counter      int
}

func (w *mockWriter) Write(p []byte) (n int, err error) {
	w.counter++
	if w.counter == w.errorCounter {
		return 0, errWrite
	}
	return len(p), nil
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name     string
		record   fasta.Record
		want     string
		wantSize int64
	}{
		{
			name:     "successful write",
			record:   fasta.Record{ID: []byte("read1"), Seq: []byte("ACGT")},
			want:     ">read1\nACGT\n",
			wantSize: 12,
		},
		{
			name:     "empty record",
			record:   fasta.Record{},
			want:     ">\n\n",
			wantSize: 3,
		},
		{
			name:     "wrapped residues written back verbatim",
			record:   fasta.Record{ID: []byte("read1"), Seq: []byte("AC\nGT")},
			want:     ">read1\nAC\nGT\n",
			wantSize: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			gotSize, err := fasta.Write(buf, tt.record)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantSize, gotSize)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteHandleError(t *testing.T) {
	tests := []struct {
		name               string
		writerCounterError int
		expectedWritten    int64
		expectedError      string
	}{
		{
			name:               "sentinel",
			writerCounterError: 1,
			expectedError:      "error writing sentinel: its a me errorio",
		},
		{
			name:               "id",
			writerCounterError: 2,
			expectedWritten:    1,
			expectedError:      "error writing id: its a me errorio",
		},
		{
			name:               "header newline",
			writerCounterError: 3,
			expectedWritten:    6,
			expectedError:      "error writing header newline: its a me errorio",
		},
		{
			name:               "sequence",
			writerCounterError: 4,
			expectedWritten:    7,
			expectedError:      "error writing sequence: its a me errorio",
		},
		{
			name:               "trailing newline",
			writerCounterError: 5,
			expectedWritten:    11,
			expectedError:      "error writing trailing newline: its a me errorio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := mockWriter{errorCounter: tt.writerCounterError}
			record := fasta.Record{ID: []byte("read1"), Seq: []byte("ACGT")}

			gotWritten, err := fasta.Write(&writer, record)

			assert.Equal(t, tt.expectedWritten, gotWritten)
			assert.EqualError(t, err, tt.expectedError)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := ">test\nAGCT\nTCG\n>test2\nG\n"

	var out bytes.Buffer
	r := fasta.NewReader([]byte(input))
	for {
		record, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		_, err = fasta.Write(&out, record)
		require.NoError(t, err)
	}

	assert.Equal(t, input, out.String())
}
