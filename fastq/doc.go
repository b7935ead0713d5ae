// Package fastq implements an incremental scanner and writer for the FASTQ
// sequence format: strict four-line records carrying per-residue quality
// scores alongside the residues. The scanner mirrors package fasta; see that
// package for the chunked scanning contract.
package fastq
