// 20 Dec 2017

// Package seq provides functions for sequences,
// which usually begin their lives in fasta format. It can
// read and write them.
//
// Named files are mapped into memory and parsed from there.
// Standard input is read in the normal way.
package seq

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

// Seq is one sequence with its comment.
type Seq struct {
	cmmt string
	seq  []byte
}

// A marker to say what type of sequence we have, protein, DNA, ...
type SeqType byte

const (
	Unchecked SeqType = iota // Has not been looked at yet
	Unknown                  // Really unknown, not a protein or nucleotide
	Protein                  //
	DNA                      //
	RNA                      //
	Ntide                    // Nucleotide
)

// String is for error messages
func (t SeqType) String() string {
	return [...]string{"unchecked", "unknown", "protein", "DNA", "RNA", "nucleotide"}[t]
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

// Options contains all the choices passed in from the caller.
type Options struct {
	Vbsty      int  // 0 is silent, 1 warnings, 2 says what was read
	RmvGapsRd  bool // Remove gaps upon reading
	RmvGapsWrt bool // Remove gaps on output
}

// Constants
const cmmt_char byte = '>' // and this introduces comments in fasta format

// SeqGrp is a group of sequences, with some additional information
// such as what type (protein, nucleotide) and the symbols that have
// been used.
type SeqGrp struct {
	symUsed  [256]bool // which symbols are actually used
	seqs     []Seq
	stype    SeqType
	usedKnwn bool // Do we know which symbols are used ?
}

// NewSeq makes a sequence from a comment and some symbols. The comment
// should not have the leading ">".
func NewSeq(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// GetCmmt returns the comment, without the leading ">"
func (s Seq) GetCmmt() string { return s.cmmt }

// Len
func (s Seq) Len() int { return len(s.seq) }

// Empty returns true if a sequence has no symbols
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 127).
func (seq *Seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\""
	s := seq.GetSeq()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(seq.GetCmmt(), 40))
		}
		if 'a' <= c && c <= 'z' {
			s[i] -= diff
		}
	}
	return nil
}

// String returns a sequence, with its comment at the start as
// a single string
func (s Seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmt_char, s.cmmt, s.seq)
}

// GetNSeq returns the number of sequences
func (seqgrp *SeqGrp) GetNSeq() int { return len(seqgrp.seqs) }

// GetSeqSlc return the slice of sequences
func (seqgrp *SeqGrp) GetSeqSlc() []Seq { return seqgrp.seqs }

// Bytes returns the sequences without their comments, in the form wanted
// by the aligners. The byte slices are shared, not copied.
func (seqgrp *SeqGrp) Bytes() [][]byte {
	b := make([][]byte, len(seqgrp.seqs))
	for i, s := range seqgrp.seqs {
		b[i] = s.seq
	}
	return b
}

// Upper uppercases all the members of a group of sequences.
func (seqgrp *SeqGrp) Upper() error {
	for i := range seqgrp.seqs {
		if err := seqgrp.seqs[i].Upper(); err != nil {
			return err
		}
	}
	seqgrp.usedKnwn = false // symbols have changed
	seqgrp.stype = Unchecked
	return nil
}

// Readfile takes a filename and reads sequences from it.
// If the name is empty or "-", we read from standard input.
// Otherwise the file is mapped into memory and read from there.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	var seqgrp = new(SeqGrp)
	if fname == "" || fname == "-" {
		if err := ReadFasta(os.Stdin, seqgrp, s_opts); err != nil {
			return seqgrp, err
		}
		report(seqgrp, "standard input", s_opts)
		return seqgrp, nil
	}

	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	var rdr io.Reader
	if fi.Size() == 0 { // cannot map an empty file
		rdr = bytes.NewReader(nil)
	} else {
		mm, err := mmap.Map(fp, mmap.RDONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", fname, err)
		}
		defer mm.Unmap()
		rdr = bytes.NewReader(mm)
	}

	if err := ReadFasta(rdr, seqgrp, s_opts); err != nil {
		return seqgrp, fmt.Errorf("%s: %w", fname, err)
	}
	report(seqgrp, fname, s_opts)
	return seqgrp, nil
}

// report says what was read, if the verbosity is high enough.
func report(seqgrp *SeqGrp, from string, s_opts *Options) {
	if s_opts.Vbsty < 2 {
		return
	}
	fmt.Fprintln(os.Stderr, "read", seqgrp.GetNSeq(), "sequences from", from)
}

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file. An empty filename or "-" means
// standard output. With RmvGapsWrt, gaps are left out.
// Empty sequences are skipped.
func WriteToF(outseq_fname string, seq_set []Seq, s_opts *Options) (err error) {
	var outfile_fp io.Writer
	switch {
	case outseq_fname == "" || outseq_fname == "-":
		outfile_fp = os.Stdout
	default:
		t, ferr := os.Create(outseq_fname)
		if ferr != nil {
			return fmt.Errorf("Creating output sequence file: %w", ferr)
		}
		defer func() {
			if cerr := t.Close(); err == nil {
				err = cerr
			}
		}()
		outfile_fp = t
	}
	return WriteFasta(outfile_fp, seq_set, s_opts)
}

// WriteFasta writes sequences to an io.Writer, 60 symbols per line.
// What I could change: If we are removing gaps, we make a buffer which grows
// character by character. I could make a buffer beforehand
// and grow as necessary.
func WriteFasta(w io.Writer, seq_set []Seq, s_opts *Options) error {
	const c_per_line = 60
	var t []byte
	for _, seq := range seq_set {
		if seq.Empty() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%c%s\n", cmmt_char, seq.GetCmmt()); err != nil {
			return err
		}

		s := seq.GetSeq()
		if s_opts.RmvGapsWrt { // we have to remove gap characters on output
			t = t[:0]
			for _, c := range s {
				if c != GapChar {
					t = append(t, c)
				}
			}
			s = t
		}
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			if _, err := fmt.Fprintf(w, "%s\n", s[:c_per_line]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", s); err != nil {
			return err
		}
	}
	return nil
}

// Bytes2Seqs gives names to a set of sequences, so they can be written.
// Names are prefix followed by the index, counting from 0.
func Bytes2Seqs(bb [][]byte, prefix string) []Seq {
	seqs := make([]Seq, len(bb))
	for i, b := range bb {
		seqs[i] = Seq{cmmt: fmt.Sprint(prefix, i), seq: b}
	}
	return seqs
}
