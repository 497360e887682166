// Oct 2026

// Package report prints alignments, scores and profiles as plain text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/nwprof/pkg/align"
	"github.com/andrew-torda/nwprof/pkg/profile"
)

// prntr remembers the first error, so a long report can be written
// and checked once at the end.
type prntr struct {
	w   io.Writer
	err error
}

func (p *prntr) printf(format string, a ...interface{}) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, a...)
	}
}

func (p *prntr) println(a ...interface{}) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, a...)
	}
}

// FormatProb writes a probability as the shortest decimal that reads
// back exactly, but always with a decimal point, so 1 is "1.0" and
// a half is "0.5".
func FormatProb(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Header starts a section, with a blank line before it.
func Header(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "\n--- %s ---\n", title)
	return err
}

// WriteSeqs prints sequences, one per line.
func WriteSeqs(w io.Writer, seqs [][]byte) error {
	p := prntr{w: w}
	for _, s := range seqs {
		p.printf("%s\n", s)
	}
	return p.err
}

// WriteProfile prints the emission probabilities of each column.
func WriteProfile(w io.Writer, cols []profile.Column) error {
	p := prntr{w: w}
	for i, c := range cols {
		p.printf("Position %d - Emission Probabilities:\n", i)
		for j, f := range c {
			if j > 0 {
				p.printf(", ")
			}
			p.printf("%s: %s", profile.Labels[j], FormatProb(f))
		}
		p.println()
	}
	return p.err
}

// WriteEntropy prints the entropy of each column.
func WriteEntropy(w io.Writer, cols []profile.Column, gapsAreChar bool) error {
	p := prntr{w: w}
	for i, c := range cols {
		p.printf("Position %d - Entropy: %.3f\n", i, profile.Entropy(c, gapsAreChar))
	}
	return p.err
}

// WritePair prints the score of sequences i and j and their
// alignment, with a line marking identical positions.
func WritePair(w io.Writer, i, j int, pair align.Pair, score int) error {
	p := prntr{w: w}
	p.printf("Alignment score between Seq%d and Seq%d: %d\n", i, j, score)
	p.println("Aligned Sequences:")
	p.printf("%s\n", pair)
	return p.err
}

// WritePairs prints every result from align.AllPairs.
func WritePairs(w io.Writer, res []align.PairResult) error {
	for _, r := range res {
		if err := WritePair(w, r.I, r.J, r.Pair, r.Score); err != nil {
			return err
		}
	}
	return nil
}

// WriteScore prints a score and the two aligned sequences, without
// the match line.
func WriteScore(w io.Writer, pair align.Pair, score int) error {
	p := prntr{w: w}
	p.printf("Alignment score: %d\n", score)
	p.println("Aligned Sequences:")
	p.printf("%s\n%s\n", pair.A, pair.B)
	return p.err
}
