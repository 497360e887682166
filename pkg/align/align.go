// Feb 2018, rewritten for linear gaps Oct 2026

// Package align does pair-wise global alignments of nucleotide sequences
// (Needleman and Wunsch, J. Mol. Biol. (1970) 48, 443-453) with a linear
// gap penalty. We keep the full score matrix and walk back through it,
// so there is no separate matrix of directions.
// An Aligner holds its score matrix, so it can be re-used over different
// alignments without allocating each time. It must not be shared between
// goroutines.
package align

import (
	"github.com/andrew-torda/nwprof/matrix"
	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

// Scoring holds the match, mismatch and gap values. A gap costs Gap for
// each column, so Gap is normally negative. It is passed by value and
// never changed, so it can go to as many goroutines as you like.
type Scoring struct {
	Match    int // identical symbols
	Mismatch int // different symbols
	Gap      int // per gap column, no opening penalty
}

// DefaultScoring is +1 for a match, -1 for a mismatch, -2 per gap.
func DefaultScoring() Scoring {
	return Scoring{Match: 1, Mismatch: -1, Gap: -2}
}

// Subst is the score for putting a opposite b.
func (sc Scoring) Subst(a, b byte) int {
	if a == b {
		return sc.Match
	}
	return sc.Mismatch
}

// Pair is a pair of aligned sequences. Both members have the same length
// and gaps are GapChar.
type Pair struct {
	A, B []byte
}

// Len is the number of columns in the alignment.
func (p Pair) Len() int { return len(p.A) }

// MatchLine returns a line with '|' wherever the two aligned symbols are
// the same and are not gaps, and a space everywhere else.
func (p Pair) MatchLine() []byte {
	n := len(p.A)
	if len(p.B) < n {
		n = len(p.B)
	}
	line := make([]byte, n)
	for i := range line {
		if a := p.A[i]; a == p.B[i] && a != GapChar {
			line[i] = '|'
		} else {
			line[i] = ' '
		}
	}
	return line
}

// String gives the two sequences with the match line between them.
func (p Pair) String() string {
	return string(p.A) + "\n" + string(p.MatchLine()) + "\n" + string(p.B)
}

// Fill puts the scores for aligning s (rows) and t (columns) into grid,
// which is resized to len(s)+1 x len(t)+1. If grid is nil, a new one is
// made. Row and column zero are the cost of aligning a prefix against
// nothing but gaps.
func Fill(s, t []byte, sc Scoring, grid *matrix.IMatrix2d) *matrix.IMatrix2d {
	if grid == nil {
		grid = new(matrix.IMatrix2d)
	}
	nrow, ncol := len(s)+1, len(t)+1
	mat := grid.Resize(nrow, ncol).Mat
	for i := 0; i < nrow; i++ {
		mat[i][0] = i * sc.Gap
	}
	for j := 0; j < ncol; j++ {
		mat[0][j] = j * sc.Gap
	}
	for i := 1; i < nrow; i++ {
		prev, row := mat[i-1], mat[i]
		cs := s[i-1]
		for j := 1; j < ncol; j++ {
			best := prev[j-1] + sc.Subst(cs, t[j-1])
			if up := prev[j] + sc.Gap; up > best {
				best = up
			}
			if left := row[j-1] + sc.Gap; left > best {
				best = left
			}
			row[j] = best
		}
	}
	return grid
}

// Traceback walks from the bottom right corner of a filled grid back
// to the origin and returns the aligned pair.
// When there is a tie, a diagonal step wins over a step up (symbol from
// s, gap in t) and that wins over a step left (gap in s, symbol from t).
// Changing that order picks a different one of the equally good
// alignments.
func Traceback(s, t []byte, grid *matrix.IMatrix2d, sc Scoring) Pair {
	mat := grid.Mat
	bigger := len(s)
	if len(t) > bigger {
		bigger = len(t)
	}
	outs := make([]byte, 0, bigger+bigger/10)
	outt := make([]byte, 0, bigger+bigger/10)
	i, j := len(s), len(t)
	for i > 0 || j > 0 {
		here := mat[i][j]
		switch {
		case i > 0 && j > 0 && here == mat[i-1][j-1]+sc.Subst(s[i-1], t[j-1]):
			outs = append(outs, s[i-1])
			outt = append(outt, t[j-1])
			i--
			j--
		case i > 0 && here == mat[i-1][j]+sc.Gap:
			outs = append(outs, s[i-1])
			outt = append(outt, GapChar)
			i--
		default:
			outs = append(outs, GapChar)
			outt = append(outt, t[j-1])
			j--
		}
	}
	reverse(outs)
	reverse(outt)
	return Pair{A: outs, B: outt}
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Align does a global alignment of s and t and returns the pair and the
// best score. It allocates a new matrix on every call. If you are doing
// many alignments, use an Aligner.
func Align(s, t []byte, sc Scoring) (Pair, int) {
	grid := Fill(s, t, sc, nil)
	return Traceback(s, t, grid, sc), grid.Last()
}

// Aligner carries a score matrix from one alignment to the next.
type Aligner struct {
	Scoring Scoring
	grid    matrix.IMatrix2d
}

// NewAligner gives an aligner with the scores in sc.
func NewAligner(sc Scoring) *Aligner { return &Aligner{Scoring: sc} }

// Align is like the package level Align, but re-uses the aligner's matrix.
func (al *Aligner) Align(s, t []byte) (Pair, int) {
	grid := Fill(s, t, al.Scoring, &al.grid)
	return Traceback(s, t, grid, al.Scoring), grid.Last()
}

// Score adds up the score of an alignment column by column. A column with a
// gap on either side costs the gap penalty, otherwise it is a match or
// mismatch. If one member is longer, the extra columns are ignored.
func Score(p Pair, sc Scoring) int {
	n := len(p.A)
	if len(p.B) < n {
		n = len(p.B)
	}
	scr := 0
	for i := 0; i < n; i++ {
		a, b := p.A[i], p.B[i]
		switch {
		case a == GapChar || b == GapChar:
			scr += sc.Gap
		case a == b:
			scr += sc.Match
		default:
			scr += sc.Mismatch
		}
	}
	return scr
}
