// 6 Apr 2020, nucleotide profiles Oct 2026
// profile counts how often each base and the gap appear in each column
// of an alignment and turns the counts into fractions. These are the
// emission probabilities of a very simple positional model.

package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/andrew-torda/matrix"
	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

// Rows in a profile. The order is fixed, so it can be used for printing.
const (
	RowA = iota
	RowC
	RowG
	RowT
	RowGap
	NSym // number of rows, 4 bases + gap
)

// Labels has the names of the rows, in order.
var Labels = [NSym]string{"A", "C", "G", "T", "Gap"}

const badMap = -1 // not a symbol we count

var mapping [256]int8 // mapping['C'] tells me the row used for C

func init() {
	for i := range mapping {
		mapping[i] = badMap
	}
	for i, c := range []byte(Nucleotides) {
		mapping[c] = int8(i)
	}
	mapping[GapChar] = RowGap
}

// Column holds the fraction of sequences with A, C, G, T and gap
// at one position.
type Column [NSym]float64

// Sum adds up the fractions. Normally 1, but less if there were
// symbols we do not count.
func (c Column) Sum() float64 {
	var t float64
	for _, f := range c {
		t += f
	}
	return t
}

var (
	ErrNoSeqs = errors.New("profile: no sequences")
	ErrRagged = errors.New("profile: sequences differ in length, pad them first")
)

// ColumnAt gives the fractions for position pos. Each count is divided by
// the number of sequences. Anything other than A, C, G, T or a gap is
// not counted anywhere, but still counts as a sequence, so the column
// will then sum to less than one. Lower case letters are in this group.
func ColumnAt(set [][]byte, pos int) (Column, error) {
	var c Column
	if len(set) == 0 {
		return c, ErrNoSeqs
	}
	var counts [NSym]int
	for i, s := range set {
		if pos < 0 || pos >= len(s) {
			return c, fmt.Errorf("profile: position %d outside sequence %d of length %d", pos, i, len(s))
		}
		if row := mapping[s[pos]]; row != badMap {
			counts[row]++
		}
	}
	total := float64(len(set))
	for i, n := range counts {
		c[i] = float64(n) / total
	}
	return c, nil
}

// Counts tallies symbols at each site. The matrix is
// [NSym][length_of_seq], like the symbol counts of a sequence group.
// We store it as a float32. Counts are small integers, so nothing is lost.
func Counts(set [][]byte) (*matrix.FMatrix2d, error) {
	if len(set) == 0 {
		return nil, ErrNoSeqs
	}
	ncol := len(set[0])
	for _, s := range set {
		if len(s) != ncol {
			return nil, ErrRagged
		}
	}
	counts := matrix.NewFMatrix2d(NSym, ncol)
	for _, s := range set {
		for i, c := range s {
			if row := mapping[c]; row != badMap {
				counts.Mat[row][i]++
			}
		}
	}
	return counts, nil
}

// Profile returns one Column for every position of a padded alignment.
func Profile(set [][]byte) ([]Column, error) {
	counts, err := Counts(set)
	if err != nil {
		return nil, err
	}
	ncol := len(set[0])
	total := float64(len(set))
	cols := make([]Column, ncol)
	for irow := 0; irow < NSym; irow++ {
		for icol := 0; icol < ncol; icol++ {
			cols[icol][irow] = float64(counts.Mat[irow][icol]) / total
		}
	}
	return cols, nil
}

// Entropy is the Shannon entropy of a column. If gapsAreChar, the gap is
// a fifth symbol and logs are to base 5. Otherwise the gap row is left
// out, the bases are renormalised and logs are to base 4. A column of
// nothing but gaps then has zero entropy.
func Entropy(c Column, gapsAreChar bool) float64 {
	nrow, logbase := NSym, float64(NSym)
	if !gapsAreChar {
		nrow, logbase = RowGap, float64(RowGap)
	}
	var tot float64
	for i := 0; i < nrow; i++ {
		tot += c[i]
	}
	if tot == 0 {
		return 0
	}
	logfac := 1.0 / math.Log(logbase) // to change base of logs
	var ent float64
	for i := 0; i < nrow; i++ {
		f := c[i] / tot
		if f == 0.0 {
			continue
		}
		ent -= f * math.Log(f) * logfac
	}
	return math.Abs(ent)
}
