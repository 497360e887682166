// 18 Oct 2026

// Package msa builds a rough multiple sequence alignment by chaining
// pair-wise alignments, and pads the result so every member has the
// same length.
//
// The chain only ever re-aligns neighbours. When sequence k is added, it
// is aligned against whatever is in slot k-1 at that moment, and slot k-1
// is replaced by its newly gapped form. Slots before k-1 are left alone,
// so gaps introduced later never reach them. Neighbours are aligned to
// each other, but columns need not line up across the whole set.
package msa

import (
	"bytes"
	"errors"

	"github.com/andrew-torda/nwprof/pkg/align"
	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

// ErrNoSeqs comes back if there is nothing to align.
var ErrNoSeqs = errors.New("msa: no sequences to align")

// Progressive aligns seqs in the order given. The result has one entry
// per input sequence. With one sequence, it is returned unchanged.
// The input is not modified.
func Progressive(seqs [][]byte, sc align.Scoring) ([][]byte, error) {
	if len(seqs) == 0 {
		return nil, ErrNoSeqs
	}
	al := align.NewAligner(sc)
	aligned := make([][]byte, 1, len(seqs))
	aligned[0] = seqs[0]
	for k := 1; k < len(seqs); k++ { // step k needs the result of step k-1
		pair, _ := al.Align(aligned[k-1], seqs[k])
		aligned[k-1] = pair.A
		aligned = append(aligned, pair.B)
	}
	return aligned, nil
}

// MaxLen is the length of the longest sequence.
func MaxLen(seqs [][]byte) int {
	n := 0
	for _, s := range seqs {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// Pad returns a list where every sequence has gaps added at the end to
// make it as long as the longest one. Sequences that are already long
// enough are shared with the input, the others are copied.
// Padding something that is already padded changes nothing.
func Pad(seqs [][]byte) [][]byte {
	n := MaxLen(seqs)
	padded := make([][]byte, len(seqs))
	for i, s := range seqs {
		if len(s) == n {
			padded[i] = s
			continue
		}
		t := make([]byte, n)
		copy(t, s)
		copy(t[len(s):], bytes.Repeat([]byte{GapChar}, n-len(s)))
		padded[i] = t
	}
	return padded
}

// Align is Progressive followed by Pad.
func Align(seqs [][]byte, sc align.Scoring) ([][]byte, error) {
	aligned, err := Progressive(seqs, sc)
	if err != nil {
		return nil, err
	}
	return Pad(aligned), nil
}
