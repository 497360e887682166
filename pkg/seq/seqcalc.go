// 6 Apr 2020
// seqcalc does simple, common calculations on a set of sequences.
// The functions have to live in this package, since they
// need access to the internals of a sequence

package seq

// SetSymUsed fills out the bool slice which says whether or not a
// symbol was used.
func (seqgrp *SeqGrp) SetSymUsed() {
	for i := range seqgrp.symUsed {
		seqgrp.symUsed[i] = false
	}
	for _, ss := range seqgrp.seqs {
		for _, c := range ss.GetSeq() {
			seqgrp.symUsed[c] = true
		}
	}
	seqgrp.usedKnwn = true
}

// SymUsed says if symbol c appears anywhere in the group
func (seqgrp *SeqGrp) SymUsed(c byte) bool {
	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	return seqgrp.symUsed[c]
}

// GetType looks at a set of sequences and returns its best guess
// as to the type of file. Lower case is not recognised, so call Upper()
// first.
func (seqgrp *SeqGrp) GetType() SeqType {
	if seqgrp.stype != Unchecked { // If the sequence type has been
		return seqgrp.stype //      set, just return it.
	}

	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	seqgrp.stype = guessType(&seqgrp.symUsed)
	return seqgrp.stype
}

func guessType(used *[256]bool) SeqType {
	protType := []byte{
		'D', 'E', 'F', 'H', 'I', 'K', 'L', 'M',
		'N', 'P', 'Q', 'R', 'S', 'V', 'W', 'Y'}

	for _, c := range protType { // If we see an amino acid code,
		if used[c] { //          just return protein type.
			return Protein
		}
	}

	if used['T'] && used['U'] {
		return Ntide
	}
	// If we have ACG, but neither T or U, it is a nucleotide
	// but we cannot tell if it is RNA or DNA
	if used['A'] && used['C'] && used['G'] && !used['T'] && !used['U'] {
		return Ntide
	}
	if used['T'] {
		return DNA
	}
	if used['U'] {
		return RNA
	}

	return Unknown
}
