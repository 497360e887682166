// 31 July 2020, motif datasets Oct 2026

// Package randseq makes DNA sequences for testing and for the demo.
// Each sequence is a short random prefix, four motifs which may have
// been mutated, and a short random suffix. A set of these aligns
// reasonably well, but not perfectly.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

const (
	nPadWhite = 9 // For padding for adding whitespace to sequences
)

// Motifs are put into every sequence, in this order.
var Motifs = []string{"ATTAGA", "ACGCATTT", "AGGACTCAA", "ATTTCAGT"}

// Limits on the lengths of the random bits.
const (
	minPrefix, maxPrefix = 1, 3
	minSuffix, maxSuffix = 1, 2
	minRand, maxRand     = 5, 30
)

// between returns a random int from lo to hi inclusive
func between(lo, hi int, rnd *rand.Rand) int {
	return lo + rnd.Intn(hi-lo+1)
}

// appendRandom adds n symbols from Nucleotides to s.
func appendRandom(s []byte, n int, rnd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, Nucleotides[rnd.Intn(len(Nucleotides))])
	}
	return s
}

// RandomSeq is a random DNA sequence of length 5 to 30.
func RandomSeq(rnd *rand.Rand) []byte {
	n := between(minRand, maxRand, rnd)
	return appendRandom(make([]byte, 0, n), n, rnd)
}

// symSet is the set of different symbols in a motif, in order of first
// appearance.
func symSet(m string) []byte {
	var seen [256]bool
	var set []byte
	for i := 0; i < len(m); i++ {
		if c := m[i]; !seen[c] {
			seen[c] = true
			set = append(set, c)
		}
	}
	return set
}

// substitute replaces m[idx] with a different symbol from syms.
// syms must have at least two members.
func substitute(m []byte, idx int, syms []byte, rnd *rand.Rand) {
	c := syms[rnd.Intn(len(syms))]
	for c == m[idx] {
		c = syms[rnd.Intn(len(syms))]
	}
	m[idx] = c
}

// mutate copies motif and hits it with nMut mutations at different
// positions. Each is a deletion or a substitution, with even odds.
// A motif is never deleted away completely.
func mutate(motif string, nMut int, rnd *rand.Rand) []byte {
	m := []byte(motif)
	if nMut == 0 {
		return m
	}
	syms := symSet(motif)
	pos := rnd.Perm(len(m))[:nMut]
	if nMut == 2 && pos[0] > pos[1] {
		pos[0], pos[1] = pos[1], pos[0]
	}
	deleted := 0
	for _, p := range pos {
		idx := p - deleted
		if rnd.Intn(2) == 0 && len(m) > 1 {
			m = append(m[:idx], m[idx+1:]...)
			deleted++
		} else {
			substitute(m, idx, syms, rnd)
		}
	}
	return m
}

// MotifSeq builds one sequence from Motifs. Each motif is kept, mutated
// once or mutated twice, each with probability 1/3.
func MotifSeq(rnd *rand.Rand) []byte {
	var s []byte
	s = appendRandom(s, between(minPrefix, maxPrefix, rnd), rnd)
	for _, m := range Motifs {
		s = append(s, mutate(m, rnd.Intn(3), rnd)...)
	}
	return appendRandom(s, between(minSuffix, maxSuffix, rnd), rnd)
}

// MotifSet returns n motif sequences.
func MotifSet(n int, rnd *rand.Rand) [][]byte {
	set := make([][]byte, n)
	for i := range set {
		set[i] = MotifSeq(rnd)
	}
	return set
}

// Split shuffles seqs in place and cuts them into three datasets,
// the first 10 %, the next 70 % and whatever is left over. The three
// share storage with seqs.
func Split(seqs [][]byte, rnd *rand.Rand) (a, b, c [][]byte) {
	rnd.Shuffle(len(seqs), func(i, j int) { seqs[i], seqs[j] = seqs[j], seqs[i] })
	n := len(seqs)
	na := n / 10
	nb := na + (n*7)/10
	return seqs[:na], seqs[na:nb], seqs[nb:]
}

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed   int64     // random number seed
	Wrtr    io.Writer // where we write to
	Cmmt    string    // Comment for the sequences
	Nseq    int       // number of sequences
	NoSpace bool      // Do not scatter white space through the sequences
}

// addInner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, spacernd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := spacernd.Int31n(int32(len(s)))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace is given a byte array and adds white characters at random
// positions. We add about 1/9 of the length. We flip a coin.
// Heads we don't add a newline. Tails we make about 1/9
// of the spaces to be newlines.
func addspace(s []byte, spacernd *rand.Rand) []byte {
	toAdd := len(s)/nPadWhite + 1
	nNL := 0 // Number of new lines to add
	if spacernd.Int31n(2) == 0 {
		nNL = toAdd / 9
	}

	nSpace := toAdd - nNL
	s = addInner(s, nSpace, ' ', spacernd)
	s = addInner(s, nNL, '\n', spacernd)
	return s
}

// writeseq reads sequences from sChan, adds a comment and writes them.
// n is the number of the sequence, so the output has comment lines
// "> something 1, > something 2..."
func writeseq(sChan <-chan []byte, args *RandSeqArgs, wg *sync.WaitGroup, err *error) {
	defer wg.Done()

	width := len(fmt.Sprintf("%d", args.Nseq))
	spacernd := rand.New(rand.NewSource(args.Iseed + 1))
	var i int
	for s := range sChan {
		i++
		if *err != nil {
			continue // keep draining so the sender is not stuck
		}
		if !args.NoSpace {
			s = addspace(s, spacernd)
		}
		_, *err = fmt.Fprintf(args.Wrtr, "> %s %[2]*d\n%s\n", args.Cmmt, width, i, s)
	}
}

// RandSeqMain writes motif sequences to an io.Writer in fasta format.
func RandSeqMain(args *RandSeqArgs) error {
	var wg sync.WaitGroup
	var err error
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &err)
	for i := 0; i < args.Nseq; i++ {
		sChan <- MotifSeq(rnd)
	}
	close(sChan)
	wg.Wait()
	return err
}
