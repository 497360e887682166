// 18 Oct 2026
// nwprof aligns DNA sequences, builds a progressive multiple alignment
// and prints the column profile and all the pairwise scores.

package nwprof

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/andrew-torda/nwprof/pkg/align"
	"github.com/andrew-torda/nwprof/pkg/msa"
	"github.com/andrew-torda/nwprof/pkg/plot"
	"github.com/andrew-torda/nwprof/pkg/profile"
	"github.com/andrew-torda/nwprof/pkg/randseq"
	"github.com/andrew-torda/nwprof/pkg/report"
	"github.com/andrew-torda/nwprof/pkg/seq"
)

// CmdFlag has everything from the command line, except the file names.
type CmdFlag struct {
	Demo        bool   // make up sequences instead of reading them
	NSeq        int    // how many sequences in demo mode
	NRand       int    // number of random pairs in demo mode
	Seed        int64  // random number seed for demo mode
	Match       int    // score for identical bases
	Mismatch    int    // score for different bases
	Gap         int    // normally negative
	PlotFile    string // write a picture of the profile here
	AlnFile     string // write the padded alignment here, as fasta
	NoGapsOut   bool   // leave gaps out of AlnFile
	Entropy     bool   // print the entropy of each column
	GapsAreChar bool   // gap is a symbol when calculating entropy
	NWorker     int    // goroutines for all-pairs alignment, < 1 means one per CPU
	Vbsty       int    // 0 silent, 1 warnings, 2 also says what was read
	Time        bool   // do we want to print out run time ?
}

// DefaultFlags has the usual scores and demo sizes.
func DefaultFlags() CmdFlag {
	sc := align.DefaultScoring()
	return CmdFlag{
		NSeq: 100, NRand: 20, Seed: 1637, Vbsty: 1,
		Match: sc.Match, Mismatch: sc.Mismatch, Gap: sc.Gap,
	}
}

// minDemo is the smallest demo where each of the datasets has something in it.
const minDemo = 10

var ErrDemoSize = fmt.Errorf("demo needs at least %d sequences", minDemo)

func (flags *CmdFlag) scoring() align.Scoring {
	return align.Scoring{Match: flags.Match, Mismatch: flags.Mismatch, Gap: flags.Gap}
}

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func (flags *CmdFlag) warnExists(fname string) {
	if flags.Vbsty < 1 {
		return
	}
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// writePlot draws the profile to a png file.
func writePlot(fname string, cols []profile.Column, flags *CmdFlag) (err error) {
	flags.warnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("plot file %v: %w", fname, err)
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	opts := plot.DefaultOptions()
	opts.Title = "Emission probabilities"
	return plot.WritePNG(fp, cols, opts)
}

// writeProfile prints the profile of a padded alignment and anything
// else the flags ask for.
func writeProfile(w io.Writer, set [][]byte, flags *CmdFlag) error {
	cols, err := profile.Profile(set)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err = report.WriteProfile(w, cols); err != nil {
		return err
	}
	if flags.Entropy {
		if err = report.Header(w, "Column Entropy"); err != nil {
			return err
		}
		if err = report.WriteEntropy(w, cols, flags.GapsAreChar); err != nil {
			return err
		}
	}
	if flags.PlotFile != "" {
		return writePlot(flags.PlotFile, cols, flags)
	}
	return nil
}

// writeAllPairs aligns every pair in set and prints the alignments.
func writeAllPairs(ctx context.Context, w io.Writer, set [][]byte, flags *CmdFlag) error {
	res, err := align.AllPairs(ctx, set, flags.scoring(), flags.NWorker)
	if err != nil {
		return fmt.Errorf("all pairs: %w", err)
	}
	return report.WritePairs(w, res)
}

// demo makes up sequences from motifs, splits them into three sets
// and does one job on each of them.
func demo(ctx context.Context, w io.Writer, flags *CmdFlag) error {
	if flags.NSeq < minDemo {
		return ErrDemoSize
	}
	sc := flags.scoring()
	rnd := rand.New(rand.NewSource(flags.Seed))
	all := randseq.MotifSet(flags.NSeq, rnd)
	setA, setB, setC := randseq.Split(all, rnd)
	for _, x := range []struct {
		title string
		set   [][]byte
	}{{"Dataset A", setA}, {"Dataset B", setB}, {"Dataset C", setC}} {
		if err := report.Header(w, x.title); err != nil {
			return err
		}
		if err := report.WriteSeqs(w, x.set); err != nil {
			return err
		}
	}

	if err := report.Header(w, "Aligned Sequences in Dataset A"); err != nil {
		return err
	}
	alnA, err := msa.Align(setA, sc)
	if err != nil {
		return err
	}
	if err = report.WriteSeqs(w, alnA); err != nil {
		return err
	}
	if err = writeAln(alnA, nil, flags); err != nil {
		return err
	}

	if err = report.Header(w, "Emission Probabilities using HMM Profile"); err != nil {
		return err
	}
	alnB, err := msa.Align(setB, sc)
	if err != nil {
		return err
	}
	if err = writeProfile(w, alnB, flags); err != nil {
		return err
	}

	if err = report.Header(w, "Alignment Scores and Paths for Dataset C"); err != nil {
		return err
	}
	if err = writeAllPairs(ctx, w, setC, flags); err != nil {
		return err
	}

	title := fmt.Sprintf("Alignment Scores for %d Random Sequence Pairs", flags.NRand)
	if err = report.Header(w, title); err != nil {
		return err
	}
	al := align.NewAligner(sc)
	for i := 0; i < flags.NRand; i++ {
		s, t := randseq.RandomSeq(rnd), randseq.RandomSeq(rnd)
		pair, _ := al.Align(s, t)
		if err = report.WriteScore(w, pair, align.Score(pair, sc)); err != nil {
			return err
		}
	}
	return nil
}

// writeAln writes an alignment in fasta format, if there is a file name.
// Comments come from seqs, or are made up if seqs is nil.
func writeAln(aln [][]byte, seqs []seq.Seq, flags *CmdFlag) error {
	fname := flags.AlnFile
	if fname == "" {
		return nil
	}
	out := seq.Bytes2Seqs(aln, "aligned ")
	for i := range seqs {
		out[i] = seq.NewSeq(seqs[i].GetCmmt(), aln[i])
	}
	flags.warnExists(fname)
	s_opts := &seq.Options{Vbsty: flags.Vbsty, RmvGapsWrt: flags.NoGapsOut}
	if err := seq.WriteToF(fname, out, s_opts); err != nil {
		return fmt.Errorf("alignment file: %w", err)
	}
	return nil
}

// fromFile reads sequences, aligns them, prints the alignment, the
// profile and all pairs.
func fromFile(ctx context.Context, w io.Writer, infile string, flags *CmdFlag) error {
	s_opts := &seq.Options{Vbsty: flags.Vbsty, RmvGapsRd: true}
	seqgrp, err := seq.Readfile(infile, s_opts)
	if err != nil {
		return fmt.Errorf("Fail reading sequences: %w", err)
	}
	if err = seqgrp.Upper(); err != nil {
		return err
	}
	if st := seqgrp.GetType(); st != seq.DNA && st != seq.Ntide && flags.Vbsty > 0 {
		fmt.Fprintf(os.Stderr, "Warning, sequences look like %v. Only A, C, G and T are counted.\n", st)
	}
	raw := seqgrp.Bytes()
	sc := flags.scoring()

	if err = report.Header(w, "Aligned Sequences"); err != nil {
		return err
	}
	aln, err := msa.Align(raw, sc)
	if err != nil {
		return err
	}
	if err = report.WriteSeqs(w, aln); err != nil {
		return err
	}
	if err = writeAln(aln, seqgrp.GetSeqSlc(), flags); err != nil {
		return err
	}
	if err = report.Header(w, "Emission Probabilities"); err != nil {
		return err
	}
	if err = writeProfile(w, aln, flags); err != nil {
		return err
	}
	if err = report.Header(w, "Alignment Scores and Paths"); err != nil {
		return err
	}
	return writeAllPairs(ctx, w, raw, flags)
}

// Mymain reads sequences from infile, or makes them up in demo mode,
// and writes the report to outfile. Empty names or "-" mean standard
// input and output.
func Mymain(ctx context.Context, flags *CmdFlag, infile, outfile string) (err error) {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(os.Stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	var fp io.Writer = os.Stdout
	if outfile != "" && outfile != "-" {
		flags.warnExists(outfile)
		f, ferr := os.Create(outfile)
		if ferr != nil {
			return fmt.Errorf("output file %v: %w", outfile, ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		fp = f
	}
	w := bufio.NewWriter(fp)
	defer func() {
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}()

	if flags.Demo {
		err = demo(ctx, w, flags)
	} else {
		err = fromFile(ctx, w, infile, flags)
	}
	if errors.Is(err, msa.ErrNoSeqs) || errors.Is(err, profile.ErrNoSeqs) {
		err = fmt.Errorf("nothing to align: %w", err)
	}
	return err
}
