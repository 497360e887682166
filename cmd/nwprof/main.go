// 18 Oct 2026
// Align DNA sequences, or make some up, and print the progressive
// alignment, its column profile and the pairwise alignments.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/andrew-torda/nwprof/pkg/nwprof"
	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [infile [outfile]]")
	long := `Given no arguments, read and write from stdin / stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.
With -d, no input is read and sequences are made up.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	flags := nwprof.DefaultFlags()
	var infile, outfile string

	flag.BoolVar(&flags.Demo, "d", false, "demo, generate sequences instead of reading them")
	flag.IntVar(&flags.NSeq, "n", flags.NSeq, "number of sequences in demo mode")
	flag.IntVar(&flags.NRand, "k", flags.NRand, "number of random pairs in demo mode")
	flag.Int64Var(&flags.Seed, "r", flags.Seed, "random number seed")
	flag.IntVar(&flags.Match, "m", flags.Match, "score for a match")
	flag.IntVar(&flags.Mismatch, "x", flags.Mismatch, "score for a mismatch")
	flag.IntVar(&flags.Gap, "g", flags.Gap, "gap penalty, normally negative")
	flag.StringVar(&flags.PlotFile, "p", "", "write a png picture of the profile to this file")
	flag.StringVar(&flags.AlnFile, "a", "", "write the alignment to this file in fasta format")
	flag.BoolVar(&flags.Entropy, "e", false, "print the entropy of each column")
	flag.BoolVar(&flags.GapsAreChar, "G", false, "gap is a valid symbol for entropy")
	flag.IntVar(&flags.NWorker, "j", 0, "number of workers for pairwise alignments, 0 for one per CPU")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.BoolVar(&flags.NoGapsOut, "u", false, "leave gaps out of the -a alignment file")
	flag.IntVar(&flags.Vbsty, "v", flags.Vbsty, "verbosity, 0 silent, 1 warnings, 2 also what was read")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 2 {
		usage()
		os.Exit(ExitUsageError)
	}
	if flag.NArg() > 0 {
		infile = flag.Arg(0)
		if flag.NArg() > 1 {
			outfile = flag.Arg(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := nwprof.Mymain(ctx, &flags, infile, outfile)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
