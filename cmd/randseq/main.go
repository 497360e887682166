// 31 July 2020

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/andrew-torda/nwprof/pkg/randseq"
	. "github.com/andrew-torda/nwprof/pkg/seq/common"
)

func main() {
	f := flag.NewFlagSet("randseq", flag.ExitOnError)
	const iseed int64 = 1637
	var args randseq.RandSeqArgs

	f.BoolVar(&args.NoSpace, "s", false, "do not scatter white space through sequences")
	f.StringVar(&args.Cmmt, "c", "motif seq", "comment for each sequence")
	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 2 {
		fmt.Fprintln(f.Output(), "Wrong number of args\nrandseq [..] file nseq")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	const emsg = "Failed converting %s to positive integer\n"
	if nseq, err := strconv.ParseUint(f.Args()[1], 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Args()[1])
		os.Exit(ExitFailure)
	} else {
		args.Nseq = int(nseq)
	}

	fname := f.Args()[0]
	var ft *os.File
	if fname == "-" || fname == "" {
		args.Wrtr = os.Stdout
	} else {
		var err error
		if ft, err = os.Create(fname); err != nil {
			fmt.Fprintln(os.Stderr, "File for output:", err)
			os.Exit(ExitFailure)
		}
		args.Wrtr = ft
	}
	err := randseq.RandSeqMain(&args)
	if ft != nil {
		if cerr := ft.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
