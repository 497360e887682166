// 18 Oct 2026

/*
Nwprof aligns DNA sequences with Needleman and Wunsch and a linear gap
penalty. The sequences are chained into a multiple alignment, one after the
other. Each new sequence is aligned against the previous row of the
alignment, and only that row is changed. Earlier rows are left alone, so
the result is cheap but not consistent. The rows are padded with gaps on
the right to the same length.

From the padded alignment we print the fraction of A, C, G, T and gap in
each column. Anything else (N, U, lower case from another program) is not
counted, so a column can add up to less than one.
Finally, every pair of input sequences is aligned and scored.

Input is fasta. Gaps in the input are removed and everything is upper cased.
If the sequences do not look like DNA there is a warning, but the
calculation goes on.

In demo mode (-d), no input is read. Sequences are built from four motifs
with random mutations and split into three sets. The first set is aligned,
the second gives the profile and the pairs of the third are scored. Then
some pairs of completely random sequences are aligned.

Usage:
	nwprof [flags] [infile [outfile]]

The flags are:
	-a file
		write the padded alignment in fasta format
	-d
		demo mode
	-e
		print the entropy of each column
	-G
		treat gaps as a symbol in the entropy
	-g gap
		gap penalty (default -2)
	-j n
		number of goroutines for the pairwise alignments
	-k n
		number of random pairs in demo mode (default 20)
	-m match
		score for a match (default 1)
	-n n
		number of sequences in demo mode (default 100)
	-p file.png
		draw the profile as stacked bars
	-r seed
		random number seed for demo mode
	-t
		print the run time on stderr
	-u
		leave the gaps out of the -a file
	-v n
		verbosity, 0 is silent, 1 prints warnings (default),
		2 also says how many sequences were read
	-x mismatch
		score for a mismatch (default -1)
*/
package main
