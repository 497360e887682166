// 31 July 2020

/*
Randseq makes DNA sequences for testing nwprof.
Usage:
	randseq [options] fname nseq
will generate nseq sequences and write them to fname in fasta format.
A fname of "-" means standard output.

Each sequence is one to three random bases, the motifs ATTAGA, ACGCATTT,
AGGACTCAA and ATTTCAGT and then one or two random bases. Each motif may be
left alone or hit by one or two mutations. A mutation is a deletion or a
change to another base from the same motif.

Whitespace should generally be unpredictable, so spaces and newlines are
scattered through the sequences. This exercises the fasta reader.

Flags:
	-c comment
		comment for the sequences, which are numbered after it
	-r
		random number seed
	-s
		no white space inside the sequences
*/
package main
