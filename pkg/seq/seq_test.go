package seq_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/nwprof/brokenio"
	. "github.com/andrew-torda/nwprof/pkg/seq"
	"github.com/andrew-torda/nwprof/pkg/seq/common"
)

const (
	big       = 64 * 1024
	bigminus1 = big - 1
	bigplus1  = big + 1
)

var seq_lengths = []int{10, 30, bigminus1, big, bigplus1}

func cmmtHelp(got, want string, t *testing.T) {
	t.Helper()
	if got != want {
		t.Fatalf("checking comments wanted \"%s\" got \"%s\"", want, got)
	}
}

// TestComment is to check that comments are read exactly, correctly
func TestComment(t *testing.T) {
	c0 := "testcomment no space"
	c1 := " testcomment with space at start"
	s := "aaa\n"
	seqs := ">" + c0 + "\n" + s + ">" + c1 + "\r\n" + s
	sr := strings.NewReader(seqs)
	var seqgrp SeqGrp
	var s_opts Options

	if err := ReadFasta(sr, &seqgrp, &s_opts); err != nil {
		t.Fatal("bust reading simple seqs in TestComment", err)
	}
	slc := seqgrp.GetSeqSlc()

	cmmtHelp(slc[1].GetCmmt(), c1, t)
	cmmtHelp(slc[0].GetCmmt(), c0, t)
}

// TestDiffLen checks if we can read sequences of different lengths
func TestDiffLen(t *testing.T) {
	s := `>s1
a
> s2
aa
> s3
aa-a`
	var seqgrp SeqGrp
	s_opts := &Options{RmvGapsRd: true}

	if err := ReadFasta(strings.NewReader(s), &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if ngot := seqgrp.GetNSeq(); ngot != 3 {
		t.Fatalf("Seqs of diff length got %d wanted 3 seqs", ngot)
	}
	for i := 0; i < 3; i++ {
		l := seqgrp.GetSeqSlc()[i].Len()
		if l != i+1 {
			t.Fatalf("seqs diff length got %d wanted %d", l, i+1)
		}
	}
}

// TestKeepGaps is TestDiffLen without removing gaps
func TestKeepGaps(t *testing.T) {
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(">s\naa-a\n"), &seqgrp, &Options{}); err != nil {
		t.Fatal(err)
	}
	if got := string(seqgrp.GetSeqSlc()[0].GetSeq()); got != "aa-a" {
		t.Fatal("got", got, "want aa-a")
	}
}

// TestDiffLenLong has different length sequences that should be much longer
// than one buffer.
func TestDiffLenLong(t *testing.T) {
	ll := []int{10000, 20000, 50000}
	s := ">\n" + strings.Repeat("a", ll[0]) + "\n> s2\n" + strings.Repeat("c", ll[1]) +
		"\n> s3\n" + strings.Repeat("d", ll[2])
	var seqgrp SeqGrp
	s_opts := &Options{}

	if err := ReadFasta(strings.NewReader(s), &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if ngot := seqgrp.GetNSeq(); ngot != 3 {
		t.Fatalf("Seqs of diff length got %d wanted 3 seqs", ngot)
	}
	for i := 0; i < len(ll); i++ {
		l := seqgrp.GetSeqSlc()[i].Len()
		if l != ll[i] {
			t.Fatalf("long seq wanted %d got %d", ll[i], l)
		}
	}
}

// TestFastaBug is to track down a specific bug I had
func TestFastaBug(t *testing.T) {
	const nseq = 5
	const sLen = 16
	sb := ""
	for i := 0; i < nseq; i++ {
		sb += fmt.Sprintf("> some %d comment\n", i)
		for j := 0; j < sLen; j++ {
			sb += fmt.Sprintf("%d", i)
		}
		sb += "\n"
	}

	SetFastaRdSize(200)
	defer SetFastaRdSize(DefaultReadSize)

	s_opts := &Options{}

	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(sb), &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if seqgrp.GetNSeq() != nseq {
		t.Fatalf("Got %d wanted %d seqlen was %d\n", seqgrp.GetNSeq(), nseq, seqgrp.GetSeqSlc()[0].Len())
	}
}

const (
	no_spaces = iota
	with_spaces
)

// Put funny characters into the comment lines
var trickyComments = []string{
	">a☺b☻c☹d",
	">>>",
	">",
	">a comment can end in an umlautÜ",
}

// writeTest_with_spaces provides some sequences with different patterns of
// white space and some gap characters mixed in. It sticks it in an io.Writer.
func writeTest_with_spaces(f_tmp io.Writer) {
	const b byte = 'B'
	for i, l := range seq_lengths {
		ndx := i % len(trickyComments)
		s := trickyComments[ndx]
		fmt.Fprintln(f_tmp, s)
		for j := 0; j < l; j++ {
			switch {
			case j%11 == 1:
				fmt.Fprint(f_tmp, " ")
			case j%73 == 1:
				fmt.Fprint(f_tmp, "\n")
			case j%71 == 1:
				fmt.Fprint(f_tmp, "-")
			}
			fmt.Fprint(f_tmp, string(b))
		}
		fmt.Fprint(f_tmp, "\n")
	}
}

// writeTest_nospaces puts some sequences into an io.Writer, but with no spaces
// so as to check if we correctly handle long lines.
func writeTest_nospaces(f_tmp io.Writer) {
	for _, i := range seq_lengths {
		fmt.Fprintln(f_tmp, "> seq", i+1, ">>")
		for j := 0; j < i; j++ {
			fmt.Fprintf(f_tmp, "%c", 'A')
		}
		fmt.Fprintf(f_tmp, "\n")
	}
}

func TestBrokenSeq(t *testing.T) {
	s := `> s1
abc
> s2 there is no sequence next`
	var seqgrp SeqGrp
	s_opts := &Options{}
	if err := ReadFasta(strings.NewReader(s), &seqgrp, s_opts); err == nil {
		t.Fatal("incomplete sequence did not break")
	}
}

// TestReadFastaShort uses buffers of various lengths to catch end of buffer mistakes.
func TestReadFastaShort(t *testing.T) {
	set1 := ">\n" + "abcdefghij\n" +
		"> longer comment" + strings.Repeat(" x", 300) + "\n" +
		strings.Repeat("a", 10) + "\n" + "> longer comment" + strings.Repeat(" x", 3) +
		"\n" + strings.Repeat(" b ", 10) + strings.Repeat(" ", 167)
	bsize := []int{3, 4, 5, 10, 100, 512}
	defer SetFastaRdSize(DefaultReadSize)

	for i, bs := range bsize {
		rdr := strings.NewReader(set1)
		var seqgrp SeqGrp
		s_opts := &Options{}
		SetFastaRdSize(bs)
		if err := ReadFasta(rdr, &seqgrp, s_opts); err != nil {
			t.Fatal(err)
		}
		if n := seqgrp.GetSeqSlc()[0].Len(); n != 10 {
			t.Fatal("seq num", i, "got", n, "want 10")
		}
		if n := seqgrp.GetNSeq(); n != 3 {
			t.Fatal("seq loop num", i, "got nseq", seqgrp.GetNSeq(), "want 3")
		}
		for j, s := range seqgrp.GetSeqSlc() {
			if s.Len() != 10 {
				t.Fatal("buffer", bs, "seq", j, "length", s.Len())
			}
		}
	}
}

// innerWriteReadSeqs writes and then reads a sequence. It should be called
// once with spaces and once without.
func innerWriteReadSeqs(t *testing.T, spaces bool) {
	var b strings.Builder

	switch spaces {
	case false:
		writeTest_nospaces(&b)
	case true:
		writeTest_with_spaces(&b)
	}
	reader := strings.NewReader(b.String())

	s_opts := &Options{
		RmvGapsRd:  true,
		RmvGapsWrt: true,
	}

	var seqgrp SeqGrp
	if err := ReadFasta(reader, &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}

	if seqgrp.GetNSeq() != len(seq_lengths) {
		t.Fatalf("Wrote %d seqs, but read only %d.\n%s, %t",
			len(seq_lengths), seqgrp.GetNSeq(),
			"Spaces was set to ", spaces)
	}
	for i, s := range seqgrp.GetSeqSlc() {
		if s.Len() != seq_lengths[i] {
			t.Fatalf("Seq length expected %d, got %d", seq_lengths[i], s.Len())
		}
	}
	if err := WriteFasta(io.Discard, seqgrp.GetSeqSlc(), s_opts); err != nil {
		t.Fatal("writing back failed", err)
	}
}

// TestReadFasta writes and then reads sequences, and does it once to check that
// we hop over white space and once to make sure we handle long lines.
func TestReadFasta(t *testing.T) {
	spaces := []bool{false, true}
	for _, tt := range spaces {
		innerWriteReadSeqs(t, tt)
	}
}

// TestEmpty checks that broken files are gracefully handled
func TestEmpty(t *testing.T) {
	bad_contents := []string{
		"> blah\n",
		"",
		"rubbish",
		"> s1\nacgt\n>",
	}
	for _, content := range bad_contents {
		f_tmp, err := common.WrtTemp(content)
		if err != nil {
			t.Fatal("tempfile", err)
		}
		defer os.Remove(f_tmp)
		s_opts := &Options{}
		if _, err := Readfile(f_tmp, s_opts); err == nil {
			t.Fatalf("should generate error on file with %q", content)
		}
	}
}

func TestNoFile(t *testing.T) {
	if _, err := Readfile("/this/is/not/here.fa", &Options{}); err == nil {
		t.Fatal("missing file did not give an error")
	}
}

// TestMmapLong reads a file much bigger than the read buffer through
// the memory map.
func TestMmapLong(t *testing.T) {
	var b strings.Builder
	writeTest_nospaces(&b)
	f_tmp, err := common.WrtTemp(b.String())
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f_tmp)
	seqgrp, err := Readfile(f_tmp, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range seqgrp.GetSeqSlc() {
		if s.Len() != seq_lengths[i] {
			t.Fatalf("Seq length expected %d, got %d", seq_lengths[i], s.Len())
		}
		if want := fmt.Sprint(" seq ", seq_lengths[i]+1, " >>"); s.GetCmmt() != want {
			t.Fatalf("comment got %q want %q", s.GetCmmt(), want)
		}
	}
}

var stypedata = []struct {
	s1    string
	stype SeqType
}{
	{"> s\nACGU\n>ss\nACGT\n\n", Ntide},
	{"> seq1\nACGT-ACGT\n> seq 2\n acgt", DNA},
	{"> seq1\nac gt  \n> seq 2\nACGT-ACGT", DNA},
	{"> seq1\naaa\n>seq 2\nACGT-ACG\nT", DNA},
	{"> s1\n a c    \ng-U\n>s2\naaaa", RNA},
	{"> s\nacgu\n>ss\nacgu\n\n", RNA},
	{"> s\nacgu\n>ss\nACGT\n\n", Ntide},
	{"> s\nacg\n", Ntide},
	{"> s1\nef", Protein},
	{"> s1\nEF", Protein},
	{"> s1\nB", Unknown},
	{"> s1\njb\n>s2\nO", Unknown},
}

// TestTypes checks the code for recognising RNA/DNA/Protein/whatever types.
func TestTypes(t *testing.T) {
	var s_opts = &Options{
		RmvGapsRd: true,
	}

	for tnum, x := range stypedata {
		var seqgrp SeqGrp
		if err := ReadFasta(strings.NewReader(x.s1), &seqgrp, s_opts); err != nil {
			t.Fatal("TestTypes broke on ReadFasta", err)
		}
		seqgrp.Upper()
		st := seqgrp.GetType()
		if st != x.stype {
			const msg = "seq num %d (numbering from 0) got type %v expected %v"
			t.Fatalf(msg, tnum, st, x.stype)
		}
	}
}

func TestUpperBad(t *testing.T) {
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(">a\nacgt\n>b\nac\xffgt\n"), &seqgrp, &Options{}); err != nil {
		t.Fatal(err)
	}
	if err := seqgrp.Upper(); err == nil {
		t.Fatal("symbol above 127 should give an error")
	}
}

func TestWriteFasta(t *testing.T) {
	long := strings.Repeat("ACGT-", 30)
	seqs := []Seq{NewSeq("one", []byte(long)), NewSeq("empty", nil), NewSeq("two", []byte("A-C"))}
	var b bytes.Buffer
	if err := WriteFasta(&b, seqs, &Options{RmvGapsWrt: true}); err != nil {
		t.Fatal(err)
	}
	nogap := strings.Repeat("ACGT", 30)
	want := ">one\n" + nogap[:60] + "\n" + nogap[60:] + "\n>two\nAC\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Fatalf("fasta output (-want +got):\n%s", diff)
	}
	// and the output can be read back
	var seqgrp SeqGrp
	if err := ReadFasta(&b, &seqgrp, &Options{}); err != nil {
		t.Fatal(err)
	}
	if seqgrp.GetNSeq() != 2 || string(seqgrp.GetSeqSlc()[0].GetSeq()) != nogap {
		t.Fatal("reading back written sequences failed")
	}
}

func TestWriteToF(t *testing.T) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		t.Fatal(err)
	}
	f_tmp.Close()
	defer os.Remove(f_tmp.Name())
	seqs := Bytes2Seqs([][]byte{[]byte("ACGT"), []byte("AGT")}, "x")
	if err := WriteToF(f_tmp.Name(), seqs, &Options{}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(f_tmp.Name())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != ">x0\nACGT\n>x1\nAGT\n" {
		t.Fatalf("file has %q", got)
	}
}

func TestBytes(t *testing.T) {
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(">a\nACGT\n>b\nA-GT\n"), &seqgrp, &Options{RmvGapsRd: true}); err != nil {
		t.Fatal(err)
	}
	got := seqgrp.Bytes()
	if len(got) != 2 || string(got[0]) != "ACGT" || string(got[1]) != "AGT" {
		t.Fatal("Bytes gave", got)
	}
}

// TestReadBroken has the input die at different places, including right
// at the start and in the middle of a sequence. A broken read must be
// reported as such, not as a bad sequence.
func TestReadBroken(t *testing.T) {
	var b strings.Builder
	writeTest_nospaces(&b)
	defer SetFastaRdSize(DefaultReadSize)
	SetFastaRdSize(100)
	for _, n := range []int{0, 3, 20, 199, 5000} {
		rdr := brokenio.NewReader(strings.NewReader(b.String()), 1)
		rdr.SetFailAfter(n)
		var seqgrp SeqGrp
		err := ReadFasta(rdr, &seqgrp, &Options{})
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Fatal("input broken after", n, "bytes gave error", err)
		}
	}
}

// TestZeroRead is a reader that gives nothing back on the first call
func TestZeroRead(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(">s\nACGT\n"), 1)
	rdr.SetProbZeroFile(1)
	var seqgrp SeqGrp
	if err := ReadFasta(rdr, &seqgrp, &Options{}); err == nil {
		t.Fatal("empty input should give an error")
	}
}

// TestReadfileVbsty reads the same file quietly and with a report.
// The verbosity must not change what comes back.
func TestReadfileVbsty(t *testing.T) {
	fname, err := common.WrtTemp(">a\nAC-GT\n>b\nAGT\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	for _, vbsty := range []int{0, 2} {
		seqgrp, err := Readfile(fname, &Options{Vbsty: vbsty, RmvGapsRd: true})
		if err != nil {
			t.Fatal("verbosity", vbsty, err)
		}
		got := seqgrp.Bytes()
		if len(got) != 2 || string(got[0]) != "ACGT" || string(got[1]) != "AGT" {
			t.Fatal("verbosity", vbsty, "read", got)
		}
	}
}
