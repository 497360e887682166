// Reader for fasta format files.

package seq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	. "github.com/andrew-torda/nwprof/pkg/seq/common"
	"github.com/andrew-torda/nwprof/pkg/white"
)

// An item is terminated by a newline if we are in a comment or a comment
// character ">" if we are in a sequence.
const (
	NL       = '\n'
	cmmtChar = '>'
)

type item struct {
	data     []byte
	complete bool
}

type lexer struct {
	input    []byte
	ichan    chan *item
	seqgrp   *SeqGrp
	s_opts   *Options
	rdr      io.Reader
	itempool sync.Pool
	cmmt     string // partial comment
	seq      []byte // partial string
	term     byte
	started  bool  // seen the first comment
	rdErr    error // only set by next()
	err      error
}

const defaultReadSize = 512

var rdsize int = defaultReadSize

// setFastaRdSize is only used during testing and benchmarking
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

func newItem() interface{} { return new(item) }

// next reads from the input and sends an item to channel, ichan.
// An item is terminated by l.term, or the end of the buffer or
// end of input. At the end of input, it sends an empty, complete
// item and closes the channel.
func (l *lexer) next() {
	defer close(l.ichan)
	for {
		item := l.itempool.Get().(*item)
		if len(l.input) == 0 {
			l.input = make([]byte, rdsize)
			n, err := io.ReadFull(l.rdr, l.input)
			l.input = l.input[:n]
			if n == 0 {
				if err != nil && err != io.EOF {
					l.rdErr = err // signal that a real error occurred.
				}
				item.data = nil
				item.complete = true
				l.ichan <- item // we have to flush
				return
			}
			if err != nil && err != io.ErrUnexpectedEOF {
				l.rdErr = err
				return
			}
		}

		if ndx := bytes.IndexByte(l.input, l.term); ndx == -1 {
			item.data = l.input // no terminator found, so just send
			l.input = nil       // back whatever we have in the buffer.
			item.complete = false
		} else { //                                We did find a terminator
			newlInput := l.input[ndx+1:] //        Advance pointer
			item.data = l.input[:ndx]    //
			item.complete = true         //
			l.input = newlInput          //        Set up for next loop
			if l.term == NL {
				l.term = cmmtChar
			} else {
				l.term = NL
			}
		}
		l.ichan <- item
	}
}

type stateFn func(*lexer) stateFn

// removeGaps acts in place, like white.Remove
func removeGaps(s *[]byte) {
	t := (*s)[:0]
	for _, c := range *s {
		if c != GapChar {
			t = append(t, c)
		}
	}
	*s = t
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil { // input finished after a comment
		if l.seqgrp.GetNSeq() > 0 || l.cmmt != "" {
			l.err = errors.New("Zero length sequence after >" + l.cmmt)
		}
		return nil
	}
	defer l.itempool.Put(item)

	white.Remove(&item.data)
	if l.s_opts.RmvGapsRd {
		removeGaps(&item.data)
	}
	l.seq = append(l.seq, item.data...)
	if item.complete {
		if len(l.seq) == 0 {
			l.err = errors.New("Zero length sequence after >" + l.cmmt)
			return nil
		}
		seq := Seq{cmmt: l.cmmt, seq: l.seq}
		l.seqgrp.seqs = append(l.seqgrp.seqs, seq)
		l.cmmt = ""
		l.seq = nil
		return gcmmt
	}
	return gseq
}

// We are reading a comment. The very first one still has its ">".
func gcmmt(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil {
		return nil
	}
	defer l.itempool.Put(item)

	data := item.data
	if !l.started {
		data = bytes.TrimPrefix(bytes.TrimLeft(data, " \t\r"), []byte{cmmtChar})
		l.started = true
	}
	l.cmmt = l.cmmt + string(data)
	if item.complete {
		l.cmmt = strings.TrimRight(l.cmmt, "\r")
		return gseq
	}
	return gcmmt
}

// ReadFasta reads fasta formatted files.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) error {
	l := lexer{rdr: rdr, ichan: make(chan *item, 2), seqgrp: seqgrp,
		s_opts: s_opts, term: NL}
	l.itempool.New = newItem

	go l.next()
	for state := gcmmt; state != nil; {
		state = state(&l)
	}
	// Let the reader finish, so nothing touches rdr after we return.
	for range l.ichan {
	}
	if l.rdErr != nil { // a broken read explains anything else that went wrong
		l.err = fmt.Errorf("reading fasta: %w", l.rdErr)
	}
	if l.err == nil && seqgrp.GetNSeq() == 0 {
		l.err = errors.New("No sequences found")
	}
	seqgrp.usedKnwn = false
	seqgrp.stype = Unchecked
	return l.err
}
