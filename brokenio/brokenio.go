// brokenio wraps readers and writers so they fail on purpose.
// Typical use: You have a reader from a file or a string. You write
// rdr = brokenio.NewReader(rdr, seed) and then hand rdr to the code
// being tested. Everything works as before, but with artificial errors.
// A failure can be placed after a fixed number of bytes, or happen at
// random with some probability on each call.
// A failure on the first read can also be an immediate EOF. This is what
// one often sees on a zero length file.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is returned for every artificial failure.
var ErrBroken = errors.New("brokenio: artificial failure")

const never = -1

// fault holds the settings and counters shared by readers and writers.
type fault struct {
	rnd       *rand.Rand
	probFail  float32 // chance of failing on any call
	failAfter int     // fail once this many bytes have passed, or never
	nCalled   int
	nByte     int
	verbose   bool
}

func newFault(seed int64) fault {
	return fault{rnd: rand.New(rand.NewSource(seed)), failAfter: never}
}

// SetProbFail sets the probability of a failure on each call.
// It must be between zero and 1. We do not check.
func (f *fault) SetProbFail(prob float32) { f.probFail = prob }

// SetFailAfter says that everything after the first n bytes fails.
// A negative n switches this off.
func (f *fault) SetFailAfter(n int) {
	if n < 0 {
		n = never
	}
	f.failAfter = n
}

// SetVerbose sets the verbosity flag. If true, Close prints the amount
// of data that went through.
func (f *fault) SetVerbose(newV bool) { f.verbose = newV }

// Counts returns the number of calls and bytes that went through.
func (f *fault) Counts() (nCalled, nByte int) { return f.nCalled, f.nByte }

// limit cuts p down so it does not go past the failure point.
// It says if we are already there.
func (f *fault) limit(p []byte) ([]byte, bool) {
	if f.failAfter == never {
		return p, false
	}
	left := f.failAfter - f.nByte
	if left <= 0 {
		return nil, true
	}
	if len(p) > left {
		p = p[:left]
	}
	return p, false
}

// randomFail rolls the dice
func (f *fault) randomFail() bool {
	return f.probFail > 0 && f.rnd.Float32() < f.probFail
}

func (f *fault) close(closer interface{}) error {
	if f.verbose {
		fmt.Println("Closing", f.nCalled, "calls and", f.nByte, "bytes")
	}
	if c, ok := closer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Reader wraps an io.Reader.
type Reader struct {
	fault
	rdr          io.Reader
	probZeroFile float32 // Probability of returning a zero length file
}

// NewReader returns a wrapper around rIn. seed starts the random
// numbers, so failures can be repeated.
func NewReader(rIn io.Reader, seed int64) *Reader {
	return &Reader{fault: newFault(seed), rdr: rIn}
}

// SetProbZeroFile sets the rate at which we simply return 0 bytes and
// io.EOF on the first read.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// Read passes the call on to the wrapped reader unless it is time to
// break. After a random failure, the caller still gets whatever was read.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	r.nCalled++
	p, done := r.limit(p)
	if done {
		return 0, ErrBroken
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	if r.randomFail() {
		return n, ErrBroken
	}
	return n, err
}

// Close closes the wrapped reader, if it can be closed.
func (r *Reader) Close() error { return r.close(r.rdr) }

// Writer wraps an io.Writer.
type Writer struct {
	fault
	wrtr io.Writer
}

// NewWriter returns a wrapper around wIn.
func NewWriter(wIn io.Writer, seed int64) *Writer {
	return &Writer{fault: newFault(seed), wrtr: wIn}
}

// Write writes as much as is allowed. A short write always comes
// with an error, as io.Writer demands.
func (w *Writer) Write(p []byte) (int, error) {
	w.nCalled++
	if w.randomFail() {
		return 0, ErrBroken
	}
	q, done := w.limit(p)
	if done {
		return 0, ErrBroken
	}
	n, err := w.wrtr.Write(q)
	w.nByte += n
	if err == nil && n < len(p) {
		err = ErrBroken
	}
	return n, err
}

// Close closes the wrapped writer, if it can be closed.
func (w *Writer) Close() error { return w.close(w.wrtr) }
