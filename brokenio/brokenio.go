// brokenio wraps readers and writers so they fail part way through. It is
// for testing that the tools notice truncated input and full disks.
// Output written before the failure still goes through, so a test can
// see how far a writer got.

package brokenio

import (
	"errors"
	"io"
)

var ErrBroken = errors.New("brokenio: artificial failure")

// BrknWrtr passes writes through until it has taken nByte bytes. The
// write which crosses the limit is cut short and every one after it
// fails.
type BrknWrtr struct {
	w     io.Writer // wrapped writer
	nByte int       // bytes left before failure
	nCall int
}

// NewWriter returns a writer around w which breaks after n bytes.
func NewWriter(w io.Writer, n int) *BrknWrtr {
	return &BrknWrtr{w: w, nByte: n}
}

// NCall is the number of times Write was called
func (b *BrknWrtr) NCall() int { return b.nCall }

func (b *BrknWrtr) Write(p []byte) (int, error) {
	b.nCall++
	if len(p) <= b.nByte {
		n, err := b.w.Write(p)
		b.nByte -= n
		return n, err
	}
	n, err := b.w.Write(p[:b.nByte])
	b.nByte -= n
	if err != nil {
		return n, err
	}
	return n, ErrBroken
}

// BrknRdr gives back the first n bytes of the wrapped reader, then
// ErrBroken instead of io.EOF.
type BrknRdr struct {
	r     io.Reader
	nByte int
}

// NewReader returns a reader around r which breaks after n bytes.
func NewReader(r io.Reader, n int) *BrknRdr {
	return &BrknRdr{r: r, nByte: n}
}

func (b *BrknRdr) Read(p []byte) (int, error) {
	if b.nByte <= 0 {
		return 0, ErrBroken
	}
	if len(p) > b.nByte {
		p = p[:b.nByte]
	}
	n, err := b.r.Read(p)
	b.nByte -= n
	if err == io.EOF {
		err = ErrBroken
	}
	return n, err
}
