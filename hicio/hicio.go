// 10 Oct 2026

// Package hicio reads contact matrices and boundary lists from text files
// and writes alignments out. Files are memory mapped. A file name of "-"
// means standard input. Lines starting with '#' and blank lines are
// skipped.
//
// A matrix file has one row per line, numbers separated by white space.
// A boundary file has any number of coordinates per line, in increasing
// order.
package hicio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edsrzf/mmap-go"
	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/nw"
	"github.com/andrew-torda/hicalign/reciprocal"
)

const GapMark = "-" // how gaps are written

var (
	ErrEmpty    = errors.New("hicio: no data")
	ErrRagged   = errors.New("hicio: rows of different lengths")
	ErrNotSq    = errors.New("hicio: matrix is not square")
	ErrUnsorted = errors.New("hicio: boundaries not strictly increasing")
)

// slurp gets the contents of a file. Call done when finished with data.
func slurp(fname string) (data []byte, done func(), err error) {
	nothing := func() {}
	if fname == "-" {
		data, err = io.ReadAll(os.Stdin)
		return data, nothing, err
	}
	var fp *os.File
	if fp, err = os.Open(fname); err != nil {
		return nil, nothing, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, nothing, err
	}
	if fi.Size() == 0 { // mmap does not like empty files
		fp.Close()
		return nil, nothing, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, nothing, err
	}
	return mm, func() { mm.Unmap(); fp.Close() }, nil
}

// eachLine calls f with the fields of every line which is not blank or a
// comment. n is the line number, from 1.
func eachLine(data []byte, f func(n int, fields [][]byte) error) error {
	for n := 1; len(data) > 0; n++ {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if err := f(n, bytes.Fields(line)); err != nil {
			return err
		}
	}
	return nil
}

func parseFloats(n int, fields [][]byte, dst []float64) ([]float64, error) {
	for _, fld := range fields {
		x, err := strconv.ParseFloat(string(fld), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		dst = append(dst, x)
	}
	return dst, nil
}

// ParseMatrix reads a square matrix from its text.
func ParseMatrix(data []byte) (*mat.Dense, error) {
	var vals []float64
	nr, nc := 0, 0
	err := eachLine(data, func(n int, fields [][]byte) error {
		if nr == 0 {
			nc = len(fields)
		} else if len(fields) != nc {
			return fmt.Errorf("%w: line %d has %d, expected %d", ErrRagged, n, len(fields), nc)
		}
		var err error
		vals, err = parseFloats(n, fields, vals)
		nr++
		return err
	})
	if err != nil {
		return nil, err
	}
	if nr == 0 {
		return nil, ErrEmpty
	}
	if nr != nc {
		return nil, fmt.Errorf("%w: %d x %d", ErrNotSq, nr, nc)
	}
	return mat.NewDense(nr, nc, vals), nil
}

// ParseBoundaries reads a boundary list from its text.
func ParseBoundaries(data []byte) ([]float64, error) {
	var b []float64
	err := eachLine(data, func(n int, fields [][]byte) error {
		var err error
		b, err = parseFloats(n, fields, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			return nil, fmt.Errorf("%w: %g after %g", ErrUnsorted, b[i], b[i-1])
		}
	}
	return b, nil
}

// ReadMatrix reads a matrix from file fname.
func ReadMatrix(fname string) (*mat.Dense, error) {
	data, done, err := slurp(fname)
	if err != nil {
		return nil, err
	}
	defer done()
	m, err := ParseMatrix(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}

// ReadBoundaries reads a boundary list from file fname.
func ReadBoundaries(fname string) ([]float64, error) {
	data, done, err := slurp(fname)
	if err != nil {
		return nil, err
	}
	defer done()
	b, err := ParseBoundaries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return b, nil
}

// WriteMatrix writes m in the form ReadMatrix reads.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	bw := bufio.NewWriter(w)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(m.At(i, j), 'g', 8, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteAlignment writes one tab separated line per alignment position,
// the two indices or GapMark.
func WriteAlignment(w io.Writer, ali nw.Alignment) error {
	bw := bufio.NewWriter(w)
	col := func(i int) string {
		if i == nw.Gap {
			return GapMark
		}
		return strconv.Itoa(i)
	}
	for k, i := range ali.A {
		fmt.Fprintf(bw, "%s\t%s\n", col(i), col(ali.B[k]))
	}
	return bw.Flush()
}

// WriteSites is WriteAlignment for boundaries, writing coordinates.
func WriteSites(w io.Writer, r *reciprocal.Result) error {
	bw := bufio.NewWriter(w)
	col := func(s reciprocal.Site) string {
		if s.IsGap() {
			return GapMark
		}
		return strconv.FormatFloat(s.Pos, 'f', -1, 64)
	}
	for k, s := range r.A {
		fmt.Fprintf(bw, "%s\t%s\n", col(s), col(r.B[k]))
	}
	return bw.Flush()
}
