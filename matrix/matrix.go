// Package matrix 7 feb 2018, float64 version 3 Oct 2026
// Two dimensional arrays of float64 and bytes. The rows are slices into
// one backing array, so m.Mat[i][j] works and rows are contiguous.
// There are a few ways into this.
// You can declare a DMatrix2d. This will have zero space allocated.
// Before you use it, call Resize. This will do the allocation.
// You can call NewDMatrix2d with the right size. This will just give you
// a matrix to use. It is best if you have a one-off use.
// If you want to use matrices whose size changes on iterations of a loop,
// like the score lattice in the aligner, declare the matrix at the start
// and call Resize on each iteration. The innards grow as necessary, using
// the same backing store, but adapting the slices.
// Resize does not clear old values. Whoever resizes has to fill in.
// With zero rows or columns we do not throw errors or panic. Size
// reports 0, 0 for zero rows.
package matrix

import (
	"fmt"
	"math"
)

// DMatrix2d is a two dimensional array of float64's
type DMatrix2d struct {
	Mat      [][]float64
	fullData []float64
	nc       int // columns, kept so zero-column matrices still know their shape
}

// fixSlices sets the pointers in a matrix.
// It is in its own function so we can call it for new objects
// or when resizing an old one.
func (mat *DMatrix2d) fixSlices(n_r, n_c int) {
	tmp := mat.fullData
	mat.Mat = make([][]float64, n_r)
	for i := range mat.Mat {
		mat.Mat[i] = tmp[:n_c:n_c]
		tmp = tmp[n_c:]
	}
	mat.nc = n_c
}

// Resize takes a matrix and desired size. If the backing array is too
// small, it is reallocated. If it is big enough, we only run over the
// pointers and set them. It will not reduce the space used by a matrix.
func (mat *DMatrix2d) Resize(n_r, n_c int) *DMatrix2d {
	if nrow, ncol := mat.Size(); nrow == n_r && ncol == n_c {
		return mat
	}
	if n_r*n_c > len(mat.fullData) { // Is new size bigger than old ?
		mat.fullData = make([]float64, n_r*n_c)
	}
	mat.fixSlices(n_r, n_c)
	return mat
}

// NewDMatrix2d gives us a two dimensional matrix of n_r x n_c, zeroed.
func NewDMatrix2d(n_r, n_c int) *DMatrix2d {
	r := new(DMatrix2d)
	r.fullData = make([]float64, n_r*n_c)
	r.fixSlices(n_r, n_c)
	return r
}

// WrapDMatrix2d puts row slices over data, which must hold n_r*n_c
// values in row-major order. Nothing is copied, so changes to the
// matrix show up in data and vice versa.
func WrapDMatrix2d(n_r, n_c int, data []float64) *DMatrix2d {
	if len(data) < n_r*n_c {
		panic(fmt.Sprintf("WrapDMatrix2d: %d values for %d x %d", len(data), n_r, n_c))
	}
	r := &DMatrix2d{fullData: data[:n_r*n_c]}
	r.fixSlices(n_r, n_c)
	return r
}

// Size returns the number of rows and the number of columns
func (mat *DMatrix2d) Size() (nrow, ncol int) {
	if nrow = len(mat.Mat); nrow == 0 {
		return 0, 0
	}
	return nrow, mat.nc
}

// Fill sets every element to x.
func (mat *DMatrix2d) Fill(x float64) {
	for _, row := range mat.Mat {
		for j := range row {
			row[j] = x
		}
	}
}

// MinMax returns the smallest and largest elements. For an empty matrix
// you get +Inf, -Inf.
func (mat *DMatrix2d) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range mat.Mat {
		for _, x := range row {
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
	}
	return lo, hi
}

// String returns the matrix printed out in a form that might be useful
// for debugging. Values are rounded to four places.
func (mat *DMatrix2d) String() (s string) {
	for _, row := range mat.Mat {
		for _, x := range row {
			s += fmt.Sprintf("%9.4f", x)
		}
		s += "\n"
	}
	return s
}

// BackingDataString returns a string with the contents of the underlying array.
// It is only exported so the test file can get to it.
func (mat *DMatrix2d) BackingDataString() (s string) {
	s = fmt.Sprintln(mat.fullData)
	return
}

// ------------------------------------------------------------

// BMatrix2d is a two dimensional array of bytes
type BMatrix2d struct {
	Mat      [][]byte
	fullData []byte
}

// fixSlices sets the pointers in a matrix.
func (mat *BMatrix2d) fixSlices(n_r, n_c int) {
	tmp := mat.fullData
	mat.Mat = make([][]byte, n_r)
	for i := range mat.Mat {
		mat.Mat[i] = tmp[:n_c:n_c]
		tmp = tmp[n_c:]
	}
}

// NewBMatrix2d gives us a two dimensional matrix of n_r x n_c, zeroed.
func NewBMatrix2d(n_r, n_c int) *BMatrix2d {
	r := new(BMatrix2d)
	r.fullData = make([]byte, n_r*n_c)
	r.fixSlices(n_r, n_c)
	return r
}

// Size returns the number of rows and number of columns
func (mat *BMatrix2d) Size() (nrow, ncol int) {
	if nrow = len(mat.Mat); nrow == 0 {
		return 0, 0
	}
	ncol = len(mat.Mat[0])
	return
}

// Count returns the number of non-zero entries
func (mat *BMatrix2d) Count() (n int) {
	for _, b := range mat.fullData {
		if b != 0 {
			n++
		}
	}
	return n
}

// String returns the matrix printed out in a form that might be useful
// for debugging.
func (mat *BMatrix2d) String() (s string) {
	for _, row := range mat.Mat {
		for _, col := range row {
			s += fmt.Sprintf("%2d", uint8(col))
		}
		s += "\n"
	}
	return s
}
