// 4 Oct 2026

// Package eigen turns a symmetric contact matrix into the features used
// for alignment. Each feature is an eigenvector scaled by the square root
// of the magnitude of its eigenvalue. Features are sorted by that size,
// biggest first. The sign of each eigenvalue is kept, so the matrix
// can be rebuilt.
//
// Prescore then builds the score matrix for the aligner out of the
// features of two matrices.
package eigen

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/matrix"
)

var (
	ErrAsymmetric = errors.New("eigen: matrix is not symmetric")
	ErrNotSquare  = errors.New("eigen: matrix is not square")
	ErrEmpty      = errors.New("eigen: empty matrix")
	ErrFactorize  = errors.New("eigen: decomposition failed")
	ErrNumV       = errors.New("eigen: bad number of eigenvectors")
)

// symTol is the allowed asymmetry, relative to the largest element.
const symTol = 1e-9

// Features holds the decomposition of one matrix. Column k of Vecs is
// eigenvector k times Vals[k]. Signs[k] is +1 or -1. Nothing here is
// changed after Extract.
type Features struct {
	Vals  []float64
	Signs []float64
	Vecs  *mat.Dense
}

// N is the size of the matrix the features came from.
func (f *Features) N() int { return len(f.Vals) }

// toSym checks a is square and symmetric and copies it.
func toSym(a mat.Matrix) (*mat.SymDense, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %d x %d", ErrNotSquare, r, c)
	}
	if r == 0 {
		return nil, ErrEmpty
	}
	big := 0.
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			big = math.Max(big, math.Abs(a.At(i, j)))
		}
	}
	tol := symTol * big
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			aij, aji := a.At(i, j), a.At(j, i)
			if math.Abs(aij-aji) > tol {
				return nil, fmt.Errorf("%w: element %d %d is %g, %d %d is %g",
					ErrAsymmetric, i, j, aij, j, i, aji)
			}
			sym.SetSym(i, j, aij)
		}
	}
	return sym, nil
}

// Extract does the decomposition of a.
func Extract(a mat.Matrix) (*Features, error) {
	sym, err := toSym(a)
	if err != nil {
		return nil, err
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, ErrFactorize
	}
	lambda := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	n := len(lambda)
	mag := make([]float64, n)
	idx := make([]int, n)
	for i, v := range lambda {
		mag[i] = math.Sqrt(math.Abs(v))
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return mag[idx[a]] > mag[idx[b]] })

	f := &Features{
		Vals:  make([]float64, n),
		Signs: make([]float64, n),
		Vecs:  mat.NewDense(n, n, nil),
	}
	for k, from := range idx {
		f.Vals[k] = mag[from]
		f.Signs[k] = 1
		if lambda[from] < 0 {
			f.Signs[k] = -1
		}
		for i := 0; i < n; i++ {
			f.Vecs.Set(i, k, vecs.At(i, from)*mag[from])
		}
	}
	return f, nil
}

// Top gives the first k features as an N x k matrix. k is capped by N.
// It is a view, so do not write to it.
func (f *Features) Top(k int) mat.Matrix {
	k = min(k, f.N())
	return f.Vecs.Slice(0, f.N(), 0, k)
}

// Reconstruct gives back the sum over features of sign * f f^T, which
// should be the original matrix.
func (f *Features) Reconstruct() *mat.Dense {
	signed := mat.DenseCopyOf(f.Vecs)
	for k, s := range f.Signs {
		if s < 0 {
			for i := 0; i < f.N(); i++ {
				signed.Set(i, k, -signed.At(i, k))
			}
		}
	}
	var r mat.Dense
	r.Mul(signed, f.Vecs.T())
	return &r
}

// Signs gives the sign pattern number c for num features. Patterns are
// numbered so that counting c up from zero walks through them with the
// first feature changing slowest and +1 before -1, so 0 is all +1 and
// 2^num - 1 is all -1.
func Signs(num int, c uint64) []float64 {
	s := make([]float64, num)
	for i := range s {
		s[i] = 1
		if c&(1<<uint(num-1-i)) != 0 {
			s[i] = -1
		}
	}
	return s
}

// Prescore builds the N1 x N2 score matrix for the aligner. Element i, j
// is the dot product of row i of the first len(signs) features of f1,
// each multiplied by its sign, with row j of the same features of f2.
// Only f1 is ever flipped.
func Prescore(f1, f2 *Features, signs []float64) (*matrix.DMatrix2d, error) {
	num := len(signs)
	n1, n2 := f1.N(), f2.N()
	if num < 1 || num > n1 || num > n2 {
		return nil, fmt.Errorf("%w: %d with matrices of %d and %d", ErrNumV, num, n1, n2)
	}
	a := mat.DenseCopyOf(f1.Top(num))
	for k, s := range signs {
		if s < 0 {
			for i := 0; i < n1; i++ {
				a.Set(i, k, -a.At(i, k))
			}
		}
	}
	var p mat.Dense
	p.Mul(a, f2.Top(num).T())
	raw := p.RawMatrix() // freshly allocated, so Stride == Cols
	return matrix.WrapDMatrix2d(n1, n2, raw.Data), nil
}
