// 9 Oct 2026

// Package merge lays two contact maps out on their alignment, so they can
// be drawn or compared position by position. Rows and columns with a gap
// get NaN.
package merge

import (
	"errors"
	"fmt"
	"math"

	tmatrix "github.com/andrew-torda/matrix"
	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/nw"
)

var ErrIndexRange = errors.New("merge: alignment index out of range")

// Merged are three L x L maps for an alignment of length L. M1 and M2 are
// the two inputs, NaN where their own side has a gap. Mean is their
// average, NaN where either side has a gap.
type Merged struct {
	M1, M2, Mean *tmatrix.FMatrix2d
}

func checkRange(side []int, m mat.Matrix) error {
	n, _ := m.Dims()
	for _, i := range side {
		if i != nw.Gap && (i < 0 || i >= n) {
			return fmt.Errorf("%w: %d with size %d", ErrIndexRange, i, n)
		}
	}
	return nil
}

// Merge builds the three maps.
func Merge(hic1, hic2 mat.Matrix, ali nw.Alignment) (*Merged, error) {
	if err := checkRange(ali.A, hic1); err != nil {
		return nil, err
	}
	if err := checkRange(ali.B, hic2); err != nil {
		return nil, err
	}
	l := ali.Len()
	mg := &Merged{
		M1:   tmatrix.NewFMatrix2d(l, l),
		M2:   tmatrix.NewFMatrix2d(l, l),
		Mean: tmatrix.NewFMatrix2d(l, l),
	}
	nan := float32(math.NaN())
	for k := 0; k < l; k++ {
		for m := 0; m < l; m++ {
			v1, v2 := nan, nan
			ia, ib := ali.A[k] != nw.Gap && ali.A[m] != nw.Gap, ali.B[k] != nw.Gap && ali.B[m] != nw.Gap
			if ia {
				v1 = float32(hic1.At(ali.A[k], ali.A[m]))
			}
			if ib {
				v2 = float32(hic2.At(ali.B[k], ali.B[m]))
			}
			mg.M1.Mat[k][m], mg.M2.Mat[k][m] = v1, v2
			if ia && ib {
				mg.Mean.Mat[k][m] = (v1 + v2) / 2
			} else {
				mg.Mean.Mat[k][m] = nan
			}
		}
	}
	return mg, nil
}
