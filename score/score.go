// 6 Oct 2026

// Package score says how good an alignment of two contact matrices is.
// Everything works on the matrices cut down to the aligned rows and
// columns, taking the element pairs above the diagonal.
package score

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/andrew-torda/hicalign/nw"
)

// ErrIndexRange means an alignment points outside its matrix. A search can
// skip such an alignment and carry on.
var ErrIndexRange = errors.New("score: alignment index out of range")

// upper returns, for both matrices, the elements at pairs of aligned
// positions k < l. Both slices are in the same order.
func upper(ali nw.Alignment, m1, m2 mat.Matrix) (v1, v2 []float64, err error) {
	p1, p2 := ali.Pairs()
	for _, x := range []struct {
		idx []int
		m   mat.Matrix
	}{{p1, m1}, {p2, m2}} {
		r, c := x.m.Dims()
		n := min(r, c)
		for _, i := range x.idx {
			if i < 0 || i >= n {
				return nil, nil, fmt.Errorf("%w: %d with matrix size %d", ErrIndexRange, i, n)
			}
		}
	}
	nn := len(p1) * (len(p1) - 1) / 2
	v1, v2 = make([]float64, 0, nn), make([]float64, 0, nn)
	for k := range p1 {
		for l := k + 1; l < len(p1); l++ {
			v1 = append(v1, m1.At(p1[k], p1[l]))
			v2 = append(v2, m2.At(p2[k], p2[l]))
		}
	}
	return v1, v2, nil
}

// Dist is the sum of squared differences between the matrices over the
// aligned pairs, divided by one more than the number of pairs.
func Dist(ali nw.Alignment, m1, m2 mat.Matrix) (float64, error) {
	v1, v2, err := upper(ali, m1, m2)
	if err != nil {
		return 0, err
	}
	var sum float64
	for k, x := range v1 {
		d := x - v2[k]
		sum += d * d
	}
	return sum / float64(len(v1)+1), nil
}

// grandMean is the mean over every element of m.
func grandMean(m mat.Matrix) float64 {
	r, c := m.Dims()
	x := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x = append(x, m.At(i, j))
		}
	}
	return stat.Mean(x, nil)
}

// GapCost is the extra cost DistLong puts on gaps. Each gap costs pen
// divided by its place in the current run of gaps on that side, where pen
// is the mean of the two matrix means times the alignment length.
func GapCost(ali nw.Alignment, m1, m2 mat.Matrix) float64 {
	pen := (grandMean(m1) + grandMean(m2)) / 2 * float64(ali.Len())
	var xpen float64
	exti, extd := 1., 1.
	for k, i := range ali.A {
		switch {
		case i != nw.Gap && ali.B[k] != nw.Gap:
			exti, extd = 1, 1
		case i == nw.Gap:
			xpen += pen / exti
			exti++
			extd = 1
		default:
			xpen += pen / extd
			extd++
			exti = 1
		}
	}
	return xpen
}

// DistLong is Dist plus GapCost.
func DistLong(ali nw.Alignment, m1, m2 mat.Matrix) (float64, error) {
	d, err := Dist(ali, m1, m2)
	if err != nil {
		return 0, err
	}
	return d + GapCost(ali, m1, m2), nil
}

// rank gives ranks starting from 1, with ties getting the mean of the
// ranks they cover.
func rank(x []float64) []float64 {
	sorted := append([]float64(nil), x...)
	inds := make([]int, len(x))
	floats.Argsort(sorted, inds)
	r := make([]float64, len(x))
	for lo := 0; lo < len(sorted); {
		hi := lo + 1
		for hi < len(sorted) && sorted[hi] == sorted[lo] {
			hi++
		}
		mid := float64(lo+hi+1) / 2
		for k := lo; k < hi; k++ {
			r[inds[k]] = mid
		}
		lo = hi
	}
	return r
}

// Spearman gives the rank correlation between the two matrices over the
// aligned pairs, and its two sided p-value from a t distribution with
// n - 2 degrees of freedom. With fewer than three pairs p is NaN.
func Spearman(ali nw.Alignment, m1, m2 mat.Matrix) (rho, p float64, err error) {
	v1, v2, err := upper(ali, m1, m2)
	if err != nil {
		return 0, 0, err
	}
	n := len(v1)
	if n < 2 {
		return math.NaN(), math.NaN(), nil
	}
	rho = stat.Correlation(rank(v1), rank(v2), nil)
	return rho, pValue(rho, n), nil
}

func pValue(rho float64, n int) float64 {
	switch {
	case n < 3 || math.IsNaN(rho):
		return math.NaN()
	case math.Abs(rho) >= 1:
		return 0
	}
	df := float64(n - 2)
	t := rho * math.Sqrt(df/((1+rho)*(1-rho)))
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * tdist.Survival(math.Abs(t))
}

// ContactOverlap is the older overlap score, 2 * sum(1 - |p2 - p1|)
// divided by the total of both matrices, all over the aligned pairs.
func ContactOverlap(ali nw.Alignment, m1, m2 mat.Matrix) (float64, error) {
	v1, v2, err := upper(ali, m1, m2)
	if err != nil {
		return 0, err
	}
	var cm1, cm2, cmo float64
	for k, x := range v1 {
		cm1 += x
		cm2 += v2[k]
		cmo += 1 - math.Abs(v2[k]-x)
	}
	return 2 * cmo / (cm1 + cm2), nil
}
