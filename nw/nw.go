// 3 Oct 2026

// Package nw is a Needleman-Wunsch global aligner working on a pre-computed
// score matrix. There are two flavours. Core uses one gap penalty
// everywhere. CoreLong makes gaps cheaper as a run of gaps gets longer.
// An Aligner keeps the score lattice, so it can be re-used over many
// alignments and the storage only grows. One aligner per goroutine.
//
// Scores are maximised. Penalties are negative numbers, added as they are.
package nw

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/hicalign/matrix"
)

// Gap marks an alignment position with no partner.
const Gap = -1

// NTier is the number of steps in the long gap penalty schedule.
// The last one is used for runs of NTier-1 gaps and more.
const NTier = 5

// eps is used when a traceback checks where a score came from.
const eps = 1e-9

var (
	ErrBacktrace = errors.New("nw: traceback cannot explain score")
	ErrEmpty     = errors.New("nw: empty score matrix")
)

// Alignment is a pair of index lists of the same length. A[k] is a row of
// the score matrix, B[k] a column, either may be Gap.
type Alignment struct {
	A, B []int
}

// Len is the number of alignment positions, including gaps.
func (a Alignment) Len() int { return len(a.A) }

// Pairs returns the aligned, gap-free index pairs in order.
func (a Alignment) Pairs() (p1, p2 []int) {
	for k, i := range a.A {
		if i != Gap && a.B[k] != Gap {
			p1 = append(p1, i)
			p2 = append(p2, a.B[k])
		}
	}
	return p1, p2
}

// NGap counts positions with a gap on either side.
func (a Alignment) NGap() (n int) {
	for k, i := range a.A {
		if i == Gap || a.B[k] == Gap {
			n++
		}
	}
	return n
}

// check makes sure the two sides are the same length and that the
// non-gap indices on each side increase.
func (a Alignment) check() error {
	if len(a.A) != len(a.B) {
		return fmt.Errorf("nw: alignment sides %d and %d long", len(a.A), len(a.B))
	}
	for _, side := range [][]int{a.A, a.B} {
		last := -1
		for _, i := range side {
			if i == Gap {
				continue
			}
			if i <= last {
				return fmt.Errorf("nw: alignment index %d after %d", i, last)
			}
			last = i
		}
	}
	return nil
}

// Format writes the alignment as two lines of columns, gaps as dashes.
func (a Alignment) Format(w io.Writer, lbl1, lbl2 string) error {
	col := func(side []int) string {
		s := make([]string, len(side))
		for k, i := range side {
			if i == Gap {
				s[k] = fmt.Sprintf("%4s", "---")
			} else {
				s[k] = fmt.Sprintf("%4d", i)
			}
		}
		return strings.Join(s, "|")
	}
	_, err := fmt.Fprintf(w, "%s: %s\n%s: %s\n", lbl1, col(a.A), lbl2, col(a.B))
	return err
}

// Penalty is the gap penalty a score matrix gets. It is the most negative
// of the smallest score and the negated largest, so a gap costs at least
// as much as the worst mismatch.
func Penalty(pscr *matrix.DMatrix2d) float64 {
	lo, hi := pscr.MinMax()
	return min(lo, -hi)
}

// Tiers is the long gap schedule, running from penalty down to penalty/2.
func Tiers(penalty float64) (pens [NTier]float64) {
	const lpen = NTier - 1
	for i := range pens {
		pens[i] = penalty - penalty/(2*lpen)*float64(i)
	}
	return pens
}

// Virgin sets up a score lattice of nr x nc. The first row and column get
// multiples of penalty, the rest is zeroed. lat is resized, so its old
// storage is re-used.
func Virgin(lat *matrix.DMatrix2d, penalty float64, nr, nc int) *matrix.DMatrix2d {
	lat.Resize(nr, nc)
	for i, row := range lat.Mat {
		for j := range row {
			row[j] = 0
		}
		row[0] = penalty * float64(i)
	}
	if nr > 0 {
		for j := range lat.Mat[0] {
			lat.Mat[0][j] = penalty * float64(j)
		}
	}
	return lat
}

// Aligner holds the score lattice between alignments.
type Aligner struct {
	lat matrix.DMatrix2d
}

// Lattice gives access to the score lattice of the last alignment.
// It is overwritten by the next one.
func (al *Aligner) Lattice() *matrix.DMatrix2d { return &al.lat }

// prepare checks the score matrix and gives back a fresh lattice.
func (al *Aligner) prepare(pscr *matrix.DMatrix2d, penalty float64) (
	lat [][]float64, nr, nc int, err error) {
	if nr, nc = pscr.Size(); nr == 0 || nc == 0 {
		return nil, 0, 0, ErrEmpty
	}
	Virgin(&al.lat, penalty, nr+1, nc+1)
	return al.lat.Mat, nr, nc, nil
}

// Core aligns with a constant gap penalty. It returns the alignment and
// the score in the last cell of the lattice.
func (al *Aligner) Core(pscr *matrix.DMatrix2d, penalty float64) (Alignment, float64, error) {
	scr, nr, nc, err := al.prepare(pscr, penalty)
	if err != nil {
		return Alignment{}, 0, err
	}
	p := pscr.Mat
	for i := 1; i <= nr; i++ {
		for j := 1; j <= nc; j++ {
			best := scr[i-1][j-1] + p[i-1][j-1]
			if up := scr[i-1][j] + penalty; up > best {
				best = up
			}
			if left := scr[i][j-1] + penalty; left > best {
				best = left
			}
			scr[i][j] = best
		}
	}
	ali, err := traceback(scr, p, []float64{penalty}, shortMoves)
	return ali, scr[nr][nc], err
}

// CoreLong aligns with the decaying gap schedule from Tiers. The length of
// the current run of insertions and deletions is carried along the sweep,
// row by row, and picks the tier. A match resets both runs.
func (al *Aligner) CoreLong(pscr *matrix.DMatrix2d, penalty float64) (Alignment, float64, error) {
	const lpen = NTier - 1
	scr, nr, nc, err := al.prepare(pscr, penalty)
	if err != nil {
		return Alignment{}, 0, err
	}
	pens := Tiers(penalty)
	p := pscr.Mat
	ins, rmv := 0, 0
	for i := 1; i <= nr; i++ {
		for j := 1; j <= nc; j++ {
			pen := pens[max(ins, rmv)]
			best, kind := scr[i-1][j-1]+p[i-1][j-1], Match
			if up := scr[i-1][j] + pen; up > best {
				best, kind = up, Insert
			}
			if left := scr[i][j-1] + pen; left > best {
				best, kind = left, Delete
			}
			switch kind {
			case Insert:
				if ins < lpen {
					ins++
				}
				rmv = 0
			case Delete:
				if rmv < lpen {
					rmv++
				}
				ins = 0
			default:
				ins, rmv = 0, 0
			}
			scr[i][j] = best
		}
	}
	ali, err := traceback(scr, p, pens[:], longMoves)
	return ali, scr[nr][nc], err
}

// Core is a one-off constant penalty alignment.
func Core(pscr *matrix.DMatrix2d, penalty float64) (Alignment, float64, error) {
	var al Aligner
	return al.Core(pscr, penalty)
}

// CoreLong is a one-off long gap alignment.
func CoreLong(pscr *matrix.DMatrix2d, penalty float64) (Alignment, float64, error) {
	var al Aligner
	return al.CoreLong(pscr, penalty)
}
