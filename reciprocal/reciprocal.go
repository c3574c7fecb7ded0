// 5 Oct 2026

// Package reciprocal aligns two lists of domain boundaries. A boundary of
// A is paired with a boundary of B only if each is the closest to the
// other. Everything else goes in as a gap.
// Both lists must be sorted, strictly increasing. The nearest neighbour
// searches stop as soon as distances start to grow.
package reciprocal

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultMaxDist is the furthest apart two boundaries can be and still be
// paired.
const DefaultMaxDist = 100000

// Gap is the index of a site with no boundary.
const Gap = -1

var (
	ErrUnsorted = errors.New("reciprocal: boundaries not strictly increasing")
	ErrEmpty    = errors.New("reciprocal: no boundaries")
)

// Options for Align. Zero values mean the defaults. The default penalty
// is the mean spacing of boundaries in A plus that in B.
type Options struct {
	Penalty float64
	MaxDist float64
}

// Site is one position of one side of an alignment. Idx is the index into
// the input list, or Gap and then Pos means nothing.
type Site struct {
	Idx int
	Pos float64
}

func (s Site) IsGap() bool { return s.Idx == Gap }

var gapSite = Site{Idx: Gap}

// Result is an alignment. A and B are the same length. Score is the mean
// difference per alignment position, with unpaired A boundaries costing
// the penalty.
type Result struct {
	A, B    []Site
	Score   float64
	Penalty float64
}

// Len is the number of alignment positions
func (r *Result) Len() int { return len(r.A) }

// spacing is the mean distance between neighbouring boundaries.
func spacing(x []float64) float64 {
	switch len(x) {
	case 0:
		return 0
	case 1:
		return math.Abs(x[0])
	}
	return (x[len(x)-1] - x[0]) / float64(len(x)-1)
}

func checkSorted(x []float64, name string) error {
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return fmt.Errorf("%w: %s[%d] = %g after %g", ErrUnsorted, name, i, x[i], x[i-1])
		}
	}
	return nil
}

// closest returns the index of the element of x nearest to v, looking
// only from index start on. On a tie the first one wins.
func closest(v float64, x []float64, start int) int {
	best, diff := start, math.Inf(1)
	for i := start; i < len(x); i++ {
		d := math.Abs(x[i] - v)
		if d >= diff {
			break
		}
		best, diff = i, d
	}
	return best
}

// partner finds the B boundary nearest to a[ia], from index start in b on,
// which has a[ia] as its own nearest A boundary (looking at A from ia on).
// It returns Gap if there is none.
func partner(a, b []float64, ia, start int) int {
	found, diff := Gap, math.Inf(1)
	for jb := start; jb < len(b); jb++ {
		d := math.Abs(b[jb] - a[ia])
		if d < diff {
			if closest(b[jb], a, ia) == ia {
				found, diff = jb, d
			}
		} else if found != Gap {
			break
		}
	}
	return found
}

// Align does the alignment of boundary lists a and b.
func Align(a, b []float64, opts Options) (*Result, error) {
	if len(a) == 0 && len(b) == 0 {
		return nil, ErrEmpty
	}
	if err := checkSorted(a, "A"); err != nil {
		return nil, err
	}
	if err := checkSorted(b, "B"); err != nil {
		return nil, err
	}
	penalty, maxDist := opts.Penalty, opts.MaxDist
	if penalty == 0 {
		penalty = spacing(a) + spacing(b)
		logrus.Debugf("reciprocal: default penalty %g", penalty)
	}
	if maxDist == 0 {
		maxDist = DefaultMaxDist
	}

	res := &Result{
		A:       make([]Site, 0, len(a)+len(b)),
		B:       make([]Site, 0, len(a)+len(b)),
		Penalty: penalty,
	}
	add := func(sa, sb Site) {
		res.A = append(res.A, sa)
		res.B = append(res.B, sb)
	}
	siteA := func(i int) Site { return Site{Idx: i, Pos: a[i]} }
	siteB := func(j int) Site { return Site{Idx: j, Pos: b[j]} }

	var sum float64
	start := 0 // first B boundary not yet used
	for ia := range a {
		jb := partner(a, b, ia, start)
		if jb == Gap {
			add(siteA(ia), gapSite)
			sum += penalty
			continue
		}
		for ; start < jb; start++ { // passed over on the way
			add(gapSite, siteB(start))
		}
		start = jb + 1
		d := math.Abs(a[ia] - b[jb])
		if d <= maxDist {
			add(siteA(ia), siteB(jb))
			sum += d
			continue
		}
		if a[ia] > b[jb] { // too far apart, smaller one goes first
			add(gapSite, siteB(jb))
			add(siteA(ia), gapSite)
		} else {
			add(siteA(ia), gapSite)
			add(gapSite, siteB(jb))
		}
		sum += penalty
	}
	for ; start < len(b); start++ {
		add(gapSite, siteB(start))
	}
	res.Score = sum / float64(res.Len())
	return res, nil
}

// Format writes the alignment as two lines with positions divided by
// unit, so 1000 gives kb. A unit of zero is taken as 1.
func (r *Result) Format(w io.Writer, lbl1, lbl2 string, unit float64) error {
	if unit == 0 {
		unit = 1
	}
	col := func(side []Site) string {
		s := make([]string, len(side))
		for k, site := range side {
			if site.IsGap() {
				s[k] = fmt.Sprintf("%6s", "---")
			} else {
				s[k] = fmt.Sprintf("%6d", int(site.Pos/unit))
			}
		}
		return strings.Join(s, "|")
	}
	_, err := fmt.Fprintf(w, "%s: %s\n%s: %s\n", lbl1, col(r.A), lbl2, col(r.B))
	return err
}
