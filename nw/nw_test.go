// Small hand-worked alignments plus random score matrices where we
// only check the shape of the answer.

package nw_test

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/andrew-torda/hicalign/matrix"
	"github.com/andrew-torda/hicalign/nw"
)

const gap = nw.Gap

func mkScr(rows [][]float64) *matrix.DMatrix2d {
	m := matrix.NewDMatrix2d(len(rows), len(rows[0]))
	for i, r := range rows {
		copy(m.Mat[i], r)
	}
	return m
}

func randScr(rnd *rand.Rand, nr, nc int) *matrix.DMatrix2d {
	m := matrix.NewDMatrix2d(nr, nc)
	for _, row := range m.Mat {
		for j := range row {
			row[j] = rnd.Float64()*4 - 1
		}
	}
	return m
}

var testcases = []struct {
	name    string
	p       [][]float64 // score matrix
	penalty float64     // gap penalty
	long    bool        // use the decaying gap schedule
	a, b    []int       // expected alignment
	scr     float64     // expected final score
}{
	{"identity", [][]float64{{1, 0}, {0, 1}}, -1, false, []int{0, 1}, []int{0, 1}, 2},
	{"identity long", [][]float64{{1, 0}, {0, 1}}, -1, true, []int{0, 1}, []int{0, 1}, 2},
	{"one insert", [][]float64{{5, -1}, {-1, -1}, {-1, 5}}, -5, false,
		[]int{0, 1, 2}, []int{0, gap, 1}, 5},
	{"one insert long", [][]float64{{5, -1}, {-1, -1}, {-1, 5}}, -5, true,
		[]int{0, 1, 2}, []int{0, gap, 1}, 5.625},
	{"one delete", [][]float64{{5, -1, -1}, {-1, -1, 5}}, -5, false,
		[]int{0, gap, 1}, []int{0, 1, 2}, 5},
	{"leading gaps", [][]float64{{-1, 3}}, -0.5, false,
		[]int{gap, 0}, []int{0, 1}, 2.5},
	{"trailing gaps", [][]float64{{3}, {-1}, {-1}}, -0.5, false,
		[]int{0, 1, 2}, []int{0, gap, gap}, 2},
}

func TestHandWorked(t *testing.T) {
	for _, tc := range testcases {
		p := mkScr(tc.p)
		f := nw.Core
		if tc.long {
			f = nw.CoreLong
		}
		ali, scr, err := f(p, tc.penalty)
		if err != nil {
			t.Fatal(tc.name, err)
		}
		if !reflect.DeepEqual(ali.A, tc.a) || !reflect.DeepEqual(ali.B, tc.b) {
			t.Errorf("%s: got %v %v, expected %v %v", tc.name, ali.A, ali.B, tc.a, tc.b)
		}
		if !nw.Equal(scr, tc.scr) {
			t.Errorf("%s: score got %g expected %g", tc.name, scr, tc.scr)
		}
	}
}

// checkCover makes sure every row and column index appears once, in order.
func checkCover(t *testing.T, ali nw.Alignment, nr, nc int) {
	t.Helper()
	if len(ali.A) != len(ali.B) {
		t.Fatal("sides differ in length", len(ali.A), len(ali.B))
	}
	for _, x := range []struct {
		side []int
		n    int
	}{{ali.A, nr}, {ali.B, nc}} {
		next := 0
		for _, i := range x.side {
			if i == gap {
				continue
			}
			if i != next {
				t.Fatal("expected index", next, "got", i, "in", x.side)
			}
			next++
		}
		if next != x.n {
			t.Fatal("only", next, "of", x.n, "indices in alignment")
		}
	}
	for k := range ali.A {
		if ali.A[k] == gap && ali.B[k] == gap {
			t.Fatal("gap aligned with gap at", k)
		}
	}
}

func TestRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1637))
	var al nw.Aligner // one aligner, re-used over different sizes
	for n := 0; n < 40; n++ {
		nr, nc := 1+rnd.Intn(25), 1+rnd.Intn(25)
		p := randScr(rnd, nr, nc)
		pen := nw.Penalty(p)
		for _, long := range []bool{false, true} {
			f, g := al.Core, nw.Core
			if long {
				f, g = al.CoreLong, nw.CoreLong
			}
			ali1, scr1, err := f(p, pen)
			if err != nil {
				t.Fatal(err)
			}
			ali2, scr2, err := g(p, pen)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(ali1, ali2) || scr1 != scr2 {
				t.Fatal("re-used aligner and fresh aligner differ, long", long)
			}
			checkCover(t, ali1, nr, nc)
		}
	}
}

// TestLongCheaper: with a decaying schedule gaps cannot cost more, so
// the long score is never below the constant one on the same input.
func TestLongCheaper(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	for n := 0; n < 20; n++ {
		p := randScr(rnd, 10+rnd.Intn(5), 10+rnd.Intn(5))
		pen := nw.Penalty(p)
		_, s1, err1 := nw.Core(p, pen)
		_, s2, err2 := nw.CoreLong(p, pen)
		if err1 != nil || err2 != nil {
			t.Fatal(err1, err2)
		}
		if s2 < s1-1e-9 {
			t.Fatal("long score", s2, "below constant", s1)
		}
	}
}

func TestPenaltyTiers(t *testing.T) {
	p := mkScr([][]float64{{2, -1}, {0.5, 3}})
	if pen := nw.Penalty(p); pen != -3 {
		t.Fatal("penalty got", pen, "expected -3")
	}
	p = mkScr([][]float64{{-7, 1}, {0.5, 3}})
	if pen := nw.Penalty(p); pen != -7 {
		t.Fatal("penalty got", pen, "expected -7")
	}
	pens := nw.Tiers(-4)
	if pens[0] != -4 || pens[nw.NTier-1] != -2 {
		t.Fatal("tiers should run from -4 to -2, got", pens)
	}
	for i := 1; i < nw.NTier; i++ {
		if pens[i] <= pens[i-1] {
			t.Fatal("tiers not getting cheaper", pens)
		}
	}
}

func TestVirgin(t *testing.T) {
	var lat matrix.DMatrix2d
	lat.Resize(6, 6)
	lat.Fill(99) // rubbish that Virgin must clear
	nw.Virgin(&lat, -2, 3, 4)
	want := [][]float64{{0, -2, -4, -6}, {-2, 0, 0, 0}, {-4, 0, 0, 0}}
	if !reflect.DeepEqual(lat.Mat, want) {
		t.Fatal("virgin lattice got\n", lat.String())
	}
}

func TestEmpty(t *testing.T) {
	if _, _, err := nw.Core(matrix.NewDMatrix2d(0, 3), -1); !errors.Is(err, nw.ErrEmpty) {
		t.Fatal("expected ErrEmpty, got", err)
	}
	if _, _, err := nw.CoreLong(matrix.NewDMatrix2d(3, 0), -1); !errors.Is(err, nw.ErrEmpty) {
		t.Fatal("expected ErrEmpty, got", err)
	}
}

// TestExplain works on a lattice by hand, so no fill is involved.
func TestExplain(t *testing.T) {
	p := [][]float64{{1}}
	pens := nw.Tiers(-1)
	moves := []nw.Move{{Kind: nw.Match}, {Kind: nw.Insert, Tier: 0}, {Kind: nw.Delete, Tier: 0},
		{Kind: nw.Insert, Tier: 2}, {Kind: nw.Delete, Tier: 2}}
	tests := []struct {
		cell float64
		want nw.Move
		ok   bool
	}{
		{1, nw.Move{Kind: nw.Match}, true},               // 0 + 1
		{-1, nw.Move{Kind: nw.Insert}, true},             // up is 0, pen -1
		{-0.75, nw.Move{Kind: nw.Insert, Tier: 2}, true}, // tier 2 is -0.75
		{0.3, nw.Move{}, false},
	}
	for _, tc := range tests {
		scr := [][]float64{{0, 0}, {0, tc.cell}}
		m, ok := nw.Explain(scr, p, pens[:], moves, 1, 1)
		if ok != tc.ok || (ok && m != tc.want) {
			t.Errorf("cell %g got %v %v, wanted %v %v", tc.cell, m, ok, tc.want, tc.ok)
		}
	}
}

func TestFormat(t *testing.T) {
	ali := nw.Alignment{A: []int{0, gap, 1}, B: []int{0, 1, 2}}
	var sb strings.Builder
	if err := ali.Format(&sb, "TADS 1", "TADS 2"); err != nil {
		t.Fatal(err)
	}
	want := "TADS 1:    0| ---|   1\nTADS 2:    0|   1|   2\n"
	if sb.String() != want {
		t.Fatalf("format got\n%q\nwanted\n%q", sb.String(), want)
	}
	if ali.NGap() != 1 {
		t.Fatal("ngap got", ali.NGap())
	}
	p1, p2 := ali.Pairs()
	if !reflect.DeepEqual(p1, []int{0, 1}) || !reflect.DeepEqual(p2, []int{0, 2}) {
		t.Fatal("pairs got", p1, p2)
	}
}
