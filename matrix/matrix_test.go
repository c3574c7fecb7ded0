package matrix_test

import (
	"math"
	"strings"
	"testing"

	. "github.com/andrew-torda/hicalign/matrix"
)

var testSizes = []struct {
	nr, nc int
}{
	{5, 0},
	{0, 0},
	{3, 5},
	{5, 3},
	{5, 3},
	{4, 4},
	{1, 1},
	{7, 9}, // bigger than everything so far, forces reallocation
	{2, 2},
}

func fillAccess(mat *DMatrix2d, nr, nc int) {
	n := 1.
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			mat.Mat[i][j] = n
			n++
		}
	}
}

// checkMat checks a matrix seems to be the right size and that rows
// do not overlap.
func checkMat(m *DMatrix2d, nr int, nc int, t *testing.T) {
	t.Helper()
	if nrow, ncol := m.Size(); nrow != nr || ncol != nc {
		t.Fatal("rows x cols, wanted", nr, nc, "got", nrow, ncol)
	}
	fillAccess(m, nr, nc)
	n := 1.
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if m.Mat[i][j] != n {
				t.Fatalf("%d x %d at %d %d got %g want %g", nr, nc, i, j, m.Mat[i][j], n)
			}
			n++
		}
	}
}

// Make a fresh matrix on each invocation
func TestFresh(t *testing.T) {
	for _, sizes := range testSizes {
		m := NewDMatrix2d(sizes.nr, sizes.nc)
		checkMat(m, sizes.nr, sizes.nc, t)
	}
}

// TestNoInit call the matrix resize on a matrix not initialised
func TestNoInit(t *testing.T) {
	for _, sizes := range testSizes {
		var m DMatrix2d
		m.Resize(sizes.nr, sizes.nc)
		checkMat(&m, sizes.nr, sizes.nc, t)
	}
}

// TestResize make a matrix and resize it a few times
func TestResize(t *testing.T) {
	m := NewDMatrix2d(0, 0)
	for _, sizes := range testSizes {
		m.Resize(sizes.nr, sizes.nc)
		checkMat(m, sizes.nr, sizes.nc, t)
	}
}

func TestWrap(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	m := WrapDMatrix2d(2, 3, data)
	if m.Mat[1][0] != 4 {
		t.Fatal("wrap row 1 col 0 got", m.Mat[1][0])
	}
	m.Mat[0][2] = 33
	if data[2] != 33 {
		t.Fatal("wrapped matrix does not share storage")
	}
	if lo, hi := m.MinMax(); lo != 1 || hi != 33 {
		t.Fatal("minmax got", lo, hi)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("short data should panic")
		}
	}()
	WrapDMatrix2d(3, 3, data)
}

func TestFillMinMax(t *testing.T) {
	m := NewDMatrix2d(3, 2)
	m.Fill(-2.5)
	if lo, hi := m.MinMax(); lo != -2.5 || hi != -2.5 {
		t.Fatal("after fill got", lo, hi)
	}
	var empty DMatrix2d
	if lo, hi := empty.MinMax(); !math.IsInf(lo, 1) || !math.IsInf(hi, -1) {
		t.Fatal("empty minmax got", lo, hi)
	}
	if s := m.String(); strings.Count(s, "\n") != 3 {
		t.Fatal("String should give one line per row, got\n", s)
	}
}

func TestBMatrix(t *testing.T) {
	b := NewBMatrix2d(3, 4)
	if nr, nc := b.Size(); nr != 3 || nc != 4 {
		t.Fatal("bmatrix size got", nr, nc)
	}
	b.Mat[0][1] = 1
	b.Mat[2][3] = 1
	if n := b.Count(); n != 2 {
		t.Fatal("count got", n)
	}
}
