package nw

import (
	"fmt"
	"math"
)

// Kind says which way a traceback step goes.
type Kind byte

const (
	Match  Kind = iota // diagonal, one index from each side
	Insert             // over rows, an index of A against a gap
	Delete             // over columns, a gap against an index of B
)

// Move is one candidate traceback step. Tier is the index into the gap
// schedule and means nothing for a Match.
type Move struct {
	Kind Kind
	Tier int
}

func (m Move) String() string {
	switch m.Kind {
	case Match:
		return "match"
	case Insert:
		return fmt.Sprint("insert/", m.Tier)
	case Delete:
		return fmt.Sprint("delete/", m.Tier)
	}
	return "unknown move"
}

// The order of these lists is the tie-break order of the traceback.
var (
	shortMoves = []Move{{Match, 0}, {Insert, 0}, {Delete, 0}}
	longMoves  = mkLongMoves()
)

// mkLongMoves gives match, then insert and delete at each tier, cheapest
// tier index first.
func mkLongMoves() []Move {
	moves := []Move{{Match, 0}}
	for t := 0; t < NTier; t++ {
		moves = append(moves, Move{Insert, t}, Move{Delete, t})
	}
	return moves
}

// Equal is float equality as the traceback sees it.
func Equal(a, b float64) bool { return math.Abs(a-b) < eps }

// from is the score cell (i, j) would have if it was reached by m.
func (m Move) from(scr, p [][]float64, pens []float64, i, j int) float64 {
	switch m.Kind {
	case Match:
		return scr[i-1][j-1] + p[i-1][j-1]
	case Insert:
		return scr[i-1][j] + pens[m.Tier]
	default:
		return scr[i][j-1] + pens[m.Tier]
	}
}

// Explain returns the first move in moves which reproduces score cell
// (i, j). i and j must both be at least 1.
func Explain(scr, p [][]float64, pens []float64, moves []Move, i, j int) (Move, bool) {
	for _, m := range moves {
		if m.Kind != Match && m.Tier >= len(pens) {
			continue
		}
		if Equal(scr[i][j], m.from(scr, p, pens, i, j)) {
			return m, true
		}
	}
	return Move{}, false
}

// traceback walks from the bottom right of the lattice to the origin.
// Once we hit the first row or column, whatever is left on the other
// side goes in as gaps. Pairs are collected backwards and reversed at
// the end.
func traceback(scr, p [][]float64, pens []float64, moves []Move) (Alignment, error) {
	i, j := len(scr)-1, len(scr[0])-1
	var ali Alignment
	{
		n := i + j // longest possible alignment
		ali.A = make([]int, 0, n)
		ali.B = make([]int, 0, n)
	}
	add := func(a, b int) {
		ali.A = append(ali.A, a)
		ali.B = append(ali.B, b)
	}
	for i > 0 && j > 0 {
		m, ok := Explain(scr, p, pens, moves, i, j)
		if !ok {
			return Alignment{}, fmt.Errorf("%w: cell %d %d score %g, diag %g up %g left %g",
				ErrBacktrace, i, j, scr[i][j], scr[i-1][j-1], scr[i-1][j], scr[i][j-1])
		}
		switch m.Kind {
		case Match:
			i--
			j--
			add(i, j)
		case Insert:
			i--
			add(i, Gap)
		case Delete:
			j--
			add(Gap, j)
		}
	}
	for ; i > 0; i-- {
		add(i-1, Gap)
	}
	for ; j > 0; j-- {
		add(Gap, j-1)
	}

	for l, r := 0, len(ali.A)-1; l < r; l, r = l+1, r-1 {
		ali.A[l], ali.A[r] = ali.A[r], ali.A[l]
		ali.B[l], ali.B[r] = ali.B[r], ali.B[l]
	}
	return ali, ali.check()
}
