// 31 July 2020, contact maps instead of sequences 11 Oct 2026

// Package randhic makes random contact maps for testing. A map has
// domains along the diagonal, within which contacts are stronger.
// Contacts fall away with distance from the diagonal and there is some
// noise on top. Everything is positive and symmetric.
// Maps can have bins deleted, which is what an aligner should find as
// gaps.
package randhic

import (
	"bufio"
	"errors"
	"io"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync"

	"gonum.org/v1/gonum/mat"
)

const (
	decay    = 4.   // bins over which contacts fall off by 1/e
	inDomain = 3.   // how much stronger contacts are within a domain
	floor    = 0.05 // background contact level
)

var ErrArgs = errors.New("randhic: bad arguments")

// RandHicArgs is the set of arguments passed to the main function
type RandHicArgs struct {
	Iseed int64     // random number seed
	Wrtr  io.Writer // where the map goes
	BWrtr io.Writer // where domain boundaries go, may be nil
	N     int       // number of bins
	NTad  int       // number of domains, default N/8
	Noise float64   // noise, relative to the contact value
	Del   int       // number of bins to delete
	Res   int       // bin size for writing boundaries, default 1
}

// starts picks domain start bins. Bin 0 always starts one.
func starts(n, ntad int, rnd *rand.Rand) []int {
	if ntad <= 0 {
		ntad = max(1, n/8)
	}
	ntad = min(ntad, n)
	s := append([]int{0}, rnd.Perm(n-1)[:ntad-1]...)
	for i := 1; i < len(s); i++ {
		s[i]++
	}
	sort.Ints(s)
	return s
}

// Map makes a map of n bins and gives back the bins where domains start.
func Map(n, ntad int, noise float64, rnd *rand.Rand) (*mat.SymDense, []int) {
	tads := starts(n, ntad, rnd)
	domain := make([]int, n)
	for k, s := range tads {
		for i := s; i < n; i++ {
			domain[i] = k
		}
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := math.Exp(-float64(j-i) / decay)
			if domain[i] == domain[j] {
				v *= inDomain
			}
			v += floor
			v *= 1 + noise*rnd.Float64()
			m.SetSym(i, j, v)
		}
	}
	return m, tads
}

// DelBins removes ndel bins, chosen at random. It returns the smaller map
// and the original index of each bin which was kept.
func DelBins(m *mat.SymDense, ndel int, rnd *rand.Rand) (*mat.SymDense, []int) {
	n := m.SymmetricDim()
	ndel = max(0, min(ndel, n-1))
	gone := make(map[int]bool, ndel)
	for _, i := range rnd.Perm(n)[:ndel] {
		gone[i] = true
	}
	kept := make([]int, 0, n-ndel)
	for i := 0; i < n; i++ {
		if !gone[i] {
			kept = append(kept, i)
		}
	}
	small := mat.NewSymDense(len(kept), nil)
	for a, i := range kept {
		for b := a; b < len(kept); b++ {
			small.SetSym(a, b, m.At(i, kept[b]))
		}
	}
	return small, kept
}

// writeRows formats rows as they arrive
func writeRows(rChan <-chan []float64, w io.Writer, wg *sync.WaitGroup, err *error) {
	defer wg.Done()
	bw := bufio.NewWriter(w)
	var buf []byte
	for row := range rChan {
		buf = buf[:0]
		for j, x := range row {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, x, 'g', 8, 64)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	*err = bw.Flush()
}

// RandHicMain writes a random map to args.Wrtr and, if BWrtr is set, the
// domain starts, times Res, to BWrtr. Boundaries are those of the map
// before any bins were deleted.
func RandHicMain(args *RandHicArgs) error {
	if args.N < 1 || args.Del < 0 || args.Del >= args.N || args.Noise < 0 {
		return ErrArgs
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	m, tads := Map(args.N, args.NTad, args.Noise, rnd)
	if args.Del > 0 {
		m, _ = DelBins(m, args.Del, rnd)
	}

	var wg sync.WaitGroup
	var werr error
	rChan := make(chan []float64)
	wg.Add(1)
	go writeRows(rChan, args.Wrtr, &wg, &werr)
	n := m.SymmetricDim()
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		mat.Row(row, i, m)
		rChan <- row
	}
	close(rChan)
	wg.Wait()
	if werr != nil || args.BWrtr == nil {
		return werr
	}

	res := max(1, args.Res)
	bw := bufio.NewWriter(args.BWrtr)
	for _, s := range tads {
		bw.WriteString(strconv.Itoa(s*res) + "\n")
	}
	return bw.Flush()
}
