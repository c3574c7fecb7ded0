// 7 Oct 2026

// Package cmo finds the best alignment of two contact matrices. The
// matrices are turned into eigen features. For every number of features
// up to NumV and every way of flipping the signs of the first matrix's
// features, a score matrix is built and aligned. The alignment with the
// lowest distance wins.
//
// The search is spread over workers, but the answer does not depend on
// how many. On equal distances the candidate with fewer features wins,
// then the one earlier in sign order (see eigen.Signs).
package cmo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/eigen"
	"github.com/andrew-torda/hicalign/nw"
	"github.com/andrew-torda/hicalign/score"
)

// Distance methods
const (
	Frobenius = "frobenius" // distance between the aligned matrices
	NWScore   = "score"     // negative of the aligner's score
)

// MaxSearchV is the most features we will flip signs over.
const MaxSearchV = 62

var (
	ErrNumV        = errors.New("cmo: bad number of eigenvectors")
	ErrMethod      = errors.New("cmo: unknown distance method")
	ErrNoAlignment = errors.New("cmo: no candidate could be scored")
)

var log = logrus.StandardLogger()

// SetLogger sends the package's logging to l.
func SetLogger(l *logrus.Logger) { log = l }

// Options for the search. NumV of zero means as many as the smaller
// matrix has. MaxNumV, if set, caps it. Workers of zero means one per CPU.
type Options struct {
	NumV     int
	MaxNumV  int
	Method   string
	LongNW   bool // decaying gap penalties in the aligner
	LongDist bool // add gap costs to the frobenius distance
	Workers  int
}

// DefaultOptions gives the usual settings.
func DefaultOptions() Options {
	return Options{Method: Frobenius, LongNW: true, LongDist: true}
}

// Summary is the result of a search.
type Summary struct {
	Ali         nw.Alignment
	Dist        float64
	Rho, PVal   float64
	Penalty     float64   // gap penalty of the winning candidate
	NumV        int       // number of features it used
	Signs       []float64 // and their signs
	ZeroPenalty bool
	Tried       int // candidates looked at
	Skipped     int // candidates which could not be scored
}

type job struct {
	num int
	c   uint64
	ord int // position in enumeration order
}

type candidate struct {
	ali     nw.Alignment
	dist    float64
	penalty float64
	job
}

// better is true if c should replace b. NaN never wins.
func (c *candidate) better(b *candidate) bool {
	if b == nil {
		return !math.IsNaN(c.dist) && !math.IsInf(c.dist, 1)
	}
	return c.dist < b.dist || (c.dist == b.dist && c.ord < b.ord)
}

type distFn func(nw.Alignment, mat.Matrix, mat.Matrix) (float64, error)

// searcher has what every worker shares, all read only.
type searcher struct {
	f1, f2     *eigen.Features
	hic1, hic2 mat.Matrix
	long       bool
	dist       distFn // nil means use the aligner score
}

// numV works out how many features to search over.
func numV(opts Options, n1, n2 int) (int, error) {
	num := opts.NumV
	if num == 0 {
		num = min(n1, n2)
	}
	if opts.MaxNumV > 0 {
		num = min(num, opts.MaxNumV)
	}
	if num < 1 || num > n1 || num > n2 {
		return 0, fmt.Errorf("%w: %d, should be from 1 to %d", ErrNumV, num, min(n1, n2))
	}
	if num > MaxSearchV {
		return 0, fmt.Errorf("%w: %d, cannot search more than %d", ErrNumV, num, MaxSearchV)
	}
	return num, nil
}

func pickDist(opts Options) (distFn, error) {
	switch opts.Method {
	case Frobenius, "":
		if opts.LongDist {
			return score.DistLong, nil
		}
		return score.Dist, nil
	case NWScore:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMethod, opts.Method)
}

// eval does one candidate. al is the worker's own aligner.
func (s *searcher) eval(al *nw.Aligner, j job) (*candidate, error) {
	pscr, err := eigen.Prescore(s.f1, s.f2, eigen.Signs(j.num, j.c))
	if err != nil {
		return nil, err
	}
	penalty := nw.Penalty(pscr)
	align := al.Core
	if s.long {
		align = al.CoreLong
	}
	ali, nwScore, err := align(pscr, penalty)
	if err != nil {
		return nil, err
	}
	cand := &candidate{ali: ali, penalty: penalty, job: j, dist: -nwScore}
	if s.dist != nil {
		if cand.dist, err = s.dist(ali, s.hic1, s.hic2); err != nil {
			return nil, err
		}
	}
	return cand, nil
}

// Optimal is OptimalCtx without a context.
func Optimal(hic1, hic2 mat.Matrix, opts Options) (*Summary, error) {
	return OptimalCtx(context.Background(), hic1, hic2, opts)
}

// OptimalCtx does the search. Cancelling ctx stops it and returns the
// context's error.
func OptimalCtx(ctx context.Context, hic1, hic2 mat.Matrix, opts Options) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n1, _ := hic1.Dims()
	n2, _ := hic2.Dims()
	num, err := numV(opts, n1, n2)
	if err != nil {
		return nil, err
	}
	dist, err := pickDist(opts)
	if err != nil {
		return nil, err
	}
	s := &searcher{hic1: hic1, hic2: hic2, long: opts.LongNW, dist: dist}
	if s.f1, err = eigen.Extract(hic1); err != nil {
		return nil, fmt.Errorf("first matrix: %w", err)
	}
	if s.f2, err = eigen.Extract(hic2); err != nil {
		return nil, fmt.Errorf("second matrix: %w", err)
	}

	nWork := opts.Workers
	if nWork <= 0 {
		nWork = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, nWork)
	g.Go(func() error {
		defer close(jobs)
		ord := 0
		for k := 1; k <= num; k++ {
			for c := uint64(0); c < 1<<uint(k); c++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				select {
				case jobs <- job{num: k, c: c, ord: ord}:
				case <-gctx.Done():
					return gctx.Err()
				}
				ord++
			}
		}
		return nil
	})

	bests := make([]*candidate, nWork)
	tried := make([]int, nWork)
	skipped := make([]int, nWork)
	for w := 0; w < nWork; w++ {
		w := w
		g.Go(func() error {
			var al nw.Aligner
			for j := range jobs {
				tried[w]++
				cand, err := s.eval(&al, j)
				if errors.Is(err, score.ErrIndexRange) {
					skipped[w]++
					log.WithFields(logrus.Fields{"num": j.num, "signs": j.c}).Debug("cmo: skipping candidate: ", err)
					continue
				}
				if err != nil {
					return err
				}
				if cand.better(bests[w]) {
					bests[w] = cand
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *candidate
	sum := &Summary{}
	for w, b := range bests {
		sum.Tried += tried[w]
		sum.Skipped += skipped[w]
		if b != nil && b.better(best) {
			best = b
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %d tried, %d skipped", ErrNoAlignment, sum.Tried, sum.Skipped)
	}
	sum.Ali, sum.Dist, sum.Penalty = best.ali, best.dist, best.penalty
	sum.NumV, sum.Signs = best.num, eigen.Signs(best.num, best.c)
	if sum.Rho, sum.PVal, err = score.Spearman(best.ali, hic1, hic2); err != nil {
		return nil, err
	}
	if best.penalty == 0 {
		sum.ZeroPenalty = true
		log.Warn("cmo: gap penalty of best alignment is zero")
	}
	log.WithFields(logrus.Fields{
		"dist": sum.Dist, "num_v": sum.NumV, "rho": sum.Rho, "tried": sum.Tried,
	}).Info("cmo: best alignment")
	return sum, nil
}
