// 12 Oct 2026

// Package hicalign is the body of the hicalign tool. It reads two contact
// matrices, finds the best alignment and writes it out.
package hicalign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/aleigen"
	"github.com/andrew-torda/hicalign/cmo"
	"github.com/andrew-torda/hicalign/hicio"
	"github.com/andrew-torda/hicalign/merge"
	"github.com/andrew-torda/hicalign/plot"
	"github.com/andrew-torda/hicalign/pkg/common"
	"github.com/andrew-torda/hicalign/pkg/config"
	"github.com/andrew-torda/hicalign/score"
)

// CmdFlag is literally command line flags after parsing. Set has the
// names of flags given on the command line, which beat the config file.
type CmdFlag struct {
	Config    string        // YAML settings file
	NumV      int           // eigenvectors
	MaxNumV   int           // cap on NumV
	Method    string        // frobenius or score
	Short     bool          // constant gap penalty
	ShortDist bool          // no gap costs in the distance
	Workers   int           // search workers
	Timeout   time.Duration // give up after this long
	Plot      string        // heat map of the merged maps goes here
	Aleigen   string        // also run this aleigen executable
	Verbose   bool          // print the alignment
	Set       map[string]bool
}

// settings are the defaults, then the config file, then the flags.
func settings(flags *CmdFlag) (*config.Config, error) {
	c := config.Default()
	if flags.Config != "" {
		var err error
		if c, err = config.Load(flags.Config); err != nil {
			return nil, err
		}
	}
	for name := range flags.Set {
		switch name {
		case "n":
			c.NumV = flags.NumV
		case "m":
			c.MaxNumV = flags.MaxNumV
		case "d":
			c.Method = flags.Method
		case "s":
			c.LongNW = !flags.Short
		case "l":
			c.LongDist = !flags.ShortDist
		case "w":
			c.Workers = flags.Workers
		}
	}
	return c, c.Validate()
}

// readTwo reads both matrices, the first in the background.
func readTwo(file1, file2 string) (m1, m2 *mat.Dense, err error) {
	var wg sync.WaitGroup
	var err1, err2 error
	wg.Add(1)
	go func() {
		defer wg.Done()
		m1, err1 = hicio.ReadMatrix(file1)
	}()
	m2, err2 = hicio.ReadMatrix(file2)
	wg.Wait()
	return m1, m2, errors.Join(err1, err2)
}

// writeSummary puts the scores in comment lines before the alignment.
func writeSummary(w io.Writer, sum *cmo.Summary) error {
	fmt.Fprintf(w, "# dist %g rho %g pval %g\n", sum.Dist, sum.Rho, sum.PVal)
	fmt.Fprintf(w, "# num_v %d signs %v penalty %g\n", sum.NumV, sum.Signs, sum.Penalty)
	if sum.ZeroPenalty {
		fmt.Fprintln(w, "# warning: zero gap penalty")
	}
	return hicio.WriteAlignment(w, sum.Ali)
}

func wrtPlot(fname string, m1, m2 *mat.Dense, sum *cmo.Summary) error {
	mg, err := merge.Merge(m1, m2, sum.Ali)
	if err != nil {
		return err
	}
	w, closer, err := common.OutFile(fname)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("dist %.4g rho %.3f", sum.Dist, sum.Rho)
	if err := plot.Heatmap(w, mg.Mean, title, plot.Options{Log: true}); err != nil {
		closer()
		return err
	}
	return closer()
}

// runAleigen compares the external aligner on the same maps. Its
// alignment may point outside the maps, which we only report.
func runAleigen(ctx context.Context, exe string, m1, m2 *mat.Dense, numV int) error {
	_, c1 := aleigen.BinaryContacts(m1)
	_, c2 := aleigen.BinaryContacts(m2)
	res, err := aleigen.Run(ctx, exe, c1, c2, numV)
	if err != nil {
		return err
	}
	rho, pval, err := score.Spearman(res.Alignment(), m1, m2)
	if errors.Is(err, score.ErrIndexRange) {
		logrus.Warn("aleigen alignment cannot be scored: ", err)
		return nil
	} else if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "aleigen score %v rho %g pval %g\n", res.Score, rho, pval)
	return nil
}

// Mymain reads file1 and file2 and writes the alignment to outfile.
func Mymain(flags *CmdFlag, file1, file2, outfile string) error {
	c, err := settings(flags)
	if err != nil {
		return err
	}
	m1, m2, err := readTwo(file1, file2)
	if err != nil {
		return fmt.Errorf("reading matrices: %w", err)
	}
	ctx := context.Background()
	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}
	sum, err := cmo.OptimalCtx(ctx, m1, m2, c.Cmo())
	if err != nil {
		return err
	}

	w, closer, err := common.OutFile(outfile)
	if err != nil {
		return err
	}
	if err := writeSummary(w, sum); err != nil {
		closer()
		return err
	}
	if err := closer(); err != nil {
		return err
	}
	if flags.Verbose {
		fmt.Fprintf(os.Stderr, "\n Alignment (score = %g):\n", sum.Dist)
		if err := sum.Ali.Format(os.Stderr, "TADS 1", "TADS 2"); err != nil {
			return err
		}
	}
	if flags.Plot != "" {
		if err := wrtPlot(flags.Plot, m1, m2, sum); err != nil {
			return fmt.Errorf("heat map: %w", err)
		}
	}
	if flags.Aleigen != "" {
		if err := runAleigen(ctx, flags.Aleigen, m1, m2, sum.NumV); err != nil {
			return fmt.Errorf("aleigen: %w", err)
		}
	}
	return nil
}
