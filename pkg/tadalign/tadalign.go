// 12 Oct 2026

// Package tadalign is the body of the tadalign tool. It aligns two lists
// of domain boundaries by reciprocal closest pairs.
package tadalign

import (
	"errors"
	"fmt"
	"os"

	"github.com/andrew-torda/hicalign/hicio"
	"github.com/andrew-torda/hicalign/pkg/common"
	"github.com/andrew-torda/hicalign/pkg/config"
	"github.com/andrew-torda/hicalign/reciprocal"
)

// CmdFlag has the parsed command line. Set names the flags which were
// given, which override the config file.
type CmdFlag struct {
	Config  string
	Penalty float64
	MaxDist float64
	Unit    float64 // divide coordinates by this in verbose output
	Verbose bool
	Set     map[string]bool
}

func settings(flags *CmdFlag) (*config.Config, error) {
	c := config.Default()
	if flags.Config != "" {
		var err error
		if c, err = config.Load(flags.Config); err != nil {
			return nil, err
		}
	}
	if flags.Set["p"] {
		c.Penalty = flags.Penalty
	}
	if flags.Set["d"] {
		c.MaxDist = flags.MaxDist
	}
	return c, c.Validate()
}

// Mymain aligns the boundaries in file1 and file2, writing the pairs to
// outfile.
func Mymain(flags *CmdFlag, file1, file2, outfile string) error {
	c, err := settings(flags)
	if err != nil {
		return err
	}
	b1, err1 := hicio.ReadBoundaries(file1)
	b2, err2 := hicio.ReadBoundaries(file2)
	if err := errors.Join(err1, err2); err != nil {
		return err
	}
	res, err := reciprocal.Align(b1, b2, c.Reciprocal())
	if err != nil {
		return err
	}

	w, closer, err := common.OutFile(outfile)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# score %g penalty %g\n", res.Score, res.Penalty)
	if err := hicio.WriteSites(w, res); err != nil {
		closer()
		return err
	}
	if err := closer(); err != nil {
		return err
	}
	if flags.Verbose {
		unit := flags.Unit
		if unit <= 0 {
			unit = 1
		}
		fmt.Fprintf(os.Stderr, "\n Alignment (score = %g):\n", res.Score)
		return res.Format(os.Stderr, "TADS 1", "TADS 2", unit)
	}
	return nil
}
