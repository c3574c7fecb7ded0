// 12 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/andrew-torda/hicalign/cmo"
	. "github.com/andrew-torda/hicalign/pkg/common"
	"github.com/andrew-torda/hicalign/pkg/hicalign"
)

func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] map1 map2")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags hicalign.CmdFlag
	var outfile string
	var debug bool
	flag.StringVar(&flags.Config, "c", "", "YAML config file")
	flag.IntVar(&flags.NumV, "n", 0, "number of eigenvectors, 0 for all")
	flag.IntVar(&flags.MaxNumV, "m", 0, "at most this many eigenvectors")
	flag.StringVar(&flags.Method, "d", cmo.Frobenius, "distance to minimise, frobenius or score")
	flag.BoolVar(&flags.Short, "s", false, "constant gap penalty in the aligner")
	flag.BoolVar(&flags.ShortDist, "l", false, "no gap costs in the frobenius distance")
	flag.IntVar(&flags.Workers, "w", 0, "number of workers, default one per CPU")
	flag.DurationVar(&flags.Timeout, "t", 0, "give up after this long, eg 10m")
	flag.StringVar(&flags.Plot, "p", "", "write a heat map of the merged maps to this PNG file")
	flag.StringVar(&flags.Aleigen, "a", "", "also run this aleigen executable")
	flag.StringVar(&outfile, "o", "", "output file name, default stdout")
	flag.BoolVar(&flags.Verbose, "v", false, "print the alignment")
	flag.BoolVar(&debug, "D", false, "debugging output")
	flag.Parse()

	flags.Set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flags.Set[f.Name] = true })

	switch {
	case debug:
		logrus.SetLevel(logrus.DebugLevel)
	case flags.Verbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}

	f1, f2 := flag.Arg(0), flag.Arg(1)
	if f1 == "" || f2 == "" {
		os.Exit(usage())
	}
	if err := hicalign.Mymain(&flags, f1, f2, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
