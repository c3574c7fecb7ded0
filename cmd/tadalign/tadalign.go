// 12 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	. "github.com/andrew-torda/hicalign/pkg/common"
	"github.com/andrew-torda/hicalign/pkg/tadalign"
	"github.com/andrew-torda/hicalign/reciprocal"
)

func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] tads1 tads2")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags tadalign.CmdFlag
	var outfile string
	flag.StringVar(&flags.Config, "c", "", "YAML config file")
	flag.Float64Var(&flags.Penalty, "p", 0, "gap penalty, default from the boundary spacing")
	flag.Float64Var(&flags.MaxDist, "d", reciprocal.DefaultMaxDist, "furthest apart boundaries can be paired")
	flag.Float64Var(&flags.Unit, "u", 1000, "divide positions by this when printing")
	flag.StringVar(&outfile, "o", "", "output file name, default stdout")
	flag.BoolVar(&flags.Verbose, "v", false, "print the alignment")
	flag.Parse()

	flags.Set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flags.Set[f.Name] = true })
	if flags.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	f1, f2 := flag.Arg(0), flag.Arg(1)
	if f1 == "" || f2 == "" {
		os.Exit(usage())
	}
	if err := tadalign.Mymain(&flags, f1, f2, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
