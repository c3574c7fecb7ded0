// 31 July 2020, contact maps 11 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	. "github.com/andrew-torda/hicalign/pkg/common"
	"github.com/andrew-torda/hicalign/pkg/randhic"
)

func main() {
	f := flag.NewFlagSet("randhic", flag.ExitOnError)
	const iseed int64 = 1637
	var args randhic.RandHicArgs
	var bfile string

	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	f.IntVar(&args.NTad, "t", 0, "number of domains, default nbin/8")
	f.Float64Var(&args.Noise, "z", 0.1, "relative noise")
	f.IntVar(&args.Del, "d", 0, "delete this many bins")
	f.StringVar(&bfile, "b", "", "write domain boundaries to this file")
	f.IntVar(&args.Res, "s", 1, "bin size for boundaries")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 2 {
		fmt.Fprintln(f.Output(), "Wrong number of args\nrandhic [..] file nbin")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	w, closer, err := OutFile(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	defer closer()
	args.Wrtr = w
	if bfile != "" {
		bw, bcloser, err := OutFile(bfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(ExitFailure)
		}
		defer bcloser()
		args.BWrtr = bw
	}

	const emsg = "Failed converting %s to positive integer\n"
	if n, err := strconv.ParseUint(f.Arg(1), 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Arg(1))
		os.Exit(ExitFailure)
	} else {
		args.N = int(n)
	}
	if err := randhic.RandHicMain(&args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}
