// 31 July 2020, contact maps 11 Oct 2026

/*

Randhic makes random contact maps for testing the aligners.
Usage:
	randhic [options] fname nbin
will write a symmetric nbin by nbin map to fname, - for standard output.

Flags:
	-r
		random number seed
	-t
		number of domains. Contacts inside a domain are stronger.
	-z
		noise, relative to each contact value
	-d
		delete this many bins at random after making the map. Aligning
		the result against the full map should give this many gaps.
	-b
		write the bins where domains start to this file, which tadalign
		can read
	-s
		bin size. Boundaries are written as bin times this.

The same seed with and without -d gives the same map before deletion, so
a pair of files with a known answer comes from two runs.

*/
package main
