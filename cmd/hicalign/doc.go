// 12 Oct 2026
/*

hicalign aligns two Hi-C contact maps. Each map is a square, symmetric
matrix of contact counts between genomic bins. The result says which bin
of the first map goes with which bin of the second, with gaps where a bin
has no partner.

Usage:
 hicalign [options] map1 map2

Each map file has one row per line, numbers separated by white space.
Blank lines and lines starting with # are ignored. A file name of - means
standard input.

Flags:
  -c file
	Read settings from a YAML file. Flags given on the command line win
	over the file.
  -n N
	Use N eigenvectors of each map. The default, 0, means as many as the
	smaller map has.
  -m N
	Never use more than N eigenvectors.
  -d method
	What to minimise when choosing between candidates. frobenius is the
	distance between the aligned maps, score is the negative of the
	alignment score.
  -s	Constant gap penalty. Without it, the penalty falls off for longer
	gaps.
  -l	Leave the gap costs out of the frobenius distance.
  -w N
	Number of workers. Default is one per CPU.
  -t duration
	Give up after this long, for example 30s or 10m.
  -p file.png
	Merge the two maps along the alignment and draw them as a heat map.
  -a path
	Also run the aleigen program on the maps turned into binary contacts
	and report how its alignment scores.
  -o filename
	Write output to filename. If not given, results go to standard output.
  -v	Print the alignment in two lines.
  -D	Debugging output.

The output starts with comment lines giving the distance, the Spearman
correlation of the aligned contacts and its p value, then the number of
eigenvectors and signs which won. After that there is one line for each
alignment position, the bin in the first map and the bin in the second,
with - for a gap.

For every number of eigenvectors up to the limit and every set of signs,
the eigenvectors of the two maps give a similarity matrix which is
aligned by dynamic programming. Every candidate is scored and the best
one is kept. The number of candidates doubles with each eigenvector, so
for big maps one should set -m.

*/
package main
