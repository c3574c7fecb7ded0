// 12 Oct 2026
/*

tadalign aligns two lists of domain (TAD) boundaries, for example from the
same chromosome in two cell types.

Usage:
 tadalign [options] tads1 tads2

A boundary file holds coordinates, in increasing order, separated by
white space or new lines. Lines starting with # are ignored.

Two boundaries are paired if each is the closest to the other and they are
no more than the maximum distance apart. Anything else goes against a gap.
The score is the mean over alignment positions of the distance between
paired boundaries, or the gap penalty for a gap. Smaller is better.

Flags:
  -c file
	Read settings from a YAML file. Flags on the command line win.
  -p penalty
	Gap penalty. The default is the sum of the mean spacings of the two
	lists.
  -d distance
	Boundaries further apart than this are never paired.
  -u unit
	With -v, positions are printed divided by unit. The default of 1000
	gives kb.
  -o filename
	Output file. Default is standard output.
  -v	Print the alignment.

The output is a comment line with the score and penalty, then one line
per alignment position with the two coordinates or - for a gap.

*/
package main
