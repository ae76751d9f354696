// Package network defines the configuration space of a two-input regulatory
// network: every (activator level, repressor level) pair on a bounded grid.
//
// The canonical space used throughout the module is the 3x3 grid with both
// levels in {0, 1, 2}. It is generated with the repressor level as the outer
// loop and the activator level as the inner loop, and its configurations are
// identified "1" through "9" in that order:
//
//	id  activator  repressor
//	1   0          0
//	2   1          0
//	3   2          0
//	4   0          1
//	...
//	9   2          2
//
// A Space is immutable once built and is safe to share between goroutines.
package network
