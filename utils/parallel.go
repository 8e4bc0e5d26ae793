package utils

import (
	"runtime"
)

// ParallelFactor is the number of goroutines CPU bound work such as workspace sampling is split
// across. Tests may lower it.
var ParallelFactor = defaultParallelFactor(runtime.GOMAXPROCS(0))

// defaultParallelFactor uses every processor on small machines and a quarter of them once that
// still leaves more than eight.
func defaultParallelFactor(procs int) int {
	if procs <= 0 {
		return 1
	}
	if quarter := procs / 4; quarter > 8 {
		return quarter
	}
	return procs
}
