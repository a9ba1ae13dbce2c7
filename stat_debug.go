//go:build debug

package framesched

import (
	"sync/atomic"
)

var (
	selections atomic.Uint64
	heapFixes  atomic.Uint64
)

// Stats holds selection counters collected in debug builds.
type Stats struct {
	Selections uint64
	HeapFixes  uint64
}

func schedDbgIncSelections() { selections.Add(1) }
func schedDbgIncHeapFixes()  { heapFixes.Add(1) }

func SnapshotStats() Stats {
	return Stats{
		Selections: selections.Load(),
		HeapFixes:  heapFixes.Load(),
	}
}

func ResetStats() {
	selections.Store(0)
	heapFixes.Store(0)
}

func PrintStat() {
	println(
		"selections / heap fixes :",
		selections.Load(),
		heapFixes.Load(),
	)
}
