//go:build !debug

package framesched

// Stats holds selection counters collected in debug builds.
// Release builds always report zeros.
type Stats struct {
	Selections uint64
	HeapFixes  uint64
}

func schedDbgIncSelections() {}
func schedDbgIncHeapFixes()  {}

func SnapshotStats() Stats { return Stats{} }

func ResetStats() {}
