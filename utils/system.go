package utils

import (
	"fmt"
	"runtime"
)

// GetMemUsage reports the heap after an assembly run, in MiB
func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	toMiB := func(b uint64) float64 { return float64(b) / (1 << 20) }
	return fmt.Sprintf("Alloc = %.1f MiB TotalAlloc = %.1f MiB Sys = %.1f MiB NumGC = %v",
		toMiB(m.Alloc), toMiB(m.TotalAlloc), toMiB(m.Sys), m.NumGC)
}
