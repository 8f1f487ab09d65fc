package mask

import (
	"runtime"
	"sync"
)

// Parallel partitions dataSize rows across the available CPU cores and
// runs fn over each partition. Small inputs run serially since goroutine
// overhead dominates below a couple of rows per core.
//
// Arguments:
// - dataSize: The total number of rows to process.
// - fn: Function invoked with the [partStart, partEnd) range to process.
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize
		if i == numGoroutines-1 {
			partEnd = dataSize
		}
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}
	wg.Wait()
}
