package ice

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// ParallelThreshold is the buffer size below which the parallel entry
	// points fall back to the serial path.
	ParallelThreshold = 64 * 1024

	// minSliceSize is the smallest slice handed to one worker.
	minSliceSize = 16 * 1024
)

// EncryptParallel encrypts buf in place using up to workers goroutines.
// workers <= 0 selects runtime.GOMAXPROCS(0). The output is identical to
// Encrypt, and the same alignment rules apply.
func (c *Cipher) EncryptParallel(buf []byte, workers int) error {
	if err := checkAligned(len(buf)); err != nil {
		return err
	}
	return c.parallel(buf, workers, c.encryptLanes, c.encryptBuffer)
}

// DecryptParallel decrypts buf in place using up to workers goroutines.
func (c *Cipher) DecryptParallel(buf []byte, workers int) error {
	if err := checkAligned(len(buf)); err != nil {
		return err
	}
	return c.parallel(buf, workers, c.decryptLanes, c.decryptBuffer)
}

// parallel cuts the super-block region of buf into disjoint slices and runs
// lanes on each one concurrently. Slices never overlap and the cipher is
// read-only, so the group's Wait is the only synchronization needed.
func (c *Cipher) parallel(buf []byte, workers int, lanes, serial func([]byte)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(buf) < ParallelThreshold {
		serial(buf)
		return nil
	}

	n := len(buf) &^ (SuperBlockSize - 1)
	bounds := partition(n, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i+1 < len(bounds); i++ {
		part := buf[bounds[i]:bounds[i+1]]
		g.Go(func() error {
			lanes(part)
			return nil
		})
	}
	// the trailing block is disjoint from every slice
	if n < len(buf) {
		serial(buf[n:])
	}
	return g.Wait()
}

// partition splits [0, n) into at most workers ranges of whole super-blocks,
// each at least minSliceSize long (except when n itself is smaller).
// It returns the range boundaries, starting with 0 and ending with n.
func partition(n, workers int) []int {
	supers := n / SuperBlockSize
	if supers == 0 {
		return []int{0, 0}
	}
	per := (supers + workers - 1) / workers
	if minSupers := minSliceSize / SuperBlockSize; per < minSupers {
		per = minSupers
	}

	bounds := make([]int, 0, workers+1)
	for s := 0; s < supers; s += per {
		bounds = append(bounds, s*SuperBlockSize)
	}
	return append(bounds, n)
}
