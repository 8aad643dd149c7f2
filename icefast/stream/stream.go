package stream

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/TheusHen/icefast/icefast/ice"
)

// DefaultChunkSize is the default number of bytes transformed per call (256 KB).
const DefaultChunkSize = 256 * 1024

var (
	ErrClosed = errors.New("stream: use of closed stream")
)

// Transformer is the in-place transform a stream drives. *ice.Cipher implements it.
type Transformer interface {
	EncryptParallel(buf []byte, workers int) error
	DecryptParallel(buf []byte, workers int) error
}

// Direction selects encryption or decryption.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Config configures a stream.
type Config struct {
	ChunkSize       int  // bytes per transform call, rounded down to a multiple of 16 (default: 256KB)
	Workers         int  // workers for the parallel driver (0 = GOMAXPROCS)
	PassthroughTail bool // copy a trailing partial block through unchanged instead of failing
}

// DefaultConfig returns the defaults used when a zero Config is passed.
func DefaultConfig() Config {
	return Config{
		ChunkSize: DefaultChunkSize,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

func (c Config) normalize() Config {
	c.ChunkSize &^= ice.SuperBlockSize - 1
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Stats tracks stream progress.
type Stats struct {
	Bytes     atomic.Int64 // bytes passed through, tail included
	Chunks    atomic.Int64 // transform calls made
	TailBytes atomic.Int64 // trailing bytes copied through untransformed
}

func transform(t Transformer, dir Direction, buf []byte, workers int) error {
	if dir == Decrypt {
		return t.DecryptParallel(buf, workers)
	}
	return t.EncryptParallel(buf, workers)
}

// splitTail returns the length of the aligned prefix of an n-byte final chunk,
// or an error when the tail policy rejects the remainder.
func splitTail(n int, passthrough bool) (int, error) {
	aligned := n &^ (ice.BlockSize - 1)
	if aligned != n && !passthrough {
		return 0, fmt.Errorf("%w: %d trailing bytes", ice.ErrAlignment, n-aligned)
	}
	return aligned, nil
}

// chunkPool provides reusable chunk buffers of one size.
type chunkPool struct {
	pool sync.Pool
	size int
}

func newChunkPool(chunkSize int) *chunkPool {
	return &chunkPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, chunkSize)
				return &buf
			},
		},
		size: chunkSize,
	}
}

var defaultPool = newChunkPool(DefaultChunkSize)

func poolFor(size int) *chunkPool {
	if size == DefaultChunkSize {
		return defaultPool
	}
	return newChunkPool(size)
}

func (p *chunkPool) get() *[]byte {
	return p.pool.Get().(*[]byte)
}

func (p *chunkPool) put(buf *[]byte) {
	if len(*buf) == p.size {
		p.pool.Put(buf)
	}
}
