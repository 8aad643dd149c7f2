package stream

import (
	"io"
)

// Reader transforms data read from an underlying reader. A Reader is not
// safe for concurrent use.
type Reader struct {
	r     io.Reader
	t     Transformer
	dir   Direction
	cfg   Config
	pool  *chunkPool
	bufp  *[]byte
	out   []byte
	err   error
	stats Stats
}

// NewReader returns a Reader applying dir with t to the data read from r.
func NewReader(r io.Reader, t Transformer, dir Direction, cfg Config) *Reader {
	cfg = cfg.normalize()
	pool := poolFor(cfg.ChunkSize)
	return &Reader{
		r:    r,
		t:    t,
		dir:  dir,
		cfg:  cfg,
		pool: pool,
		bufp: pool.get(),
	}
}

// Read serves transformed bytes, pulling and transforming a new chunk when
// the previous one is exhausted.
func (sr *Reader) Read(p []byte) (int, error) {
	for len(sr.out) == 0 {
		if sr.err != nil {
			return 0, sr.err
		}
		sr.fill()
	}
	n := copy(p, sr.out)
	sr.out = sr.out[n:]
	return n, nil
}

func (sr *Reader) fill() {
	if sr.bufp == nil {
		sr.err = ErrClosed
		return
	}
	buf := *sr.bufp
	n, err := io.ReadFull(sr.r, buf)
	switch err {
	case nil:
		if err := transform(sr.t, sr.dir, buf, sr.cfg.Workers); err != nil {
			sr.err = err
			return
		}
		sr.stats.Chunks.Add(1)
		sr.stats.Bytes.Add(int64(n))
		sr.out = buf
	case io.EOF, io.ErrUnexpectedEOF:
		// final chunk, possibly empty
		aligned, terr := splitTail(n, sr.cfg.PassthroughTail)
		if terr != nil {
			sr.err = terr
			return
		}
		if aligned > 0 {
			if err := transform(sr.t, sr.dir, buf[:aligned], sr.cfg.Workers); err != nil {
				sr.err = err
				return
			}
			sr.stats.Chunks.Add(1)
		}
		sr.stats.Bytes.Add(int64(n))
		sr.stats.TailBytes.Add(int64(n - aligned))
		sr.out = buf[:n]
		sr.err = io.EOF
	default:
		sr.err = err
	}
}

// Close releases the chunk buffer. It does not close the underlying reader.
func (sr *Reader) Close() error {
	if sr.bufp != nil {
		sr.pool.put(sr.bufp)
		sr.bufp = nil
	}
	sr.out = nil
	if sr.err == nil {
		sr.err = ErrClosed
	}
	return nil
}

// Stats returns the reader's counters.
func (sr *Reader) Stats() *Stats { return &sr.stats }
