package stream

import (
	"io"
)

// Writer transforms everything written to it and forwards the result to an
// underlying writer. Data is held until a full chunk is available; Close
// flushes the remainder. A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	t      Transformer
	dir    Direction
	cfg    Config
	pool   *chunkPool
	bufp   *[]byte
	n      int
	err    error
	closed bool
	stats  Stats
}

// NewWriter returns a Writer applying dir with t to all data written to w.
func NewWriter(w io.Writer, t Transformer, dir Direction, cfg Config) *Writer {
	cfg = cfg.normalize()
	pool := poolFor(cfg.ChunkSize)
	return &Writer{
		w:    w,
		t:    t,
		dir:  dir,
		cfg:  cfg,
		pool: pool,
		bufp: pool.get(),
	}
}

// Write buffers p and transforms every chunk that fills up.
func (sw *Writer) Write(p []byte) (int, error) {
	if sw.closed {
		return 0, ErrClosed
	}
	if sw.err != nil {
		return 0, sw.err
	}
	written := 0
	buf := *sw.bufp
	for len(p) > 0 {
		c := copy(buf[sw.n:], p)
		sw.n += c
		p = p[c:]
		written += c
		if sw.n == len(buf) {
			if err := sw.flushChunk(buf); err != nil {
				return written, err
			}
			sw.n = 0
		}
	}
	return written, nil
}

// flushChunk transforms chunk in place and writes it. Any failure is sticky:
// a transformed chunk that was not fully written is never retried.
func (sw *Writer) flushChunk(chunk []byte) error {
	if err := transform(sw.t, sw.dir, chunk, sw.cfg.Workers); err != nil {
		sw.err = err
		return err
	}
	if err := sw.write(chunk); err != nil {
		return err
	}
	sw.stats.Chunks.Add(1)
	sw.stats.Bytes.Add(int64(len(chunk)))
	return nil
}

// Close transforms and writes any buffered data. A trailing partial block is
// an ice.ErrAlignment error unless PassthroughTail is set. If an earlier
// write failed, Close returns that error and writes nothing. Close does not
// close the underlying writer.
func (sw *Writer) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true
	defer func() {
		sw.pool.put(sw.bufp)
		sw.bufp = nil
	}()

	if sw.err != nil {
		return sw.err
	}
	rest := (*sw.bufp)[:sw.n]
	aligned, err := splitTail(len(rest), sw.cfg.PassthroughTail)
	if err != nil {
		return err
	}
	if aligned > 0 {
		if err := sw.flushChunk(rest[:aligned]); err != nil {
			return err
		}
	}
	if tail := rest[aligned:]; len(tail) > 0 {
		if err := sw.write(tail); err != nil {
			return err
		}
		sw.stats.TailBytes.Add(int64(len(tail)))
		sw.stats.Bytes.Add(int64(len(tail)))
	}
	return nil
}

func (sw *Writer) write(p []byte) error {
	n, err := sw.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	sw.err = err
	return err
}

// Stats returns the writer's counters.
func (sw *Writer) Stats() *Stats { return &sw.stats }
