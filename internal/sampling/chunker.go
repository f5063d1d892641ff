package sampling

import "io"

// Chunker reads a byte stream as a finite, forward-only sequence of
// fixed-size chunks, in the style of bufio.Scanner. The final chunk of a
// stream may be shorter than the configured size; chunks are never empty.
//
// The chunk returned by Bytes is only valid until the next call to Scan.
type Chunker struct {
	r     io.Reader
	buf   []byte
	chunk []byte
	err   error
	done  bool
}

// NewChunker returns a Chunker reading chunks of chunkSize bytes from r.
func NewChunker(r io.Reader, chunkSize int) *Chunker {
	return &Chunker{r: r, buf: make([]byte, chunkSize)}
}

// Scan advances to the next chunk, returning false when the stream is
// exhausted or a read fails. After Scan returns false, Err distinguishes
// end of stream from failure.
func (c *Chunker) Scan() bool {
	if c.done {
		return false
	}
	n, err := io.ReadFull(c.r, c.buf)
	switch err {
	case nil:
		c.chunk = c.buf[:n]
		return true
	case io.ErrUnexpectedEOF:
		// Short final chunk.
		c.chunk = c.buf[:n]
		c.done = true
		return true
	case io.EOF:
		c.chunk = nil
		c.done = true
		return false
	default:
		c.chunk = nil
		c.err = err
		c.done = true
		return false
	}
}

// Bytes returns the current chunk.
func (c *Chunker) Bytes() []byte {
	return c.chunk
}

// Err returns the first read error encountered, or nil if the stream was
// fully consumed.
func (c *Chunker) Err() error {
	return c.err
}
