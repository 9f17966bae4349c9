package sshformat

import (
	"errors"
	"io"
)

// ChunkReader supplies the spans of an incrementally delivered message,
// in order. How a chunk is produced — blocking on a socket, draining a
// ring buffer — is entirely the implementation's business; the codec
// only pulls.
type ChunkReader interface {
	// NextChunk returns the next span. Empty spans are valid and are
	// skipped transparently. It returns io.EOF once no further chunks
	// will be delivered.
	NextChunk() ([]byte, error)
}

// ChunkSource is a Source over a ChunkReader. A read satisfied entirely
// by the current chunk borrows from it; a read crossing chunks copies
// into an owned buffer.
type ChunkSource struct {
	r   ChunkReader
	cur []byte // unread remainder of the current chunk
}

var _ Source = (*ChunkSource)(nil)

// NewChunkSource creates a Source pulling from r.
func NewChunkSource(r ChunkReader) *ChunkSource {
	return &ChunkSource{r: r}
}

// advance replaces the exhausted current chunk with the next non-empty
// one. It maps clean exhaustion to ErrEndOfInput; mid-read the caller
// is always expecting more bytes.
func (s *ChunkSource) advance() error {
	for {
		chunk, err := s.r.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEndOfInput
			}
			return err
		}
		if len(chunk) > 0 {
			s.cur = chunk
			return nil
		}
	}
}

// Fill implements Source, copying across as many chunks as needed.
func (s *ChunkSource) Fill(p []byte) error {
	filled := 0
	for filled < len(p) {
		if len(s.cur) == 0 {
			if err := s.advance(); err != nil {
				return err
			}
		}
		n := copy(p[filled:], s.cur)
		filled += n
		s.cur = s.cur[n:]
	}
	return nil
}

// Take implements Source.
func (s *ChunkSource) Take(n int) (Bytes, error) {
	if n == 0 {
		return Borrowed(nil), nil
	}
	if len(s.cur) == 0 {
		if err := s.advance(); err != nil {
			return Bytes{}, err
		}
	}
	if len(s.cur) >= n {
		b := Borrowed(s.cur[:n:n])
		s.cur = s.cur[n:]
		return b, nil
	}
	buf := make([]byte, n)
	if err := s.Fill(buf); err != nil {
		return Bytes{}, err
	}
	return Owned(buf), nil
}

// More implements Source. When the current chunk is drained it pulls
// until a non-empty chunk or exhaustion settles the answer.
func (s *ChunkSource) More() (bool, error) {
	if len(s.cur) > 0 {
		return true, nil
	}
	switch err := s.advance(); {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrEndOfInput):
		return false, nil
	default:
		return false, err
	}
}

// SliceChunks adapts an in-memory [][]byte to a ChunkReader. Useful in
// tests and wherever a transport has already gathered its spans.
type SliceChunks struct {
	chunks [][]byte
	next   int
}

var _ ChunkReader = (*SliceChunks)(nil)

// NewSliceChunks creates a ChunkReader over chunks. The spans are not
// copied; the caller must keep them alive while decoding.
func NewSliceChunks(chunks [][]byte) *SliceChunks {
	return &SliceChunks{chunks: chunks}
}

// NextChunk implements ChunkReader.
func (s *SliceChunks) NextChunk() ([]byte, error) {
	if s.next >= len(s.chunks) {
		return nil, io.EOF
	}
	chunk := s.chunks[s.next]
	s.next++
	return chunk, nil
}
