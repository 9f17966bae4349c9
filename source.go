package sshformat

// Bytes is the result of a variable-length read. It is explicitly
// two-case: a borrowed view aliasing the input buffer, valid only while
// that buffer is alive and unmodified, or an owned copy with no such
// tie. Reads that cross chunk boundaries always produce owned results.
type Bytes struct {
	data     []byte
	borrowed bool
}

// Borrowed wraps a view that aliases its source buffer.
func Borrowed(p []byte) Bytes {
	return Bytes{data: p, borrowed: true}
}

// Owned wraps a freshly allocated buffer.
func Owned(p []byte) Bytes {
	return Bytes{data: p}
}

// Bytes returns the underlying bytes. For a borrowed result the slice
// aliases the input buffer; use Clone when the bytes must outlive it.
func (b Bytes) Bytes() []byte {
	return b.data
}

// Borrowed reports whether the bytes alias the originating buffer.
func (b Bytes) Borrowed() bool {
	return b.borrowed
}

// Len returns the number of bytes.
func (b Bytes) Len() int {
	return len(b.data)
}

// Clone returns an owned copy regardless of case.
func (b Bytes) Clone() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// String copies the bytes into a string.
func (b Bytes) String() string {
	return string(b.data)
}

// Source is the Deserializer's view of its input. Implementations back
// onto one contiguous buffer or an ordered sequence of chunks; either
// way bytes are consumed strictly left-to-right with no re-reading.
type Source interface {
	// Fill copies exactly len(p) bytes into p, crossing chunk boundaries
	// as needed. It returns ErrEndOfInput if the source runs out first,
	// even mid-way.
	Fill(p []byte) error
	// Take consumes the next n bytes, borrowing from the input when a
	// single span can satisfy the read and copying into an owned buffer
	// otherwise.
	Take(n int) (Bytes, error)
	// More reports whether at least one unread byte remains, pulling
	// further chunks if that is the only way to know.
	More() (bool, error)
}

// BytesSource is a Source over one contiguous buffer. Every Take is a
// zero-copy borrow of that buffer.
type BytesSource struct {
	buf []byte
	off int
}

var _ Source = (*BytesSource)(nil)

// NewBytesSource creates a Source reading from data.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{buf: data}
}

// Fill implements Source.
func (s *BytesSource) Fill(p []byte) error {
	if len(s.buf)-s.off < len(p) {
		s.off = len(s.buf)
		return ErrEndOfInput
	}
	copy(p, s.buf[s.off:])
	s.off += len(p)
	return nil
}

// Take implements Source. The result always borrows from the buffer.
func (s *BytesSource) Take(n int) (Bytes, error) {
	if len(s.buf)-s.off < n {
		s.off = len(s.buf)
		return Bytes{}, ErrEndOfInput
	}
	b := Borrowed(s.buf[s.off : s.off+n : s.off+n])
	s.off += n
	return b, nil
}

// More implements Source.
func (s *BytesSource) More() (bool, error) {
	return s.off < len(s.buf), nil
}

// Rest returns the unconsumed tail of the buffer.
func (s *BytesSource) Rest() []byte {
	return s.buf[s.off:]
}
