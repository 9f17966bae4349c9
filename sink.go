package sshformat

// Sink is a growable output store for serialized bytes. Appends must be
// amortized O(1) per byte; Reserve is a capacity hint and never required
// for correctness. Patch exists so the Serializer can overwrite the
// 4-byte header region once the true payload length is known.
type Sink interface {
	// Append appends p to the output.
	Append(p []byte)
	// AppendByte appends a single byte to the output.
	AppendByte(c byte)
	// Reserve hints that at least n more bytes are about to be appended.
	Reserve(n int)
	// Len returns the number of bytes written so far.
	Len() int
	// Patch overwrites len(p) already-written bytes starting at off.
	// off+len(p) must not exceed Len().
	Patch(off int, p []byte)
	// Truncate discards all but the first n written bytes.
	Truncate(n int)
}

// BufferSink is a Sink backed by an in-memory growable byte slice.
// The zero value is ready to use.
type BufferSink struct {
	buf []byte
}

var _ Sink = (*BufferSink)(nil)

// NewBufferSink creates a BufferSink reusing the storage of buf, which
// may be nil. Any existing contents are discarded; only the capacity is
// kept, letting a caller amortize allocation across messages.
func NewBufferSink(buf []byte) *BufferSink {
	return &BufferSink{buf: buf[:0]}
}

// Append implements Sink.
func (b *BufferSink) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// AppendByte implements Sink.
func (b *BufferSink) AppendByte(c byte) {
	b.buf = append(b.buf, c)
}

// Reserve grows the capacity so that n more bytes can be appended
// without reallocation.
func (b *BufferSink) Reserve(n int) {
	if n <= cap(b.buf)-len(b.buf) {
		return
	}
	grown := make([]byte, len(b.buf), len(b.buf)+n)
	copy(grown, b.buf)
	b.buf = grown
}

// Len returns the number of bytes written so far.
func (b *BufferSink) Len() int {
	return len(b.buf)
}

// Patch implements Sink.
func (b *BufferSink) Patch(off int, p []byte) {
	copy(b.buf[off:off+len(p)], p)
}

// Truncate implements Sink.
func (b *BufferSink) Truncate(n int) {
	b.buf = b.buf[:n]
}

// Reset discards all written bytes while keeping the allocation.
func (b *BufferSink) Reset() {
	b.buf = b.buf[:0]
}

// Bytes returns a view of the written bytes. The view is invalidated by
// any further append.
func (b *BufferSink) Bytes() []byte {
	return b.buf
}

// Resize sets the contents to exactly n bytes and returns them, growing
// or truncating as needed. Callers use it to read transport data
// directly into the sink's backing memory before decoding.
func (b *BufferSink) Resize(n int) []byte {
	if n <= cap(b.buf) {
		old := len(b.buf)
		b.buf = b.buf[:n]
		if n > old {
			clear(b.buf[old:])
		}
		return b.buf
	}
	grown := make([]byte, n)
	copy(grown, b.buf)
	b.buf = grown
	return b.buf
}
