package sshformat

// Transformer pairs one Serializer with one reusable buffer for
// request/response patterns over a single connection: encode a message,
// hand the same backing memory to the transport to fill with the
// response, then decode it in place. One allocation serves many
// round trips.
//
// Single writer, single reader: a Transformer must not be shared
// between goroutines.
type Transformer struct {
	sink *BufferSink
	ser  *Serializer
}

// NewTransformer creates a Transformer with a fresh buffer.
func NewTransformer() *Transformer {
	sink := NewBufferSink(nil)
	return &Transformer{
		sink: sink,
		ser:  NewSerializer(sink),
	}
}

// Serialize encodes v into the buffer and returns the complete
// header-prefixed message. The returned slice aliases the buffer and is
// invalidated by the next Serialize or buffer mutation.
func (t *Transformer) Serialize(v Encodable) ([]byte, error) {
	t.ser.Reset()
	t.ser.Encode(v)
	if err := t.ser.Finish(); err != nil {
		return nil, err
	}
	return t.sink.Bytes(), nil
}

// Buffer exposes the backing buffer for out-of-band population: size it
// with Resize and read transport bytes straight into the returned
// slice, then call Deserialize.
func (t *Transformer) Buffer() *BufferSink {
	return t.sink
}

// Deserialize decodes v from the buffer's current contents and returns
// the trailing unconsumed bytes. Note that a Serialize result still
// starts with its 4-byte header; this decodes whatever the buffer holds
// as payload, so a caller replaying its own encoded message must skip
// the header or resize it away first.
func (t *Transformer) Deserialize(v Decodable) ([]byte, error) {
	return Unmarshal(t.sink.Bytes(), v)
}

// Reset discards the buffer contents while keeping its allocation.
func (t *Transformer) Reset() {
	t.ser.Reset()
}
