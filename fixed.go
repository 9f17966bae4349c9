package sshformat

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in binary.Size on every
// encode. A concurrent map keeps independent codec instances on
// independent goroutines safe without locking.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed provides a generic Codec for any struct Payload composed solely
// of fixed-width numeric fields (sized ints and floats, or arrays of
// them), eliminating per-field boilerplate for simple messages. Their
// big-endian concatenation is exactly the wire encoding of the struct.
//
// Constraint: Payload must not contain bool, string, slice, or map
// fields — those have wire encodings of their own that differ from
// encoding/binary's layout. Such payloads fail with ErrUnsupportedShape.
type Fixed[Payload any] struct {
	Payload Payload
}

var _ Codec = (*Fixed[struct{}])(nil)

// Size returns the encoded size of the payload in bytes, or -1 when the
// payload is not fixed-size. The result is cached per type.
func (c *Fixed[Payload]) Size() int {
	t := reflect.TypeOf((*Payload)(nil)).Elem()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	size := binary.Size(&c.Payload)
	sizeCache.Store(t, size)
	return size
}

// Encode implements Encodable by appending the payload's big-endian
// field bytes with no framing.
func (c *Fixed[Payload]) Encode(s *Serializer) error {
	size := c.Size()
	if size < 0 {
		return ErrUnsupportedShape
	}
	buf := make([]byte, size)
	if _, err := binary.Encode(buf, binary.BigEndian, &c.Payload); err != nil {
		return err
	}
	s.appendRaw(buf)
	return nil
}

// Decode implements Decodable, the inverse of Encode. Field bytes are
// copied out of the source, so the payload never borrows from it.
func (c *Fixed[Payload]) Decode(d *Deserializer) error {
	size := c.Size()
	if size < 0 {
		return ErrUnsupportedShape
	}
	buf := make([]byte, size)
	if !d.fill(buf) {
		return d.err
	}
	if _, err := binary.Decode(buf, binary.BigEndian, &c.Payload); err != nil {
		return err
	}
	return nil
}
