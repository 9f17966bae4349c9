package sshformat

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Ptr is a helper to create a pointer to a value, making optional-field
// construction and test setup cleaner.
func Ptr[T any](v T) *T { return &v }

// narrowCount narrows any integer count or length to the uint32 the
// wire carries, rejecting values outside its range.
func narrowCount[T constraints.Integer](n T) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, ErrLengthOverflow
	}
	return uint32(n), nil
}

// seqPrealloc caps how many elements DecodeSeq preallocates, so a
// hostile count cannot force a huge allocation before any element
// bytes have actually arrived.
const seqPrealloc = 4096

// Marshal encodes v into one complete message: a 4-byte big-endian
// length header followed by v's encoding.
func Marshal(v Encodable) ([]byte, error) {
	sink := NewBufferSink(nil)
	s := NewSerializer(sink)
	s.Encode(v)
	if err := s.Finish(); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// Unmarshal decodes v from data and returns the trailing unconsumed
// bytes. data holds a message payload without its 4-byte header; the
// transport that framed the message consumes the header first:
//
//	size := binary.BigEndian.Uint32(head)  // 4 bytes off the wire
//	payload := read(size)                  // next size bytes
//	rest, err := sshformat.Unmarshal(payload, &msg)
//
// Variable-length fields of the decoded value borrow from data.
func Unmarshal(data []byte, v Decodable) ([]byte, error) {
	d := FromBytes(data)
	d.Decode(v)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return d.Rest(), nil
}

// UnmarshalChunks decodes v from incrementally delivered spans, the
// chunked counterpart of Unmarshal. Fields whose bytes crossed a chunk
// boundary are owned copies; the rest borrow from their chunk.
func UnmarshalChunks(r ChunkReader, v Decodable) error {
	d := FromChunks(r)
	d.Decode(v)
	return d.Err()
}

// EncodeSeq writes items as a count-prefixed sequence. P names the
// pointer type carrying T's Encode implementation.
func EncodeSeq[T any, P interface {
	Encodable
	*T
}](s *Serializer, items []T) {
	s.WriteCount(len(items))
	for i := range items {
		s.Encode(P(&items[i]))
	}
}

// DecodeSeq reads a count-prefixed sequence of T. P names the pointer
// type carrying T's Decode implementation.
func DecodeSeq[T any, P interface {
	Decodable
	*T
}](d *Deserializer) []T {
	var n int
	d.ReadCount(&n)
	if d.Err() != nil {
		return nil
	}
	items := make([]T, 0, min(n, seqPrealloc))
	for i := 0; i < n; i++ {
		var item T
		d.Decode(P(&item))
		if d.Err() != nil {
			return nil
		}
		items = append(items, item)
	}
	return items
}

// EncodeOption writes v's encoding when v is non-nil and nothing at
// all otherwise. Because the wire carries no presence marker, an
// optional field must sit at the end of its message for decoding to
// stay unambiguous.
func EncodeOption[T any, P interface {
	Encodable
	*T
}](s *Serializer, v P) {
	if v != nil {
		s.Encode(v)
	}
}

// DecodeOption reads a trailing optional field: nil when the input is
// exhausted, a decoded value otherwise. Only sound when the field is
// the last thing in the message.
func DecodeOption[T any, P interface {
	Decodable
	*T
}](d *Deserializer) *T {
	more, err := d.More()
	if err != nil || !more {
		return nil
	}
	var v T
	d.Decode(P(&v))
	if d.Err() != nil {
		return nil
	}
	return &v
}
