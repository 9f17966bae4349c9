// Package sshformat implements the binary data format used to
// communicate with the openssh mux server.
//
// Format details:
//   - All integers are encoded big-endian, two's complement if signed;
//   - Booleans are encoded as a uint32 restricted to 0 or 1;
//   - Characters are encoded as a uint32 holding a Unicode scalar value;
//   - Strings and byte sequences are encoded as length (uint32) + content;
//   - Optional values are omitted when absent, and encoded exactly as
//     their inner value when present. The format carries no presence
//     marker, so an optional field is only decodable when it sits at the
//     end of a message; this is a caller obligation;
//   - Tuples and structs are the concatenation of their fields in
//     declaration order, with no framing. Unit values contribute nothing;
//   - Sequences are encoded as count (uint32) + elements;
//   - Enum variants are encoded as index (uint32) + payload. Validating
//     the index is the target type's job, not the codec's;
//   - Maps cannot be represented and always fail;
//   - A complete message carries one leading uint32 holding the byte
//     length of everything that follows it.
//
// The format is not self-describing: the codec never infers shape from
// bytes. Each type supplies its own shape by implementing Encodable and
// Decodable, either by hand or through code generation.
package sshformat

// Encodable is the capability to linearize a value into a Serializer.
// Implementations emit primitive writes in field declaration order and
// return an error only to abort the pass early; the Serializer already
// latches its own failures.
type Encodable interface {
	Encode(s *Serializer) error
}

// Decodable is the capability to reconstruct a value by pulling
// primitives from a Deserializer in field declaration order.
// The receiver should be a pointer to the value being decoded.
type Decodable interface {
	Decode(d *Deserializer) error
}

// Codec aggregates both directions. A type implementing Codec can make
// a full round trip through the wire format.
type Codec interface {
	Encodable
	Decodable
}
