package sshformat

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// headerSize is the width of the leading length prefix on a complete
// message.
const headerSize = 4

// Serializer linearizes values into a Sink following the wire format.
// It reserves 4 placeholder bytes up front and patches them with the
// payload length in Finish, so the sink ends up holding one complete,
// header-prefixed message.
//
// The first error encountered is latched; subsequent writes become
// no-ops. One instance may be reused across many messages via Reset to
// amortize allocation. Not safe for concurrent use.
type Serializer struct {
	sink Sink
	err  error
}

// NewSerializer creates a Serializer writing into sink. Any bytes
// already in the sink are discarded.
func NewSerializer(sink Sink) *Serializer {
	s := &Serializer{sink: sink}
	s.Reset()
	return s
}

// Reset truncates the sink back to the 4 placeholder header bytes and
// clears any latched error, readying the instance for the next message.
func (s *Serializer) Reset() {
	s.sink.Truncate(0)
	var header [headerSize]byte
	s.sink.Append(header[:])
	s.err = nil
}

// Err returns the first error encountered, if any.
func (s *Serializer) Err() error {
	return s.err
}

// Fail latches err, aborting the rest of the pass. Encode
// implementations use it to surface their own validation failures.
func (s *Serializer) Fail(err error) {
	s.setError(err)
}

// Len returns the number of payload bytes written so far, excluding the
// header region.
func (s *Serializer) Len() int {
	return s.sink.Len() - headerSize
}

// setError records the first non-nil error.
func (s *Serializer) setError(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// Finish computes the payload length, patches the 4-byte header, and
// returns the first error of the whole pass. The sink then holds the
// complete message.
func (s *Serializer) Finish() error {
	if s.err != nil {
		return s.err
	}
	payload, err := narrowCount(s.sink.Len() - headerSize)
	if err != nil {
		s.err = err
		return s.err
	}
	var header [headerSize]byte
	binary.BigEndian.PutUint32(header[:], payload)
	s.sink.Patch(0, header[:])
	return nil
}

// Encode runs v's Encode against this Serializer, latching any error it
// returns. Composite types recurse through it with no added framing.
func (s *Serializer) Encode(v Encodable) {
	if s.err != nil {
		return
	}
	s.setError(v.Encode(s))
}

// appendRaw appends pre-encoded wire bytes with no framing, respecting
// the latch. Used by codecs that produce field bytes in bulk.
func (s *Serializer) appendRaw(p []byte) {
	if s.err != nil {
		return
	}
	s.sink.Append(p)
}

// --- Primitive writes ---

// WriteBool writes v as a uint32 holding 0 or 1.
func (s *Serializer) WriteBool(v bool) {
	if v {
		s.WriteUint32(1)
	} else {
		s.WriteUint32(0)
	}
}

func (s *Serializer) WriteUint8(v uint8) {
	if s.err != nil {
		return
	}
	s.sink.AppendByte(v)
}

func (s *Serializer) WriteUint16(v uint16) {
	if s.err != nil {
		return
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	s.sink.Append(buf[:])
}

func (s *Serializer) WriteUint32(v uint32) {
	if s.err != nil {
		return
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	s.sink.Append(buf[:])
}

func (s *Serializer) WriteUint64(v uint64) {
	if s.err != nil {
		return
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	s.sink.Append(buf[:])
}

func (s *Serializer) WriteInt8(v int8)   { s.WriteUint8(uint8(v)) }
func (s *Serializer) WriteInt16(v int16) { s.WriteUint16(uint16(v)) }
func (s *Serializer) WriteInt32(v int32) { s.WriteUint32(uint32(v)) }
func (s *Serializer) WriteInt64(v int64) { s.WriteUint64(uint64(v)) }

func (s *Serializer) WriteFloat32(v float32) { s.WriteUint32(math.Float32bits(v)) }
func (s *Serializer) WriteFloat64(v float64) { s.WriteUint64(math.Float64bits(v)) }

// WriteChar writes r as a uint32. r must be a Unicode scalar value;
// surrogates and out-of-range values latch ErrInvalidChar.
func (s *Serializer) WriteChar(r rune) {
	if s.err != nil {
		return
	}
	if !utf8.ValidRune(r) {
		s.err = ErrInvalidChar
		return
	}
	s.WriteUint32(uint32(r))
}

// --- Variable-length writes ---

// WriteBytes writes the uint32 length of p followed by its raw bytes.
func (s *Serializer) WriteBytes(p []byte) {
	if s.err != nil {
		return
	}
	n, err := narrowCount(len(p))
	if err != nil {
		s.err = err
		return
	}
	s.sink.Reserve(4 + len(p))
	s.WriteUint32(n)
	s.sink.Append(p)
}

// WriteString writes v in the same length-then-content form as
// WriteBytes.
func (s *Serializer) WriteString(v string) {
	if s.err != nil {
		return
	}
	n, err := narrowCount(len(v))
	if err != nil {
		s.err = err
		return
	}
	s.sink.Reserve(4 + len(v))
	s.WriteUint32(n)
	s.sink.Append([]byte(v))
}

// --- Composite framing ---

// WriteCount writes a sequence's element count. The count must be known
// before any element is written; a negative or over-wide count latches
// ErrLengthOverflow.
func (s *Serializer) WriteCount(n int) {
	if s.err != nil {
		return
	}
	count, err := narrowCount(n)
	if err != nil {
		s.err = err
		return
	}
	s.WriteUint32(count)
}

// WriteVariant writes an enum's variant index. The payload, if any,
// follows with no added framing.
func (s *Serializer) WriteVariant(index uint32) {
	s.WriteUint32(index)
}

// WriteMapHeader always fails: the format has no key/value framing, so
// maps of any size are unrepresentable.
func (s *Serializer) WriteMapHeader(n int) {
	s.setError(ErrUnsupportedShape)
}
