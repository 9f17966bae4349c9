package sshformat

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Deserializer reconstructs values from a Source following the wire
// format, consuming bytes strictly left-to-right with no backtracking.
// It expects the 4-byte message header to have been handled by the
// caller already; see Unmarshal.
//
// The first error encountered is latched; subsequent reads become
// no-ops and a failed instance must be discarded. Fixed-width reads
// hide the borrowed/owned distinction by copying into small scratch
// arrays; variable-length reads surface it through Bytes. Not safe for
// concurrent use.
type Deserializer struct {
	src Source
	err error
}

// NewDeserializer creates a Deserializer pulling from src.
func NewDeserializer(src Source) *Deserializer {
	return &Deserializer{src: src}
}

// FromBytes creates a Deserializer over one contiguous buffer. All
// variable-length reads borrow directly from data.
func FromBytes(data []byte) *Deserializer {
	return NewDeserializer(NewBytesSource(data))
}

// FromChunks creates a Deserializer over incrementally delivered spans.
func FromChunks(r ChunkReader) *Deserializer {
	return NewDeserializer(NewChunkSource(r))
}

// Err returns the first error encountered, if any.
func (d *Deserializer) Err() error {
	return d.err
}

// Fail latches err, aborting the rest of the pass. Decode
// implementations use it to surface their own validation failures,
// such as an unrecognized variant index.
func (d *Deserializer) Fail(err error) {
	d.setError(err)
}

// setError records the first non-nil error.
func (d *Deserializer) setError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// Decode runs v's Decode against this Deserializer, latching any error
// it returns. Composite types recurse through it with no framing.
func (d *Deserializer) Decode(v Decodable) {
	if d.err != nil {
		return
	}
	d.setError(v.Decode(d))
}

// More reports whether any payload remains, pulling further chunks if
// needed. It is how a decoder detects a trailing optional field.
func (d *Deserializer) More() (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	more, err := d.src.More()
	d.setError(err)
	return more, d.err
}

// Rest returns the unconsumed tail when decoding from one contiguous
// buffer, and nil in chunked mode.
func (d *Deserializer) Rest() []byte {
	if bs, ok := d.src.(*BytesSource); ok {
		return bs.Rest()
	}
	return nil
}

// fill reads exactly len(p) bytes into p, latching on failure.
func (d *Deserializer) fill(p []byte) bool {
	if d.err != nil {
		return false
	}
	if err := d.src.Fill(p); err != nil {
		d.err = err
		return false
	}
	return true
}

// readUint32 is shared by every 4-byte wire construct: bool, char,
// length, count, and variant index.
func (d *Deserializer) readUint32() (uint32, bool) {
	var buf [4]byte
	if !d.fill(buf[:]) {
		return 0, false
	}
	return binary.BigEndian.Uint32(buf[:]), true
}

// --- Primitive reads ---

// ReadBool reads a uint32 restricted to 0 or 1; any other value latches
// ErrInvalidBool.
func (d *Deserializer) ReadBool(dest *bool) {
	v, ok := d.readUint32()
	if !ok {
		return
	}
	switch v {
	case 0:
		*dest = false
	case 1:
		*dest = true
	default:
		d.err = ErrInvalidBool
	}
}

func (d *Deserializer) ReadUint8(dest *uint8) {
	var buf [1]byte
	if d.fill(buf[:]) {
		*dest = buf[0]
	}
}

func (d *Deserializer) ReadUint16(dest *uint16) {
	var buf [2]byte
	if d.fill(buf[:]) {
		*dest = binary.BigEndian.Uint16(buf[:])
	}
}

func (d *Deserializer) ReadUint32(dest *uint32) {
	if v, ok := d.readUint32(); ok {
		*dest = v
	}
}

func (d *Deserializer) ReadUint64(dest *uint64) {
	var buf [8]byte
	if d.fill(buf[:]) {
		*dest = binary.BigEndian.Uint64(buf[:])
	}
}

func (d *Deserializer) ReadInt8(dest *int8) {
	var buf [1]byte
	if d.fill(buf[:]) {
		*dest = int8(buf[0])
	}
}

func (d *Deserializer) ReadInt16(dest *int16) {
	var buf [2]byte
	if d.fill(buf[:]) {
		*dest = int16(binary.BigEndian.Uint16(buf[:]))
	}
}

func (d *Deserializer) ReadInt32(dest *int32) {
	if v, ok := d.readUint32(); ok {
		*dest = int32(v)
	}
}

func (d *Deserializer) ReadInt64(dest *int64) {
	var buf [8]byte
	if d.fill(buf[:]) {
		*dest = int64(binary.BigEndian.Uint64(buf[:]))
	}
}

func (d *Deserializer) ReadFloat32(dest *float32) {
	if v, ok := d.readUint32(); ok {
		*dest = math.Float32frombits(v)
	}
}

func (d *Deserializer) ReadFloat64(dest *float64) {
	var buf [8]byte
	if d.fill(buf[:]) {
		*dest = math.Float64frombits(binary.BigEndian.Uint64(buf[:]))
	}
}

// ReadChar reads a uint32 and rejects values that are not Unicode
// scalar values with ErrInvalidChar.
func (d *Deserializer) ReadChar(dest *rune) {
	v, ok := d.readUint32()
	if !ok {
		return
	}
	r := rune(v)
	if v > utf8.MaxRune || !utf8.ValidRune(r) {
		d.err = ErrInvalidChar
		return
	}
	*dest = r
}

// --- Variable-length reads ---

// readLen decodes the uint32 length prefix of a variable-length field,
// rejecting values that overflow the platform int.
func (d *Deserializer) readLen() (int, bool) {
	v, ok := d.readUint32()
	if !ok {
		return 0, false
	}
	if uint64(v) > uint64(math.MaxInt) {
		d.err = ErrLengthOverflow
		return 0, false
	}
	return int(v), true
}

// ReadBytes reads a length-prefixed byte sequence. The result is
// borrowed when the input could satisfy the read from one span and
// owned otherwise; callers must handle both cases.
func (d *Deserializer) ReadBytes() Bytes {
	n, ok := d.readLen()
	if !ok {
		return Bytes{}
	}
	b, err := d.src.Take(n)
	if err != nil {
		d.setError(err)
		return Bytes{}
	}
	return b
}

// ReadStringBytes reads a length-prefixed string as raw bytes,
// validating UTF-8 but preserving the borrowed/owned case for callers
// that want to avoid the copy a Go string conversion forces.
func (d *Deserializer) ReadStringBytes() Bytes {
	b := d.ReadBytes()
	if d.err != nil {
		return Bytes{}
	}
	if !utf8.Valid(b.Bytes()) {
		d.err = ErrInvalidUTF8
		return Bytes{}
	}
	return b
}

// ReadString reads a length-prefixed UTF-8 string into dest. The
// result is always an owned Go string.
func (d *Deserializer) ReadString(dest *string) {
	b := d.ReadStringBytes()
	if d.err == nil {
		*dest = b.String()
	}
}

// --- Composite framing ---

// ReadCount reads a sequence's element count. The elements follow with
// no framing; the decoder must read exactly that many.
func (d *Deserializer) ReadCount(dest *int) {
	if n, ok := d.readLen(); ok {
		*dest = n
	}
}

// ReadVariant reads an enum's variant index and hands it over
// unchecked; rejecting unknown indices is the target type's job.
func (d *Deserializer) ReadVariant(dest *uint32) {
	d.ReadUint32(dest)
}

// ReadMapHeader always fails: the format carries no key/value framing,
// so there is nothing a map decode could read.
func (d *Deserializer) ReadMapHeader() {
	d.setError(ErrUnsupportedShape)
}
