package sshformat

import "errors"

var (
	// ErrEndOfInput indicates the byte source was exhausted before a read
	// completed, including in the middle of a multi-byte primitive. The
	// caller may gather more input and decode again from scratch; the
	// failed Deserializer itself must be discarded.
	ErrEndOfInput = errors.New("sshformat: unexpected end of input")

	// ErrInvalidBool indicates a boolean position held a uint32 other
	// than 0 or 1.
	ErrInvalidBool = errors.New("sshformat: invalid boolean encoding")

	// ErrInvalidChar indicates a character position held a uint32 that is
	// not a Unicode scalar value.
	ErrInvalidChar = errors.New("sshformat: invalid character codepoint")

	// ErrInvalidUTF8 indicates a string's content bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("sshformat: invalid utf-8 in string")

	// ErrLengthOverflow indicates a length or count cannot be represented:
	// larger than the uint32 the wire carries when encoding, or larger
	// than the platform int when decoding.
	ErrLengthOverflow = errors.New("sshformat: length overflows representable range")

	// ErrUnsupportedShape indicates a value shape the format cannot
	// express, such as a map or decoding without a known target shape.
	ErrUnsupportedShape = errors.New("sshformat: shape not representable in wire format")
)

// CustomError carries an opaque caller-raised validation message through
// an encode or decode pass, typically latched via Serializer.Fail or
// Deserializer.Fail from inside an Encode/Decode implementation.
type CustomError string

func (e CustomError) Error() string {
	return "sshformat: " + string(e)
}
