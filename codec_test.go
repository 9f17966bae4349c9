package sshformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test message types ---
//
// These play the role of the externally derived per-type codecs: each
// hand-implements Encodable and Decodable for its own shape.

// handshake mirrors a typical mux request: fixed-width fields followed
// by variable-length ones.
type handshake struct {
	Version uint32
	Flags   uint16
	Secure  bool
	Client  string
	Token   []byte
}

func (h *handshake) Encode(s *Serializer) error {
	s.WriteUint32(h.Version)
	s.WriteUint16(h.Flags)
	s.WriteBool(h.Secure)
	s.WriteString(h.Client)
	s.WriteBytes(h.Token)
	return nil
}

func (h *handshake) Decode(d *Deserializer) error {
	d.ReadUint32(&h.Version)
	d.ReadUint16(&h.Flags)
	d.ReadBool(&h.Secure)
	d.ReadString(&h.Client)
	h.Token = d.ReadBytes().Clone()
	return d.Err()
}

// event is an enum-shaped message: a variant index selects the payload
// shape, and the decoder itself rejects indices it does not know.
const (
	eventPing uint32 = iota
	eventData
	eventResize
)

type event struct {
	Kind uint32
	Data []byte // eventData payload
	Cols uint32 // eventResize payload
	Rows uint32
}

func (e *event) Encode(s *Serializer) error {
	s.WriteVariant(e.Kind)
	switch e.Kind {
	case eventPing:
	case eventData:
		s.WriteBytes(e.Data)
	case eventResize:
		s.WriteUint32(e.Cols)
		s.WriteUint32(e.Rows)
	default:
		return CustomError("unknown event kind")
	}
	return nil
}

func (e *event) Decode(d *Deserializer) error {
	d.ReadVariant(&e.Kind)
	if err := d.Err(); err != nil {
		return err
	}
	switch e.Kind {
	case eventPing:
	case eventData:
		e.Data = d.ReadBytes().Clone()
	case eventResize:
		d.ReadUint32(&e.Cols)
		d.ReadUint32(&e.Rows)
	default:
		return CustomError("unknown event kind")
	}
	return d.Err()
}

// scalar wrappers for property and sequence tests.

type u16 uint16

func (v *u16) Encode(s *Serializer) error { s.WriteUint16(uint16(*v)); return nil }
func (v *u16) Decode(d *Deserializer) error {
	d.ReadUint16((*uint16)(v))
	return d.Err()
}

type mixed struct {
	A bool
	B int64
	C rune
	D float64
	E string
}

func (m *mixed) Encode(s *Serializer) error {
	s.WriteBool(m.A)
	s.WriteInt64(m.B)
	s.WriteChar(m.C)
	s.WriteFloat64(m.D)
	s.WriteString(m.E)
	return nil
}

func (m *mixed) Decode(d *Deserializer) error {
	d.ReadBool(&m.A)
	d.ReadInt64(&m.B)
	d.ReadChar(&m.C)
	d.ReadFloat64(&m.D)
	d.ReadString(&m.E)
	return d.Err()
}

// attrs is a map-shaped value; the format cannot express it.
type attrs map[string]string

func (a attrs) Encode(s *Serializer) error {
	s.WriteMapHeader(len(a))
	return s.Err()
}

func (a *attrs) Decode(d *Deserializer) error {
	d.ReadMapHeader()
	return d.Err()
}

// roundtrip encodes v, strips the header, and decodes into out.
func roundtrip(t *testing.T, v Encodable, out Decodable) {
	t.Helper()
	data, err := Marshal(v)
	require.NoError(t, err)
	rest, err := Unmarshal(data[4:], out)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestRoundtrip(t *testing.T) {
	t.Run("Handshake", func(t *testing.T) {
		in := handshake{
			Version: 4,
			Flags:   0xBEEF,
			Secure:  true,
			Client:  "mux-client",
			Token:   []byte{0xDE, 0xAD, 0xBE, 0xEF},
		}
		var out handshake
		roundtrip(t, &in, &out)
		assert.Equal(t, in, out)
	})

	t.Run("Mixed", func(t *testing.T) {
		in := mixed{A: false, B: -0x1234567887654321, C: '世', D: 3.5, E: "héllo"}
		var out mixed
		roundtrip(t, &in, &out)
		assert.Equal(t, in, out)
	})

	t.Run("EventVariants", func(t *testing.T) {
		for _, in := range []event{
			{Kind: eventPing},
			{Kind: eventData, Data: []byte("payload")},
			{Kind: eventResize, Cols: 80, Rows: 24},
		} {
			var out event
			roundtrip(t, &in, &out)
			assert.Equal(t, in, out)
		}
	})

	t.Run("Sequence", func(t *testing.T) {
		in := []u16{0x0010, 0x0100, 0x1034, 0x7812}

		sink := NewBufferSink(nil)
		s := NewSerializer(sink)
		EncodeSeq(s, in)
		require.NoError(t, s.Finish())

		d := FromBytes(sink.Bytes()[4:])
		out := DecodeSeq[u16](d)
		require.NoError(t, d.Err())
		assert.Equal(t, in, out)
	})

	t.Run("TrailingOptional", func(t *testing.T) {
		sink := NewBufferSink(nil)
		s := NewSerializer(sink)
		s.WriteUint32(7)
		EncodeOption[u16](s, Ptr(u16(0x0102)))
		require.NoError(t, s.Finish())

		d := FromBytes(sink.Bytes()[4:])
		var lead uint32
		d.ReadUint32(&lead)
		opt := DecodeOption[u16](d)
		require.NoError(t, d.Err())
		assert.EqualValues(t, 7, lead)
		require.NotNil(t, opt)
		assert.EqualValues(t, 0x0102, *opt)
	})

	t.Run("AbsentOptional", func(t *testing.T) {
		sink := NewBufferSink(nil)
		s := NewSerializer(sink)
		s.WriteUint32(7)
		EncodeOption[u16](s, nil)
		require.NoError(t, s.Finish())
		assert.Equal(t, 4, s.Len(), "absent optional must contribute zero bytes")

		d := FromBytes(sink.Bytes()[4:])
		var lead uint32
		d.ReadUint32(&lead)
		assert.Nil(t, DecodeOption[u16](d))
		require.NoError(t, d.Err())
	})
}

func TestMapShapeRejected(t *testing.T) {
	a := attrs{"k": "v"}

	t.Run("Encode", func(t *testing.T) {
		_, err := Marshal(a)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	})

	t.Run("EncodeEmpty", func(t *testing.T) {
		_, err := Marshal(attrs{})
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	})

	t.Run("Decode", func(t *testing.T) {
		var out attrs
		_, err := Unmarshal([]byte{0, 0, 0, 0}, &out)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	})
}

func TestFixed(t *testing.T) {
	type point struct {
		X, Y int32
		Tag  uint16
	}

	t.Run("WireLayout", func(t *testing.T) {
		c := Fixed[point]{Payload: point{X: 1, Y: -2, Tag: 0xABCD}}
		data, err := Marshal(&c)
		require.NoError(t, err)
		expected := []byte{
			0, 0, 0, 10, // header
			0, 0, 0, 1, // X
			0xFF, 0xFF, 0xFF, 0xFE, // Y
			0xAB, 0xCD, // Tag
		}
		assert.Equal(t, expected, data)
	})

	t.Run("Roundtrip", func(t *testing.T) {
		in := Fixed[point]{Payload: point{X: -7, Y: 40000, Tag: 3}}
		var out Fixed[point]
		roundtrip(t, &in, &out)
		assert.Equal(t, in.Payload, out.Payload)
	})

	t.Run("SizeIsCached", func(t *testing.T) {
		c := &Fixed[point]{}
		first := c.Size()
		assert.Equal(t, 10, first)
		assert.Equal(t, first, c.Size())
	})

	t.Run("VariableSizePayloadRejected", func(t *testing.T) {
		type bad struct {
			Name string
		}
		_, err := Marshal(&Fixed[bad]{})
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	})
}
