package wire

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

// Packet kinds, as the leading tag byte on the wire.
const (
	kindAcknowledge byte = 0
	kindMessage     byte = 1
	kindLeave       byte = 2
)

const (
	// PublicValueSize is the fixed payload width of an Acknowledge.
	PublicValueSize = 128

	// lengthSize is the width of the Message length field: a fixed
	// 64-bit little-endian integer, chosen so both peers agree
	// regardless of architecture.
	lengthSize = 8

	// MaxMessageLen caps a Message payload. A length beyond it cannot
	// come from a well-behaved peer and usually means the stream is
	// keyed wrong, so it is treated like an unknown tag.
	MaxMessageLen = 16 << 20
)

// Decode failures. ErrUnknownPacket leaves the stream with no
// resynchronization point; ErrInvalidText condemns a single packet and
// reports how many bytes to skip.
var (
	ErrUnknownPacket  = errors.New("wire: unknown packet tag")
	ErrMessageTooLong = errors.New("wire: message length exceeds cap")
	ErrInvalidText    = errors.New("wire: message text is not valid UTF-8")
)

// Packet is the closed set of frames peers exchange. Exactly three
// implementations exist; the codec's switches are exhaustive over them.
type Packet interface {
	tag() byte
}

// Acknowledge carries a key-agreement public value. It is the only packet
// legitimately exchanged before a session is secured.
type Acknowledge struct {
	Public [PublicValueSize]byte
}

// Message carries UTF-8 chat text.
type Message struct {
	Text string
}

// Leave announces that the sender is closing the session.
type Leave struct{}

func (Acknowledge) tag() byte { return kindAcknowledge }
func (Message) tag() byte     { return kindMessage }
func (Leave) tag() byte       { return kindLeave }

// Encode renders pkt as its wire bytes: one tag byte followed by the
// kind-specific payload.
func Encode(pkt Packet) []byte {
	switch p := pkt.(type) {
	case Acknowledge:
		out := make([]byte, 1+PublicValueSize)
		out[0] = p.tag()
		copy(out[1:], p.Public[:])
		return out
	case Message:
		out := make([]byte, 1+lengthSize+len(p.Text))
		out[0] = p.tag()
		binary.LittleEndian.PutUint64(out[1:], uint64(len(p.Text)))
		copy(out[1+lengthSize:], p.Text)
		return out
	case Leave:
		return []byte{p.tag()}
	default:
		panic("wire: unreachable packet kind")
	}
}

// TryDecode attempts to read exactly one packet from the front of buf.
//
// When buf does not yet hold a complete packet it returns (nil, 0, nil):
// not an error, retry later against the same unconsumed prefix. On
// success it returns the packet and the exact byte count consumed, tag
// included, so the caller can advance its buffer precisely.
//
// ErrUnknownPacket is unrecoverable for the stream. ErrInvalidText is
// returned together with the packet's full consumed length so the caller
// can skip that packet alone and keep decoding.
func TryDecode(buf []byte) (Packet, int, error) {
	if len(buf) == 0 {
		return nil, 0, nil
	}

	switch buf[0] {
	case kindAcknowledge:
		if len(buf) < 1+PublicValueSize {
			return nil, 0, nil
		}
		var a Acknowledge
		copy(a.Public[:], buf[1:1+PublicValueSize])
		return a, 1 + PublicValueSize, nil

	case kindMessage:
		if len(buf) < 1+lengthSize {
			return nil, 0, nil
		}
		n := binary.LittleEndian.Uint64(buf[1 : 1+lengthSize])
		if n > MaxMessageLen {
			return nil, 0, ErrMessageTooLong
		}
		total := 1 + lengthSize + int(n)
		if len(buf) < total {
			return nil, 0, nil
		}
		text := buf[1+lengthSize : total]
		if !utf8.Valid(text) {
			return nil, total, ErrInvalidText
		}
		return Message{Text: string(text)}, total, nil

	case kindLeave:
		return Leave{}, 1, nil

	default:
		return nil, 0, ErrUnknownPacket
	}
}
