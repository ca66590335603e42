package agentx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// HeaderSize is the fixed size of the PDU header in bytes.
const HeaderSize = 20

// Header flag bits. FlagNetworkByteOrder governs the byte order of every
// multi-byte field in the packet, header fields included.
const (
	FlagInstanceRegistration uint8 = 0x01
	FlagNewIndex             uint8 = 0x02
	FlagAnyIndex             uint8 = 0x04
	FlagNonDefaultContext    uint8 = 0x08
	FlagNetworkByteOrder     uint8 = 0x10
)

func flagByteOrder(flags uint8) binary.ByteOrder {
	if flags&FlagNetworkByteOrder != 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Header is the fixed 20-byte PDU header.
type Header struct {
	// Version of the AgentX protocol, currently always 1.
	Version uint8
	// Type of the PDU the header introduces.
	Type PDUType
	// Flags is a bitmask of the Flag* constants.
	Flags uint8
	// SessionID identifies the session this PDU belongs to.
	SessionID uint32
	// TransactionID identifies the transaction this PDU belongs to.
	TransactionID uint32
	// PacketID matches responses to requests.
	PacketID uint32
	// PayloadLength is the length in bytes of everything after the header,
	// always 0 or a multiple of 4.
	PayloadLength uint32
}

// NewHeader creates a version-1 header of the given type.
func NewHeader(t PDUType) *Header {
	return &Header{Version: 1, Type: t}
}

// GetHeader returns the header itself. It exists so every PDU type exposes
// its embedded header through the PDU interface.
func (h *Header) GetHeader() *Header {
	return h
}

// ByteOrder returns the byte order selected by the header flags.
func (h *Header) ByteOrder() binary.ByteOrder {
	return flagByteOrder(h.Flags)
}

// HasFlag checks whether all bits of flag are set.
func (h *Header) HasFlag(flag uint8) bool {
	return h.Flags&flag == flag
}

// String returns a one-line summary of the header.
func (h *Header) String() string {
	return fmt.Sprintf("%s session=%d transaction=%d packet=%d payload=%d",
		h.Type, h.SessionID, h.TransactionID, h.PacketID, h.PayloadLength)
}

func (h *Header) setPayloadLength(n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: payload of %d bytes", ErrPacketTooLarge, n)
	}
	h.PayloadLength = uint32(n)
	return nil
}

func (h *Header) encode() []byte {
	order := h.ByteOrder()
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	buf.WriteByte(h.Version)
	buf.WriteByte(byte(h.Type))
	buf.WriteByte(h.Flags)
	buf.WriteByte(0) // reserved
	writeUint32(buf, order, h.SessionID)
	writeUint32(buf, order, h.TransactionID)
	writeUint32(buf, order, h.PacketID)
	writeUint32(buf, order, h.PayloadLength)
	return buf.Bytes()
}

// DecodeHeader deserializes the fixed header from the front of data. The
// type byte is validated; the version byte is stored as received.
func DecodeHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrShortBuffer
	}
	typ, err := ParsePDUType(data[1])
	if err != nil {
		return nil, err
	}
	flags := data[2]
	order := flagByteOrder(flags)

	return &Header{
		Version:       data[0],
		Type:          typ,
		Flags:         flags,
		SessionID:     order.Uint32(data[4:]),
		TransactionID: order.Uint32(data[8:]),
		PacketID:      order.Uint32(data[12:]),
		PayloadLength: order.Uint32(data[16:]),
	}, nil
}
