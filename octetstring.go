package agentx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// OctetString is a variable-length text value. On the wire it is a 4-byte
// length (of the text alone) followed by the text and zero padding up to
// the next 4-byte boundary.
type OctetString string

// ByteSize returns the encoded size in bytes, padding included.
func (s OctetString) ByteSize() int {
	return 4 + len(s) + pad4(len(s))
}

// Encode serializes the octet string in the given byte order.
func (s OctetString) Encode(order binary.ByteOrder) ([]byte, error) {
	if uint64(len(s)) > 0xFFFFFFFF {
		return nil, fmt.Errorf("%w: octet string of %d bytes", ErrPacketTooLarge, len(s))
	}
	buf := bytes.NewBuffer(make([]byte, 0, s.ByteSize()))
	writeUint32(buf, order, uint32(len(s)))
	buf.WriteString(string(s))
	for i := 0; i < pad4(len(s)); i++ {
		buf.WriteByte(0)
	}
	return buf.Bytes(), nil
}

// DecodeOctetString deserializes an octet string from the front of b. Only
// the length field and the text itself are consumed; trailing padding is
// accounted for by ByteSize and left for the caller to skip.
func DecodeOctetString(b []byte, order binary.ByteOrder) (OctetString, error) {
	length, err := decodeUint32(b, order)
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	if uint64(length) > uint64(len(b)-4) {
		return "", ErrShortBuffer
	}
	content := b[4 : 4+int(length)]
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrInvalidOctetString)
	}
	return OctetString(content), nil
}

// Context names a non-default context. It is carried by PDUs whose header
// has FlagNonDefaultContext set and encodes exactly like an octet string.
type Context OctetString

// String returns the context name.
func (c Context) String() string {
	return string(c)
}

// ByteSize returns the encoded size in bytes, padding included.
func (c Context) ByteSize() int {
	return OctetString(c).ByteSize()
}

// Encode serializes the context in the given byte order.
func (c Context) Encode(order binary.ByteOrder) ([]byte, error) {
	return OctetString(c).Encode(order)
}

// DecodeContext deserializes a context from the front of b.
func DecodeContext(b []byte, order binary.ByteOrder) (Context, error) {
	s, err := DecodeOctetString(b, order)
	return Context(s), err
}
