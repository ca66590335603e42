package agentx

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire primitives shared by the encodings. All multi-byte quantities are
// serialized in the byte order selected by the packet header.

// pad4 returns the number of zero bytes needed to pad n up to a 4-byte
// boundary.
func pad4(n int) int {
	return (4 - n%4) % 4
}

// advance skips n bytes of b, failing when fewer than n remain.
func advance(b []byte, n int) ([]byte, error) {
	if n < 0 || n > len(b) {
		return nil, ErrShortBuffer
	}
	return b[n:], nil
}

// decodeUint16 reads a 16-bit value from the front of b.
func decodeUint16(b []byte, order binary.ByteOrder) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrShortBuffer
	}
	return order.Uint16(b), nil
}

// decodeUint32 reads a 32-bit value from the front of b.
func decodeUint32(b []byte, order binary.ByteOrder) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrShortBuffer
	}
	return order.Uint32(b), nil
}

// decodeUint64 reads a 64-bit value from the front of b.
func decodeUint64(b []byte, order binary.ByteOrder) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrShortBuffer
	}
	return order.Uint64(b), nil
}

func writeUint16(buf *bytes.Buffer, order binary.ByteOrder, v uint16) {
	var b [2]byte
	order.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, order binary.ByteOrder, v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, order binary.ByteOrder, v uint64) {
	var b [8]byte
	order.PutUint64(b[:], v)
	buf.Write(b[:])
}

// TimeTicksToSeconds converts a hundredths-of-a-second tick count to seconds.
func TimeTicksToSeconds(ticks uint32) float64 {
	return float64(ticks) / 100
}

// TimeTicksToString converts a hundredths-of-a-second tick count to a
// human-readable string.
func TimeTicksToString(ticks uint32) string {
	totalSeconds := ticks / 100
	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	centiseconds := ticks % 100

	if days > 0 {
		return fmt.Sprintf("%d days, %02d:%02d:%02d.%02d", days, hours, minutes, seconds, centiseconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, centiseconds)
}
