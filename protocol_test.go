package agentx

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad4(t *testing.T) {
	t.Parallel()

	cases := map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3, 7: 1, 8: 0}
	for n, want := range cases {
		assert.Equal(t, want, pad4(n), "pad4(%d)", n)
	}
}

func TestAdvance(t *testing.T) {
	t.Parallel()

	b := []byte{1, 2, 3, 4}

	rest, err := advance(b, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{4}, rest)

	rest, err = advance(b, 4)
	require.NoError(t, err)
	assert.Empty(t, rest)

	_, err = advance(b, 5)
	require.ErrorIs(t, err, ErrShortBuffer)

	_, err = advance(b, -1)
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestDecodeUintShortBuffer(t *testing.T) {
	t.Parallel()

	_, err := decodeUint16([]byte{1}, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = decodeUint32([]byte{1, 2, 3}, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = decodeUint64([]byte{1, 2, 3, 4, 5, 6, 7}, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestWriteUintByteOrder(t *testing.T) {
	t.Parallel()

	var le, be bytes.Buffer
	writeUint32(&le, binary.LittleEndian, 0x01020304)
	writeUint32(&be, binary.BigEndian, 0x01020304)

	assert.Equal(t, []byte{4, 3, 2, 1}, le.Bytes())
	assert.Equal(t, []byte{1, 2, 3, 4}, be.Bytes())

	le.Reset()
	be.Reset()
	writeUint16(&le, binary.LittleEndian, 0x0102)
	writeUint16(&be, binary.BigEndian, 0x0102)

	assert.Equal(t, []byte{2, 1}, le.Bytes())
	assert.Equal(t, []byte{1, 2}, be.Bytes())

	le.Reset()
	writeUint64(&le, binary.LittleEndian, 1)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, le.Bytes())
}

func TestDecodeUintRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeUint64(&buf, binary.BigEndian, 0xDEADBEEFCAFEF00D)

	v, err := decodeUint64(buf.Bytes(), binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEFCAFEF00D), v)
}

func TestTimeTicksToString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00:00:00.00", TimeTicksToString(0))
	assert.Equal(t, "00:00:01.50", TimeTicksToString(150))
	assert.Equal(t, "01:02:03.04", TimeTicksToString((3600+120+3)*100+4))
	assert.Equal(t, "2 days, 00:00:00.00", TimeTicksToString(2*86400*100))

	assert.InDelta(t, 1.5, TimeTicksToSeconds(150), 0.0001)
}
