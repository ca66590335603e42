package agentx

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quiet drops codec diagnostics so expected-failure tests do not spam the
// test log.
func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ============================================================================
// Decoder
// ============================================================================

func TestDecoderDecode(t *testing.T) {
	t.Parallel()

	d := NewDecoder()

	pdu, err := d.Decode(openVector)
	require.NoError(t, err)

	open, ok := pdu.(*Open)
	require.True(t, ok)
	assert.Equal(t, OctetString("rck"), open.Description)

	snap := d.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.PacketsDecoded)
	assert.Equal(t, int64(len(openVector)), snap.BytesDecoded)
	assert.Equal(t, int64(0), snap.DecodeErrors)
	assert.Equal(t, int64(1), snap.PayloadSizes.Count)
	assert.Equal(t, int64(28), snap.PayloadSizes.Max)
}

// The declared payload length frames the packet; anything after it on the
// buffer belongs to the next packet and is not touched.
func TestDecoderDecodeIgnoresTrailingBytes(t *testing.T) {
	t.Parallel()

	data := append(append([]byte{}, openVector...), 0xDE, 0xAD, 0xBE, 0xEF)

	d := NewDecoder()
	pdu, err := d.Decode(data)
	require.NoError(t, err)
	assert.IsType(t, &Open{}, pdu)
	assert.Equal(t, int64(len(openVector)), d.Metrics().Snapshot().BytesDecoded)
}

func TestDecoderDecodeTruncatedFrame(t *testing.T) {
	t.Parallel()

	d := NewDecoder(quiet())

	// Every cut of the packet must produce an error once the header
	// promises 28 payload bytes, including cuts DecodeOpen itself would
	// tolerate.
	for i := HeaderSize; i < len(openVector); i++ {
		_, err := d.Decode(openVector[:i])
		require.Error(t, err, "prefix of %d bytes", i)
		assert.True(t, IsInvalidData(err), "prefix of %d bytes", i)
	}

	_, err := d.Decode(openVector[:40])
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, HeaderSize, perr.Offset)
	assert.Equal(t, openVector[:40], perr.Data)
}

func TestDecoderMaxPayloadLength(t *testing.T) {
	t.Parallel()

	d := NewDecoder(WithMaxPayloadLength(8), quiet())

	_, err := d.Decode(openVector)
	assert.ErrorIs(t, err, ErrPacketTooLarge)
	assert.Equal(t, int64(1), d.Metrics().Snapshot().DecodeErrors)
}

func TestDecoderDefaultCapBlocksHostileHeader(t *testing.T) {
	t.Parallel()

	// A bare header claiming a 2 MiB payload. The cap must reject it
	// before any payload is read or allocated.
	b := make([]byte, HeaderSize)
	b[0] = 1
	b[1] = byte(PDUPing)
	b[16] = 0
	b[17] = 0
	b[18] = 0x20 // 2 MiB little-endian

	d := NewDecoder(quiet())
	_, err := d.Decode(b)
	assert.ErrorIs(t, err, ErrPacketTooLarge)

	_, err = d.ReadPDU(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrPacketTooLarge)
}

func TestDecoderReadPDUStream(t *testing.T) {
	t.Parallel()

	closeBytes, err := NewClose(ReasonShutdown).Encode()
	require.NoError(t, err)

	stream := bytes.NewReader(append(append([]byte{}, openVector...), closeBytes...))
	d := NewDecoder()

	first, err := d.ReadPDU(stream)
	require.NoError(t, err)
	assert.IsType(t, &Open{}, first)

	second, err := d.ReadPDU(stream)
	require.NoError(t, err)
	assert.IsType(t, &Close{}, second)

	_, err = d.ReadPDU(stream)
	assert.ErrorIs(t, err, io.EOF)

	snap := d.Metrics().Snapshot()
	assert.Equal(t, int64(2), snap.PacketsDecoded)
	assert.Equal(t, int64(0), snap.DecodeErrors)
}

func TestDecoderReadPDUTruncatedHeader(t *testing.T) {
	t.Parallel()

	d := NewDecoder(quiet())
	_, err := d.ReadPDU(bytes.NewReader(openVector[:10]))
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestDecoderReadPDUTruncatedPayload(t *testing.T) {
	t.Parallel()

	d := NewDecoder(quiet())
	_, err := d.ReadPDU(bytes.NewReader(openVector[:30]))
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestDecoderOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(DefaultMaxPayloadLength), NewDecoder().Options().MaxPayloadLength)

	d := NewDecoder(WithMaxPayloadLength(1234))
	assert.Equal(t, uint32(1234), d.Options().MaxPayloadLength)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, logger, NewDecoder(WithLogger(logger)).Options().Logger)
}

// ============================================================================
// Encoder
// ============================================================================

func TestEncoderNetworkByteOrder(t *testing.T) {
	t.Parallel()

	p := NewPing()
	p.SessionID = 0x01020304

	e := NewEncoder(WithNetworkByteOrder())
	data, err := e.Encode(p)
	require.NoError(t, err)

	assert.NotZero(t, data[2]&FlagNetworkByteOrder)
	assert.Equal(t, []byte{1, 2, 3, 4}, data[4:8])

	got, err := NewDecoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), got.GetHeader().SessionID)

	snap := e.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.PacketsEncoded)
	assert.Equal(t, int64(HeaderSize), snap.BytesEncoded)
}

func TestEncoderEncodeError(t *testing.T) {
	t.Parallel()

	p := NewOpen(OID{}, "x")
	p.Timeout = 10 * time.Minute

	e := NewEncoder(quiet())
	_, err := e.Encode(p)
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, int64(1), e.Metrics().Snapshot().EncodeErrors)
}

func TestEncoderWritePDU(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := NewEncoder()

	require.NoError(t, e.WritePDU(&buf, NewPing()))

	got, err := NewDecoder().Decode(buf.Bytes())
	require.NoError(t, err)
	assert.IsType(t, &Ping{}, got)
}

func TestCodecVarbindCounters(t *testing.T) {
	t.Parallel()

	p := NewNotify(VarBindList{
		{Type: TypeTimeTicks, Name: MustParseOID("1.3.6.1.2.1.1.3.0"), Value: int32(1)},
		{Type: TypeNull, Name: MustParseOID("1.3.6.1.4.1")},
	})

	e := NewEncoder()
	data, err := e.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), e.Metrics().Snapshot().VarbindsEncoded)

	d := NewDecoder()
	_, err = d.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Metrics().Snapshot().VarbindsDecoded)
}
