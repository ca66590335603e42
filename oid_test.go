package agentx

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOIDEncode(t *testing.T) {
	t.Parallel()

	oid := MustParseOID("1.2.3")

	t.Run("little endian", func(t *testing.T) {
		b, err := oid.Encode(binary.LittleEndian)
		require.NoError(t, err)
		assert.Equal(t, []byte{
			3, 0, 0, 0, // n_subid, prefix, include, reserved
			1, 0, 0, 0,
			2, 0, 0, 0,
			3, 0, 0, 0,
		}, b)
	})

	t.Run("big endian", func(t *testing.T) {
		b, err := oid.Encode(binary.BigEndian)
		require.NoError(t, err)
		assert.Equal(t, []byte{
			3, 0, 0, 0,
			0, 0, 0, 1,
			0, 0, 0, 2,
			0, 0, 0, 3,
		}, b)
	})
}

func TestOIDEncodeNull(t *testing.T) {
	t.Parallel()

	b, err := OID{}.Encode(binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestOIDEncodeInclude(t *testing.T) {
	t.Parallel()

	oid := MustParseOID("1.2")
	oid.Include = 1

	b, err := oid.Encode(binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, byte(1), b[2])
}

func TestDecodeOID(t *testing.T) {
	t.Parallel()

	b := []byte{3, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}

	oid, err := DecodeOID(b, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", oid.String())
	assert.Equal(t, 16, oid.ByteSize())
	assert.Equal(t, uint8(0), oid.Include)
}

func TestDecodeOIDPrefix(t *testing.T) {
	t.Parallel()

	// n_subid 2, prefix 9, include 1: expands to 1.3.6.1.9 plus two
	// trailing sub-identifiers, but only 12 bytes were consumed.
	b := []byte{2, 9, 1, 0, 1, 0, 0, 0, 2, 0, 0, 0}

	oid, err := DecodeOID(b, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, "1.3.6.1.9.1.2", oid.String())
	assert.Equal(t, uint8(1), oid.Include)
	assert.Equal(t, 12, oid.ByteSize())
	assert.Equal(t, []uint32{1, 3, 6, 1, 9, 1, 2}, oid.SubIDs())
}

func TestDecodeOIDNull(t *testing.T) {
	t.Parallel()

	oid, err := DecodeOID([]byte{0, 0, 0, 0}, binary.LittleEndian)
	require.NoError(t, err)
	assert.True(t, oid.IsNull())
	assert.Equal(t, 4, oid.ByteSize())
	assert.Equal(t, "", oid.String())
}

func TestDecodeOIDShortBuffer(t *testing.T) {
	t.Parallel()

	_, err := DecodeOID([]byte{1, 2}, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)

	// Header claims three sub-identifiers but only two fit.
	_, err = DecodeOID([]byte{3, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0}, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestOIDEncodeExpandedTooLong(t *testing.T) {
	t.Parallel()

	// A prefixed identifier with 252 sub-identifiers on the wire expands
	// to 257, which fits in memory but can never be re-encoded in the
	// uncompressed form.
	b := make([]byte, 4+252*4)
	b[0] = 252
	b[1] = 5

	oid, err := DecodeOID(b, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, oid.SubIDs(), 257)

	_, err = oid.Encode(binary.LittleEndian)
	assert.ErrorIs(t, err, ErrInvalidOID)
}

func TestParseOID(t *testing.T) {
	t.Parallel()

	oid, err := ParseOID("1.3.6.1.4.1.424242")
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3, 6, 1, 4, 1, 424242}, oid.SubIDs())

	oid, err = ParseOID(".1.3.6")
	require.NoError(t, err)
	assert.Equal(t, "1.3.6", oid.String())

	oid, err = ParseOID("")
	require.NoError(t, err)
	assert.True(t, oid.IsNull())
}

func TestParseOIDErrors(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"1.x.3", "1..3", "1.-2", "1.4294967296"} {
		_, err := ParseOID(s)
		assert.ErrorIs(t, err, ErrInvalidOID, "%q", s)
	}

	// 256 components.
	_, err := ParseOID("1" + strings.Repeat(".1", 255))
	assert.ErrorIs(t, err, ErrInvalidOID)
}

func TestMustParseOIDPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { MustParseOID("not.an.oid") })
}

func TestOIDEqualIgnoresInclude(t *testing.T) {
	t.Parallel()

	a := MustParseOID("1.3.6.1")
	b := MustParseOID("1.3.6.1")
	b.Include = 1

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(MustParseOID("1.3.6.2")))
	assert.False(t, a.Equal(MustParseOID("1.3.6")))
}

func TestOIDCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2", "1.2.3", -1},
		{"1.2.3", "1.2", 1},
		{"1.2.3", "1.2.4", -1},
		{"1.3", "1.2.9", 1},
		{"", "1", -1},
	}
	for _, tc := range cases {
		got := MustParseOID(tc.a).Compare(MustParseOID(tc.b))
		assert.Equal(t, tc.want, got, "%q vs %q", tc.a, tc.b)
	}
}

func TestOIDHasPrefix(t *testing.T) {
	t.Parallel()

	oid := MustParseOID("1.3.6.1.2.1")

	assert.True(t, oid.HasPrefix(MustParseOID("1.3.6")))
	assert.True(t, oid.HasPrefix(OID{}))
	assert.True(t, oid.HasPrefix(oid))
	assert.False(t, oid.HasPrefix(MustParseOID("1.3.7")))
	assert.False(t, oid.HasPrefix(MustParseOID("1.3.6.1.2.1.1")))
}

func TestOIDCopy(t *testing.T) {
	t.Parallel()

	orig := MustParseOID("1.2.3")
	dup := orig.Copy()

	require.True(t, orig.Equal(dup))
	dup.SubIDs()[0] = 99
	assert.Equal(t, uint32(1), orig.SubIDs()[0])
}
