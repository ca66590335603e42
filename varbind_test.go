package agentx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Encode / decode
// ============================================================================

func TestVarBindWireLayout(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeInteger, Name: MustParseOID("1.3"), Value: int32(5)}

	b, err := vb.Encode(binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		2, 0, 0, 0, // tag, reserved
		2, 0, 0, 0, // n_subid, prefix, include, reserved
		1, 0, 0, 0,
		3, 0, 0, 0,
		5, 0, 0, 0, // value
	}, b)
	assert.Equal(t, len(b), vb.ByteSize())
}

func TestVarBindRoundTrip(t *testing.T) {
	t.Parallel()

	name := MustParseOID("1.3.6.1.2.1.1.3.0")
	cases := []struct {
		desc string
		vb   VarBind
	}{
		{"negative integer", VarBind{Type: TypeInteger, Name: name, Value: int32(-42)}},
		{"octet string", VarBind{Type: TypeOctetString, Name: name, Value: OctetString("eth0")}},
		{"null", VarBind{Type: TypeNull, Name: name}},
		{"object identifier", VarBind{Type: TypeObjectIdentifier, Name: name, Value: MustParseOID("1.3.6.1.4.1")}},
		{"ip address", VarBind{Type: TypeIPAddress, Name: name, Value: OctetString("\x0a\x00\x00\x01")}},
		{"counter32 beyond int32", VarBind{Type: TypeCounter32, Name: name, Value: uint32(4000000000)}},
		{"gauge32", VarBind{Type: TypeGauge32, Name: name, Value: uint32(7)}},
		{"timeticks", VarBind{Type: TypeTimeTicks, Name: name, Value: int32(123456)}},
		{"opaque", VarBind{Type: TypeOpaque, Name: name, Value: OctetString("raw")}},
		{"counter64", VarBind{Type: TypeCounter64, Name: name, Value: uint64(1) << 40}},
		{"no such object", VarBind{Type: TypeNoSuchObject, Name: name}},
		{"end of mib view", VarBind{Type: TypeEndOfMibView, Name: name}},
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, tc := range cases {
			t.Run(tc.desc, func(t *testing.T) {
				b, err := tc.vb.Encode(order)
				require.NoError(t, err)
				require.Equal(t, tc.vb.ByteSize(), len(b))

				got, err := DecodeVarBind(b, order)
				require.NoError(t, err)
				assert.Equal(t, tc.vb.Type, got.Type)
				assert.True(t, got.Name.Equal(tc.vb.Name))
				assert.Equal(t, tc.vb.Value, got.Value)
			})
		}
	}
}

func TestVarBindEncodeAcceptsGoString(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeOctetString, Name: MustParseOID("1.3"), Value: "plain"}

	b, err := vb.Encode(binary.LittleEndian)
	require.NoError(t, err)

	got, err := DecodeVarBind(b, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, OctetString("plain"), got.Value)
}

func TestVarBindEmptySyntaxCarriesNoValueBytes(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeEndOfMibView, Name: MustParseOID("1.3")}

	b, err := vb.Encode(binary.LittleEndian)
	require.NoError(t, err)
	assert.Len(t, b, 4+vb.Name.ByteSize())
}

func TestVarBindEncodeTypeMismatch(t *testing.T) {
	t.Parallel()

	name := MustParseOID("1.3")
	cases := []VarBind{
		{Type: TypeInteger, Name: name, Value: "nope"},
		{Type: TypeCounter32, Name: name, Value: int32(1)},
		{Type: TypeCounter64, Name: name, Value: uint32(1)},
		{Type: TypeOctetString, Name: name, Value: 7},
		{Type: TypeObjectIdentifier, Name: name, Value: "1.2.3"},
	}
	for _, vb := range cases {
		_, err := vb.Encode(binary.LittleEndian)
		assert.ErrorIs(t, err, ErrInvalidValue, "%s holding %T", vb.Type, vb.Value)
	}
}

func TestVarBindEncodeUnknownType(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: ValueType(0x99), Name: MustParseOID("1.3")}
	_, err := vb.Encode(binary.LittleEndian)
	assert.ErrorIs(t, err, ErrUnknownValueType)
}

func TestDecodeVarBindUnknownTag(t *testing.T) {
	t.Parallel()

	b := []byte{99, 0, 0, 0, 0, 0, 0, 0}
	_, err := DecodeVarBind(b, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrUnknownValueType)
}

func TestDecodeVarBindTruncated(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeInteger, Name: MustParseOID("1.3"), Value: int32(5)}
	b, err := vb.Encode(binary.LittleEndian)
	require.NoError(t, err)

	// Inside the value.
	_, err = DecodeVarBind(b[:len(b)-2], binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)

	// Inside the name.
	_, err = DecodeVarBind(b[:7], binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)

	// Inside the tag.
	_, err = DecodeVarBind(b[:1], binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

// ============================================================================
// Accessors
// ============================================================================

func TestVarBindAsInt(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeInteger, Value: int32(-3)}
	v, ok := vb.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(-3), v)

	vb = VarBind{Type: TypeCounter32, Value: uint32(4000000000)}
	v, ok = vb.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(4000000000), v)

	vb = VarBind{Type: TypeCounter64, Value: uint64(math.MaxUint64)}
	_, ok = vb.AsInt()
	assert.False(t, ok)

	vb = VarBind{Type: TypeOctetString, Value: OctetString("x")}
	_, ok = vb.AsInt()
	assert.False(t, ok)
}

func TestVarBindAsUint(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeCounter64, Value: uint64(1) << 40}
	v, ok := vb.AsUint()
	require.True(t, ok)
	assert.Equal(t, uint64(1)<<40, v)

	vb = VarBind{Type: TypeInteger, Value: int32(5)}
	v, ok = vb.AsUint()
	require.True(t, ok)
	assert.Equal(t, uint64(5), v)

	vb = VarBind{Type: TypeInteger, Value: int32(-1)}
	_, ok = vb.AsUint()
	assert.False(t, ok)
}

func TestVarBindAsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "eth0", (&VarBind{Value: OctetString("eth0")}).AsString())
	assert.Equal(t, "", (&VarBind{}).AsString())
	assert.Equal(t, "1.2.3", (&VarBind{Value: MustParseOID("1.2.3")}).AsString())
	assert.Equal(t, "42", (&VarBind{Value: int32(42)}).AsString())
}

func TestVarBindAsOID(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeObjectIdentifier, Value: MustParseOID("1.2.3")}
	oid, ok := vb.AsOID()
	require.True(t, ok)
	assert.Equal(t, "1.2.3", oid.String())

	_, ok = (&VarBind{Value: int32(1)}).AsOID()
	assert.False(t, ok)
}

func TestVarBindString(t *testing.T) {
	t.Parallel()

	vb := VarBind{Type: TypeInteger, Name: MustParseOID("1.3.6.1.2.1.1.3.0"), Value: int32(42)}
	assert.Equal(t, "1.3.6.1.2.1.1.3.0 = Integer: 42", vb.String())
}

// ============================================================================
// Lists
// ============================================================================

func TestVarBindListRoundTrip(t *testing.T) {
	t.Parallel()

	list := VarBindList{
		{Type: TypeInteger, Name: MustParseOID("1.3.6.1.2.1.1.3.0"), Value: int32(1)},
		{Type: TypeOctetString, Name: MustParseOID("1.3.6.1.2.1.1.5.0"), Value: OctetString("gateway")},
		{Type: TypeEndOfMibView, Name: MustParseOID("1.3.6.1.2.2")},
	}

	b, err := list.Encode(binary.BigEndian)
	require.NoError(t, err)
	require.Equal(t, list.ByteSize(), len(b))

	got, err := DecodeVarBindList(b, binary.BigEndian)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int32(1), got[0].Value)
	assert.Equal(t, OctetString("gateway"), got[1].Value)
	assert.Nil(t, got[2].Value)
}

func TestDecodeVarBindListEmpty(t *testing.T) {
	t.Parallel()

	got, err := DecodeVarBindList(nil, binary.LittleEndian)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeVarBindListDanglingFragment(t *testing.T) {
	t.Parallel()

	list := VarBindList{{Type: TypeNull, Name: MustParseOID("1.3")}}
	b, err := list.Encode(binary.LittleEndian)
	require.NoError(t, err)

	b = append(b, 2, 0)
	_, err = DecodeVarBindList(b, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)
}
