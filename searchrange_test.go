package agentx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRangeRoundTrip(t *testing.T) {
	t.Parallel()

	start := MustParseOID("1.3.6.1.2.1.1")
	start.Include = 1
	r := SearchRange{Start: start, End: MustParseOID("1.3.6.1.2.1.2")}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		b, err := r.Encode(order)
		require.NoError(t, err)
		require.Equal(t, r.ByteSize(), len(b))

		got, err := DecodeSearchRange(b, order)
		require.NoError(t, err)
		assert.True(t, got.Start.Equal(r.Start))
		assert.True(t, got.End.Equal(r.End))
		assert.Equal(t, uint8(1), got.Start.Include)
		assert.Equal(t, uint8(0), got.End.Include)
	}
}

func TestSearchRangeOpenEnded(t *testing.T) {
	t.Parallel()

	r := SearchRange{Start: MustParseOID("1.3.6.1")}

	b, err := r.Encode(binary.LittleEndian)
	require.NoError(t, err)

	got, err := DecodeSearchRange(b, binary.LittleEndian)
	require.NoError(t, err)
	assert.True(t, got.End.IsNull())
}

func TestDecodeSearchRangeShortBuffer(t *testing.T) {
	t.Parallel()

	r := SearchRange{Start: MustParseOID("1.2"), End: MustParseOID("1.3")}
	b, err := r.Encode(binary.LittleEndian)
	require.NoError(t, err)

	// Cut into the second identifier.
	_, err = DecodeSearchRange(b[:len(b)-5], binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestSearchRangeListRoundTrip(t *testing.T) {
	t.Parallel()

	list := SearchRangeList{
		{Start: MustParseOID("1.3.6.1.2.1.1"), End: MustParseOID("1.3.6.1.2.1.2")},
		{Start: MustParseOID("1.3.6.1.4.1")},
	}

	b, err := list.Encode(binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, list.ByteSize(), len(b))

	got, err := DecodeSearchRangeList(b, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Start.Equal(list[0].Start))
	assert.True(t, got[1].Start.Equal(list[1].Start))
	assert.True(t, got[1].End.IsNull())
}

func TestDecodeSearchRangeListEmpty(t *testing.T) {
	t.Parallel()

	got, err := DecodeSearchRangeList(nil, binary.LittleEndian)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeSearchRangeListDanglingFragment(t *testing.T) {
	t.Parallel()

	list := SearchRangeList{{Start: MustParseOID("1.2"), End: MustParseOID("1.3")}}
	b, err := list.Encode(binary.LittleEndian)
	require.NoError(t, err)

	// A complete range followed by the start of another.
	b = append(b, 1, 0, 0, 0)
	_, err = DecodeSearchRangeList(b, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrShortBuffer)
}
