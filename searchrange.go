package agentx

import (
	"bytes"
	"encoding/binary"
)

// SearchRange names a region of the OID space. Start carries the include
// field; End never does.
type SearchRange struct {
	Start OID
	End   OID
}

// ByteSize returns the encoded size in bytes.
func (r SearchRange) ByteSize() int {
	return r.Start.ByteSize() + r.End.ByteSize()
}

// Encode serializes the search range in the given byte order.
func (r SearchRange) Encode(order binary.ByteOrder) ([]byte, error) {
	start, err := r.Start.Encode(order)
	if err != nil {
		return nil, err
	}
	end, err := r.End.Encode(order)
	if err != nil {
		return nil, err
	}
	return append(start, end...), nil
}

// DecodeSearchRange deserializes a search range from the front of b.
func DecodeSearchRange(b []byte, order binary.ByteOrder) (SearchRange, error) {
	start, err := DecodeOID(b, order)
	if err != nil {
		return SearchRange{}, err
	}
	b, err = advance(b, start.ByteSize())
	if err != nil {
		return SearchRange{}, err
	}
	end, err := DecodeOID(b, order)
	if err != nil {
		return SearchRange{}, err
	}
	return SearchRange{Start: start, End: end}, nil
}

// SearchRangeList is a sequence of search ranges.
type SearchRangeList []SearchRange

// ByteSize returns the encoded size in bytes.
func (l SearchRangeList) ByteSize() int {
	size := 0
	for _, r := range l {
		size += r.ByteSize()
	}
	return size
}

// Encode serializes the list in the given byte order.
func (l SearchRangeList) Encode(order binary.ByteOrder) ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range l {
		b, err := r.Encode(order)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// DecodeSearchRangeList deserializes search ranges until b is exhausted. A
// trailing fragment that does not form a complete search range is an error.
func DecodeSearchRangeList(b []byte, order binary.ByteOrder) (SearchRangeList, error) {
	var list SearchRangeList
	for len(b) > 0 {
		r, err := DecodeSearchRange(b, order)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
		b, err = advance(b, r.ByteSize())
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}
