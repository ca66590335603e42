// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agentx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// OID represents an AgentX object identifier.
//
// Identifiers beginning with 1.3.6.1 may arrive in a compressed form where
// the fifth sub-identifier is carried in a one-byte prefix field. Decoding
// expands the prefix, so SubIDs always yields the full identifier, but the
// wire size of the compressed form is remembered: ByteSize reports the
// number of bytes the identifier occupied on the wire, not the size a
// re-encoding would produce. Encoding never compresses.
//
// The zero value is the null identifier.
type OID struct {
	// Include is the raw include field. It is only meaningful when the
	// identifier starts a SearchRange and is ignored by Equal and Compare.
	Include uint8

	origCount uint8
	subIDs    []uint32
}

// NewOID builds an OID from sub-identifiers. The slice is copied. OIDs are
// limited to 255 sub-identifiers.
func NewOID(subIDs []uint32) (OID, error) {
	if len(subIDs) > 255 {
		return OID{}, fmt.Errorf("%w: %d sub-identifiers", ErrInvalidOID, len(subIDs))
	}
	oid := OID{origCount: uint8(len(subIDs))}
	if len(subIDs) > 0 {
		oid.subIDs = make([]uint32, len(subIDs))
		copy(oid.subIDs, subIDs)
	}
	return oid, nil
}

// ParseOID parses a dotted OID string. A single leading dot is accepted,
// as in ".1.3.6.1", and the empty string parses to the null identifier.
func ParseOID(s string) (OID, error) {
	if s == "" {
		return OID{}, nil
	}
	s = strings.TrimPrefix(s, ".")
	parts := strings.Split(s, ".")
	subIDs := make([]uint32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return OID{}, fmt.Errorf("%w: %q", ErrInvalidOID, s)
		}
		subIDs = append(subIDs, uint32(v))
	}
	return NewOID(subIDs)
}

// MustParseOID parses a dotted OID string, panicking on error.
func MustParseOID(s string) OID {
	oid, err := ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// SubIDs returns the sub-identifiers, prefix expansion included. The slice
// must not be modified.
func (o OID) SubIDs() []uint32 {
	return o.subIDs
}

// IsNull returns true for the null (empty) identifier.
func (o OID) IsNull() bool {
	return len(o.subIDs) == 0
}

// String returns the dotted string representation of the OID.
func (o OID) String() string {
	var sb strings.Builder
	for i, id := range o.subIDs {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

// Equal checks if two OIDs name the same object. The include field does not
// take part in the comparison.
func (o OID) Equal(other OID) bool {
	if len(o.subIDs) != len(other.subIDs) {
		return false
	}
	for i := range o.subIDs {
		if o.subIDs[i] != other.subIDs[i] {
			return false
		}
	}
	return true
}

// Compare orders two OIDs lexicographically by sub-identifier.
func (o OID) Compare(other OID) int {
	for i := 0; i < len(o.subIDs) && i < len(other.subIDs); i++ {
		switch {
		case o.subIDs[i] < other.subIDs[i]:
			return -1
		case o.subIDs[i] > other.subIDs[i]:
			return 1
		}
	}
	switch {
	case len(o.subIDs) < len(other.subIDs):
		return -1
	case len(o.subIDs) > len(other.subIDs):
		return 1
	}
	return 0
}

// HasPrefix checks if the OID starts with the given prefix.
func (o OID) HasPrefix(prefix OID) bool {
	if len(prefix.subIDs) > len(o.subIDs) {
		return false
	}
	for i := range prefix.subIDs {
		if o.subIDs[i] != prefix.subIDs[i] {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the OID.
func (o OID) Copy() OID {
	dup := o
	if o.subIDs != nil {
		dup.subIDs = make([]uint32, len(o.subIDs))
		copy(dup.subIDs, o.subIDs)
	}
	return dup
}

// ByteSize returns the encoded size in bytes as seen on the wire.
func (o OID) ByteSize() int {
	return 4 + 4*int(o.origCount)
}

// Encode serializes the OID in the given byte order. The prefix-compressed
// form is never produced. Identifiers that expanded beyond 255
// sub-identifiers cannot be re-encoded and yield an error.
func (o OID) Encode(order binary.ByteOrder) ([]byte, error) {
	if len(o.subIDs) > 255 {
		return nil, fmt.Errorf("%w: %d sub-identifiers", ErrInvalidOID, len(o.subIDs))
	}
	buf := bytes.NewBuffer(make([]byte, 0, 4+4*len(o.subIDs)))
	buf.WriteByte(uint8(len(o.subIDs)))
	buf.WriteByte(0) // prefix
	buf.WriteByte(o.Include)
	buf.WriteByte(0) // reserved
	for _, id := range o.subIDs {
		writeUint32(buf, order, id)
	}
	return buf.Bytes(), nil
}

// DecodeOID deserializes an OID from the front of b.
func DecodeOID(b []byte, order binary.ByteOrder) (OID, error) {
	if len(b) < 4 {
		return OID{}, ErrShortBuffer
	}
	n, prefix, include := b[0], b[1], b[2]
	if len(b) < 4+4*int(n) {
		return OID{}, ErrShortBuffer
	}

	var subIDs []uint32
	if prefix != 0 {
		subIDs = append(subIDs, 1, 3, 6, 1, uint32(prefix))
	}
	for i := 0; i < int(n); i++ {
		subIDs = append(subIDs, order.Uint32(b[4+4*i:]))
	}

	return OID{Include: include, origCount: n, subIDs: subIDs}, nil
}
