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
	"math"
)

// VarBind pairs an object name with a typed value.
//
// The concrete type of Value depends on Type: int32 for Integer and
// TimeTicks, uint32 for Counter32 and Gauge32, uint64 for Counter64,
// OctetString for OctetString, IpAddress and Opaque, OID for
// ObjectIdentifier, and nil for Null, noSuchObject, noSuchInstance and
// endOfMibView.
type VarBind struct {
	Type  ValueType
	Name  OID
	Value interface{}
}

// String returns a human-readable "name = type: value" form.
func (vb *VarBind) String() string {
	return fmt.Sprintf("%s = %s: %s", vb.Name.String(), vb.Type, vb.AsString())
}

// AsInt returns the value as an int64, if it is an integral type.
func (vb *VarBind) AsInt() (int64, bool) {
	switch v := vb.Value.(type) {
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// AsUint returns the value as a uint64, if it is a non-negative integral type.
func (vb *VarBind) AsUint() (uint64, bool) {
	switch v := vb.Value.(type) {
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int32:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// AsString returns the value formatted as a string.
func (vb *VarBind) AsString() string {
	switch v := vb.Value.(type) {
	case nil:
		return ""
	case OctetString:
		return string(v)
	case string:
		return v
	case OID:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AsOID returns the value as an OID, if it is one.
func (vb *VarBind) AsOID() (OID, bool) {
	oid, ok := vb.Value.(OID)
	return oid, ok
}

// ByteSize returns the encoded size in bytes of a well-formed varbind.
func (vb VarBind) ByteSize() int {
	size := 4 + vb.Name.ByteSize()
	switch vb.Type {
	case TypeInteger, TypeCounter32, TypeGauge32, TypeTimeTicks:
		size += 4
	case TypeCounter64:
		size += 8
	case TypeObjectIdentifier:
		if oid, ok := vb.Value.(OID); ok {
			size += oid.ByteSize()
		}
	case TypeOctetString, TypeIPAddress, TypeOpaque:
		switch v := vb.Value.(type) {
		case OctetString:
			size += v.ByteSize()
		case string:
			size += OctetString(v).ByteSize()
		}
	}
	return size
}

// Encode serializes the varbind in the given byte order. A Value whose
// concrete type does not match Type yields an error.
func (vb VarBind) Encode(order binary.ByteOrder) ([]byte, error) {
	var buf bytes.Buffer
	writeUint16(&buf, order, uint16(vb.Type))
	writeUint16(&buf, order, 0) // reserved

	name, err := vb.Name.Encode(order)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	data, err := vb.encodeValue(order)
	if err != nil {
		return nil, err
	}
	buf.Write(data)

	return buf.Bytes(), nil
}

func (vb VarBind) encodeValue(order binary.ByteOrder) ([]byte, error) {
	switch vb.Type {
	case TypeInteger, TypeTimeTicks:
		v, ok := vb.Value.(int32)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires int32, got %T", ErrInvalidValue, vb.Type, vb.Value)
		}
		var buf bytes.Buffer
		writeUint32(&buf, order, uint32(v))
		return buf.Bytes(), nil

	case TypeCounter32, TypeGauge32:
		v, ok := vb.Value.(uint32)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires uint32, got %T", ErrInvalidValue, vb.Type, vb.Value)
		}
		var buf bytes.Buffer
		writeUint32(&buf, order, v)
		return buf.Bytes(), nil

	case TypeCounter64:
		v, ok := vb.Value.(uint64)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires uint64, got %T", ErrInvalidValue, vb.Type, vb.Value)
		}
		var buf bytes.Buffer
		writeUint64(&buf, order, v)
		return buf.Bytes(), nil

	case TypeOctetString, TypeIPAddress, TypeOpaque:
		switch v := vb.Value.(type) {
		case OctetString:
			return v.Encode(order)
		case string:
			return OctetString(v).Encode(order)
		default:
			return nil, fmt.Errorf("%w: %s requires OctetString, got %T", ErrInvalidValue, vb.Type, vb.Value)
		}

	case TypeObjectIdentifier:
		v, ok := vb.Value.(OID)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires OID, got %T", ErrInvalidValue, vb.Type, vb.Value)
		}
		return v.Encode(order)

	case TypeNull, TypeNoSuchObject, TypeNoSuchInstance, TypeEndOfMibView:
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownValueType, uint16(vb.Type))
	}
}

// DecodeVarBind deserializes a varbind from the front of b.
func DecodeVarBind(b []byte, order binary.ByteOrder) (VarBind, error) {
	tag, err := decodeUint16(b, order)
	if err != nil {
		return VarBind{}, err
	}
	typ, err := ParseValueType(tag)
	if err != nil {
		return VarBind{}, err
	}
	b, err = advance(b, 4)
	if err != nil {
		return VarBind{}, err
	}

	name, err := DecodeOID(b, order)
	if err != nil {
		return VarBind{}, err
	}
	b, err = advance(b, name.ByteSize())
	if err != nil {
		return VarBind{}, err
	}

	var value interface{}
	switch typ {
	case TypeInteger, TypeTimeTicks:
		v, err := decodeUint32(b, order)
		if err != nil {
			return VarBind{}, err
		}
		value = int32(v)

	case TypeCounter32, TypeGauge32:
		v, err := decodeUint32(b, order)
		if err != nil {
			return VarBind{}, err
		}
		value = v

	case TypeCounter64:
		v, err := decodeUint64(b, order)
		if err != nil {
			return VarBind{}, err
		}
		value = v

	case TypeOctetString, TypeIPAddress, TypeOpaque:
		v, err := DecodeOctetString(b, order)
		if err != nil {
			return VarBind{}, err
		}
		value = v

	case TypeObjectIdentifier:
		v, err := DecodeOID(b, order)
		if err != nil {
			return VarBind{}, err
		}
		value = v

	case TypeNull, TypeNoSuchObject, TypeNoSuchInstance, TypeEndOfMibView:
		value = nil
	}

	return VarBind{Type: typ, Name: name, Value: value}, nil
}

// VarBindList is a sequence of varbinds.
type VarBindList []VarBind

// ByteSize returns the encoded size in bytes.
func (l VarBindList) ByteSize() int {
	size := 0
	for _, vb := range l {
		size += vb.ByteSize()
	}
	return size
}

// Encode serializes the list in the given byte order.
func (l VarBindList) Encode(order binary.ByteOrder) ([]byte, error) {
	var buf bytes.Buffer
	for _, vb := range l {
		b, err := vb.Encode(order)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// DecodeVarBindList deserializes varbinds until b is exhausted. A trailing
// fragment that does not form a complete varbind is an error.
func DecodeVarBindList(b []byte, order binary.ByteOrder) (VarBindList, error) {
	var list VarBindList
	for len(b) > 0 {
		vb, err := DecodeVarBind(b, order)
		if err != nil {
			return nil, err
		}
		list = append(list, vb)
		b, err = advance(b, vb.ByteSize())
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}
