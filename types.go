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

import "fmt"

// PDUType identifies an AgentX PDU.
type PDUType byte

const (
	PDUOpen            PDUType = 1
	PDUClose           PDUType = 2
	PDURegister        PDUType = 3
	PDUUnregister      PDUType = 4
	PDUGet             PDUType = 5
	PDUGetNext         PDUType = 6
	PDUGetBulk         PDUType = 7
	PDUTestSet         PDUType = 8
	PDUCommitSet       PDUType = 9
	PDUUndoSet         PDUType = 10
	PDUCleanupSet      PDUType = 11
	PDUNotify          PDUType = 12
	PDUPing            PDUType = 13
	PDUIndexAllocate   PDUType = 14
	PDUIndexDeallocate PDUType = 15
	PDUAddAgentCaps    PDUType = 16
	PDURemoveAgentCaps PDUType = 17
	PDUResponse        PDUType = 18
)

// ParsePDUType converts a wire byte into a PDUType.
func ParsePDUType(b byte) (PDUType, error) {
	if b < 1 || b > 18 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPDUType, b)
	}
	return PDUType(b), nil
}

// String returns the string representation of the PDU type.
func (t PDUType) String() string {
	switch t {
	case PDUOpen:
		return "Open"
	case PDUClose:
		return "Close"
	case PDURegister:
		return "Register"
	case PDUUnregister:
		return "Unregister"
	case PDUGet:
		return "Get"
	case PDUGetNext:
		return "GetNext"
	case PDUGetBulk:
		return "GetBulk"
	case PDUTestSet:
		return "TestSet"
	case PDUCommitSet:
		return "CommitSet"
	case PDUUndoSet:
		return "UndoSet"
	case PDUCleanupSet:
		return "CleanupSet"
	case PDUNotify:
		return "Notify"
	case PDUPing:
		return "Ping"
	case PDUIndexAllocate:
		return "IndexAllocate"
	case PDUIndexDeallocate:
		return "IndexDeallocate"
	case PDUAddAgentCaps:
		return "AddAgentCaps"
	case PDURemoveAgentCaps:
		return "RemoveAgentCaps"
	case PDUResponse:
		return "Response"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(t))
	}
}

// ValueType identifies the syntax of a VarBind value. The numbering follows
// the SNMP object syntaxes that AgentX reuses on the wire.
type ValueType uint16

const (
	TypeInteger          ValueType = 0x02
	TypeOctetString      ValueType = 0x04
	TypeNull             ValueType = 0x05
	TypeObjectIdentifier ValueType = 0x06
	TypeIPAddress        ValueType = 0x40
	TypeCounter32        ValueType = 0x41
	TypeGauge32          ValueType = 0x42
	TypeTimeTicks        ValueType = 0x43
	TypeOpaque           ValueType = 0x44
	TypeCounter64        ValueType = 0x46
	TypeNoSuchObject     ValueType = 0x80
	TypeNoSuchInstance   ValueType = 0x81
	TypeEndOfMibView     ValueType = 0x82
)

// ParseValueType converts a wire tag into a ValueType.
func ParseValueType(v uint16) (ValueType, error) {
	switch t := ValueType(v); t {
	case TypeInteger, TypeOctetString, TypeNull, TypeObjectIdentifier,
		TypeIPAddress, TypeCounter32, TypeGauge32, TypeTimeTicks,
		TypeOpaque, TypeCounter64, TypeNoSuchObject, TypeNoSuchInstance,
		TypeEndOfMibView:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownValueType, v)
	}
}

// String returns the string representation of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeInteger:
		return "Integer"
	case TypeOctetString:
		return "OctetString"
	case TypeNull:
		return "Null"
	case TypeObjectIdentifier:
		return "ObjectIdentifier"
	case TypeIPAddress:
		return "IpAddress"
	case TypeCounter32:
		return "Counter32"
	case TypeGauge32:
		return "Gauge32"
	case TypeTimeTicks:
		return "TimeTicks"
	case TypeOpaque:
		return "Opaque"
	case TypeCounter64:
		return "Counter64"
	case TypeNoSuchObject:
		return "noSuchObject"
	case TypeNoSuchInstance:
		return "noSuchInstance"
	case TypeEndOfMibView:
		return "endOfMibView"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// CloseReason gives the reason a master agent or subagent closed a session.
type CloseReason byte

const (
	ReasonOther         CloseReason = 1
	ReasonParseError    CloseReason = 2
	ReasonProtocolError CloseReason = 3
	ReasonTimeouts      CloseReason = 4
	ReasonShutdown      CloseReason = 5
	ReasonByManager     CloseReason = 6
)

// ParseCloseReason converts a wire byte into a CloseReason.
func ParseCloseReason(b byte) (CloseReason, error) {
	if b < 1 || b > 6 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCloseReason, b)
	}
	return CloseReason(b), nil
}

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case ReasonOther:
		return "reasonOther"
	case ReasonParseError:
		return "reasonParseError"
	case ReasonProtocolError:
		return "reasonProtocolError"
	case ReasonTimeouts:
		return "reasonTimeouts"
	case ReasonShutdown:
		return "reasonShutdown"
	case ReasonByManager:
		return "reasonByManager"
	default:
		return "unknown"
	}
}

// ResponseError is the error status carried by a Response PDU. Values 256
// and above are AgentX-specific; responses to SNMP request processing PDUs
// may additionally carry SNMPv2 error-status values.
type ResponseError uint16

const (
	ErrorNoAgentX              ResponseError = 0
	ErrorOpenFailed            ResponseError = 256
	ErrorNotOpen               ResponseError = 257
	ErrorIndexWrongType        ResponseError = 258
	ErrorIndexAlreadyAllocated ResponseError = 259
	ErrorIndexNoneAvailable    ResponseError = 260
	ErrorIndexNotAllocated     ResponseError = 261
	ErrorUnsupportedContext    ResponseError = 262
	ErrorDuplicateRegistration ResponseError = 263
	ErrorUnknownRegistration   ResponseError = 264
	ErrorUnknownAgentCaps      ResponseError = 265
	ErrorParseError            ResponseError = 266
	ErrorRequestDenied         ResponseError = 267
	ErrorProcessingError       ResponseError = 268
)

// ParseResponseError converts a wire value into a ResponseError.
func ParseResponseError(v uint16) (ResponseError, error) {
	if v != 0 && (v < 256 || v > 268) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownResponseError, v)
	}
	return ResponseError(v), nil
}

// String returns the string representation of the response error.
func (e ResponseError) String() string {
	switch e {
	case ErrorNoAgentX:
		return "noAgentXError"
	case ErrorOpenFailed:
		return "openFailed"
	case ErrorNotOpen:
		return "notOpen"
	case ErrorIndexWrongType:
		return "indexWrongType"
	case ErrorIndexAlreadyAllocated:
		return "indexAlreadyAllocated"
	case ErrorIndexNoneAvailable:
		return "indexNoneAvailable"
	case ErrorIndexNotAllocated:
		return "indexNotAllocated"
	case ErrorUnsupportedContext:
		return "unsupportedContext"
	case ErrorDuplicateRegistration:
		return "duplicateRegistration"
	case ErrorUnknownRegistration:
		return "unknownRegistration"
	case ErrorUnknownAgentCaps:
		return "unknownAgentCaps"
	case ErrorParseError:
		return "parseError"
	case ErrorRequestDenied:
		return "requestDenied"
	case ErrorProcessingError:
		return "processingError"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(e))
	}
}
