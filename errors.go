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
	"errors"
	"fmt"
)

// ErrInvalidData is the root error for every malformed or unrepresentable
// packet condition. All other errors produced by encoding or decoding wrap
// it, so errors.Is(err, ErrInvalidData) holds for any codec failure.
var ErrInvalidData = errors.New("agentx: invalid data")

// Refinements of ErrInvalidData.
var (
	ErrShortBuffer          = fmt.Errorf("%w: short buffer", ErrInvalidData)
	ErrInvalidOID           = fmt.Errorf("%w: invalid OID", ErrInvalidData)
	ErrInvalidOctetString   = fmt.Errorf("%w: invalid octet string", ErrInvalidData)
	ErrInvalidValue         = fmt.Errorf("%w: invalid value", ErrInvalidData)
	ErrUnknownPDUType       = fmt.Errorf("%w: unknown PDU type", ErrInvalidData)
	ErrUnknownValueType     = fmt.Errorf("%w: unknown value type", ErrInvalidData)
	ErrUnknownCloseReason   = fmt.Errorf("%w: unknown close reason", ErrInvalidData)
	ErrUnknownResponseError = fmt.Errorf("%w: unknown response error", ErrInvalidData)
	ErrPacketTooLarge       = fmt.Errorf("%w: packet too large", ErrInvalidData)
)

// ParseError represents a packet parsing error.
type ParseError struct {
	Message string
	Offset  int
	Data    []byte
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("agentx: parse error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("agentx: parse error: %s", e.Message)
}

// Unwrap reports every parse error as invalid data.
func (e *ParseError) Unwrap() error {
	return ErrInvalidData
}

// NewParseError creates a new parse error.
func NewParseError(message string, offset int) *ParseError {
	return &ParseError{
		Message: message,
		Offset:  offset,
	}
}

// IsInvalidData returns true if the error stems from malformed packet data.
func IsInvalidData(err error) bool {
	return errors.Is(err, ErrInvalidData)
}

// IsShortBuffer returns true if the error indicates truncated input.
func IsShortBuffer(err error) bool {
	return errors.Is(err, ErrShortBuffer)
}

// IsUnknownPDUType returns true if the error indicates an unrecognized PDU type byte.
func IsUnknownPDUType(err error) bool {
	return errors.Is(err, ErrUnknownPDUType)
}
