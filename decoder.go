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
	"io"
	"log/slog"
)

// Decoder decodes AgentX packets with framing checks, metrics and logging
// layered over DecodePDU. Unlike DecodePDU, which parses whatever buffer it
// is handed, the Decoder honors the payload length declared in the header.
type Decoder struct {
	opts    *CodecOptions
	logger  *slog.Logger
	metrics *Metrics
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...Option) *Decoder {
	options := NewCodecOptions()
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Decoder{
		opts:    options,
		logger:  logger,
		metrics: NewMetrics(),
	}
}

// Decode parses one complete packet from data. The payload length declared
// in the header frames the packet; bytes beyond it are ignored.
func (d *Decoder) Decode(data []byte) (PDU, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, d.decodeFailed(err)
	}

	if d.opts.MaxPayloadLength > 0 && h.PayloadLength > d.opts.MaxPayloadLength {
		return nil, d.decodeFailed(fmt.Errorf("%w: payload of %d bytes exceeds limit of %d",
			ErrPacketTooLarge, h.PayloadLength, d.opts.MaxPayloadLength))
	}

	total := HeaderSize + int(h.PayloadLength)
	if len(data) < total {
		perr := NewParseError(fmt.Sprintf("declared payload of %d bytes, got %d",
			h.PayloadLength, len(data)-HeaderSize), HeaderSize)
		perr.Data = data
		return nil, d.decodeFailed(perr)
	}

	pdu, err := DecodePDU(data[:total])
	if err != nil {
		return nil, d.decodeFailed(err)
	}

	d.metrics.PacketsDecoded.Add(1)
	d.metrics.BytesDecoded.Add(int64(total))
	d.metrics.VarbindsDecoded.Add(int64(varBindCount(pdu)))
	d.metrics.PayloadSizes.Observe(int64(h.PayloadLength))

	d.logger.Debug("decoded packet",
		"type", h.Type,
		"session_id", h.SessionID,
		"packet_id", h.PacketID,
		"payload_length", h.PayloadLength)

	return pdu, nil
}

// ReadPDU reads one framed packet from r. A clean end of stream before any
// header byte is reported as io.EOF; truncation inside a packet is a
// decode error.
func (d *Decoder) ReadPDU(r io.Reader) (PDU, error) {
	hdr := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, d.decodeFailed(fmt.Errorf("%w: truncated header", ErrShortBuffer))
		}
		return nil, err
	}

	h, err := DecodeHeader(hdr)
	if err != nil {
		return nil, d.decodeFailed(err)
	}
	if d.opts.MaxPayloadLength > 0 && h.PayloadLength > d.opts.MaxPayloadLength {
		return nil, d.decodeFailed(fmt.Errorf("%w: payload of %d bytes exceeds limit of %d",
			ErrPacketTooLarge, h.PayloadLength, d.opts.MaxPayloadLength))
	}

	packet := make([]byte, HeaderSize+int(h.PayloadLength))
	copy(packet, hdr)
	if _, err := io.ReadFull(r, packet[HeaderSize:]); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, d.decodeFailed(fmt.Errorf("%w: truncated payload", ErrShortBuffer))
		}
		return nil, err
	}

	return d.Decode(packet)
}

// Metrics returns the decoder metrics.
func (d *Decoder) Metrics() *Metrics {
	return d.metrics
}

// Options returns the decoder options.
func (d *Decoder) Options() *CodecOptions {
	return d.opts
}

func (d *Decoder) decodeFailed(err error) error {
	d.metrics.DecodeErrors.Add(1)
	d.logger.Warn("failed to decode packet", "error", err)
	return err
}

// Encoder encodes AgentX packets with metrics and logging layered over the
// per-PDU Encode methods.
type Encoder struct {
	opts    *CodecOptions
	logger  *slog.Logger
	metrics *Metrics
}

// NewEncoder creates a new Encoder.
func NewEncoder(opts ...Option) *Encoder {
	options := NewCodecOptions()
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Encoder{
		opts:    options,
		logger:  logger,
		metrics: NewMetrics(),
	}
}

// Encode serializes a PDU, applying the encoder's byte order preference.
func (e *Encoder) Encode(p PDU) ([]byte, error) {
	h := p.GetHeader()
	if e.opts.NetworkByteOrder {
		h.Flags |= FlagNetworkByteOrder
	}

	data, err := p.Encode()
	if err != nil {
		e.metrics.EncodeErrors.Add(1)
		e.logger.Warn("failed to encode packet", "type", h.Type, "error", err)
		return nil, err
	}

	e.metrics.PacketsEncoded.Add(1)
	e.metrics.BytesEncoded.Add(int64(len(data)))
	e.metrics.VarbindsEncoded.Add(int64(varBindCount(p)))
	e.metrics.PayloadSizes.Observe(int64(h.PayloadLength))

	e.logger.Debug("encoded packet",
		"type", h.Type,
		"session_id", h.SessionID,
		"packet_id", h.PacketID,
		"payload_length", h.PayloadLength)

	return data, nil
}

// WritePDU encodes p and writes the complete packet to w.
func (e *Encoder) WritePDU(w io.Writer, p PDU) error {
	data, err := e.Encode(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Metrics returns the encoder metrics.
func (e *Encoder) Metrics() *Metrics {
	return e.metrics
}

// Options returns the encoder options.
func (e *Encoder) Options() *CodecOptions {
	return e.opts
}

func varBindCount(p PDU) int {
	switch v := p.(type) {
	case *TestSet:
		return len(v.VarBinds)
	case *Notify:
		return len(v.VarBinds)
	case *IndexAllocate:
		return len(v.VarBinds)
	case *IndexDeallocate:
		return len(v.VarBinds)
	case *Response:
		return len(v.VarBinds)
	default:
		return 0
	}
}
