package agentx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// PDU is implemented by every AgentX packet type.
type PDU interface {
	// Encode serializes the PDU, header included. The byte order is taken
	// from the header flags and PayloadLength is computed during encoding.
	Encode() ([]byte, error)
	// GetHeader returns the PDU's mutable header.
	GetHeader() *Header
}

// encodePDU stamps the payload length into the header and assembles the
// final packet.
func encodePDU(h *Header, payload []byte) ([]byte, error) {
	if err := h.setPayloadLength(len(payload)); err != nil {
		return nil, err
	}
	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, h.encode()...)
	return append(out, payload...), nil
}

// encodePDUContext writes the optional context, if present.
func encodePDUContext(buf *bytes.Buffer, c *Context, order binary.ByteOrder) error {
	if c == nil {
		return nil
	}
	b, err := c.Encode(order)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// decodePDUContext reads the context that precedes the payload when
// FlagNonDefaultContext is set, returning the remaining bytes.
func decodePDUContext(h *Header, b []byte) (*Context, []byte, error) {
	if !h.HasFlag(FlagNonDefaultContext) {
		return nil, b, nil
	}
	c, err := DecodeContext(b, h.ByteOrder())
	if err != nil {
		return nil, nil, err
	}
	b, err = advance(b, c.ByteSize())
	if err != nil {
		return nil, nil, err
	}
	return &c, b, nil
}

// timeoutByte converts a timeout to the one-byte seconds field used on the
// wire. Sub-second precision is discarded.
func timeoutByte(d time.Duration) (uint8, error) {
	secs := int64(d / time.Second)
	if secs < 0 || secs > 255 {
		return 0, fmt.Errorf("%w: timeout %s does not fit one byte of seconds", ErrInvalidValue, d)
	}
	return uint8(secs), nil
}

// Open starts a session with the master agent.
type Open struct {
	Header
	// Timeout is how long the master agent should wait for this subagent
	// before regarding it as not responding, in whole seconds up to 255.
	Timeout time.Duration
	// ID identifies the subagent. It may be the null OID.
	ID OID
	// Description is a display string describing the subagent.
	Description OctetString
}

// NewOpen creates an Open PDU from a subagent identity and description.
func NewOpen(id OID, descr string) *Open {
	return &Open{
		Header:      *NewHeader(PDUOpen),
		ID:          id,
		Description: OctetString(descr),
	}
}

// Encode serializes the PDU.
func (p *Open) Encode() ([]byte, error) {
	order := p.ByteOrder()

	timeout, err := timeoutByte(p.Timeout)
	if err != nil {
		return nil, err
	}

	var payload bytes.Buffer
	payload.Write([]byte{timeout, 0, 0, 0})

	id, err := p.ID.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(id)

	descr, err := p.Description.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(descr)

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeOpen deserializes an Open PDU.
func DecodeOpen(data []byte) (*Open, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()
	b := data[HeaderSize:]

	if len(b) < 4 {
		return nil, ErrShortBuffer
	}
	timeout := time.Duration(b[0]) * time.Second
	b = b[4:]

	id, err := DecodeOID(b, order)
	if err != nil {
		return nil, err
	}
	b, err = advance(b, id.ByteSize())
	if err != nil {
		return nil, err
	}

	descr, err := DecodeOctetString(b, order)
	if err != nil {
		return nil, err
	}

	return &Open{Header: *h, Timeout: timeout, ID: id, Description: descr}, nil
}

// Close ends a session.
type Close struct {
	Header
	// Reason tells the peer why the session is being closed.
	Reason CloseReason
}

// NewClose creates a Close PDU with the given reason.
func NewClose(reason CloseReason) *Close {
	return &Close{Header: *NewHeader(PDUClose), Reason: reason}
}

// Encode serializes the PDU.
func (p *Close) Encode() ([]byte, error) {
	return encodePDU(&p.Header, []byte{byte(p.Reason), 0, 0, 0})
}

// DecodeClose deserializes a Close PDU.
func DecodeClose(data []byte) (*Close, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	b := data[HeaderSize:]

	if len(b) < 1 {
		return nil, ErrShortBuffer
	}
	reason, err := ParseCloseReason(b[0])
	if err != nil {
		return nil, err
	}

	return &Close{Header: *h, Reason: reason}, nil
}

// Register asks the master agent to route requests for a subtree to this
// session. When RangeSubID is not zero the registration covers a range of
// values for that sub-identifier and UpperBound carries the range's upper
// bound.
type Register struct {
	Header
	Context *Context
	// Timeout overrides the session timeout for this subtree, in whole
	// seconds up to 255. Zero means no override.
	Timeout time.Duration
	// Priority orders overlapping registrations from different sessions.
	Priority uint8
	// RangeSubID is the index of the ranged sub-identifier, or zero.
	RangeSubID uint8
	// Subtree is the region of the OID space being registered.
	Subtree OID
	// UpperBound is present on the wire only when RangeSubID is not zero.
	UpperBound *uint32
}

// NewRegister creates a Register PDU for a subtree.
func NewRegister(subtree OID) *Register {
	return &Register{Header: *NewHeader(PDURegister), Subtree: subtree}
}

// Encode serializes the PDU.
func (p *Register) Encode() ([]byte, error) {
	order := p.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, p.Context, order); err != nil {
		return nil, err
	}

	timeout, err := timeoutByte(p.Timeout)
	if err != nil {
		return nil, err
	}
	payload.Write([]byte{timeout, p.Priority, p.RangeSubID, 0})

	subtree, err := p.Subtree.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(subtree)

	if p.UpperBound != nil {
		writeUint32(&payload, order, *p.UpperBound)
	}

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeRegister deserializes a Register PDU.
func DecodeRegister(data []byte) (*Register, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()

	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, err
	}

	if len(b) < 4 {
		return nil, ErrShortBuffer
	}
	timeout := time.Duration(b[0]) * time.Second
	priority, rangeSubID := b[1], b[2]
	b = b[4:]

	subtree, err := DecodeOID(b, order)
	if err != nil {
		return nil, err
	}
	b, err = advance(b, subtree.ByteSize())
	if err != nil {
		return nil, err
	}

	var upperBound *uint32
	if rangeSubID != 0 {
		v, err := decodeUint32(b, order)
		if err != nil {
			return nil, err
		}
		upperBound = &v
	}

	return &Register{
		Header:     *h,
		Context:    ctx,
		Timeout:    timeout,
		Priority:   priority,
		RangeSubID: rangeSubID,
		Subtree:    subtree,
		UpperBound: upperBound,
	}, nil
}

// Unregister withdraws a previous registration.
type Unregister struct {
	Header
	Context *Context
	// Priority at which the region was originally registered.
	Priority uint8
	// RangeSubID is the index of the ranged sub-identifier, or zero.
	RangeSubID uint8
	// Subtree is the region being withdrawn.
	Subtree OID
	// UpperBound is present on the wire only when RangeSubID is not zero.
	UpperBound *uint32
}

// NewUnregister creates an Unregister PDU for a subtree registered at the
// given priority.
func NewUnregister(subtree OID, priority uint8) *Unregister {
	return &Unregister{Header: *NewHeader(PDUUnregister), Priority: priority, Subtree: subtree}
}

// Encode serializes the PDU.
func (p *Unregister) Encode() ([]byte, error) {
	order := p.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, p.Context, order); err != nil {
		return nil, err
	}

	payload.Write([]byte{0, p.Priority, p.RangeSubID, 0})

	subtree, err := p.Subtree.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(subtree)

	if p.UpperBound != nil {
		writeUint32(&payload, order, *p.UpperBound)
	}

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeUnregister deserializes an Unregister PDU.
func DecodeUnregister(data []byte) (*Unregister, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()

	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, err
	}

	if len(b) < 4 {
		return nil, ErrShortBuffer
	}
	priority, rangeSubID := b[1], b[2]
	b = b[4:]

	subtree, err := DecodeOID(b, order)
	if err != nil {
		return nil, err
	}
	b, err = advance(b, subtree.ByteSize())
	if err != nil {
		return nil, err
	}

	var upperBound *uint32
	if rangeSubID != 0 {
		v, err := decodeUint32(b, order)
		if err != nil {
			return nil, err
		}
		upperBound = &v
	}

	return &Unregister{
		Header:     *h,
		Context:    ctx,
		Priority:   priority,
		RangeSubID: rangeSubID,
		Subtree:    subtree,
		UpperBound: upperBound,
	}, nil
}

// decodeSearchPDU handles the shared layout of Get and GetNext.
func decodeSearchPDU(data []byte) (*Header, *Context, SearchRangeList, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, nil, nil, err
	}
	ranges, err := DecodeSearchRangeList(b, h.ByteOrder())
	if err != nil {
		return nil, nil, nil, err
	}
	return h, ctx, ranges, nil
}

// encodeSearchPDU handles the shared layout of Get and GetNext.
func encodeSearchPDU(h *Header, ctx *Context, ranges SearchRangeList) ([]byte, error) {
	order := h.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, ctx, order); err != nil {
		return nil, err
	}
	b, err := ranges.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(b)

	return encodePDU(h, payload.Bytes())
}

// Get requests the values of the named variables.
type Get struct {
	Header
	Context      *Context
	SearchRanges SearchRangeList
}

// NewGet creates a Get PDU from a search range list.
func NewGet(ranges SearchRangeList) *Get {
	return &Get{Header: *NewHeader(PDUGet), SearchRanges: ranges}
}

// Encode serializes the PDU.
func (p *Get) Encode() ([]byte, error) {
	return encodeSearchPDU(&p.Header, p.Context, p.SearchRanges)
}

// DecodeGet deserializes a Get PDU.
func DecodeGet(data []byte) (*Get, error) {
	h, ctx, ranges, err := decodeSearchPDU(data)
	if err != nil {
		return nil, err
	}
	return &Get{Header: *h, Context: ctx, SearchRanges: ranges}, nil
}

// GetNext requests the lexicographic successors of the named variables.
type GetNext struct {
	Header
	Context      *Context
	SearchRanges SearchRangeList
}

// NewGetNext creates a GetNext PDU from a search range list.
func NewGetNext(ranges SearchRangeList) *GetNext {
	return &GetNext{Header: *NewHeader(PDUGetNext), SearchRanges: ranges}
}

// Encode serializes the PDU.
func (p *GetNext) Encode() ([]byte, error) {
	return encodeSearchPDU(&p.Header, p.Context, p.SearchRanges)
}

// DecodeGetNext deserializes a GetNext PDU.
func DecodeGetNext(data []byte) (*GetNext, error) {
	h, ctx, ranges, err := decodeSearchPDU(data)
	if err != nil {
		return nil, err
	}
	return &GetNext{Header: *h, Context: ctx, SearchRanges: ranges}, nil
}

// GetBulk requests a bulk transfer of the named variables and their
// successors.
type GetBulk struct {
	Header
	Context *Context
	// NonRepeaters is the number of leading search ranges that are not
	// repeated.
	NonRepeaters uint16
	// MaxRepetitions caps the repetitions for the repeating ranges.
	MaxRepetitions uint16
	SearchRanges   SearchRangeList
}

// NewGetBulk creates a GetBulk PDU.
func NewGetBulk(nonRepeaters, maxRepetitions uint16, ranges SearchRangeList) *GetBulk {
	return &GetBulk{
		Header:         *NewHeader(PDUGetBulk),
		NonRepeaters:   nonRepeaters,
		MaxRepetitions: maxRepetitions,
		SearchRanges:   ranges,
	}
}

// Encode serializes the PDU.
func (p *GetBulk) Encode() ([]byte, error) {
	order := p.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, p.Context, order); err != nil {
		return nil, err
	}

	writeUint16(&payload, order, p.NonRepeaters)
	writeUint16(&payload, order, p.MaxRepetitions)

	b, err := p.SearchRanges.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(b)

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeGetBulk deserializes a GetBulk PDU.
func DecodeGetBulk(data []byte) (*GetBulk, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()

	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, err
	}

	if len(b) < 4 {
		return nil, ErrShortBuffer
	}
	nonRepeaters := order.Uint16(b)
	maxRepetitions := order.Uint16(b[2:])
	b = b[4:]

	ranges, err := DecodeSearchRangeList(b, order)
	if err != nil {
		return nil, err
	}

	return &GetBulk{
		Header:         *h,
		Context:        ctx,
		NonRepeaters:   nonRepeaters,
		MaxRepetitions: maxRepetitions,
		SearchRanges:   ranges,
	}, nil
}

// decodeVarBindPDU handles the shared layout of TestSet, Notify,
// IndexAllocate and IndexDeallocate.
func decodeVarBindPDU(data []byte) (*Header, *Context, VarBindList, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, nil, nil, err
	}
	vbs, err := DecodeVarBindList(b, h.ByteOrder())
	if err != nil {
		return nil, nil, nil, err
	}
	return h, ctx, vbs, nil
}

// encodeVarBindPDU handles the shared layout of TestSet, Notify,
// IndexAllocate and IndexDeallocate.
func encodeVarBindPDU(h *Header, ctx *Context, vbs VarBindList) ([]byte, error) {
	order := h.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, ctx, order); err != nil {
		return nil, err
	}
	b, err := vbs.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(b)

	return encodePDU(h, payload.Bytes())
}

// TestSet asks the subagent to validate a set operation.
type TestSet struct {
	Header
	Context  *Context
	VarBinds VarBindList
}

// NewTestSet creates a TestSet PDU from a varbind list.
func NewTestSet(vbs VarBindList) *TestSet {
	return &TestSet{Header: *NewHeader(PDUTestSet), VarBinds: vbs}
}

// Encode serializes the PDU.
func (p *TestSet) Encode() ([]byte, error) {
	return encodeVarBindPDU(&p.Header, p.Context, p.VarBinds)
}

// DecodeTestSet deserializes a TestSet PDU.
func DecodeTestSet(data []byte) (*TestSet, error) {
	h, ctx, vbs, err := decodeVarBindPDU(data)
	if err != nil {
		return nil, err
	}
	return &TestSet{Header: *h, Context: ctx, VarBinds: vbs}, nil
}

// CommitSet asks the subagent to commit the set operation accepted during
// TestSet. It carries no payload.
type CommitSet struct {
	Header
}

// NewCommitSet creates a CommitSet PDU.
func NewCommitSet() *CommitSet {
	return &CommitSet{Header: *NewHeader(PDUCommitSet)}
}

// Encode serializes the PDU.
func (p *CommitSet) Encode() ([]byte, error) {
	return encodePDU(&p.Header, nil)
}

// DecodeCommitSet deserializes a CommitSet PDU.
func DecodeCommitSet(data []byte) (*CommitSet, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	return &CommitSet{Header: *h}, nil
}

// UndoSet asks the subagent to roll back the set operation. It carries no
// payload.
type UndoSet struct {
	Header
}

// NewUndoSet creates an UndoSet PDU.
func NewUndoSet() *UndoSet {
	return &UndoSet{Header: *NewHeader(PDUUndoSet)}
}

// Encode serializes the PDU.
func (p *UndoSet) Encode() ([]byte, error) {
	return encodePDU(&p.Header, nil)
}

// DecodeUndoSet deserializes an UndoSet PDU.
func DecodeUndoSet(data []byte) (*UndoSet, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	return &UndoSet{Header: *h}, nil
}

// CleanupSet tells the subagent the set transaction is finished. It
// carries no payload.
type CleanupSet struct {
	Header
}

// NewCleanupSet creates a CleanupSet PDU.
func NewCleanupSet() *CleanupSet {
	return &CleanupSet{Header: *NewHeader(PDUCleanupSet)}
}

// Encode serializes the PDU.
func (p *CleanupSet) Encode() ([]byte, error) {
	return encodePDU(&p.Header, nil)
}

// DecodeCleanupSet deserializes a CleanupSet PDU.
func DecodeCleanupSet(data []byte) (*CleanupSet, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	return &CleanupSet{Header: *h}, nil
}

// Notify forwards a notification to the master agent.
type Notify struct {
	Header
	Context  *Context
	VarBinds VarBindList
}

// NewNotify creates a Notify PDU from a varbind list.
func NewNotify(vbs VarBindList) *Notify {
	return &Notify{Header: *NewHeader(PDUNotify), VarBinds: vbs}
}

// Encode serializes the PDU.
func (p *Notify) Encode() ([]byte, error) {
	return encodeVarBindPDU(&p.Header, p.Context, p.VarBinds)
}

// DecodeNotify deserializes a Notify PDU.
func DecodeNotify(data []byte) (*Notify, error) {
	h, ctx, vbs, err := decodeVarBindPDU(data)
	if err != nil {
		return nil, err
	}
	return &Notify{Header: *h, Context: ctx, VarBinds: vbs}, nil
}

// Ping checks that the peer is still responding.
type Ping struct {
	Header
	Context *Context
}

// NewPing creates a Ping PDU.
func NewPing() *Ping {
	return &Ping{Header: *NewHeader(PDUPing)}
}

// Encode serializes the PDU.
func (p *Ping) Encode() ([]byte, error) {
	var payload bytes.Buffer
	if err := encodePDUContext(&payload, p.Context, p.ByteOrder()); err != nil {
		return nil, err
	}
	return encodePDU(&p.Header, payload.Bytes())
}

// DecodePing deserializes a Ping PDU.
func DecodePing(data []byte) (*Ping, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	ctx, _, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, err
	}
	return &Ping{Header: *h, Context: ctx}, nil
}

// IndexAllocate requests allocation of index values.
type IndexAllocate struct {
	Header
	Context  *Context
	VarBinds VarBindList
}

// NewIndexAllocate creates an IndexAllocate PDU from a varbind list.
func NewIndexAllocate(vbs VarBindList) *IndexAllocate {
	return &IndexAllocate{Header: *NewHeader(PDUIndexAllocate), VarBinds: vbs}
}

// Encode serializes the PDU.
func (p *IndexAllocate) Encode() ([]byte, error) {
	return encodeVarBindPDU(&p.Header, p.Context, p.VarBinds)
}

// DecodeIndexAllocate deserializes an IndexAllocate PDU.
func DecodeIndexAllocate(data []byte) (*IndexAllocate, error) {
	h, ctx, vbs, err := decodeVarBindPDU(data)
	if err != nil {
		return nil, err
	}
	return &IndexAllocate{Header: *h, Context: ctx, VarBinds: vbs}, nil
}

// IndexDeallocate releases previously allocated index values.
type IndexDeallocate struct {
	Header
	Context  *Context
	VarBinds VarBindList
}

// NewIndexDeallocate creates an IndexDeallocate PDU from a varbind list.
func NewIndexDeallocate(vbs VarBindList) *IndexDeallocate {
	return &IndexDeallocate{Header: *NewHeader(PDUIndexDeallocate), VarBinds: vbs}
}

// Encode serializes the PDU.
func (p *IndexDeallocate) Encode() ([]byte, error) {
	return encodeVarBindPDU(&p.Header, p.Context, p.VarBinds)
}

// DecodeIndexDeallocate deserializes an IndexDeallocate PDU.
func DecodeIndexDeallocate(data []byte) (*IndexDeallocate, error) {
	h, ctx, vbs, err := decodeVarBindPDU(data)
	if err != nil {
		return nil, err
	}
	return &IndexDeallocate{Header: *h, Context: ctx, VarBinds: vbs}, nil
}

// AddAgentCaps advertises a capability of the subagent.
type AddAgentCaps struct {
	Header
	Context *Context
	// ID is the value of an invocation of the AGENT-CAPABILITIES macro.
	ID OID
	// Description is the matching sysORDescr value.
	Description OctetString
}

// NewAddAgentCaps creates an AddAgentCaps PDU from an OID and description.
func NewAddAgentCaps(id OID, descr string) *AddAgentCaps {
	return &AddAgentCaps{
		Header:      *NewHeader(PDUAddAgentCaps),
		ID:          id,
		Description: OctetString(descr),
	}
}

// Encode serializes the PDU.
func (p *AddAgentCaps) Encode() ([]byte, error) {
	order := p.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, p.Context, order); err != nil {
		return nil, err
	}

	id, err := p.ID.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(id)

	descr, err := p.Description.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(descr)

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeAddAgentCaps deserializes an AddAgentCaps PDU.
func DecodeAddAgentCaps(data []byte) (*AddAgentCaps, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()

	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, err
	}

	id, err := DecodeOID(b, order)
	if err != nil {
		return nil, err
	}
	b, err = advance(b, id.ByteSize())
	if err != nil {
		return nil, err
	}

	descr, err := DecodeOctetString(b, order)
	if err != nil {
		return nil, err
	}

	return &AddAgentCaps{Header: *h, Context: ctx, ID: id, Description: descr}, nil
}

// RemoveAgentCaps withdraws a previously advertised capability.
type RemoveAgentCaps struct {
	Header
	Context *Context
	// ID is the sysORID value that should no longer be exported.
	ID OID
}

// NewRemoveAgentCaps creates a RemoveAgentCaps PDU from an OID.
func NewRemoveAgentCaps(id OID) *RemoveAgentCaps {
	return &RemoveAgentCaps{Header: *NewHeader(PDURemoveAgentCaps), ID: id}
}

// Encode serializes the PDU.
func (p *RemoveAgentCaps) Encode() ([]byte, error) {
	order := p.ByteOrder()
	var payload bytes.Buffer

	if err := encodePDUContext(&payload, p.Context, order); err != nil {
		return nil, err
	}

	id, err := p.ID.Encode(order)
	if err != nil {
		return nil, err
	}
	payload.Write(id)

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeRemoveAgentCaps deserializes a RemoveAgentCaps PDU.
func DecodeRemoveAgentCaps(data []byte) (*RemoveAgentCaps, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()

	ctx, b, err := decodePDUContext(h, data[HeaderSize:])
	if err != nil {
		return nil, err
	}

	id, err := DecodeOID(b, order)
	if err != nil {
		return nil, err
	}

	return &RemoveAgentCaps{Header: *h, Context: ctx, ID: id}, nil
}

// Response answers any other PDU.
type Response struct {
	Header
	// SysUpTime is only relevant when sent by the master agent, in
	// hundredths of a second.
	SysUpTime uint32
	// Error is the result status of the request being answered.
	Error ResponseError
	// Index is the one-based position of the varbind an error refers to.
	Index uint16
	// VarBinds is present or absent depending on the element of procedure.
	// A nil list encodes as absent.
	VarBinds VarBindList
}

// NewResponse creates an empty Response PDU.
func NewResponse() *Response {
	return &Response{Header: *NewHeader(PDUResponse)}
}

// ResponseFromHeader creates a Response whose session, transaction and
// packet IDs are copied from the header of the PDU being answered.
func ResponseFromHeader(h *Header) *Response {
	resp := NewResponse()
	resp.SessionID = h.SessionID
	resp.TransactionID = h.TransactionID
	resp.PacketID = h.PacketID
	return resp
}

// Encode serializes the PDU.
func (p *Response) Encode() ([]byte, error) {
	order := p.ByteOrder()
	var payload bytes.Buffer

	writeUint32(&payload, order, p.SysUpTime)
	writeUint16(&payload, order, uint16(p.Error))
	writeUint16(&payload, order, p.Index)

	if len(p.VarBinds) > 0 {
		b, err := p.VarBinds.Encode(order)
		if err != nil {
			return nil, err
		}
		payload.Write(b)
	}

	return encodePDU(&p.Header, payload.Bytes())
}

// DecodeResponse deserializes a Response PDU. A payload that ends after
// the error index yields a nil varbind list.
func DecodeResponse(data []byte) (*Response, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()
	b := data[HeaderSize:]

	uptime, err := decodeUint32(b, order)
	if err != nil {
		return nil, err
	}
	b = b[4:]

	code, err := decodeUint16(b, order)
	if err != nil {
		return nil, err
	}
	resErr, err := ParseResponseError(code)
	if err != nil {
		return nil, err
	}
	b = b[2:]

	index, err := decodeUint16(b, order)
	if err != nil {
		return nil, err
	}
	b = b[2:]

	vbs, err := DecodeVarBindList(b, order)
	if err != nil {
		return nil, err
	}

	return &Response{Header: *h, SysUpTime: uptime, Error: resErr, Index: index, VarBinds: vbs}, nil
}

// DecodePDU decodes a complete packet into its concrete PDU type.
func DecodePDU(data []byte) (PDU, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	switch h.Type {
	case PDUOpen:
		return DecodeOpen(data)
	case PDUClose:
		return DecodeClose(data)
	case PDURegister:
		return DecodeRegister(data)
	case PDUUnregister:
		return DecodeUnregister(data)
	case PDUGet:
		return DecodeGet(data)
	case PDUGetNext:
		return DecodeGetNext(data)
	case PDUGetBulk:
		return DecodeGetBulk(data)
	case PDUTestSet:
		return DecodeTestSet(data)
	case PDUCommitSet:
		return DecodeCommitSet(data)
	case PDUUndoSet:
		return DecodeUndoSet(data)
	case PDUCleanupSet:
		return DecodeCleanupSet(data)
	case PDUNotify:
		return DecodeNotify(data)
	case PDUPing:
		return DecodePing(data)
	case PDUIndexAllocate:
		return DecodeIndexAllocate(data)
	case PDUIndexDeallocate:
		return DecodeIndexDeallocate(data)
	case PDUAddAgentCaps:
		return DecodeAddAgentCaps(data)
	case PDURemoveAgentCaps:
		return DecodeRemoveAgentCaps(data)
	case PDUResponse:
		return DecodeResponse(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPDUType, byte(h.Type))
	}
}
