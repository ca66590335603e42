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

package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgeo/drivers/agentx"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Craft AgentX packets",
	Long: `Craft AgentX packets and write them to stdout.

The output is a framed binary packet, or hex text with --hex. Header
fields shared by every packet type are set with the persistent flags
--session, --transaction, and --packet.

Varbind arguments are given as OID TYPE VALUE triples.

Type specifiers:
  i   - Integer
  u   - Gauge32
  c   - Counter32
  c64 - Counter64
  s   - Octet String (text)
  x   - Octet String (hex bytes, e.g. "DE AD BE EF")
  n   - Null
  o   - Object Identifier
  t   - TimeTicks
  a   - IP Address

Examples:
  # Open a session
  edgeo-agentx encode open --id 1.3.6.1.4.1.8072.3.3 --descr "test agent" --hex

  # Register a subtree at priority 64
  edgeo-agentx encode register --session 7 --priority 64 1.3.6.1.4.1.8072 --hex

  # Send a notification
  edgeo-agentx encode notify 1.3.6.1.6.3.1.1.4.1.0 o 1.3.6.1.6.3.1.1.5.1 --hex

  # Answer a request in network byte order
  edgeo-agentx encode response --session 7 --error noAgentXError \
    1.3.6.1.2.1.1.3.0 t 4321 --network-byte-order --hex`,
}

var (
	// Header flags shared by all encode subcommands
	sessionID     uint32
	transactionID uint32
	packetID      uint32
	contextName   string
	networkOrder  bool
	hexOutput     bool

	// Open flags
	openID      string
	openDescr   string
	openTimeout time.Duration

	// Register / Unregister flags
	regPriority   uint8
	regTimeout    time.Duration
	regRangeSubID uint8
	regUpperBound uint32
	regInstance   bool

	// GetBulk flags
	bulkNonRepeaters   uint16
	bulkMaxRepetitions uint16

	// Response flags
	respError  string
	respIndex  uint16
	respUptime uint32
)

var encodeOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Craft an Open packet",
	Long: `Craft an Open packet that starts a subagent session.

Examples:
  # Open with an identity and description
  edgeo-agentx encode open --id 1.3.6.1.4.1.8072.3.3 --descr "test agent" --hex

  # Open with a 30 second session timeout
  edgeo-agentx encode open --timeout 30s --hex`,
	Args: cobra.NoArgs,
	RunE: runEncodeOpen,
}

var encodeCloseCmd = &cobra.Command{
	Use:   "close [REASON]",
	Short: "Craft a Close packet",
	Long: `Craft a Close packet.

The reason is a name (other, parseError, protocolError, timeouts,
shutdown, byManager) or its numeric code 1-6. The default is shutdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncodeClose,
}

var encodePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Craft a Ping packet",
	Args:  cobra.NoArgs,
	RunE:  runEncodePing,
}

var encodeRegisterCmd = &cobra.Command{
	Use:   "register SUBTREE",
	Short: "Craft a Register packet",
	Long: `Craft a Register packet that claims a subtree of the OID space.

Examples:
  # Register a subtree at the default priority
  edgeo-agentx encode register --session 7 1.3.6.1.4.1.8072 --hex

  # Register a row range: index 11 ranges up to 2047
  edgeo-agentx encode register --range-subid 11 --upper-bound 2047 \
    1.3.6.1.2.1.2.2.1.1.1 --hex`,
	Args: cobra.ExactArgs(1),
	RunE: runEncodeRegister,
}

var encodeUnregisterCmd = &cobra.Command{
	Use:   "unregister SUBTREE",
	Short: "Craft an Unregister packet",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncodeUnregister,
}

var encodeGetCmd = &cobra.Command{
	Use:   "get OID [OID...]",
	Short: "Craft a Get packet",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncodeGet,
}

var encodeGetNextCmd = &cobra.Command{
	Use:   "getnext OID [OID...]",
	Short: "Craft a GetNext packet",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncodeGetNext,
}

var encodeGetBulkCmd = &cobra.Command{
	Use:   "getbulk OID [OID...]",
	Short: "Craft a GetBulk packet",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncodeGetBulk,
}

var encodeNotifyCmd = &cobra.Command{
	Use:   "notify OID TYPE VALUE [OID TYPE VALUE...]",
	Short: "Craft a Notify packet",
	Long: `Craft a Notify packet carrying notification varbinds.

Examples:
  # A linkDown trap with the affected interface index
  edgeo-agentx encode notify \
    1.3.6.1.6.3.1.1.4.1.0 o 1.3.6.1.6.3.1.1.5.3 \
    1.3.6.1.2.1.2.2.1.1.2 i 2 --hex`,
	Args: varBindTripleArgs(1),
	RunE: runEncodeNotify,
}

var encodeResponseCmd = &cobra.Command{
	Use:   "response [OID TYPE VALUE...]",
	Short: "Craft a Response packet",
	Long: `Craft a Response packet, optionally carrying result varbinds.

Examples:
  # A successful response with one result
  edgeo-agentx encode response --session 7 1.3.6.1.2.1.1.3.0 t 4321 --hex

  # A failure pointing at the second varbind of the request
  edgeo-agentx encode response --error processingError --index 2 --hex`,
	Args: varBindTripleArgs(0),
	RunE: runEncodeResponse,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.AddCommand(encodeOpenCmd)
	encodeCmd.AddCommand(encodeCloseCmd)
	encodeCmd.AddCommand(encodePingCmd)
	encodeCmd.AddCommand(encodeRegisterCmd)
	encodeCmd.AddCommand(encodeUnregisterCmd)
	encodeCmd.AddCommand(encodeGetCmd)
	encodeCmd.AddCommand(encodeGetNextCmd)
	encodeCmd.AddCommand(encodeGetBulkCmd)
	encodeCmd.AddCommand(encodeNotifyCmd)
	encodeCmd.AddCommand(encodeResponseCmd)

	// Header flags
	encodeCmd.PersistentFlags().Uint32Var(&sessionID, "session", 0, "session ID")
	encodeCmd.PersistentFlags().Uint32Var(&transactionID, "transaction", 0, "transaction ID")
	encodeCmd.PersistentFlags().Uint32Var(&packetID, "packet", 0, "packet ID")
	encodeCmd.PersistentFlags().StringVarP(&contextName, "context", "n", "", "non-default context name")
	encodeCmd.PersistentFlags().BoolVar(&networkOrder, "network-byte-order", false, "encode in network byte order")
	encodeCmd.PersistentFlags().BoolVar(&hexOutput, "hex", false, "write hex text instead of raw bytes")

	encodeOpenCmd.Flags().StringVar(&openID, "id", "", "subagent identity OID")
	encodeOpenCmd.Flags().StringVar(&openDescr, "descr", "", "subagent description")
	encodeOpenCmd.Flags().DurationVar(&openTimeout, "timeout", 0, "session timeout (whole seconds, up to 255s)")

	encodeRegisterCmd.Flags().Uint8Var(&regPriority, "priority", 127, "registration priority")
	encodeRegisterCmd.Flags().DurationVar(&regTimeout, "timeout", 0, "subtree timeout override")
	encodeRegisterCmd.Flags().Uint8Var(&regRangeSubID, "range-subid", 0, "index of the ranged sub-identifier")
	encodeRegisterCmd.Flags().Uint32Var(&regUpperBound, "upper-bound", 0, "upper bound of the ranged sub-identifier")
	encodeRegisterCmd.Flags().BoolVar(&regInstance, "instance", false, "register a fully-qualified instance")

	encodeUnregisterCmd.Flags().Uint8Var(&regPriority, "priority", 127, "priority of the original registration")
	encodeUnregisterCmd.Flags().Uint8Var(&regRangeSubID, "range-subid", 0, "index of the ranged sub-identifier")
	encodeUnregisterCmd.Flags().Uint32Var(&regUpperBound, "upper-bound", 0, "upper bound of the ranged sub-identifier")

	encodeGetBulkCmd.Flags().Uint16Var(&bulkNonRepeaters, "non-repeaters", 0, "non-repeaters value")
	encodeGetBulkCmd.Flags().Uint16Var(&bulkMaxRepetitions, "max-repetitions", 10, "max-repetitions value")

	encodeResponseCmd.Flags().StringVar(&respError, "error", "noAgentXError", "response error (name or numeric code)")
	encodeResponseCmd.Flags().Uint16Var(&respIndex, "index", 0, "one-based index of the failed varbind")
	encodeResponseCmd.Flags().Uint32Var(&respUptime, "sys-uptime", 0, "sysUpTime in hundredths of a second")
}

// varBindTripleArgs validates that arguments form OID TYPE VALUE triples.
func varBindTripleArgs(minTriples int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minTriples*3 {
			return fmt.Errorf("requires at least %d arguments: OID TYPE VALUE", minTriples*3)
		}
		if len(args)%3 != 0 {
			return fmt.Errorf("arguments must be in groups of 3: OID TYPE VALUE")
		}
		return nil
	}
}

// applyHeader stamps the shared header flags onto a crafted packet.
func applyHeader(p agentx.PDU) {
	h := p.GetHeader()
	h.SessionID = sessionID
	h.TransactionID = transactionID
	h.PacketID = packetID
}

// applyContext attaches the non-default context, if one was given, and sets
// the matching header flag so the packet decodes back symmetrically.
func applyContext(p agentx.PDU, dst **agentx.Context) {
	if contextName == "" {
		return
	}
	ctx := agentx.Context(contextName)
	*dst = &ctx
	p.GetHeader().Flags |= agentx.FlagNonDefaultContext
}

// emit encodes a crafted packet and writes it to stdout.
func emit(p agentx.PDU) error {
	enc := newEncoder()

	data, err := enc.Encode(p)
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	printVerbose("Encoded %s packet, %d bytes", p.GetHeader().Type, len(data))
	return writePacket(data)
}

func runEncodeOpen(cmd *cobra.Command, args []string) error {
	id, err := agentx.ParseOID(openID)
	if err != nil {
		return fmt.Errorf("invalid OID '%s': %w", openID, err)
	}

	p := agentx.NewOpen(id, openDescr)
	p.Timeout = openTimeout
	applyHeader(p)
	return emit(p)
}

func runEncodeClose(cmd *cobra.Command, args []string) error {
	reason := agentx.ReasonShutdown
	if len(args) == 1 {
		var err error
		reason, err = parseCloseReasonArg(args[0])
		if err != nil {
			return err
		}
	}

	p := agentx.NewClose(reason)
	applyHeader(p)
	return emit(p)
}

func runEncodePing(cmd *cobra.Command, args []string) error {
	p := agentx.NewPing()
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeRegister(cmd *cobra.Command, args []string) error {
	subtree, err := agentx.ParseOID(args[0])
	if err != nil {
		return fmt.Errorf("invalid OID '%s': %w", args[0], err)
	}

	p := agentx.NewRegister(subtree)
	p.Priority = regPriority
	p.Timeout = regTimeout
	if regRangeSubID != 0 {
		p.RangeSubID = regRangeSubID
		bound := regUpperBound
		p.UpperBound = &bound
	}
	if regInstance {
		p.Flags |= agentx.FlagInstanceRegistration
	}
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeUnregister(cmd *cobra.Command, args []string) error {
	subtree, err := agentx.ParseOID(args[0])
	if err != nil {
		return fmt.Errorf("invalid OID '%s': %w", args[0], err)
	}

	p := agentx.NewUnregister(subtree, regPriority)
	if regRangeSubID != 0 {
		p.RangeSubID = regRangeSubID
		bound := regUpperBound
		p.UpperBound = &bound
	}
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeGet(cmd *cobra.Command, args []string) error {
	ranges, err := parseSearchRanges(args, 1)
	if err != nil {
		return err
	}

	p := agentx.NewGet(ranges)
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeGetNext(cmd *cobra.Command, args []string) error {
	ranges, err := parseSearchRanges(args, 0)
	if err != nil {
		return err
	}

	p := agentx.NewGetNext(ranges)
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeGetBulk(cmd *cobra.Command, args []string) error {
	ranges, err := parseSearchRanges(args, 0)
	if err != nil {
		return err
	}

	p := agentx.NewGetBulk(bulkNonRepeaters, bulkMaxRepetitions, ranges)
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeNotify(cmd *cobra.Command, args []string) error {
	vbs, err := parseVarBindArgs(args)
	if err != nil {
		return err
	}

	p := agentx.NewNotify(vbs)
	applyHeader(p)
	applyContext(p, &p.Context)
	return emit(p)
}

func runEncodeResponse(cmd *cobra.Command, args []string) error {
	respErr, err := parseResponseErrorArg(respError)
	if err != nil {
		return err
	}

	vbs, err := parseVarBindArgs(args)
	if err != nil {
		return err
	}

	p := agentx.NewResponse()
	p.SysUpTime = respUptime
	p.Error = respErr
	p.Index = respIndex
	p.VarBinds = vbs
	applyHeader(p)
	return emit(p)
}

// parseSearchRanges turns OID arguments into open-ended search ranges. The
// include flag marks whether each starting OID itself is in range.
func parseSearchRanges(args []string, include uint8) (agentx.SearchRangeList, error) {
	oids, err := parseOIDs(args)
	if err != nil {
		return nil, err
	}

	ranges := make(agentx.SearchRangeList, len(oids))
	for i, oid := range oids {
		oid.Include = include
		ranges[i] = agentx.SearchRange{Start: oid}
	}
	return ranges, nil
}

// parseVarBindArgs parses OID TYPE VALUE triples into a varbind list.
func parseVarBindArgs(args []string) (agentx.VarBindList, error) {
	var vbs agentx.VarBindList

	for i := 0; i < len(args); i += 3 {
		name, err := agentx.ParseOID(args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid OID '%s': %w", args[i], err)
		}

		vb, err := parseVarBindValue(name, strings.ToLower(args[i+1]), args[i+2])
		if err != nil {
			return nil, fmt.Errorf("invalid value for OID %s: %w", name, err)
		}

		vbs = append(vbs, vb)
	}

	return vbs, nil
}

func parseVarBindValue(name agentx.OID, typeSpec, valueStr string) (agentx.VarBind, error) {
	vb := agentx.VarBind{Name: name}

	switch typeSpec {
	case "i": // Integer
		val, err := strconv.ParseInt(valueStr, 10, 32)
		if err != nil {
			return vb, fmt.Errorf("invalid integer: %w", err)
		}
		vb.Type = agentx.TypeInteger
		vb.Value = int32(val)

	case "u": // Gauge32
		val, err := strconv.ParseUint(valueStr, 10, 32)
		if err != nil {
			return vb, fmt.Errorf("invalid unsigned integer: %w", err)
		}
		vb.Type = agentx.TypeGauge32
		vb.Value = uint32(val)

	case "c": // Counter32
		val, err := strconv.ParseUint(valueStr, 10, 32)
		if err != nil {
			return vb, fmt.Errorf("invalid counter: %w", err)
		}
		vb.Type = agentx.TypeCounter32
		vb.Value = uint32(val)

	case "c64": // Counter64
		val, err := strconv.ParseUint(valueStr, 10, 64)
		if err != nil {
			return vb, fmt.Errorf("invalid counter: %w", err)
		}
		vb.Type = agentx.TypeCounter64
		vb.Value = val

	case "s": // Octet String (text)
		vb.Type = agentx.TypeOctetString
		vb.Value = agentx.OctetString(valueStr)

	case "x": // Octet String (hex)
		raw, err := decodeHexText([]byte(valueStr))
		if err != nil {
			return vb, err
		}
		vb.Type = agentx.TypeOctetString
		vb.Value = agentx.OctetString(raw)

	case "n": // Null
		vb.Type = agentx.TypeNull
		vb.Value = nil

	case "o": // Object Identifier
		oidVal, err := agentx.ParseOID(valueStr)
		if err != nil {
			return vb, fmt.Errorf("invalid OID value: %w", err)
		}
		vb.Type = agentx.TypeObjectIdentifier
		vb.Value = oidVal

	case "t": // TimeTicks
		val, err := strconv.ParseUint(valueStr, 10, 32)
		if err != nil {
			return vb, fmt.Errorf("invalid timeticks: %w", err)
		}
		vb.Type = agentx.TypeTimeTicks
		vb.Value = int32(val)

	case "a": // IP Address
		ip := net.ParseIP(valueStr)
		if ip == nil {
			return vb, fmt.Errorf("invalid IP address: %s", valueStr)
		}
		ip4 := ip.To4()
		if ip4 == nil {
			return vb, fmt.Errorf("not an IPv4 address: %s", valueStr)
		}
		vb.Type = agentx.TypeIPAddress
		vb.Value = agentx.OctetString(ip4)

	default:
		return vb, fmt.Errorf("unknown type specifier: %s (use i, u, c, c64, s, x, n, o, t, or a)", typeSpec)
	}

	return vb, nil
}

func parseCloseReasonArg(s string) (agentx.CloseReason, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return agentx.ParseCloseReason(byte(n))
	}

	switch strings.ToLower(s) {
	case "other":
		return agentx.ReasonOther, nil
	case "parseerror", "parse-error":
		return agentx.ReasonParseError, nil
	case "protocolerror", "protocol-error":
		return agentx.ReasonProtocolError, nil
	case "timeouts":
		return agentx.ReasonTimeouts, nil
	case "shutdown":
		return agentx.ReasonShutdown, nil
	case "bymanager", "by-manager":
		return agentx.ReasonByManager, nil
	default:
		return 0, fmt.Errorf("unknown close reason: %s", s)
	}
}

func parseResponseErrorArg(s string) (agentx.ResponseError, error) {
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return agentx.ParseResponseError(uint16(n))
	}

	switch strings.ToLower(s) {
	case "noagentxerror":
		return agentx.ErrorNoAgentX, nil
	case "openfailed":
		return agentx.ErrorOpenFailed, nil
	case "notopen":
		return agentx.ErrorNotOpen, nil
	case "indexwrongtype":
		return agentx.ErrorIndexWrongType, nil
	case "indexalreadyallocated":
		return agentx.ErrorIndexAlreadyAllocated, nil
	case "indexnoneavailable":
		return agentx.ErrorIndexNoneAvailable, nil
	case "indexnotallocated":
		return agentx.ErrorIndexNotAllocated, nil
	case "unsupportedcontext":
		return agentx.ErrorUnsupportedContext, nil
	case "duplicateregistration":
		return agentx.ErrorDuplicateRegistration, nil
	case "unknownregistration":
		return agentx.ErrorUnknownRegistration, nil
	case "unknownagentcaps":
		return agentx.ErrorUnknownAgentCaps, nil
	case "parseerror":
		return agentx.ErrorParseError, nil
	case "requestdenied":
		return agentx.ErrorRequestDenied, nil
	case "processingerror":
		return agentx.ErrorProcessingError, nil
	default:
		return 0, fmt.Errorf("unknown response error: %s", s)
	}
}
