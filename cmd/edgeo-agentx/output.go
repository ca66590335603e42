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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edgeo/drivers/agentx"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
	FormatRaw   OutputFormat = "raw"
)

// VarBindOutput represents a varbind for output.
type VarBindOutput struct {
	OID   string      `json:"oid"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// PacketOutput represents a decoded packet for output.
type PacketOutput struct {
	Type          string                 `json:"type"`
	SessionID     uint32                 `json:"session_id"`
	TransactionID uint32                 `json:"transaction_id"`
	PacketID      uint32                 `json:"packet_id"`
	ByteOrder     string                 `json:"byte_order"`
	Flags         string                 `json:"flags,omitempty"`
	Context       string                 `json:"context,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
	VarBinds      []VarBindOutput        `json:"varbinds,omitempty"`
}

// Formatter handles output formatting.
type Formatter struct {
	format    OutputFormat
	writer    io.Writer
	csvWriter *csv.Writer
	first     bool
}

// NewFormatter creates a new formatter.
func NewFormatter(format string) *Formatter {
	f := &Formatter{
		format: OutputFormat(format),
		writer: os.Stdout,
		first:  true,
	}
	if f.format == FormatCSV {
		f.csvWriter = csv.NewWriter(os.Stdout)
	}
	return f
}

// FormatPacket formats and prints a decoded packet.
func (f *Formatter) FormatPacket(p agentx.PDU) {
	switch f.format {
	case FormatJSON:
		f.formatJSON(p)
	case FormatCSV:
		f.formatCSV(p)
	case FormatRaw:
		f.formatRaw(p)
	default:
		f.formatTable(p)
	}
}

func (f *Formatter) formatTable(p agentx.PDU) {
	h := p.GetHeader()

	fmt.Fprintln(f.writer)
	fmt.Fprintln(f.writer, colorize("=== "+h.Type.String()+" ===", ColorBold))
	PrintKeyValue("Session", fmt.Sprintf("%d", h.SessionID))
	PrintKeyValue("Transaction", fmt.Sprintf("%d", h.TransactionID))
	PrintKeyValue("Packet", fmt.Sprintf("%d", h.PacketID))
	PrintKeyValue("Byte order", byteOrderName(h))
	if names := flagNames(h.Flags); names != "" {
		PrintKeyValue("Flags", names)
	}
	if ctx := packetContext(p); ctx != "" {
		PrintKeyValue("Context", fmt.Sprintf("%q", ctx))
	}

	printPacketFields(p)

	if vbs := packetVarBinds(p); len(vbs) > 0 {
		fmt.Fprintln(f.writer, colorize("  Varbinds:", ColorBold))
		for _, vb := range vbs {
			fmt.Fprintf(f.writer, "    %s = %s: %s\n",
				colorize(vb.Name.String(), ColorCyan),
				colorize(vb.Type.String(), ColorYellow),
				formatVarBindValue(vb))
		}
	}
}

// printPacketFields prints the type-specific fields of a packet.
func printPacketFields(p agentx.PDU) {
	switch v := p.(type) {
	case *agentx.Open:
		PrintKeyValue("Timeout", v.Timeout.String())
		PrintKeyValue("ID", v.ID.String())
		PrintKeyValue("Description", fmt.Sprintf("%q", string(v.Description)))

	case *agentx.Close:
		PrintKeyValue("Reason", v.Reason.String())

	case *agentx.Register:
		PrintKeyValue("Subtree", v.Subtree.String())
		PrintKeyValue("Priority", fmt.Sprintf("%d", v.Priority))
		if v.Timeout > 0 {
			PrintKeyValue("Timeout", v.Timeout.String())
		}
		if v.RangeSubID != 0 {
			PrintKeyValue("Range sub-id", fmt.Sprintf("%d", v.RangeSubID))
		}
		if v.UpperBound != nil {
			PrintKeyValue("Upper bound", fmt.Sprintf("%d", *v.UpperBound))
		}

	case *agentx.Unregister:
		PrintKeyValue("Subtree", v.Subtree.String())
		PrintKeyValue("Priority", fmt.Sprintf("%d", v.Priority))
		if v.RangeSubID != 0 {
			PrintKeyValue("Range sub-id", fmt.Sprintf("%d", v.RangeSubID))
		}
		if v.UpperBound != nil {
			PrintKeyValue("Upper bound", fmt.Sprintf("%d", *v.UpperBound))
		}

	case *agentx.Get:
		printSearchRanges(v.SearchRanges)

	case *agentx.GetNext:
		printSearchRanges(v.SearchRanges)

	case *agentx.GetBulk:
		PrintKeyValue("Non-repeaters", fmt.Sprintf("%d", v.NonRepeaters))
		PrintKeyValue("Max repetitions", fmt.Sprintf("%d", v.MaxRepetitions))
		printSearchRanges(v.SearchRanges)

	case *agentx.AddAgentCaps:
		PrintKeyValue("ID", v.ID.String())
		PrintKeyValue("Description", fmt.Sprintf("%q", string(v.Description)))

	case *agentx.RemoveAgentCaps:
		PrintKeyValue("ID", v.ID.String())

	case *agentx.Response:
		PrintKeyValue("SysUpTime", fmt.Sprintf("%d (%s)", v.SysUpTime, agentx.TimeTicksToString(v.SysUpTime)))
		PrintKeyValue("Error", v.Error.String())
		PrintKeyValue("Index", fmt.Sprintf("%d", v.Index))
	}
}

func printSearchRanges(ranges agentx.SearchRangeList) {
	for i, r := range ranges {
		PrintKeyValue(fmt.Sprintf("Range %d", i+1), formatSearchRange(r))
	}
}

func (f *Formatter) formatJSON(p agentx.PDU) {
	data, _ := json.Marshal(packetOutput(p))
	fmt.Fprintln(f.writer, string(data))
}

func (f *Formatter) formatCSV(p agentx.PDU) {
	if f.first {
		f.csvWriter.Write([]string{"packet_type", "session", "transaction", "packet", "oid", "type", "value"})
		f.first = false
	}

	h := p.GetHeader()
	prefix := []string{
		h.Type.String(),
		fmt.Sprintf("%d", h.SessionID),
		fmt.Sprintf("%d", h.TransactionID),
		fmt.Sprintf("%d", h.PacketID),
	}

	vbs := packetVarBinds(p)
	if len(vbs) == 0 {
		f.csvWriter.Write(append(prefix, "", "", ""))
	}
	for _, vb := range vbs {
		f.csvWriter.Write(append(prefix, vb.Name.String(), vb.Type.String(), formatVarBindValue(vb)))
	}
	f.csvWriter.Flush()
}

func (f *Formatter) formatRaw(p agentx.PDU) {
	h := p.GetHeader()
	fmt.Fprintf(f.writer, "%s session=%d transaction=%d packet=%d varbinds=%d\n",
		h.Type, h.SessionID, h.TransactionID, h.PacketID, len(packetVarBinds(p)))
}

// packetOutput converts a decoded packet for JSON output.
func packetOutput(p agentx.PDU) PacketOutput {
	h := p.GetHeader()
	out := PacketOutput{
		Type:          h.Type.String(),
		SessionID:     h.SessionID,
		TransactionID: h.TransactionID,
		PacketID:      h.PacketID,
		ByteOrder:     byteOrderName(h),
		Flags:         flagNames(h.Flags),
		Context:       packetContext(p),
		Details:       packetDetails(p),
	}

	for _, vb := range packetVarBinds(p) {
		out.VarBinds = append(out.VarBinds, VarBindOutput{
			OID:   vb.Name.String(),
			Type:  vb.Type.String(),
			Value: convertVarBindValue(vb),
		})
	}

	return out
}

// packetDetails collects the type-specific fields of a packet for JSON output.
func packetDetails(p agentx.PDU) map[string]interface{} {
	d := make(map[string]interface{})

	switch v := p.(type) {
	case *agentx.Open:
		d["timeout"] = v.Timeout.String()
		d["id"] = v.ID.String()
		d["description"] = string(v.Description)

	case *agentx.Close:
		d["reason"] = v.Reason.String()

	case *agentx.Register:
		d["subtree"] = v.Subtree.String()
		d["priority"] = v.Priority
		if v.Timeout > 0 {
			d["timeout"] = v.Timeout.String()
		}
		if v.RangeSubID != 0 {
			d["range_subid"] = v.RangeSubID
		}
		if v.UpperBound != nil {
			d["upper_bound"] = *v.UpperBound
		}

	case *agentx.Unregister:
		d["subtree"] = v.Subtree.String()
		d["priority"] = v.Priority
		if v.RangeSubID != 0 {
			d["range_subid"] = v.RangeSubID
		}
		if v.UpperBound != nil {
			d["upper_bound"] = *v.UpperBound
		}

	case *agentx.Get:
		d["ranges"] = searchRangeStrings(v.SearchRanges)

	case *agentx.GetNext:
		d["ranges"] = searchRangeStrings(v.SearchRanges)

	case *agentx.GetBulk:
		d["non_repeaters"] = v.NonRepeaters
		d["max_repetitions"] = v.MaxRepetitions
		d["ranges"] = searchRangeStrings(v.SearchRanges)

	case *agentx.AddAgentCaps:
		d["id"] = v.ID.String()
		d["description"] = string(v.Description)

	case *agentx.RemoveAgentCaps:
		d["id"] = v.ID.String()

	case *agentx.Response:
		d["sys_uptime"] = v.SysUpTime
		d["error"] = v.Error.String()
		d["index"] = v.Index
	}

	if len(d) == 0 {
		return nil
	}
	return d
}

// packetContext returns the context carried by a packet, or "".
func packetContext(p agentx.PDU) string {
	var ctx *agentx.Context

	switch v := p.(type) {
	case *agentx.Register:
		ctx = v.Context
	case *agentx.Unregister:
		ctx = v.Context
	case *agentx.Get:
		ctx = v.Context
	case *agentx.GetNext:
		ctx = v.Context
	case *agentx.GetBulk:
		ctx = v.Context
	case *agentx.TestSet:
		ctx = v.Context
	case *agentx.Notify:
		ctx = v.Context
	case *agentx.Ping:
		ctx = v.Context
	case *agentx.IndexAllocate:
		ctx = v.Context
	case *agentx.IndexDeallocate:
		ctx = v.Context
	case *agentx.AddAgentCaps:
		ctx = v.Context
	case *agentx.RemoveAgentCaps:
		ctx = v.Context
	}

	if ctx == nil {
		return ""
	}
	return string(*ctx)
}

// packetVarBinds returns the varbind list carried by a packet, or nil.
func packetVarBinds(p agentx.PDU) agentx.VarBindList {
	switch v := p.(type) {
	case *agentx.TestSet:
		return v.VarBinds
	case *agentx.Notify:
		return v.VarBinds
	case *agentx.IndexAllocate:
		return v.VarBinds
	case *agentx.IndexDeallocate:
		return v.VarBinds
	case *agentx.Response:
		return v.VarBinds
	}
	return nil
}

// formatVarBindValue formats a varbind value for display.
func formatVarBindValue(vb agentx.VarBind) string {
	switch vb.Type {
	case agentx.TypeNull:
		return "NULL"

	case agentx.TypeInteger:
		return fmt.Sprintf("%d", vb.Value)

	case agentx.TypeOctetString, agentx.TypeIPAddress, agentx.TypeOpaque:
		s := vb.AsString()
		if isPrintable(s) {
			return fmt.Sprintf("%q", s)
		}
		return formatHex(s)

	case agentx.TypeObjectIdentifier:
		if oid, ok := vb.AsOID(); ok {
			return oid.String()
		}
		return fmt.Sprintf("%v", vb.Value)

	case agentx.TypeCounter32, agentx.TypeGauge32, agentx.TypeCounter64:
		return fmt.Sprintf("%d", vb.Value)

	case agentx.TypeTimeTicks:
		if ticks, ok := vb.Value.(int32); ok {
			return fmt.Sprintf("%d (%s)", ticks, agentx.TimeTicksToString(uint32(ticks)))
		}
		return fmt.Sprintf("%v", vb.Value)

	case agentx.TypeNoSuchObject:
		return "No Such Object"

	case agentx.TypeNoSuchInstance:
		return "No Such Instance"

	case agentx.TypeEndOfMibView:
		return "End of MIB View"

	default:
		return fmt.Sprintf("%v", vb.Value)
	}
}

// convertVarBindValue converts a varbind value for JSON output.
func convertVarBindValue(vb agentx.VarBind) interface{} {
	switch vb.Type {
	case agentx.TypeNull, agentx.TypeNoSuchObject, agentx.TypeNoSuchInstance, agentx.TypeEndOfMibView:
		return nil

	case agentx.TypeOctetString, agentx.TypeIPAddress, agentx.TypeOpaque:
		s := vb.AsString()
		if isPrintable(s) {
			return s
		}
		return formatHex(s)

	case agentx.TypeObjectIdentifier:
		if oid, ok := vb.AsOID(); ok {
			return oid.String()
		}
		return vb.Value

	case agentx.TypeTimeTicks:
		if ticks, ok := vb.Value.(int32); ok {
			return map[string]interface{}{
				"ticks":   ticks,
				"seconds": agentx.TimeTicksToSeconds(uint32(ticks)),
				"human":   agentx.TimeTicksToString(uint32(ticks)),
			}
		}
		return vb.Value

	default:
		return vb.Value
	}
}

// formatSearchRange formats a search range in interval notation. A square
// bracket marks an included starting OID.
func formatSearchRange(r agentx.SearchRange) string {
	open := "("
	if r.Start.Include != 0 {
		open = "["
	}
	if r.End.IsNull() {
		return open + r.Start.String() + ", end)"
	}
	return open + r.Start.String() + ", " + r.End.String() + ")"
}

func searchRangeStrings(ranges agentx.SearchRangeList) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = formatSearchRange(r)
	}
	return out
}

// byteOrderName returns a display name for the byte order a header selects.
func byteOrderName(h *agentx.Header) string {
	if h.HasFlag(agentx.FlagNetworkByteOrder) {
		return "network (big-endian)"
	}
	return "little-endian"
}

// flagNames returns a comma-separated list of set header flags, excluding
// the byte order bit which is reported separately.
func flagNames(flags uint8) string {
	var names []string
	if flags&agentx.FlagInstanceRegistration != 0 {
		names = append(names, "InstanceRegistration")
	}
	if flags&agentx.FlagNewIndex != 0 {
		names = append(names, "NewIndex")
	}
	if flags&agentx.FlagAnyIndex != 0 {
		names = append(names, "AnyIndex")
	}
	if flags&agentx.FlagNonDefaultContext != 0 {
		names = append(names, "NonDefaultContext")
	}
	return strings.Join(names, ", ")
}

// isPrintable checks if a string is printable ASCII.
func isPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] > 126 {
			return false
		}
	}
	return true
}

// formatHex formats a string's bytes as hex.
func formatHex(s string) string {
	var parts []string
	for i := 0; i < len(s); i++ {
		parts = append(parts, fmt.Sprintf("%02X", s[i]))
	}
	return strings.Join(parts, " ")
}

// Color codes for terminal output.
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorGray    = "\033[90m"
	ColorBold    = "\033[1m"
)

// colorize wraps text with color codes.
func colorize(text, color string) string {
	if noColor {
		return text
	}
	return color + text + ColorReset
}

// TableWriter writes formatted tables.
type TableWriter struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTableWriter creates a new table writer.
func NewTableWriter(headers ...string) *TableWriter {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &TableWriter{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table.
func (t *TableWriter) AddRow(values ...string) {
	for i, v := range values {
		if i < len(t.widths) && len(v) > t.widths[i] {
			t.widths[i] = len(v)
		}
	}
	t.rows = append(t.rows, values)
}

// Render renders the table to stdout.
func (t *TableWriter) Render() {
	// Print header
	for i, h := range t.headers {
		fmt.Printf("%-*s  ", t.widths[i], colorize(h, ColorBold))
	}
	fmt.Println()

	// Print separator
	for i := range t.headers {
		fmt.Print(strings.Repeat("-", t.widths[i]) + "  ")
	}
	fmt.Println()

	// Print rows
	for _, row := range t.rows {
		for i, v := range row {
			if i < len(t.widths) {
				fmt.Printf("%-*s  ", t.widths[i], v)
			}
		}
		fmt.Println()
	}
}

// PrintKeyValue prints a key-value pair formatted nicely.
func PrintKeyValue(key, value string) {
	fmt.Printf("  %-20s %s\n", colorize(key+":", ColorCyan), value)
}

// PrintSection prints a section header.
func PrintSection(title string) {
	fmt.Printf("\n%s\n", colorize(title, ColorBold))
	fmt.Println(strings.Repeat("-", len(title)))
}
