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

	"github.com/spf13/cobra"

	"github.com/edgeo/drivers/agentx"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print protocol reference tables",
	Long: `Print the AgentX wire-format reference tables.

Shows the header layout, the PDU types, the varbind value types, the
close reasons, and the response error codes, with the numeric values
used on the wire.

Examples:
  # Show all reference tables
  edgeo-agentx info`,
	Run: func(cmd *cobra.Command, args []string) {
		printProtocolInfo()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printProtocolInfo() {
	fmt.Println()
	fmt.Println(colorize("AgentX Protocol Reference", ColorBold))
	fmt.Println(colorize("=========================", ColorBold))
	PrintKeyValue("Protocol", agentx.ProtocolName)
	PrintKeyValue("Version", fmt.Sprintf("%d", agentx.ProtocolVersion))
	PrintKeyValue("Header size", fmt.Sprintf("%d bytes", agentx.HeaderSize))
	PrintKeyValue("Default max payload", formatBytes(agentx.DefaultMaxPayloadLength))

	PrintSection("Header Layout")
	layout := NewTableWriter("Offset", "Size", "Field")
	layout.AddRow("0", "1", "version")
	layout.AddRow("1", "1", "type")
	layout.AddRow("2", "1", "flags")
	layout.AddRow("3", "1", "reserved")
	layout.AddRow("4", "4", "session ID")
	layout.AddRow("8", "4", "transaction ID")
	layout.AddRow("12", "4", "packet ID")
	layout.AddRow("16", "4", "payload length")
	layout.Render()

	PrintSection("Header Flags")
	flags := NewTableWriter("Bit", "Flag")
	flags.AddRow(fmt.Sprintf("0x%02X", agentx.FlagInstanceRegistration), "InstanceRegistration")
	flags.AddRow(fmt.Sprintf("0x%02X", agentx.FlagNewIndex), "NewIndex")
	flags.AddRow(fmt.Sprintf("0x%02X", agentx.FlagAnyIndex), "AnyIndex")
	flags.AddRow(fmt.Sprintf("0x%02X", agentx.FlagNonDefaultContext), "NonDefaultContext")
	flags.AddRow(fmt.Sprintf("0x%02X", agentx.FlagNetworkByteOrder), "NetworkByteOrder")
	flags.Render()

	PrintSection("PDU Types")
	pdus := NewTableWriter("Code", "Type")
	for t := agentx.PDUOpen; t <= agentx.PDUResponse; t++ {
		pdus.AddRow(fmt.Sprintf("%d", byte(t)), t.String())
	}
	pdus.Render()

	PrintSection("Value Types")
	values := NewTableWriter("Code", "Type")
	valueTypes := []agentx.ValueType{
		agentx.TypeInteger,
		agentx.TypeOctetString,
		agentx.TypeNull,
		agentx.TypeObjectIdentifier,
		agentx.TypeIPAddress,
		agentx.TypeCounter32,
		agentx.TypeGauge32,
		agentx.TypeTimeTicks,
		agentx.TypeOpaque,
		agentx.TypeCounter64,
		agentx.TypeNoSuchObject,
		agentx.TypeNoSuchInstance,
		agentx.TypeEndOfMibView,
	}
	for _, t := range valueTypes {
		values.AddRow(fmt.Sprintf("0x%02X", uint16(t)), t.String())
	}
	values.Render()

	PrintSection("Close Reasons")
	reasons := NewTableWriter("Code", "Reason")
	for r := agentx.ReasonOther; r <= agentx.ReasonByManager; r++ {
		reasons.AddRow(fmt.Sprintf("%d", byte(r)), r.String())
	}
	reasons.Render()

	PrintSection("Response Errors")
	respErrors := NewTableWriter("Code", "Error")
	respErrors.AddRow("0", agentx.ErrorNoAgentX.String())
	for e := agentx.ErrorOpenFailed; e <= agentx.ErrorProcessingError; e++ {
		respErrors.AddRow(fmt.Sprintf("%d", uint16(e)), e.String())
	}
	respErrors.Render()

	fmt.Println()
}
