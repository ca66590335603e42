// edgeo-agentx is a command-line tool for decoding, crafting, and inspecting
// AgentX (RFC 2741) protocol packets.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
