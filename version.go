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

// Package agentx provides a pure Go implementation of the AgentX (RFC 2741)
// protocol encoding used between SNMP master agents and subagents.
package agentx

// Version information for the AgentX codec library.
const (
	// Version is the current version of the library.
	Version = "1.0.0"

	// ProtocolName is the protocol name.
	ProtocolName = "AgentX"

	// ProtocolVersion is the AgentX protocol version implemented (RFC 2741).
	ProtocolVersion = 1
)

// BuildInfo contains build metadata.
type BuildInfo struct {
	Version   string
	GoVersion string
	OS        string
	Arch      string
	BuildTime string
}

// GetBuildInfo returns the current build information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version: Version,
	}
}
