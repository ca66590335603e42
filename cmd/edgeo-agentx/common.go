package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/edgeo/drivers/agentx"
)

// buildCodecOptions builds codec options from the current configuration.
func buildCodecOptions() []agentx.Option {
	var opts []agentx.Option

	if maxPayload > 0 {
		opts = append(opts, agentx.WithMaxPayloadLength(maxPayload))
	}

	if verbose {
		// Enable debug logging
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, agentx.WithLogger(logger))
	}

	return opts
}

// newDecoder creates a decoder with the current configuration.
func newDecoder() *agentx.Decoder {
	return agentx.NewDecoder(buildCodecOptions()...)
}

// newEncoder creates an encoder with the current configuration.
func newEncoder() *agentx.Encoder {
	opts := buildCodecOptions()
	if networkOrder {
		opts = append(opts, agentx.WithNetworkByteOrder())
	}
	return agentx.NewEncoder(opts...)
}

// readInput reads packet bytes from the named file, or from stdin when no
// file is given or the name is "-".
func readInput(args []string, hexText bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if hexText {
		return decodeHexText(data)
	}
	return data, nil
}

// decodeHexText converts hex text to bytes, ignoring whitespace and common
// separators so copied dumps paste cleanly.
func decodeHexText(data []byte) ([]byte, error) {
	s := string(data)
	for _, sep := range []string{" ", "\t", "\r", "\n", ":", "-", "0x", "0X"} {
		s = strings.ReplaceAll(s, sep, "")
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return raw, nil
}

// writePacket writes an encoded packet to stdout, as hex text or raw bytes.
func writePacket(data []byte) error {
	if hexOutput {
		fmt.Println(hex.EncodeToString(data))
		return nil
	}
	_, err := os.Stdout.Write(data)
	return err
}

// parseOIDs parses multiple OID strings.
func parseOIDs(args []string) ([]agentx.OID, error) {
	oids := make([]agentx.OID, len(args))
	for i, arg := range args {
		oid, err := agentx.ParseOID(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid OID '%s': %w", arg, err)
		}
		oids[i] = oid
	}
	return oids, nil
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// formatBytes formats bytes for display.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
