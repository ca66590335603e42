package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgeo/drivers/agentx"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [FILE]",
	Short: "Decode a stream of AgentX packets",
	Long: `Decode a stream of AgentX packets from a file or stdin.

The input is a sequence of framed packets, each a 20-byte header followed
by its payload. The byte order of each packet is taken from its own header
flags. With --hex the input is hex text instead of raw bytes; whitespace
and common separators are ignored.

Examples:
  # Decode a captured binary stream
  edgeo-agentx decode capture.bin

  # Decode hex text from stdin as JSON
  echo "01 0d 00 00 ..." | edgeo-agentx decode --hex -o json

  # Decode and show codec statistics
  edgeo-agentx decode capture.bin --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

var (
	hexInput  bool
	showStats bool
	keepGoing bool
)

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().BoolVar(&hexInput, "hex", false, "treat input as hex text")
	decodeCmd.Flags().BoolVar(&showStats, "stats", false, "print codec statistics after decoding")
	decodeCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "resync and continue after a malformed packet")
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := readInput(args, hexInput)
	if err != nil {
		return err
	}

	printVerbose("Decoding %s of input...", formatBytes(int64(len(data))))
	start := time.Now()

	dec := newDecoder()
	formatter := NewFormatter(outputFormat)
	reader := bytes.NewReader(data)

	count := 0
	for {
		p, err := dec.ReadPDU(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if keepGoing {
				printError("packet %d: %v", count+1, err)
				if !resync(reader) {
					break
				}
				continue
			}
			if showStats {
				printStats(dec.Metrics().Snapshot())
			}
			return fmt.Errorf("packet %d: %w", count+1, err)
		}

		formatter.FormatPacket(p)
		count++
	}

	printVerbose("Decoded %d packet(s) in %s", count, formatDuration(time.Since(start)))

	if showStats {
		printStats(dec.Metrics().Snapshot())
	}

	return nil
}

// resync skips forward one byte at a time until the reader is positioned at
// a plausible header, so one malformed packet does not hide the rest of a
// capture. Returns false when the stream is exhausted.
func resync(r *bytes.Reader) bool {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return false
		}
		if b != 1 {
			continue
		}
		// A header starts with version 1 followed by a valid type byte.
		t, err := r.ReadByte()
		if err != nil {
			return false
		}
		if t >= 1 && t <= 18 {
			r.Seek(-2, io.SeekCurrent)
			return true
		}
		r.Seek(-1, io.SeekCurrent)
	}
}

func printStats(s agentx.MetricsSnapshot) {
	PrintSection("Codec Statistics")
	PrintKeyValue("Packets decoded", fmt.Sprintf("%d", s.PacketsDecoded))
	PrintKeyValue("Decode errors", fmt.Sprintf("%d", s.DecodeErrors))
	PrintKeyValue("Bytes decoded", formatBytes(s.BytesDecoded))
	PrintKeyValue("Varbinds decoded", fmt.Sprintf("%d", s.VarbindsDecoded))

	sizes := s.PayloadSizes
	if sizes.Count > 0 {
		PrintKeyValue("Payload min", formatBytes(sizes.Min))
		PrintKeyValue("Payload max", formatBytes(sizes.Max))
		PrintKeyValue("Payload avg", formatBytes(int64(sizes.Avg)))
	}
	fmt.Println()
}
