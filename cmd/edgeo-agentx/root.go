package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	cfgFile    string
	maxPayload uint32

	// Output flags
	outputFormat string
	verbose      bool
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "edgeo-agentx",
	Short: "AgentX packet toolbox",
	Long: `edgeo-agentx is a toolbox for the AgentX (RFC 2741) subagent protocol.
It decodes captured packet streams, crafts test packets, and prints
wire-format reference tables.

Supports:
  - All 18 AgentX PDU types
  - Both wire byte orders (little-endian and network byte order)
  - Hex or binary input and output

Examples:
  # Decode a captured packet stream
  edgeo-agentx decode capture.bin

  # Decode hex text from stdin
  echo "01 01 10 00 ..." | edgeo-agentx decode --hex

  # Craft an Open packet
  edgeo-agentx encode open --id 1.3.6.1.4.1.8072.3.3 --descr "test agent" --hex

  # Show the PDU type reference tables
  edgeo-agentx info`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Codec flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is $HOME/.edgeo-agentx.yaml)")
	rootCmd.PersistentFlags().Uint32Var(&maxPayload, "max-payload", 0, "maximum accepted payload length in bytes (0 = library default)")

	// Output flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, csv, raw")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper
	viper.BindPFlag("max-payload", rootCmd.PersistentFlags().Lookup("max-payload"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config"))
		viper.SetConfigName(".edgeo-agentx")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EDGEO_AGENTX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	// Apply viper values to flags
	maxPayload = viper.GetUint32("max-payload")
	outputFormat = viper.GetString("output")
	verbose = viper.GetBool("verbose")
	noColor = viper.GetBool("no-color")
}
