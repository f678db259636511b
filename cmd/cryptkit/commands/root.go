/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Root command of the cryptkit CLI. Registers persistent flags, binds them to
the configuration and attaches every subcommand.
*/

package commands

import (
	"github.com/kleascm/cryptkit/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the command tree around a fresh viper instance
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "cryptkit",
		Short: "cryptkit - byte codec and single-byte XOR cryptanalysis toolkit",
		Long: `cryptkit converts byte sequences between hex, bits, octal, decimal, base64 and
text, XORs buffers together and recovers single-byte XOR keys by scoring every
candidate plaintext against an English letter-frequency table.`,
		Version:       report.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path")
	flags.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flags.String("log-format", "custom", "Log format (text, json, custom)")
	flags.String("log-dir", "", "Log output directory (empty disables log files)")
	flags.Int("workers", 1, "Number of parallel workers for key and line scans")
	flags.String("output-dir", "", "Directory for JSON result files (empty disables)")

	// Bind flags to viper
	v.BindPFlag("config", flags.Lookup("config"))
	v.BindPFlag("log.level", flags.Lookup("log-level"))
	v.BindPFlag("log.format", flags.Lookup("log-format"))
	v.BindPFlag("log.dir", flags.Lookup("log-dir"))
	v.BindPFlag("breaker.workers", flags.Lookup("workers"))
	v.BindPFlag("output_dir", flags.Lookup("output-dir"))

	rootCmd.AddCommand(
		newConvertCommand(v),
		newXORCommand(v),
		newCrackCommand(v),
		newDetectCommand(v),
		newFreqCommand(v),
	)

	return rootCmd
}
