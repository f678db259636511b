/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: freq.go
Description: The freq command. Builds or loads the frequency table the other commands
score against and prints it as JSON.
*/

package commands

import (
	"github.com/kleascm/cryptkit/pkg/frequency"
	"github.com/kleascm/cryptkit/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newFreqCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Build and print a frequency table",
		Long: `Build a byte frequency table from corpus files or URLs (cached when a cache
directory or Redis address is configured) and print it as JSON keyed by hex byte.
Without sources the built-in English table is printed.`,
		Example: `  cryptkit freq --builtin
  cryptkit freq --source ./books/alice.txt.xz --source https://www.gutenberg.org/files/11/11-0.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFreq(v, cmd, args)
		},
	}

	cmd.Flags().StringSlice("source", []string{}, "Corpus file or URL (repeatable)")
	cmd.Flags().Bool("builtin", false, "Print the built-in English table")
	cmd.Flags().Bool("gutenberg", false, "Use the default Project Gutenberg corpus")

	return cmd
}

func runFreq(v *viper.Viper, cmd *cobra.Command, args []string) error {
	s, err := newSession(v, cmd, map[string]string{
		"source": "frequency.sources",
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if gutenberg, _ := cmd.Flags().GetBool("gutenberg"); gutenberg {
		s.cfg.Frequency.Sources = frequency.DefaultCorpus()
	}

	var table *frequency.Table
	origin := "builtin"
	if builtin, _ := cmd.Flags().GetBool("builtin"); builtin {
		table = frequency.English()
	} else {
		table, origin, err = s.loadTable(cmd.Context())
		if err != nil {
			return err
		}
	}
	s.logger.LogTable(origin, len(table.Weights()), map[string]interface{}{
		"sources": len(s.cfg.Frequency.Sources),
	})

	if err := report.PrintJSON(s.out, table); err != nil {
		return err
	}
	return s.writeResult("freq", table)
}
