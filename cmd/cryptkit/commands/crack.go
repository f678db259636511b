/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: crack.go
Description: The crack and detect commands. Crack recovers the key of one single-byte
XOR ciphertext; detect finds the one line of a file that was encrypted that way.
*/

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/kleascm/cryptkit/pkg/breaker"
	"github.com/kleascm/cryptkit/pkg/codec"
	"github.com/kleascm/cryptkit/pkg/logging"
	"github.com/kleascm/cryptkit/pkg/report"
	"github.com/kleascm/cryptkit/pkg/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCrackCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack <ciphertext>",
		Short: "Recover a single-byte XOR key",
		Long: `Try every key byte against the ciphertext, score each plaintext against the
frequency table and print the best candidates.`,
		Example: `  cryptkit crack 1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736 --top 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrack(v, cmd, args)
		},
	}

	cmd.Flags().String("in", "hex", "Ciphertext representation")
	cmd.Flags().Int("top", 5, "Number of candidates to print (0 prints all)")
	cmd.Flags().String("keyspace", "all", "Keys to report (all, alnum, printable)")
	cmd.Flags().Bool("json", false, "Print candidates as JSON")

	return cmd
}

func runCrack(v *viper.Viper, cmd *cobra.Command, args []string) error {
	s, err := newSession(v, cmd, map[string]string{
		"in":       "codec.input",
		"top":      "breaker.top",
		"keyspace": "breaker.keyspace",
	})
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := codec.ParseRepresentation(s.cfg.Codec.Input)
	if err != nil {
		return err
	}
	keep, err := breaker.ParseKeySpace(s.cfg.Breaker.KeySpace)
	if err != nil {
		return err
	}

	table, origin, err := s.loadTable(cmd.Context())
	if err != nil {
		return err
	}
	s.logger.LogTable(origin, len(table.Weights()), nil)

	start := time.Now()
	b := breaker.New(table, breaker.WithWorkers(s.cfg.Breaker.Workers))
	result, err := b.BreakEncoded(args[0], in)
	if err != nil {
		return fmt.Errorf("invalid ciphertext: %w", err)
	}
	result = result.Filter(keep)

	if best, ok := result.Best(); ok {
		s.logger.LogCandidate(best.Key, best.Score, time.Since(start), map[string]interface{}{
			"keyspace":  s.cfg.Breaker.KeySpace,
			"plaintext": logging.Plaintext(best.Plaintext),
		})
	} else {
		s.logger.Warning("No key in the selected keyspace", map[string]interface{}{
			"keyspace": s.cfg.Breaker.KeySpace,
		})
	}

	views := report.Views(result, s.cfg.Breaker.Top)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := report.PrintJSON(s.out, views); err != nil {
			return err
		}
	} else if err := report.WriteRanking(s.out, result, s.cfg.Breaker.Top); err != nil {
		return err
	}
	return s.writeResult("crack", views)
}

func newDetectCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Find the line encrypted with single-byte XOR",
		Long: `Read one encoded ciphertext per line, crack every line and report the line
whose best candidate scores highest. Files ending in .xz are decompressed.`,
		Example: `  cryptkit detect --file 4.txt --workers 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(v, cmd, args)
		},
	}

	cmd.Flags().String("file", "", "File of ciphertexts, one per line (required)")
	cmd.Flags().String("in", "hex", "Representation of every line")
	cmd.Flags().Bool("json", false, "Print the detection as JSON")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runDetect(v *viper.Viper, cmd *cobra.Command, args []string) error {
	s, err := newSession(v, cmd, map[string]string{
		"in": "codec.input",
	})
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := codec.ParseRepresentation(s.cfg.Codec.Input)
	if err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("file")

	var lines source.LineSource = source.NewFileLines(file, in)
	buffers, err := lines.Lines(cmd.Context())
	if err != nil {
		return err
	}

	table, origin, err := s.loadTable(cmd.Context())
	if err != nil {
		return err
	}
	s.logger.LogTable(origin, len(table.Weights()), nil)

	start := time.Now()
	b := breaker.New(table, breaker.WithWorkers(s.cfg.Breaker.Workers))
	detection, err := b.Detect(buffers)
	if errors.Is(err, breaker.ErrNoCiphertexts) {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err != nil {
		return err
	}
	s.logger.LogDetection(detection.Index, detection.Key, detection.Score, detection.Plaintext, len(buffers), time.Since(start))

	view := report.NewDetectionView(detection)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := report.PrintJSON(s.out, view); err != nil {
			return err
		}
	} else if err := report.WriteDetection(s.out, detection); err != nil {
		return err
	}
	return s.writeResult("detect", view)
}
