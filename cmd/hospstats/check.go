package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Supratim-02/hospitalstats/internal/exitcode"
	"github.com/Supratim-02/hospitalstats/internal/logging"
	"github.com/Supratim-02/hospitalstats/internal/model"
	"github.com/Supratim-02/hospitalstats/internal/normalize"
	"github.com/Supratim-02/hospitalstats/internal/recordread"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run validation and stats (no writes)",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet file (required)")
	_ = checkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	reader, err := recordread.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	var rowsRead, rowsValid, rowsRejected int64
	seen := make(map[int64]bool)
	var duplicates int64
	genderCounts := make(map[string]int64)
	conditionCounts := make(map[string]int64)

	buf := make([]model.PatientRow, 256)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			rowsRead++
			staging, normErr := normalize.ToStagingRow(&buf[i], uuid.Nil, 0, rowsRead)
			if normErr != nil {
				rowsRejected++
				log.Warn().Err(normErr).Int64("row", rowsRead).Msg("row would be rejected")
				continue
			}
			rowsValid++
			if seen[staging.PatientID] {
				duplicates++
			}
			seen[staging.PatientID] = true
			genderCounts[staging.Gender]++
			conditionCounts[staging.Condition]++
		}
		if readErr == io.EOF {
			break
		}
		var rowErr *recordread.RowError
		if errors.As(readErr, &rowErr) {
			rowsRead++
			rowsRejected++
			log.Warn().Err(rowErr.Err).Int64("row", rowErr.Row).Msg("row would be rejected")
			continue
		}
		if readErr != nil {
			log.Error().Err(readErr).Msg("failed to read rows")
			os.Exit(exitcode.ValidationError)
		}
	}

	fmt.Println("=== hospstats check ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Rows read:  %d\n", rowsRead)
	fmt.Printf("Valid:      %d\n", rowsValid)
	fmt.Printf("Rejected:   %d\n", rowsRejected)
	fmt.Printf("Duplicate patient ids: %d\n", duplicates)
	fmt.Println()
	fmt.Println("Gender distribution:")
	for _, g := range sortedKeys(genderCounts) {
		fmt.Printf("  %-8s %d\n", g, genderCounts[g])
	}
	fmt.Println("Condition distribution:")
	for _, c := range sortedKeys(conditionCounts) {
		fmt.Printf("  %-24s %d\n", c, conditionCounts[c])
	}
	fmt.Println("Validation: OK")

	return nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
