package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Supratim-02/hospitalstats/internal/db"
	"github.com/Supratim-02/hospitalstats/internal/exitcode"
	"github.com/Supratim-02/hospitalstats/internal/load"
	"github.com/Supratim-02/hospitalstats/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a patient record file (CSV or Parquet) into the database",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet file (required)")
	f.BoolVar(&cfg.Force, "force", false, "Re-load even if file SHA already exists")
	f.BoolVar(&cfg.KeepStaging, "keep-staging", false, "Keep staging rows after transform")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, &cfg)
	if err != nil {
		if pe, ok := err.(*load.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.TransformError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.TransformError)
	}

	fmt.Printf("Load complete: %d rows staged, %d patients inserted, %d rejected, %d duplicate (%.1fs)\n",
		summary.RowsStaged, summary.RowsInserted, summary.RowsRejected, summary.RowsDuplicate,
		summary.DurationTotal.Seconds())
	return nil
}
