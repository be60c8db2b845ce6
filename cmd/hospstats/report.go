package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Supratim-02/hospitalstats/internal/db"
	"github.com/Supratim-02/hospitalstats/internal/exitcode"
	"github.com/Supratim-02/hospitalstats/internal/logging"
	"github.com/Supratim-02/hospitalstats/internal/report"
)

var (
	reportName   string
	reportFormat string
	configFile   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run analytic reports over the loaded patient records",
	Long:  "Runs one named report, the subset configured in --config, or all reports, and writes the results to stdout.",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportName, "report", "", "Run a single report by name (default: all)")
	f.StringVar(&reportFormat, "format", "table", "Output format: table or csv")
	f.StringVar(&configFile, "config", "", "YAML config file selecting a subset of reports")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or HOSPITALSTATS_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}
	if reportFormat != "table" && reportFormat != "csv" {
		log.Error().Str("format", reportFormat).Msg("unknown output format")
		os.Exit(exitcode.UsageError)
	}

	names := cfg.Reports
	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
		names = cfg.Reports
	}
	if reportName != "" {
		if _, ok := report.ByName(reportName); !ok {
			log.Error().Str("report", reportName).Strs("known", report.Names()).Msg("unknown report")
			os.Exit(exitcode.UsageError)
		}
		names = []string{reportName}
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	results, err := report.RunAll(ctx, pool, names)
	if err != nil {
		log.Error().Err(err).Msg("report run failed")
		os.Exit(exitcode.ReportError)
	}

	for _, res := range results {
		var werr error
		switch reportFormat {
		case "csv":
			if len(results) > 1 {
				fmt.Printf("# %s\n", res.Name)
			}
			werr = report.WriteCSV(os.Stdout, res)
		default:
			werr = report.WriteTable(os.Stdout, res)
		}
		if werr != nil {
			log.Error().Err(werr).Str("report", res.Name).Msg("write failed")
			os.Exit(exitcode.ReportError)
		}
	}
	return nil
}
