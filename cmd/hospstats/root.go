package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Supratim-02/hospitalstats/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "hospstats",
	Short: "Hospital patient records → Postgres analytic reports",
	Long:  "Loads hospital patient record files into Postgres via the COPY protocol and runs a fixed set of analytic reports over them.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("HOSPITALSTATS_DB_URL"), "Postgres connection string (or set HOSPITALSTATS_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
