package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bioextract/dbgex/internal/cli"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "dbgex",
	Short: "dbGaP sample extract tools",
	Long: `dbgex extracts per-sample metadata for genomic studies from the dbGaP
sample status endpoint and flattens it into a tab-separated extract
file with a fixed column schema.

A companion validate command audits a produced extract against the
study list it was generated from.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Extract two studies into a timestamped file
  dbgex extract --study_accession_list phs001143.v2.p1 phs000179.v33.p2

  # Check the result against the request list
  dbgex validate --study_accession_list_filename studies.txt --dbgap_extract extract.tsv`,
}

func init() {
	rootCmd.AddCommand(cli.NewExtractCmd())
	rootCmd.AddCommand(cli.NewValidateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
