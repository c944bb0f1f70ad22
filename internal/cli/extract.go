// Package cli assembles the dbgex commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bioextract/dbgex/internal/config"
	"github.com/bioextract/dbgex/internal/dbgap"
	"github.com/bioextract/dbgex/internal/extractor"
	"github.com/bioextract/dbgex/internal/flatten"
	"github.com/bioextract/dbgex/internal/logging"
	"github.com/bioextract/dbgex/internal/tsv"
)

var (
	// Extract flags
	extractList         []string
	extractListFilename string
	extractOutput       string
	extractExpandSRA    bool
	extractConfigPath   string
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Generate a dbGaP sample extract file",
		Long: `Fetch per-sample metadata for the given study accessions from the
dbGaP sample status endpoint and write it as a tab-separated extract.

Studies whose requested version carries no samples are retried against
progressively older versions (v3 -> v2 -> v1).

Examples:
  # Extract two studies
  dbgex extract --study_accession_list phs001143.v2.p1 phs000179.v33.p2

  # Extract a newline-separated list from a file
  dbgex extract --study_accession_list_filename studies.txt --output_filename out.tsv

  # Emit sra_data_details as JSON objects
  dbgex extract --study_accession_list phs001143.v2.p1 --expand_sra_details`,
		RunE: runExtract,
	}

	cmd.Flags().StringSliceVar(&extractList, "study_accession_list", nil, "Study accessions to extract")
	cmd.Flags().StringVar(&extractListFilename, "study_accession_list_filename", "", "File containing a newline-separated list of study accessions")
	cmd.Flags().StringVar(&extractOutput, "output_filename", "", "Name for the output file (default: timestamped)")
	cmd.Flags().BoolVar(&extractExpandSRA, "expand_sra_details", false, "Emit sra_data_details as a JSON object instead of flattened text")
	cmd.Flags().StringVar(&extractConfigPath, "config", "dbgex.yaml", "Config file path")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Bare arguments after --study_accession_list are accepted too, so
	// "extract --study_accession_list phs1 phs2 phs3" works as expected.
	studies := append(append([]string(nil), extractList...), args...)

	if len(studies) == 0 && extractListFilename == "" {
		printError("no study accessions given")
		printInfo("Run this command using one of the two below forms:")
		printInfo("  > dbgex extract --study_accession_list accession_1 accession_2 ... [--output_filename file_out.tsv]")
		printInfo("  > dbgex extract --study_accession_list_filename file.txt [--output_filename file_out.tsv]")
		cmd.SilenceUsage = true
		return fmt.Errorf("either --study_accession_list or --study_accession_list_filename is required")
	}

	cfg, err := config.Load(extractConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("expand_sra_details") {
		cfg.ExpandSRADetails = extractExpandSRA
	}

	if extractListFilename != "" {
		fromFile, err := readAccessionList(extractListFilename)
		if err != nil {
			return err
		}
		studies = append(studies, fromFile...)
	}

	outputPath := extractOutput
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s-%s.tsv", cfg.OutputPrefix, time.Now().Format("01-02-2006-15-04-05"))
	}
	logPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".log"

	log, closeLog, err := logging.NewRunLogger(logPath, cfg.SlogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	log.Debug("extracting studies", "count", len(studies), "output", outputPath,
		"studies", strings.Join(studies, " "))

	out, err := tsv.Create(outputPath)
	if err != nil {
		return err
	}

	client := dbgap.NewClient(cfg.BaseURL, cfg.RequestTimeout())
	driver := extractor.New(client, log, flatten.Options{ExpandSRADetails: cfg.ExpandSRADetails})

	summary, err := driver.Run(context.Background(), studies, out)
	if err != nil {
		out.Close()
		cmd.SilenceUsage = true
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	log.Debug("all done", "output", outputPath, "log", logPath)
	printSuccess("Wrote %s rows for %s studies to %s (skipped %s samples, %s version fallbacks)",
		humanize.Comma(int64(summary.RowsWritten)),
		humanize.Comma(int64(summary.StudiesWritten)),
		outputPath,
		humanize.Comma(int64(summary.SamplesSkipped)),
		humanize.Comma(int64(summary.Fallbacks)))

	return nil
}

// readAccessionList reads a newline-separated accession list, keeping
// the file's order.
func readAccessionList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading accession list: %w", err)
	}
	defer file.Close()

	var accessions []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		acc := strings.TrimSpace(scanner.Text())
		if acc == "" {
			continue
		}
		accessions = append(accessions, acc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading accession list: %w", err)
	}

	return accessions, nil
}
