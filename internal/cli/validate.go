package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bioextract/dbgex/internal/validator"
)

var (
	// Validate flags
	validateListFilename string
	validateExtractPath  string
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a produced extract against the requested study list",
		Long: `Compare the studies requested in an accession list against the studies
actually present in a generated extract file and report any that are
missing.

The report is advisory: a mismatch is printed but does not change the
exit code.

Example:
  dbgex validate --study_accession_list_filename studies.txt --dbgap_extract extract.tsv`,
		RunE: runValidate,
	}

	cmd.Flags().StringVar(&validateListFilename, "study_accession_list_filename", "", "File containing a newline-separated list of study accessions")
	cmd.Flags().StringVar(&validateExtractPath, "dbgap_extract", "", "A generated extract file")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateListFilename == "" || validateExtractPath == "" {
		printInfo("Usage:")
		printInfo("  > dbgex validate --study_accession_list_filename <phs_list.txt> --dbgap_extract <dbgap_extract_file.tsv>")
		return nil
	}

	report, err := validator.Validate(validateListFilename, validateExtractPath)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	report.Write(os.Stdout)
	return nil
}
