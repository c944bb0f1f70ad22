// Package flatten turns nested sample records into flat rows matching
// the extract's fixed column schema.
package flatten

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bioextract/dbgex/internal/accession"
	"github.com/bioextract/dbgex/internal/parser"
)

// Columns is the extract schema, in output order.
var Columns = []string{
	"submitted_sample_id",
	"biosample_id",
	"dbgap_sample_id",
	"sra_sample_id",
	"submitted_subject_id",
	"dbgap_subject_id",
	"consent_code",
	"consent_short_name",
	"sex",
	"body_site",
	"analyte_type",
	"sample_use",
	"repository",
	"dbgap_status",
	"sra_data_details",
	"study_accession",
	"study_accession_with_consent",
	"study_with_consent",
	"study_subject_id",
}

// sampleUseSeparator joins the sample's usage tags into a single scalar
// cell. A joined string keeps the TSV schema flat; consumers split on it.
const sampleUseSeparator = "; "

// Error describes a sample that could not be flattened. The sample is
// dropped; the rest of the study is unaffected.
type Error struct {
	SampleID string
	Reason   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot flatten sample %q: %s", e.SampleID, e.Reason)
}

// Options controls the sra_data_details encoding.
type Options struct {
	// ExpandSRADetails emits sra_data_details as a JSON object merged
	// across all statistics blocks instead of the pipe-delimited text
	// rendering.
	ExpandSRADetails bool
}

// Flattener derives flat rows from sample records.
type Flattener struct {
	log  *slog.Logger
	opts Options
}

// New returns a Flattener logging through the given logger.
func New(log *slog.Logger, opts Options) *Flattener {
	return &Flattener{log: log, opts: opts}
}

// Row derives the flat row for one sample. acc is the accession the
// registry resolved the study to, which is authoritative over whatever
// accession the caller originally requested.
func (f *Flattener) Row(acc accession.StudyAccession, sample parser.Sample) (map[string]string, error) {
	subject, ok := sample.Attrs["submitted_subject_id"]
	if !ok {
		return nil, &Error{SampleID: sample.ID(), Reason: "missing submitted_subject_id"}
	}

	row := make(map[string]string, len(Columns))
	for _, col := range Columns {
		row[col] = sample.Attrs[col]
	}

	row["study_accession"] = acc.String()
	row["study_subject_id"] = acc.VersionPrefix() + "_" + subject
	row["sample_use"] = strings.Join(sample.Uses, sampleUseSeparator)

	if consent, ok := sample.Attrs["consent_code"]; ok {
		row["study_accession_with_consent"] = acc.String() + ".c" + consent
		row["study_with_consent"] = acc.Study() + ".c" + consent
	} else {
		row["study_accession_with_consent"] = ""
		row["study_with_consent"] = ""
		f.log.Debug("sample lacks a consent code, leaving consent-derived columns empty",
			"sample", sample.ID())
	}

	details, err := f.sraDataDetails(sample)
	if err != nil {
		return nil, &Error{SampleID: sample.ID(), Reason: err.Error()}
	}
	row["sra_data_details"] = details

	return row, nil
}

func (f *Flattener) sraDataDetails(sample parser.Sample) (string, error) {
	if f.opts.ExpandSRADetails {
		merged := make(map[string]string)
		for _, block := range sample.Stats {
			for _, pair := range block.Pairs {
				merged[pair.Name] = pair.Value
			}
		}
		if len(merged) == 0 {
			return "", nil
		}
		encoded, err := json.Marshal(merged)
		if err != nil {
			return "", fmt.Errorf("encoding sra details: %w", err)
		}
		return string(encoded), nil
	}

	var b strings.Builder
	for _, block := range sample.Stats {
		b.WriteString("(")
		for i, pair := range block.Pairs {
			if i > 0 {
				b.WriteString("|")
			}
			b.WriteString(pair.Name)
			b.WriteString(":")
			b.WriteString(pair.Value)
		}
		b.WriteString(") ")
	}
	return b.String(), nil
}

// RowValues orders a flat row by the Columns schema.
func RowValues(row map[string]string) []string {
	values := make([]string, len(Columns))
	for i, col := range Columns {
		values[i] = row[col]
	}
	return values
}
