// Package validator audits a produced extract file against the study
// accession list it was generated from.
package validator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bioextract/dbgex/internal/dbgap"
)

// Report compares the studies that were requested with the studies that
// actually made it into an extract. Comparison is on the base study id
// (the prefix before the first dot), so phs000001.v2.p1 in the input
// matches phs000001.v1.p1 in the extract.
type Report struct {
	InputFile   string
	ExtractFile string
	Requested   []string // unique, sorted, as given in the input list
	Found       []string // unique, sorted base study ids from the extract
	Missing     []string // requested accessions with no base id in Found
}

// Validate reads the accession list and the extract file and compares
// them. It is read-only and only errors when a file is unreadable.
func Validate(listPath, extractPath string) (*Report, error) {
	requested, err := readAccessionList(listPath)
	if err != nil {
		return nil, err
	}

	found, err := readExtractStudies(extractPath)
	if err != nil {
		return nil, err
	}

	report := &Report{
		InputFile:   listPath,
		ExtractFile: extractPath,
		Requested:   requested,
		Found:       found,
	}

	foundSet := make(map[string]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	for _, acc := range requested {
		if _, ok := foundSet[baseStudyID(acc)]; !ok {
			report.Missing = append(report.Missing, acc)
		}
	}

	return report, nil
}

// Mismatch reports whether the requested and extracted study counts
// differ.
func (r *Report) Mismatch() bool {
	return len(r.Requested) != len(r.Found)
}

// Write renders the report as text. The output is advisory; missing
// accessions come with the registry lookup URL for manual inspection.
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "Looking at input %s vs output %s\n", r.InputFile, r.ExtractFile)
	fmt.Fprintf(w, "Input:  %s\n", strings.Join(r.Requested, " "))
	fmt.Fprintf(w, "Output: %s\n", strings.Join(r.Found, " "))

	if r.Mismatch() {
		fmt.Fprintf(w, "Mismatch: inputted %d studies, outputted %d studies\n",
			len(r.Requested), len(r.Found))
	}

	for _, acc := range r.Missing {
		fmt.Fprintf(w, "Output is missing %s.\n\t> Check if records are missing here %s\n",
			acc, dbgap.LookupURL(acc))
	}
}

// readAccessionList reads a newline-separated accession list, trimmed,
// deduplicated and sorted.
func readAccessionList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading accession list: %w", err)
	}
	defer file.Close()

	unique := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		acc := strings.TrimSpace(scanner.Text())
		if acc == "" {
			continue
		}
		unique[acc] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading accession list: %w", err)
	}

	return sortedKeys(unique), nil
}

// readExtractStudies pulls the unique base study ids out of the
// extract's study_accession column. Lines without a phs-prefixed value
// in that column are ignored.
func readExtractStudies(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading extract file: %w", err)
	}
	defer file.Close()

	unique := make(map[string]struct{})
	accessionColumn := -1

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")

		if first {
			first = false
			for i, name := range fields {
				if strings.TrimSpace(name) == "study_accession" {
					accessionColumn = i
					break
				}
			}
			if accessionColumn >= 0 {
				continue
			}
		}

		id := baseStudyID(extractField(fields, accessionColumn))
		if !strings.HasPrefix(id, "phs") {
			continue
		}
		unique[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading extract file: %w", err)
	}

	return sortedKeys(unique), nil
}

// extractField picks the study_accession column, falling back to the
// last field for extracts written without a recognizable header.
func extractField(fields []string, column int) string {
	if column >= 0 && column < len(fields) {
		return fields[column]
	}
	return fields[len(fields)-1]
}

func baseStudyID(accession string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(accession), ".")
	return base
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
