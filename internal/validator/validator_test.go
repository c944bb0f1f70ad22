package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func extractWithStudies(accessions ...string) string {
	var b strings.Builder
	b.WriteString("submitted_sample_id\tstudy_accession\tstudy_subject_id\n")
	for _, acc := range accessions {
		b.WriteString("NWD1\t" + acc + "\t" + acc + "_NWD1\n")
	}
	return b.String()
}

func TestValidateComplete(t *testing.T) {
	list := writeTempFile(t, "list.txt", "phs000001.v2.p1\nphs000002.v1.p1\n")
	extract := writeTempFile(t, "extract.tsv",
		extractWithStudies("phs000001.v1.p1", "phs000002.v1.p1"))

	report, err := Validate(list, extract)
	require.NoError(t, err)

	assert.Equal(t, []string{"phs000001.v2.p1", "phs000002.v1.p1"}, report.Requested)
	assert.Equal(t, []string{"phs000001", "phs000002"}, report.Found)
	assert.Empty(t, report.Missing)
	assert.False(t, report.Mismatch())
}

func TestValidateMissingStudy(t *testing.T) {
	list := writeTempFile(t, "list.txt", "phs000001.v1.p1\nphs000002.v1.p1\n")
	extract := writeTempFile(t, "extract.tsv", extractWithStudies("phs000001.v1.p1"))

	report, err := Validate(list, extract)
	require.NoError(t, err)

	assert.True(t, report.Mismatch())
	assert.Equal(t, []string{"phs000002.v1.p1"}, report.Missing)
	assert.Len(t, report.Requested, 2)
	assert.Len(t, report.Found, 1)
}

func TestValidateDeduplicatesInput(t *testing.T) {
	list := writeTempFile(t, "list.txt", "phs000001.v1.p1\n phs000001.v1.p1 \n\nphs000001.v1.p1\n")
	extract := writeTempFile(t, "extract.tsv", extractWithStudies("phs000001.v1.p1"))

	report, err := Validate(list, extract)
	require.NoError(t, err)

	assert.Equal(t, []string{"phs000001.v1.p1"}, report.Requested)
	assert.False(t, report.Mismatch())
}

func TestValidateIgnoresNonStudyLines(t *testing.T) {
	list := writeTempFile(t, "list.txt", "phs000001.v1.p1\n")
	extract := writeTempFile(t, "extract.tsv",
		"submitted_sample_id\tstudy_accession\tstudy_subject_id\n"+
			"NWD1\tphs000001.v1.p1\tphs000001.v1_NWD1\n"+
			"garbage line without tabs\n"+
			"NWD2\t\t\n")

	report, err := Validate(list, extract)
	require.NoError(t, err)
	assert.Equal(t, []string{"phs000001"}, report.Found)
}

func TestValidateHeaderlessExtractFallsBackToLastColumn(t *testing.T) {
	list := writeTempFile(t, "list.txt", "phs000001.v1.p1\n")
	extract := writeTempFile(t, "extract.tsv", "NWD1\tSAMN1\tphs000001.v1.p1\n")

	report, err := Validate(list, extract)
	require.NoError(t, err)
	assert.Equal(t, []string{"phs000001"}, report.Found)
}

func TestValidateUnreadableFiles(t *testing.T) {
	extract := writeTempFile(t, "extract.tsv", extractWithStudies("phs000001.v1.p1"))

	_, err := Validate(filepath.Join(t.TempDir(), "nope.txt"), extract)
	assert.Error(t, err)

	list := writeTempFile(t, "list.txt", "phs000001.v1.p1\n")
	_, err = Validate(list, filepath.Join(t.TempDir(), "nope.tsv"))
	assert.Error(t, err)
}

func TestReportWrite(t *testing.T) {
	list := writeTempFile(t, "list.txt", "phs000001.v1.p1\nphs000002.v1.p1\n")
	extract := writeTempFile(t, "extract.tsv", extractWithStudies("phs000001.v1.p1"))

	report, err := Validate(list, extract)
	require.NoError(t, err)

	var b strings.Builder
	report.Write(&b)
	text := b.String()

	assert.Contains(t, text, "Mismatch: inputted 2 studies, outputted 1 studies")
	assert.Contains(t, text, "Output is missing phs000002.v1.p1")
	assert.Contains(t, text, "rettype=html")
	assert.Contains(t, text, "study_id=phs000002.v1.p1")
}
