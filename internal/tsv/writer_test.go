package tsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract.tsv")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Append([]string{"a", "b", "c"}))
	require.NoError(t, w.Append([]string{"1", "2", "3"}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a\tb\tc", lines[0])
	assert.Equal(t, "1\t2\t3", lines[1])
}

func TestCreateTruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract.tsv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0644))

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Append([]string{"fresh"}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))
}

func TestWriterQuotesEmbeddedDelimiters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract.tsv")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Append([]string{"has\ttab", "plain"}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"has\ttab\"\tplain\n", string(data))
}
