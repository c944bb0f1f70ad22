package dbgap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "phs001234.v3.p1", r.URL.Query().Get("study_id"))
		assert.Equal(t, "xml", r.URL.Query().Get("rettype"))
		w.Write([]byte(`<DbGap><Study accession="phs001234.v3.p1"><SampleList/></Study></DbGap>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	body, err := client.SampleStatus(context.Background(), "phs001234.v3.p1")
	require.NoError(t, err)
	assert.Contains(t, string(body), `accession="phs001234.v3.p1"`)
}

func TestSampleStatusHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.SampleStatus(context.Background(), "phs001234.v3.p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestSampleStatusUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.SampleStatus(context.Background(), "phs001234.v3.p1")
	assert.Error(t, err)
}

func TestLookupURL(t *testing.T) {
	url := LookupURL("phs001234")
	assert.Contains(t, url, "study_id=phs001234")
	assert.Contains(t, url, "rettype=html")
}
