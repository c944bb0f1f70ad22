// Package dbgap talks to the dbGaP sample status endpoint.
package dbgap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public GetSampleStatus endpoint.
const DefaultBaseURL = "https://www.ncbi.nlm.nih.gov/projects/gap/cgi-bin/GetSampleStatus.cgi"

// Client fetches per-study sample status documents.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL (DefaultBaseURL when
// empty) with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SampleStatus fetches the raw XML status document for one study
// accession.
func (c *Client) SampleStatus(ctx context.Context, accession string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL(c.baseURL, accession, "xml"), nil)
	if err != nil {
		return nil, fmt.Errorf("building sample status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sample status for %s: %w", accession, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching sample status for %s: unexpected status %s", accession, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sample status for %s: %w", accession, err)
	}

	return body, nil
}

// LookupURL returns the human-readable status page for an accession,
// used in validation reports for manual inspection.
func LookupURL(accession string) string {
	return statusURL(DefaultBaseURL, accession, "html")
}

func statusURL(base, accession, rettype string) string {
	query := url.Values{}
	query.Set("study_id", accession)
	query.Set("rettype", rettype)
	return base + "?" + query.Encode()
}
