// Package extractor drives the per-study extraction run: fetch, parse,
// version fallback, dedup, flatten, write.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bioextract/dbgex/internal/accession"
	"github.com/bioextract/dbgex/internal/flatten"
	"github.com/bioextract/dbgex/internal/parser"
)

// Fetcher retrieves the raw sample status document for one accession.
type Fetcher interface {
	SampleStatus(ctx context.Context, accession string) ([]byte, error)
}

// RowWriter receives header and data rows in output order.
type RowWriter interface {
	Append(row []string) error
}

// Summary reports what one run produced.
type Summary struct {
	StudiesWritten int
	RowsWritten    int
	SamplesSkipped int
	Fallbacks      int
}

// Extractor walks a worklist of study accessions and writes one flat
// row per sample. Runs are sequential: one study is fetched and fully
// processed before the next is dequeued.
type Extractor struct {
	client    Fetcher
	flattener *flatten.Flattener
	log       *slog.Logger
}

// New creates an Extractor. The logger is shared with the flattener so
// per-sample diagnostics land in the same run log.
func New(client Fetcher, log *slog.Logger, opts flatten.Options) *Extractor {
	return &Extractor{
		client:    client,
		flattener: flatten.New(log, opts),
		log:       log,
	}
}

// Run processes the given accessions in order. A fetch or parse failure
// for any study is fatal and ends the run; per-sample problems are
// logged and skipped. Studies whose requested version has no samples
// are re-enqueued one version older until v1.
func (e *Extractor) Run(ctx context.Context, accessions []string, out RowWriter) (*Summary, error) {
	if err := out.Append(flatten.Columns); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	// Explicit FIFO queue; fallback accessions are enqueued behind any
	// still-pending work, never processed in place.
	queue := append([]string(nil), accessions...)
	seen := make(map[string]struct{})
	summary := &Summary{}

	for len(queue) > 0 {
		requested := queue[0]
		queue = queue[1:]

		data, err := e.client.SampleStatus(ctx, requested)
		if err != nil {
			e.log.Error("failed to fetch study from the registry", "accession", requested, "error", err)
			return nil, err
		}

		study, err := parser.Parse(data)
		if err != nil {
			e.log.Error("failed to parse registry response", "accession", requested, "error", err)
			return nil, err
		}

		resolved, err := accession.Parse(study.Accession)
		if err != nil {
			e.log.Error("registry returned an unusable study accession", "accession", study.Accession, "error", err)
			return nil, err
		}

		if len(study.Samples) == 0 && len(study.Skipped) == 0 {
			prev, err := resolved.PreviousVersion()
			if errors.Is(err, accession.ErrNoPreviousVersion) {
				e.log.Debug("no version of this study has samples, giving up on it",
					"accession", resolved.String())
				continue
			}
			if err != nil {
				e.log.Error("cannot compute previous study version", "accession", resolved.String(), "error", err)
				return nil, err
			}

			e.log.Error("study has no samples, falling back to the previous version",
				"accession", resolved.String(), "fallback", prev.String())
			queue = append(queue, prev.String())
			summary.Fallbacks++
			continue
		}

		if _, ok := seen[resolved.String()]; ok {
			e.log.Debug("study already written, skipping duplicate", "accession", resolved.String())
			continue
		}

		for _, issue := range study.Skipped {
			e.log.Error("skipping undecodable sample",
				"accession", resolved.String(), "sample", issue.SampleID, "reason", issue.Reason)
			summary.SamplesSkipped++
		}

		rows := 0
		for _, sample := range study.Samples {
			row, err := e.flattener.Row(resolved, sample)
			if err != nil {
				e.log.Error("skipping sample that cannot be flattened",
					"accession", resolved.String(), "sample", sample.ID(), "error", err)
				summary.SamplesSkipped++
				continue
			}
			if err := out.Append(flatten.RowValues(row)); err != nil {
				return nil, fmt.Errorf("writing row for %s: %w", resolved, err)
			}
			rows++
		}

		seen[resolved.String()] = struct{}{}
		summary.StudiesWritten++
		summary.RowsWritten += rows
		e.log.Info("study written", "accession", resolved.String(), "rows", rows)
	}

	return summary, nil
}
