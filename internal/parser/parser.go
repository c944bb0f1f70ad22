// Package parser decodes dbGaP GetSampleStatus XML documents into
// study records.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed indicates a document that is not well-formed XML or is
// missing the expected Study/SampleList structure.
var ErrMalformed = errors.New("malformed sample status document")

// Parse decodes one study's raw document text. Per-sample decode
// problems do not fail the document; the affected samples are recorded
// in Study.Skipped and omitted from Study.Samples.
func Parse(data []byte) (*Study, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no Study element", ErrMalformed)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if start, ok := token.(xml.StartElement); ok && start.Name.Local == "Study" {
			return parseStudy(decoder, start)
		}
	}
}

func parseStudy(decoder *xml.Decoder, start xml.StartElement) (*Study, error) {
	study := &Study{}
	for _, attr := range start.Attr {
		if attr.Name.Local == "accession" {
			study.Accession = attr.Value
		}
	}

	sawSampleList := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "SampleList" {
				sawSampleList = true
				if err := parseSampleList(decoder, study); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "Study" {
				if !sawSampleList {
					return nil, fmt.Errorf("%w: Study %s has no SampleList element", ErrMalformed, study.Accession)
				}
				return study, nil
			}
		}
	}

	if !sawSampleList {
		return nil, fmt.Errorf("%w: Study %s has no SampleList element", ErrMalformed, study.Accession)
	}
	return study, nil
}

func parseSampleList(decoder *xml.Decoder, study *Study) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "Sample" {
				sample, err := parseSample(decoder, t)
				if err != nil {
					return err
				}
				if issue := checkSample(sample); issue != "" {
					study.Skipped = append(study.Skipped, SampleIssue{
						SampleID: sample.ID(),
						Reason:   issue,
					})
					continue
				}
				study.Samples = append(study.Samples, *sample)
			}
		case xml.EndElement:
			if t.Name.Local == "SampleList" {
				return nil
			}
		}
	}
}

// checkSample verifies the per-sample shape. Empty Uses and Stats lists
// are valid; a missing Uses or SRAData element is not.
func checkSample(s *Sample) string {
	if s.Uses == nil {
		return "missing Uses element"
	}
	if s.Stats == nil {
		return "missing SRAData element"
	}
	return ""
}

func parseSample(decoder *xml.Decoder, start xml.StartElement) (*Sample, error) {
	sample := &Sample{Attrs: make(map[string]string, len(start.Attr))}
	for _, attr := range start.Attr {
		sample.Attrs[attr.Name.Local] = attr.Value
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Uses":
				if err := parseUses(decoder, sample); err != nil {
					return nil, err
				}
			case "SRAData":
				if err := parseSRAData(decoder, sample); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "Sample" {
				return sample, nil
			}
		}
	}
}

func parseUses(decoder *xml.Decoder, sample *Sample) error {
	sample.Uses = []string{}
	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "Use" {
				text, err := parseText(decoder)
				if err != nil {
					return err
				}
				sample.Uses = append(sample.Uses, text)
			}
		case xml.EndElement:
			if t.Name.Local == "Uses" {
				return nil
			}
		}
	}
}

func parseSRAData(decoder *xml.Decoder, sample *Sample) error {
	sample.Stats = []StatBlock{}
	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "Stats" {
				block := StatBlock{Pairs: make([]StatPair, 0, len(t.Attr))}
				for _, attr := range t.Attr {
					block.Pairs = append(block.Pairs, StatPair{
						Name:  attr.Name.Local,
						Value: attr.Value,
					})
				}
				sample.Stats = append(sample.Stats, block)
			}
		case xml.EndElement:
			if t.Name.Local == "SRAData" {
				return nil
			}
		}
	}
}

func parseText(decoder *xml.Decoder) (string, error) {
	token, err := decoder.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if charData, ok := token.(xml.CharData); ok {
		return strings.TrimSpace(string(charData)), nil
	}
	return "", nil
}
