package parser

// Study is one parsed GetSampleStatus document: the accession the
// registry resolved the request to, plus its samples in document order.
type Study struct {
	Accession string
	Samples   []Sample
	Skipped   []SampleIssue
}

// Sample is one Sample element: its attributes, the text values of its
// Uses list, and its SRAData statistics blocks.
type Sample struct {
	Attrs map[string]string
	Uses  []string
	Stats []StatBlock
}

// StatBlock is one Stats element. Pairs keeps the attribute order of the
// source document, which the flattened rendering depends on.
type StatBlock struct {
	Pairs []StatPair
}

// StatPair is a single statistic name/value from a Stats element.
type StatPair struct {
	Name  string
	Value string
}

// SampleIssue records a sample that could not be decoded and was dropped
// from the study. The rest of the study is still usable.
type SampleIssue struct {
	SampleID string
	Reason   string
}

// ID returns the sample's submitted_sample_id, or "" when absent.
func (s Sample) ID() string {
	return s.Attrs["submitted_sample_id"]
}
