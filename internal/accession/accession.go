package accession

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformed indicates a string that does not follow the
	// phs<id>.v<version>.p<participant-set> grammar.
	ErrMalformed = errors.New("malformed study accession")

	// ErrNoPreviousVersion indicates a v1 accession, which has no older
	// version to fall back to.
	ErrNoPreviousVersion = errors.New("study has no previous version")
)

// StudyAccession identifies one version of a dbGaP study, e.g.
// "phs001143.v2.p1". It is immutable once parsed.
type StudyAccession struct {
	study          string
	version        int
	participantSet string
}

// Parse validates and decomposes a study accession string. The accession
// must have exactly three dot-separated segments, and the middle segment
// must be "v" followed by a positive integer.
func Parse(s string) (StudyAccession, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return StudyAccession{}, fmt.Errorf("%w: %q has %d dot-separated segments, want 3", ErrMalformed, s, len(parts))
	}

	if !strings.HasPrefix(parts[1], "v") {
		return StudyAccession{}, fmt.Errorf("%w: %q version segment %q does not start with 'v'", ErrMalformed, s, parts[1])
	}

	version, err := strconv.Atoi(parts[1][1:])
	if err != nil || version < 1 {
		return StudyAccession{}, fmt.Errorf("%w: %q version segment %q is not v<positive integer>", ErrMalformed, s, parts[1])
	}

	return StudyAccession{
		study:          parts[0],
		version:        version,
		participantSet: parts[2],
	}, nil
}

// String returns the full accession, e.g. "phs001143.v2.p1".
func (a StudyAccession) String() string {
	return fmt.Sprintf("%s.v%d.%s", a.study, a.version, a.participantSet)
}

// Study returns the base study identifier with version and participant
// set dropped, e.g. "phs001143".
func (a StudyAccession) Study() string {
	return a.study
}

// Version returns the version number from the v<N> segment.
func (a StudyAccession) Version() int {
	return a.version
}

// VersionPrefix returns the accession with the participant-set segment
// dropped, e.g. "phs001143.v2".
func (a StudyAccession) VersionPrefix() string {
	return fmt.Sprintf("%s.v%d", a.study, a.version)
}

// PreviousVersion returns the accession one version older, keeping the
// participant-set segment unchanged. A v1 accession returns
// ErrNoPreviousVersion.
func (a StudyAccession) PreviousVersion() (StudyAccession, error) {
	if a.version <= 1 {
		return StudyAccession{}, fmt.Errorf("%w: %s", ErrNoPreviousVersion, a)
	}

	prev := a
	prev.version--
	return prev, nil
}
