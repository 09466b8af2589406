// Package report defines the audit report produced once per audit invocation.
package report

import (
	"trngaudit/domain/bitstream"
	"trngaudit/domain/core"
	"trngaudit/domain/stats"
	"trngaudit/domain/verdict"
)

// Metadata describes the run that produced the report
type Metadata struct {
	Source      string                 `json:"source" yaml:"source"`
	SampleSize  int                    `json:"sample_size" yaml:"sample_size"`
	Zeros       int                    `json:"zeros" yaml:"zeros"`
	Ones        int                    `json:"ones" yaml:"ones"`
	Alpha       float64                `json:"alpha" yaml:"alpha"`
	MinSamples  int                    `json:"min_samples" yaml:"min_samples"`
	Fingerprint core.SampleFingerprint `json:"fingerprint" yaml:"fingerprint"`
	Transitions bitstream.Transitions  `json:"transitions" yaml:"transitions"`
}

// Entry pairs a statistic with its verdict
type Entry struct {
	Statistic  stats.TestStatistic `json:"statistic" yaml:"statistic"`
	Verdict    verdict.Verdict     `json:"verdict" yaml:"verdict"`
	Conclusion string              `json:"conclusion" yaml:"conclusion"`
}

// Summary closes the report
type Summary struct {
	Overall verdict.Verdict `json:"overall" yaml:"overall"`
	Passed  int             `json:"passed" yaml:"passed"`
	Failed  int             `json:"failed" yaml:"failed"`
	Text    string          `json:"text" yaml:"text"`
}

// Report is built once by the synthesizer and never mutated afterwards
type Report struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Entries  []Entry  `json:"entries" yaml:"entries"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Summary  Summary  `json:"summary" yaml:"summary"`
}

// Entry returns the entry for the named test
func (r *Report) Entry(name stats.TestName) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Statistic.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// LowConfidence reports whether the sample was below the warning threshold
func (r *Report) LowConfidence() bool {
	return r.Metadata.SampleSize < r.Metadata.MinSamples
}
