// Package report turns battery results into a Report and renders it. Synthesis
// holds all decision logic; rendering only formats.
package report

import (
	"fmt"
	"strings"

	"trngaudit/domain/bitstream"
	domain "trngaudit/domain/report"
	"trngaudit/domain/stats"
	"trngaudit/domain/verdict"
)

// Options carries the run settings that affect decisions
type Options struct {
	Source     string
	Alpha      float64
	MinSamples int
}

// DefaultOptions uses alpha = 0.01 and a 1000-sample confidence floor
func DefaultOptions(source string) Options {
	return Options{Source: source, Alpha: verdict.DefaultAlpha, MinSamples: verdict.DefaultMinSamples}
}

// Synthesize pairs each statistic with its verdict and closes the report with a
// summary. Statistics are kept in the order given.
func Synthesize(opts Options, bits bitstream.Bitstream, results []stats.TestStatistic) *domain.Report {
	r := &domain.Report{
		Metadata: domain.Metadata{
			Source:      opts.Source,
			SampleSize:  bits.Len(),
			Zeros:       bits.Zeros(),
			Ones:        bits.Ones(),
			Alpha:       opts.Alpha,
			MinSamples:  opts.MinSamples,
			Fingerprint: bits.Fingerprint(),
			Transitions: bits.Transitions(),
		},
		Entries: make([]domain.Entry, 0, len(results)),
	}

	if bits.Len() < opts.MinSamples {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"Sample size insufficient for statistical significance (N=%d < %d).", bits.Len(), opts.MinSamples))
	}

	for _, stat := range results {
		v := decide(stat, opts.Alpha)
		r.Entries = append(r.Entries, domain.Entry{
			Statistic:  stat,
			Verdict:    v,
			Conclusion: conclude(stat, v, opts.Alpha),
		})
		if stat.Degenerate {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"%s: degenerate input (N=%d), value reported as %.1f.", stat.Name, stat.SampleSize, stat.Value))
		}
	}

	r.Summary = summarize(r.Entries)
	return r
}

// decide applies the fixed thresholds. Degenerate hypothesis tests FAIL: with no
// data there is no evidence for H0.
func decide(stat stats.TestStatistic, alpha float64) verdict.Verdict {
	switch stat.Name {
	case stats.TestShannonEntropy:
		return verdict.None
	case stats.TestMonobit:
		if stat.Degenerate {
			return verdict.Fail
		}
		return verdict.ForPValue(stat.P(), alpha)
	case stats.TestChiSquare:
		if stat.Degenerate {
			return verdict.Fail
		}
		return verdict.ForChiSquare(stat.Value)
	case stats.TestSerialCorrelation:
		return verdict.ForCorrelation(stat.Value)
	default:
		if stat.HasPValue() {
			return verdict.ForPValue(stat.P(), alpha)
		}
		return verdict.None
	}
}

func conclude(stat stats.TestStatistic, v verdict.Verdict, alpha float64) string {
	switch stat.Name {
	case stats.TestShannonEntropy:
		return fmt.Sprintf("INFORMATIONAL (Efficiency %.6f%%)", stat.Value*100)
	case stats.TestMonobit:
		switch {
		case stat.Degenerate:
			return "FAIL (No samples - H0 cannot be evaluated)"
		case v == verdict.Pass:
			return fmt.Sprintf("PASS (Fail to Reject H0 at alpha=%g)", alpha)
		default:
			return "FAIL (Reject H0 - Evidence of Bias)"
		}
	case stats.TestChiSquare:
		switch {
		case stat.Degenerate:
			return "FAIL (No samples - uniformity cannot be evaluated)"
		case v == verdict.Pass:
			return "PASS (Consistent with Uniform Distribution)"
		default:
			return "FAIL (Deviates from Uniformity)"
		}
	case stats.TestSerialCorrelation:
		var text string
		switch v {
		case verdict.Negligible:
			text = "NEGLIGIBLE (Independent Samples)"
		case verdict.Low:
			text = "LOW (Minor Dependencies Detected)"
		default:
			text = "HIGH (Significant Auto-Correlation Detected)"
		}
		if stat.Degenerate {
			text += " [degenerate input, not meaningful]"
		}
		return text
	default:
		if v == verdict.None {
			return "INFORMATIONAL"
		}
		return string(v)
	}
}

func summarize(entries []domain.Entry) domain.Summary {
	var s domain.Summary
	var failed []string
	for _, e := range entries {
		if e.Verdict == verdict.None {
			continue
		}
		if e.Verdict.Acceptable() {
			s.Passed++
		} else {
			s.Failed++
			failed = append(failed, string(e.Statistic.Name))
		}
	}

	total := s.Passed + s.Failed
	if s.Failed == 0 {
		s.Overall = verdict.Pass
		s.Text = fmt.Sprintf("All %d decision tests are consistent with an unbiased, independent source.", total)
	} else {
		s.Overall = verdict.Fail
		s.Text = fmt.Sprintf("%d of %d decision tests indicate non-random behaviour: %s.",
			s.Failed, total, strings.Join(failed, ", "))
	}
	return s
}
