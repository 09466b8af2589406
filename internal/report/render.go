package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	domain "trngaudit/domain/report"
	"trngaudit/domain/stats"
	"trngaudit/internal/errors"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unknown report format %q", s))
	}
}

// Render writes r in the requested format. Output carries no timestamps, so the
// same input always renders to the same bytes.
func Render(w io.Writer, r *domain.Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		bw := bufio.NewWriter(w)
		renderText(bw, r)
		return bw.Flush()
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
	}
}

const (
	heavyRule = "============================================================"
	lightRule = "------------------------------------------------------------"
)

func renderText(w io.Writer, r *domain.Report) {
	md := r.Metadata
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "   STOCHASTIC SIGNAL ANALYSIS REPORT: ENTROPY SOURCE AUDIT")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "[DATA] Source: %s\n", md.Source)
	fmt.Fprintf(w, "[DATA] Total Samples (N): %s bits\n", humanize.Comma(int64(md.SampleSize)))
	fmt.Fprintf(w, "[DATA] Fingerprint: %s\n", md.Fingerprint)
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "[WARNING] %s\n", warning)
	}

	for i, e := range r.Entries {
		fmt.Fprintln(w, lightRule)
		fmt.Fprintf(w, "TEST %d: %s\n", i+1, e.Statistic.Label)
		renderEntry(w, md, e)
	}

	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "OVERALL: %s (%d passed, %d failed)\n", r.Summary.Overall, r.Summary.Passed, r.Summary.Failed)
	fmt.Fprintf(w, "   %s\n", r.Summary.Text)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "END OF REPORT")
}

func renderEntry(w io.Writer, md domain.Metadata, e domain.Entry) {
	s := e.Statistic
	switch s.Name {
	case stats.TestShannonEntropy:
		ceiling, _ := s.Detail("theoretical_max")
		eff, _ := s.Detail("efficiency_pct")
		line(w, "Theoretical Max", fmt.Sprintf("%.8f", ceiling))
		line(w, "Calculated", fmt.Sprintf("%.8f", s.Value))
		line(w, "Efficiency", fmt.Sprintf("%.6f%%", eff))
	case stats.TestMonobit:
		bias, _ := s.Detail("bias")
		line(w, "Null Hypothesis (H0)", "Distribution is uniform.")
		line(w, "Zero Count", fmt.Sprintf("%s (%.4f%%)", humanize.Comma(int64(md.Zeros)), percent(md.Zeros, md.SampleSize)))
		line(w, "One Count", fmt.Sprintf("%s (%.4f%%)", humanize.Comma(int64(md.Ones)), percent(md.Ones, md.SampleSize)))
		line(w, "Delta (Bias)", fmt.Sprintf("%s bits", humanize.Comma(int64(bias))))
		line(w, "P-Value", fmt.Sprintf("%.6f", s.P()))
	case stats.TestChiSquare:
		crit, _ := s.Detail("critical_value")
		line(w, "Chi^2 Statistic", fmt.Sprintf("%.4f", s.Value))
		line(w, "Critical Value", fmt.Sprintf("%.3f (alpha=0.01, 1 d.f.)", crit))
		if q, ok := s.Detail("quantile_at_alpha"); ok {
			alpha, _ := s.Detail("alpha")
			line(w, "Exact Quantile", fmt.Sprintf("%.4f (1-alpha, alpha=%g)", q, alpha))
		}
		line(w, "P-Value", fmt.Sprintf("%.6f", s.P()))
	case stats.TestSerialCorrelation:
		t := md.Transitions
		line(w, "Objective", "Detect periodic patterns or mains interference.")
		line(w, "Coefficient (r)", fmt.Sprintf("%.6f", s.Value))
		line(w, "Lag-1 Pairs", fmt.Sprintf("00=%s 01=%s 10=%s 11=%s",
			humanize.Comma(int64(t.ZeroZero)), humanize.Comma(int64(t.ZeroOne)),
			humanize.Comma(int64(t.OneZero)), humanize.Comma(int64(t.OneOne))))
	default:
		line(w, "Value", fmt.Sprintf("%.6f", s.Value))
		if s.HasPValue() {
			line(w, "P-Value", fmt.Sprintf("%.6f", s.P()))
		}
		for _, d := range s.Details {
			line(w, d.Key, fmt.Sprintf("%g", d.Value))
		}
	}
	line(w, "Conclusion", e.Conclusion)
}

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "   > %-21s %s\n", label+":", value)
}

func percent(count, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(count) / float64(n) * 100
}
