package verdict

// Verdict is the outcome assigned to one statistic
type Verdict string

const (
	// Hypothesis-style tests
	Pass Verdict = "PASS"
	Fail Verdict = "FAIL"

	// Magnitude bands for serial correlation
	Negligible Verdict = "NEGLIGIBLE"
	Low        Verdict = "LOW"
	High       Verdict = "HIGH"

	// Entropy carries no verdict, only an efficiency interpretation
	None Verdict = "NONE"
)

// Thresholds fixed by the test definitions
const (
	// ChiSquareCritical is the 1 d.f. critical value at alpha = 0.01
	ChiSquareCritical = 6.635

	// Serial correlation bands on |r|
	NegligibleCorrelation = 0.01
	LowCorrelation        = 0.05

	DefaultAlpha      = 0.01
	DefaultMinSamples = 1000
)

// IsHypothesis reports whether v is a PASS/FAIL outcome
func (v Verdict) IsHypothesis() bool {
	return v == Pass || v == Fail
}

// Acceptable reports whether v counts toward an overall PASS
func (v Verdict) Acceptable() bool {
	switch v {
	case Pass, Negligible, Low, None:
		return true
	default:
		return false
	}
}

func (v Verdict) String() string {
	return string(v)
}

// ForPValue is PASS iff p >= alpha (fail to reject H0)
func ForPValue(p, alpha float64) Verdict {
	if p >= alpha {
		return Pass
	}
	return Fail
}

// ForChiSquare is PASS iff chi2 is below the 1 d.f. critical value
func ForChiSquare(chi2 float64) Verdict {
	if chi2 < ChiSquareCritical {
		return Pass
	}
	return Fail
}

// ForCorrelation bands |r|
func ForCorrelation(r float64) Verdict {
	abs := r
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < NegligibleCorrelation:
		return Negligible
	case abs < LowCorrelation:
		return Low
	default:
		return High
	}
}
