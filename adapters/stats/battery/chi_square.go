package battery

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/stats"
	"trngaudit/domain/verdict"
)

// ChiSquareTest is Pearson's goodness-of-fit test against a uniform split, 1 d.f.
type ChiSquareTest struct {
	dist  distuv.ChiSquared
	alpha float64
}

// NewChiSquareTest creates a chi-squared uniformity test at the default alpha
func NewChiSquareTest() *ChiSquareTest {
	return NewChiSquareTestAt(verdict.DefaultAlpha)
}

// NewChiSquareTestAt creates a chi-squared test whose reported quantile is taken
// at 1-alpha. The verdict still uses the fixed critical value.
func NewChiSquareTestAt(alpha float64) *ChiSquareTest {
	return &ChiSquareTest{dist: distuv.ChiSquared{K: 1}, alpha: alpha}
}

// Name returns the test name
func (t *ChiSquareTest) Name() stats.TestName {
	return stats.TestChiSquare
}

// Description returns a human-readable description
func (t *ChiSquareTest) Description() string {
	return "Pearson's chi-squared test for uniformity (1 degree of freedom)"
}

// Run computes chi2 and its survival p-value. The decision uses the fixed
// critical value; the p-value is informational.
func (t *ChiSquareTest) Run(_ context.Context, bits bitstream.Bitstream) stats.TestStatistic {
	n := bits.Len()
	chi2 := ChiSquare(bits.Zeros(), bits.Ones())
	p := 0.0
	if n > 0 {
		p = t.dist.Survival(chi2)
	}
	return stats.TestStatistic{
		Name:       t.Name(),
		Label:      "PEARSON'S CHI-SQUARED TEST",
		Value:      chi2,
		PValue:     stats.Float(p),
		SampleSize: n,
		Degenerate: n == 0,
		Details: []stats.Detail{
			{Key: "critical_value", Value: verdict.ChiSquareCritical},
			{Key: "degrees_of_freedom", Value: 1},
			{Key: "expected", Value: float64(n) / 2},
			{Key: "alpha", Value: t.alpha},
			{Key: "quantile_at_alpha", Value: CriticalValue(t.alpha)},
		},
	}
}

// ChiSquare sums (observed-expected)^2/expected over both symbols with
// expected = N/2. An empty sample yields 0.
func ChiSquare(zeros, ones int) float64 {
	n := zeros + ones
	if n == 0 {
		return 0.0
	}
	expected := float64(n) / 2
	chi2 := 0.0
	for _, observed := range [2]int{zeros, ones} {
		chi2 += math.Pow(float64(observed)-expected, 2) / expected
	}
	return chi2
}

// CriticalValue returns the exact 1 d.f. chi-squared quantile at 1-alpha
func CriticalValue(alpha float64) float64 {
	return distuv.ChiSquared{K: 1}.Quantile(1 - alpha)
}
