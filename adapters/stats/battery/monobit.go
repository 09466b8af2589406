package battery

import (
	"context"
	"math"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/stats"
)

// MonobitTest is the frequency test. H0: the stream is an unbiased Bernoulli sequence.
type MonobitTest struct{}

// NewMonobitTest creates a new frequency test
func NewMonobitTest() *MonobitTest {
	return &MonobitTest{}
}

// Name returns the test name
func (t *MonobitTest) Name() stats.TestName {
	return stats.TestMonobit
}

// Description returns a human-readable description
func (t *MonobitTest) Description() string {
	return "Frequency (monobit) test of the proportion of ones and zeros"
}

// Run computes the p-value. With N == 0 there is no evidence for H0 and the
// p-value is reported as 0 with the statistic marked degenerate.
func (t *MonobitTest) Run(_ context.Context, bits bitstream.Bitstream) stats.TestStatistic {
	n := bits.Len()
	s := bits.Ones() - bits.Zeros()
	p, sObs := 0.0, 0.0
	if n > 0 {
		sObs = math.Abs(float64(s)) / math.Sqrt(float64(n))
		p = MonobitPValue(bits.Zeros(), bits.Ones())
	}
	return stats.TestStatistic{
		Name:       t.Name(),
		Label:      "FREQUENCY (MONOBIT) TEST",
		Value:      p,
		PValue:     stats.Float(p),
		SampleSize: n,
		Degenerate: n == 0,
		Details: []stats.Detail{
			{Key: "zeros", Value: float64(bits.Zeros())},
			{Key: "ones", Value: float64(bits.Ones())},
			{Key: "signed_sum", Value: float64(s)},
			{Key: "bias", Value: math.Abs(float64(s))},
			{Key: "s_obs", Value: sObs},
		},
	}
}

// MonobitPValue maps 0 to -1 and 1 to +1, sums to S, and returns
// erfc(|S|/sqrt(N) / sqrt(2)). It requires N > 0.
func MonobitPValue(zeros, ones int) float64 {
	n := zeros + ones
	s := float64(ones - zeros)
	sObs := math.Abs(s) / math.Sqrt(float64(n))
	return math.Erfc(sObs / math.Sqrt2)
}
