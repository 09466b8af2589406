package battery

import (
	"context"
	"math"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/stats"
)

// EntropyTest measures Shannon entropy in bits per symbol
type EntropyTest struct{}

// NewEntropyTest creates a new entropy test
func NewEntropyTest() *EntropyTest {
	return &EntropyTest{}
}

// Name returns the test name
func (t *EntropyTest) Name() stats.TestName {
	return stats.TestShannonEntropy
}

// Description returns a human-readable description
func (t *EntropyTest) Description() string {
	return "Shannon entropy (information density)"
}

// Run computes entropy; the value doubles as efficiency against the 1.0 bit maximum
func (t *EntropyTest) Run(_ context.Context, bits bitstream.Bitstream) stats.TestStatistic {
	h := ShannonEntropy(bits.Zeros(), bits.Ones())
	return stats.TestStatistic{
		Name:       t.Name(),
		Label:      "SHANNON ENTROPY (Information Density)",
		Value:      h,
		SampleSize: bits.Len(),
		Degenerate: bits.IsEmpty(),
		Details: []stats.Detail{
			{Key: "theoretical_max", Value: 1.0},
			{Key: "efficiency_pct", Value: h * 100},
		},
	}
}

// ShannonEntropy returns -p0*log2(p0) - p1*log2(p1), skipping zero-probability
// terms. An empty sample has entropy 0.
func ShannonEntropy(zeros, ones int) float64 {
	n := zeros + ones
	if n == 0 {
		return 0.0
	}
	entropy := 0.0
	for _, count := range [2]int{zeros, ones} {
		if count > 0 {
			p := float64(count) / float64(n)
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}
