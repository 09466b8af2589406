package stats

// TestName identifies a statistic in the battery
type TestName string

const (
	TestShannonEntropy    TestName = "shannon_entropy"
	TestMonobit           TestName = "monobit"
	TestChiSquare         TestName = "chi_square"
	TestSerialCorrelation TestName = "serial_correlation"
)

// Detail is an ordered key/value annotation attached to a statistic. A slice is
// used instead of a map so rendering is stable.
type Detail struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// TestStatistic is the immutable result of one test over one sample
// INVARIANTS:
// - SampleSize equals the N of the bitstream the test ran over
// - Value and PValue are finite; degenerate inputs yield 0.0 with Degenerate set
type TestStatistic struct {
	Name       TestName `json:"name" yaml:"name"`
	Label      string   `json:"label" yaml:"label"`
	Value      float64  `json:"value" yaml:"value"`
	PValue     *float64 `json:"p_value,omitempty" yaml:"p_value,omitempty"`
	SampleSize int      `json:"sample_size" yaml:"sample_size"`
	Degenerate bool     `json:"degenerate" yaml:"degenerate"`
	Details    []Detail `json:"details,omitempty" yaml:"details,omitempty"`
}

// Detail returns the named annotation
func (s TestStatistic) Detail(key string) (float64, bool) {
	for _, d := range s.Details {
		if d.Key == key {
			return d.Value, true
		}
	}
	return 0, false
}

// HasPValue reports whether the statistic carries a p-value
func (s TestStatistic) HasPValue() bool {
	return s.PValue != nil
}

// P returns the p-value or 0 when none was computed
func (s TestStatistic) P() float64 {
	if s.PValue == nil {
		return 0
	}
	return *s.PValue
}

// Float returns a pointer to v, for optional fields
func Float(v float64) *float64 {
	return &v
}
