package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPValue(t *testing.T) {
	assert.Equal(t, Pass, ForPValue(1.0, 0.01))
	assert.Equal(t, Pass, ForPValue(0.01, 0.01), "boundary is inclusive")
	assert.Equal(t, Fail, ForPValue(0.0099, 0.01))
}

func TestForChiSquare(t *testing.T) {
	assert.Equal(t, Pass, ForChiSquare(0))
	assert.Equal(t, Pass, ForChiSquare(6.634))
	assert.Equal(t, Fail, ForChiSquare(6.635))
	assert.Equal(t, Fail, ForChiSquare(10))
}

func TestForCorrelation(t *testing.T) {
	tt := []struct {
		r   float64
		exp Verdict
	}{
		{0, Negligible},
		{0.0099, Negligible},
		{-0.0099, Negligible},
		{0.01, Low},
		{-0.049, Low},
		{0.05, High},
		{-1, High},
	}
	for _, tc := range tt {
		assert.Equal(t, tc.exp, ForCorrelation(tc.r), "r=%v", tc.r)
	}
}

func TestAcceptable(t *testing.T) {
	assert.True(t, Pass.Acceptable())
	assert.True(t, Low.Acceptable())
	assert.False(t, High.Acceptable())
	assert.False(t, Fail.Acceptable())
	assert.True(t, Pass.IsHypothesis())
	assert.False(t, Negligible.IsHypothesis())
}
