package ports

import (
	"context"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/stats"
)

// StatisticalTest computes one statistic over a read-only bitstream. Implementations
// must not retain or mutate shared state, so any number of tests can run over the
// same stream concurrently.
type StatisticalTest interface {
	Name() stats.TestName
	Description() string
	Run(ctx context.Context, bits bitstream.Bitstream) stats.TestStatistic
}

// BatteryPort runs a set of statistical tests and returns results in registration order
type BatteryPort interface {
	RunAll(ctx context.Context, bits bitstream.Bitstream) ([]stats.TestStatistic, error)
	ListTests() []stats.TestName
}
