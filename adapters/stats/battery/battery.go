// Package battery implements the statistical tests run over a bitstream and the
// engine that runs them side by side.
package battery

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/stats"
	"trngaudit/domain/verdict"
	"trngaudit/ports"
)

var tracer = otel.Tracer("trngaudit.battery")

// Engine runs every registered test over the same immutable bitstream
type Engine struct {
	tests []ports.StatisticalTest
}

// NewEngine creates an engine with the standard four-test battery
func NewEngine() *Engine {
	return NewEngineAt(verdict.DefaultAlpha)
}

// NewEngineAt creates the standard battery with the chi-squared quantile
// reported at 1-alpha
func NewEngineAt(alpha float64) *Engine {
	return NewEngineWith(
		NewEntropyTest(),
		NewMonobitTest(),
		NewChiSquareTestAt(alpha),
		NewSerialCorrelationTest(),
	)
}

// NewEngineWith creates an engine over an explicit set of tests
func NewEngineWith(tests ...ports.StatisticalTest) *Engine {
	return &Engine{tests: tests}
}

// RunAll runs every test concurrently and returns results in registration order.
// Tests only read the shared stream, so the only synchronization is the join.
func (e *Engine) RunAll(ctx context.Context, bits bitstream.Bitstream) ([]stats.TestStatistic, error) {
	ctx, span := tracer.Start(ctx, "battery.RunAll")
	defer span.End()
	span.SetAttributes(attribute.Int("sample_size", bits.Len()), attribute.Int("tests", len(e.tests)))

	results := make([]stats.TestStatistic, len(e.tests))
	g, gctx := errgroup.WithContext(ctx)
	for i, test := range e.tests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tctx, tspan := tracer.Start(gctx, "battery."+string(test.Name()),
				trace.WithSpanKind(trace.SpanKindInternal))
			defer tspan.End()

			results[i] = test.Run(tctx, bits)
			tspan.SetAttributes(
				attribute.Float64("value", results[i].Value),
				attribute.Bool("degenerate", results[i].Degenerate),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("battery interrupted: %w", err)
	}
	return results, nil
}

// RunSingle runs a specific test by name
func (e *Engine) RunSingle(ctx context.Context, name stats.TestName, bits bitstream.Bitstream) (stats.TestStatistic, bool) {
	for _, test := range e.tests {
		if test.Name() == name {
			return test.Run(ctx, bits), true
		}
	}
	return stats.TestStatistic{}, false
}

// ListTests returns all registered test names in order
func (e *Engine) ListTests() []stats.TestName {
	names := make([]stats.TestName, len(e.tests))
	for i, test := range e.tests {
		names[i] = test.Name()
	}
	return names
}

var _ ports.BatteryPort = (*Engine)(nil)
