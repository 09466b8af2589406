package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/core"
	"trngaudit/domain/report"
	"trngaudit/internal"
	"trngaudit/internal/errors"
	"trngaudit/internal/metrics"
	synth "trngaudit/internal/report"
	"trngaudit/ports"
)

// ErrLedgerDisabled is returned by ledger operations when no database is configured
var ErrLedgerDisabled = stderrors.New("audit ledger is not configured")

// AuditService runs the load -> battery -> synthesis pipeline
type AuditService struct {
	loader  ports.SampleLoader
	battery ports.BatteryPort
	ledger  ports.LedgerPort
	metrics *metrics.Registry
	logger  *internal.Logger
}

// AuditRequest describes one audit
type AuditRequest struct {
	Source     string
	Alpha      float64
	MinSamples int
	Record     bool
}

// AuditResult is the outcome of one audit. Record is set when the audit was
// written to the ledger.
type AuditResult struct {
	Report   *report.Report
	Record   *ports.AuditRecord
	Duration time.Duration
}

// NewAuditService creates an audit service. ledger and registry may be nil.
func NewAuditService(loader ports.SampleLoader, battery ports.BatteryPort, ledger ports.LedgerPort, registry *metrics.Registry, logger *internal.Logger) *AuditService {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &AuditService{
		loader:  loader,
		battery: battery,
		ledger:  ledger,
		metrics: registry,
		logger:  logger,
	}
}

// LedgerEnabled reports whether audits can be recorded
func (s *AuditService) LedgerEnabled() bool {
	return s.ledger != nil
}

// Audit loads req.Source and audits it. A missing source aborts before any
// statistic is computed.
func (s *AuditService) Audit(ctx context.Context, req AuditRequest) (*AuditResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	bits, err := s.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded %d bits from %s", bits.Len(), req.Source)

	return s.audit(ctx, req, bits, start)
}

// AuditBitstream audits an already materialized sample
func (s *AuditService) AuditBitstream(ctx context.Context, req AuditRequest, bits bitstream.Bitstream) (*AuditResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.audit(ctx, req, bits, time.Now())
}

func (s *AuditService) audit(ctx context.Context, req AuditRequest, bits bitstream.Bitstream, start time.Time) (*AuditResult, error) {
	ctx, span := otel.Tracer("trngaudit/app").Start(ctx, "AuditService.audit")
	defer span.End()
	span.SetAttributes(
		attribute.String("audit.source", req.Source),
		attribute.Int("audit.sample_size", bits.Len()),
	)

	results, err := s.battery.RunAll(ctx, bits)
	if err != nil {
		return nil, errors.Wrap(err, "battery execution failed")
	}

	rep := synth.Synthesize(synth.Options{
		Source:     req.Source,
		Alpha:      req.Alpha,
		MinSamples: req.MinSamples,
	}, bits, results)

	result := &AuditResult{Report: rep, Duration: time.Since(start)}
	span.SetAttributes(attribute.String("audit.overall", string(rep.Summary.Overall)))
	s.metrics.ObserveReport(rep, result.Duration)

	for _, w := range rep.Warnings {
		s.logger.Warn("%s", w)
	}
	s.logger.Info("audit of %s complete: %s (%d passed, %d failed) in %s",
		req.Source, rep.Summary.Overall, rep.Summary.Passed, rep.Summary.Failed, result.Duration)

	if req.Record {
		if s.ledger == nil {
			return result, ErrLedgerDisabled
		}
		record, err := s.ledger.RecordAudit(ctx, rep)
		if err != nil {
			return result, errors.Wrap(err, "failed to record audit")
		}
		result.Record = record
		s.logger.Info("recorded audit %s", record.ID)
	}

	return result, nil
}

// History lists recorded audits, newest first
func (s *AuditService) History(ctx context.Context, limit int) ([]ports.AuditRecord, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	return s.ledger.ListAudits(ctx, limit)
}

// GetAudit returns one recorded audit
func (s *AuditService) GetAudit(ctx context.Context, id core.AuditID) (*ports.AuditRecord, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	return s.ledger.GetAudit(ctx, id)
}

func validateRequest(req AuditRequest) error {
	if req.Alpha <= 0 || req.Alpha >= 1 {
		return &errors.AppError{
			Code:    errors.CodeInvalidInput,
			Message: fmt.Sprintf("invalid alpha %g", req.Alpha),
			Cause:   core.ErrInvalidAlpha,
		}
	}
	if req.MinSamples < 1 {
		return errors.InvalidInput(fmt.Sprintf("min samples must be >= 1, got %d", req.MinSamples))
	}
	return nil
}
