package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"

	"trngaudit/domain/core"
	"trngaudit/domain/report"
	"trngaudit/domain/stats"
	"trngaudit/internal/errors"
	"trngaudit/ports"
)

const defaultListLimit = 20

// AuditRepository implements ports.LedgerPort over sqlx
type AuditRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewAuditRepository creates a new audit ledger repository
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db, now: time.Now}
}

// RecordAudit appends one row summarizing the report
func (r *AuditRepository) RecordAudit(ctx context.Context, rep *report.Report) (*ports.AuditRecord, error) {
	record := NewAuditRecord(rep, r.now())

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO audits (
			id, fingerprint, source, sample_size, alpha, entropy,
			monobit_p_value, monobit_verdict, chi_square, chi_square_verdict,
			serial_correlation, serial_verdict, overall, created_at
		) VALUES (
			:id, :fingerprint, :source, :sample_size, :alpha, :entropy,
			:monobit_p_value, :monobit_verdict, :chi_square, :chi_square_verdict,
			:serial_correlation, :serial_verdict, :overall, :created_at
		)
	`, record)
	if err != nil {
		return nil, errors.DatabaseError("failed to record audit", err)
	}
	return record, nil
}

// ListAudits returns the most recent audits first
func (r *AuditRepository) ListAudits(ctx context.Context, limit int) ([]ports.AuditRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	records := []ports.AuditRecord{}
	err := r.db.SelectContext(ctx, &records, r.db.Rebind(`
		SELECT id, fingerprint, source, sample_size, alpha, entropy,
		       monobit_p_value, monobit_verdict, chi_square, chi_square_verdict,
		       serial_correlation, serial_verdict, overall, created_at
		FROM audits
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list audits", err)
	}
	return records, nil
}

// GetAudit retrieves one audit by ID
func (r *AuditRepository) GetAudit(ctx context.Context, id core.AuditID) (*ports.AuditRecord, error) {
	var record ports.AuditRecord
	err := r.db.GetContext(ctx, &record, r.db.Rebind(`
		SELECT id, fingerprint, source, sample_size, alpha, entropy,
		       monobit_p_value, monobit_verdict, chi_square, chi_square_verdict,
		       serial_correlation, serial_verdict, overall, created_at
		FROM audits
		WHERE id = ?
	`), id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, &errors.AppError{
				Code:    errors.CodeNotFound,
				Message: "audit " + id.String() + " not found",
				Cause:   core.ErrAuditNotFound,
			}
		}
		return nil, errors.DatabaseError("failed to get audit", err)
	}
	return &record, nil
}

// NewAuditRecord flattens a report into its ledger row
func NewAuditRecord(rep *report.Report, at time.Time) *ports.AuditRecord {
	record := &ports.AuditRecord{
		ID:          core.NewAuditID(),
		Fingerprint: rep.Metadata.Fingerprint.String(),
		Source:      rep.Metadata.Source,
		SampleSize:  rep.Metadata.SampleSize,
		Alpha:       rep.Metadata.Alpha,
		Overall:     string(rep.Summary.Overall),
		CreatedAt:   at.UTC().Truncate(time.Microsecond),
	}

	for _, e := range rep.Entries {
		switch e.Statistic.Name {
		case stats.TestShannonEntropy:
			record.Entropy = e.Statistic.Value
		case stats.TestMonobit:
			record.MonobitPValue = e.Statistic.P()
			record.MonobitVerdict = string(e.Verdict)
		case stats.TestChiSquare:
			record.ChiSquare = e.Statistic.Value
			record.ChiSquareVerdict = string(e.Verdict)
		case stats.TestSerialCorrelation:
			record.SerialCorrelation = e.Statistic.Value
			record.SerialVerdict = string(e.Verdict)
		}
	}
	return record
}

var _ ports.LedgerPort = (*AuditRepository)(nil)
