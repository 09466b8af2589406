package ports

import (
	"context"
	"time"

	"trngaudit/domain/core"
	"trngaudit/domain/report"
)

// AuditRecord is the persisted summary of one audit
type AuditRecord struct {
	ID                core.AuditID `db:"id" json:"id"`
	Fingerprint       string       `db:"fingerprint" json:"fingerprint"`
	Source            string       `db:"source" json:"source"`
	SampleSize        int          `db:"sample_size" json:"sample_size"`
	Alpha             float64      `db:"alpha" json:"alpha"`
	Entropy           float64      `db:"entropy" json:"entropy"`
	MonobitPValue     float64      `db:"monobit_p_value" json:"monobit_p_value"`
	MonobitVerdict    string       `db:"monobit_verdict" json:"monobit_verdict"`
	ChiSquare         float64      `db:"chi_square" json:"chi_square"`
	ChiSquareVerdict  string       `db:"chi_square_verdict" json:"chi_square_verdict"`
	SerialCorrelation float64      `db:"serial_correlation" json:"serial_correlation"`
	SerialVerdict     string       `db:"serial_verdict" json:"serial_verdict"`
	Overall           string       `db:"overall" json:"overall"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
}

// LedgerWriterPort provides append-only write access to audit records
type LedgerWriterPort interface {
	RecordAudit(ctx context.Context, r *report.Report) (*AuditRecord, error)
}

// LedgerReaderPort provides read-only access to recorded audits
type LedgerReaderPort interface {
	ListAudits(ctx context.Context, limit int) ([]AuditRecord, error)
	GetAudit(ctx context.Context, id core.AuditID) (*AuditRecord, error)
}

// LedgerPort combines read and write access
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}
