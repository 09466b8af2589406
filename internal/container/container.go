// Package container wires the audit pipeline from a validated configuration.
package container

import (
	"context"

	"github.com/jmoiron/sqlx"

	"trngaudit/adapters/postgres"
	"trngaudit/adapters/sample"
	"trngaudit/adapters/stats/battery"
	"trngaudit/app"
	"trngaudit/internal"
	"trngaudit/internal/config"
	"trngaudit/internal/errors"
	"trngaudit/internal/metrics"
	"trngaudit/ports"
)

// Options selects the optional infrastructure
type Options struct {
	Ledger  bool // connect to the database and migrate it
	Metrics bool // create a Prometheus registry
}

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config config.Config
	Logger *internal.Logger

	// Infrastructure
	DB      *sqlx.DB
	Metrics *metrics.Registry

	// Pipeline
	Loader       ports.SampleLoader
	Battery      ports.BatteryPort
	Ledger       ports.LedgerPort
	AuditService *app.AuditService
}

// New creates a container. The database is only opened when opts.Ledger is set.
func New(ctx context.Context, cfg config.Config, logger *internal.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = internal.NopLogger()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Loader:  sample.NewFileLoader(logger),
		Battery: battery.NewEngineAt(cfg.Alpha),
	}

	if opts.Ledger {
		if err := c.initLedger(ctx); err != nil {
			return nil, err
		}
	}
	if opts.Metrics {
		c.Metrics = metrics.NewRegistry()
	}

	c.AuditService = app.NewAuditService(c.Loader, c.Battery, c.Ledger, c.Metrics, logger)
	return c, nil
}

// initLedger opens the database and the audit repository on top of it
func (c *Container) initLedger(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		return errors.ConfigInvalid("the audit ledger requires AUDIT_DATABASE_URL")
	}

	db, err := postgres.Open(ctx, c.Config.Database, c.Logger)
	if err != nil {
		return err
	}
	c.DB = db
	c.Ledger = postgres.NewAuditRepository(db)
	c.Logger.Debug("audit ledger ready (%s)", c.Config.Database.Driver)
	return nil
}

// Close releases the database connection, if any
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	if err := c.DB.Close(); err != nil {
		return errors.DatabaseError("failed to close ledger database", err)
	}
	return nil
}
