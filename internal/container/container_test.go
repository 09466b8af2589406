package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trngaudit/app"
	"trngaudit/domain/verdict"
	"trngaudit/internal/config"
	"trngaudit/internal/errors"
)

func TestNew_WithoutLedger(t *testing.T) {
	c, err := New(context.Background(), config.Default(), nil, Options{})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.DB)
	assert.Nil(t, c.Ledger)
	assert.Nil(t, c.Metrics)
	assert.False(t, c.AuditService.LedgerEnabled())

	path := filepath.Join(t.TempDir(), "s.txt")
	require.NoError(t, os.WriteFile(path, []byte("0101010101"), 0o644))
	res, err := c.AuditService.Audit(context.Background(), app.AuditRequest{
		Source: path, Alpha: verdict.DefaultAlpha, MinSamples: verdict.DefaultMinSamples,
	})
	require.NoError(t, err)
	assert.Equal(t, verdict.Fail, res.Report.Summary.Overall)
}

func TestNew_LedgerRequiresURL(t *testing.T) {
	_, err := New(context.Background(), config.Default(), nil, Options{Ledger: true})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestNew_WithLedgerAndMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Database = config.DatabaseConfig{Driver: "sqlite3", URL: ":memory:"}

	c, err := New(context.Background(), cfg, nil, Options{Ledger: true, Metrics: true})
	if err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	defer c.Close()

	assert.NotNil(t, c.DB)
	assert.NotNil(t, c.Metrics)
	assert.True(t, c.AuditService.LedgerEnabled())

	records, err := c.AuditService.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
