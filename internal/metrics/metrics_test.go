package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trngaudit/domain/report"
	"trngaudit/domain/stats"
	"trngaudit/domain/verdict"
)

func sampleReport(overall verdict.Verdict) *report.Report {
	return &report.Report{
		Metadata: report.Metadata{SampleSize: 1000},
		Entries: []report.Entry{
			{Statistic: stats.TestStatistic{Name: stats.TestShannonEntropy, Value: 0.99}},
			{Statistic: stats.TestStatistic{Name: stats.TestChiSquare, Value: 2.5}},
		},
		Summary: report.Summary{Overall: overall},
	}
}

func TestObserveReport(t *testing.T) {
	r := NewRegistry()
	r.ObserveReport(sampleReport(verdict.Pass), 20*time.Millisecond)
	r.ObserveReport(sampleReport(verdict.Pass), 20*time.Millisecond)
	r.ObserveReport(sampleReport(verdict.Fail), 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.auditsTotal.WithLabelValues("PASS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.auditsTotal.WithLabelValues("FAIL")))
	assert.Equal(t, 2.5, testutil.ToFloat64(r.statistic.WithLabelValues("chi_square")))

	count, err := testutil.GatherAndCount(r.Gatherer(), "trngaudit_audit_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestObserveReport_Nil(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() { r.ObserveReport(sampleReport(verdict.Pass), time.Second) })
	assert.NotPanics(t, func() { NewRegistry().ObserveReport(nil, time.Second) })
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.ObserveReport(sampleReport(verdict.Fail), time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `trngaudit_audits_total{overall="FAIL"} 1`))
	assert.Contains(t, body, "trngaudit_sample_size_bits_count 1")
}
