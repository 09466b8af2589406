// Package excel exports audit reports as xlsx workbooks.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"trngaudit/domain/report"
	"trngaudit/internal/errors"
)

// SheetName is the only sheet in an exported workbook
const SheetName = "Report"

// Exporter writes one report per workbook
type Exporter struct{}

// NewExporter creates a new xlsx exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes r to path. Layout: metadata rows, a header row, one row per
// test, warnings, then the summary.
func (e *Exporter) Export(r *report.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "failed to name report sheet")
	}

	rows := buildRows(r)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "invalid cell coordinates")
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}
	if err := f.SetColWidth(SheetName, "B", "F", 18); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}

// Header labels the per-test rows
var Header = []interface{}{"Test", "Value", "P-Value", "Verdict", "Degenerate", "Conclusion"}

func buildRows(r *report.Report) [][]interface{} {
	md := r.Metadata
	rows := [][]interface{}{
		{"Source", md.Source},
		{"Fingerprint", md.Fingerprint.String()},
		{"Sample Size (N)", md.SampleSize},
		{"Zeros", md.Zeros},
		{"Ones", md.Ones},
		{"Alpha", md.Alpha},
		{},
		Header,
	}

	for _, entry := range r.Entries {
		var p interface{} = ""
		if entry.Statistic.HasPValue() {
			p = entry.Statistic.P()
		}
		rows = append(rows, []interface{}{
			string(entry.Statistic.Name),
			entry.Statistic.Value,
			p,
			string(entry.Verdict),
			entry.Statistic.Degenerate,
			entry.Conclusion,
		})
	}

	rows = append(rows, []interface{}{})
	for _, warning := range r.Warnings {
		rows = append(rows, []interface{}{"Warning", warning})
	}
	rows = append(rows,
		[]interface{}{"Overall", string(r.Summary.Overall)},
		[]interface{}{"Summary", fmt.Sprintf("%d passed, %d failed. %s", r.Summary.Passed, r.Summary.Failed, r.Summary.Text)},
	)
	return rows
}
