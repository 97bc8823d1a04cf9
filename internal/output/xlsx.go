package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/davetashner/tally/internal/dashboard"
)

func init() {
	RegisterFormatter(NewXLSXFormatter())
}

// Workbook sheet names.
const (
	SheetSummary = "Summary"
	SheetDetail  = "Detail"
)

// XLSXFormatter writes the dashboard as an Excel workbook with a Summary
// sheet (tiles, points per day, distribution) and a Detail sheet.
type XLSXFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*XLSXFormatter)(nil)

// NewXLSXFormatter returns a new XLSXFormatter.
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Name returns the format name.
func (x *XLSXFormatter) Name() string {
	return "xlsx"
}

// MediaType returns the MIME type of an xlsx workbook.
func (x *XLSXFormatter) MediaType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Format writes the workbook to w.
func (x *XLSXFormatter) Format(v *dashboard.View, w io.Writer) error {
	if v == nil {
		return fmt.Errorf("nil dashboard view")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetDetail); err != nil {
		return fmt.Errorf("create sheet %s: %w", SheetDetail, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: SheetSummary, bold: bold}
	sw.header(v.Title)
	sw.skip()
	for _, t := range v.Tiles {
		sw.row(t.Label, t.Value)
	}
	sw.skip()
	sw.header("Basis", "Pending Points", "Points per Day", "Points per Person per Day")
	for _, r := range v.Summary {
		sw.row(r.Basis, r.PendingPoints, r.PointsPerDay, r.PointsPerPersonPerDay)
	}
	sw.skip()
	sw.header("Status", "Points", "Share %")
	for i, s := range v.Pie.Slices {
		sw.row(s.Label, s.Value, v.Pie.Share(i))
	}
	if sw.err != nil {
		return sw.err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	dw := &sheetWriter{f: f, sheet: SheetDetail, bold: bold}
	dw.header("City", "Points", "Completed")
	for _, r := range v.Details {
		dw.row(r.City, r.Points, yesNo(r.Completed))
	}
	if dw.err != nil {
		return dw.err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// sheetWriter appends rows to a sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	bold  int
	next  int
	err   error
}

func (s *sheetWriter) row(values ...any) {
	s.next++
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		s.err = fmt.Errorf("cell name: %w", err)
		return
	}
	if err := s.f.SetSheetRow(s.sheet, cell, &values); err != nil {
		s.err = fmt.Errorf("write %s row %d: %w", s.sheet, s.next, err)
	}
}

func (s *sheetWriter) header(labels ...string) {
	values := make([]any, len(labels))
	for i, l := range labels {
		values[i] = l
	}
	s.row(values...)
	if s.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, s.next)
	last, _ := excelize.CoordinatesToCellName(len(labels), s.next)
	if err := s.f.SetCellStyle(s.sheet, first, last, s.bold); err != nil {
		s.err = fmt.Errorf("style %s row %d: %w", s.sheet, s.next, err)
	}
}

func (s *sheetWriter) skip() {
	s.next++
}
