// Package report renders saved calculations as a printable Strategy Report
// workbook.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/gpcalc/internal/history"
	"github.com/Simplici0/gpcalc/internal/pricing"
)

const (
	SheetName = "Strategy Report"
	Title     = "STRATEGY REPORT"
	Issuer    = "Whole Hospitality"

	// ContentType is the MIME type of the rendered workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	issuedLayout = "02 Jan 2006 15:04"
)

type styles struct {
	title, product, label, value, recommended, footer int
}

// Write renders entries in the order given, one block per entry.
func Write(w io.Writer, entries []history.Entry, issued time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	sw := sheetWriter{f: f, row: 1}
	sw.cell("A", Title, st.title)
	sw.cell("B", Issuer, st.label)
	sw.next()
	sw.cell("B", "Issued: "+issued.Format(issuedLayout), st.label)
	sw.next()
	sw.next()

	for _, entry := range entries {
		sw.cell("A", "PRODUCT: "+strings.ToUpper(entry.Product), st.product)
		if sw.err == nil {
			sw.err = f.MergeCell(SheetName, fmt.Sprintf("A%d", sw.row), fmt.Sprintf("B%d", sw.row))
		}
		sw.next()
		for _, d := range entry.Details {
			valueStyle := st.value
			if pricing.IsRecommended(d.Label) {
				valueStyle = st.recommended
			}
			sw.cell("A", d.Label+":", st.label)
			sw.cell("B", d.Value, valueStyle)
			sw.next()
		}
		sw.next()
	}

	sw.cell("A", fmt.Sprintf("© %d %s | Professional Backend Solutions", issued.Year(), Issuer), st.footer)
	if sw.err != nil {
		return fmt.Errorf("write report cells: %w", sw.err)
	}

	if err := f.SetColWidth(SheetName, "A", "A", 34); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 20}}},
		{&st.product, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 13},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F1F5F9"}},
		}},
		{&st.label, &excelize.Style{Font: &excelize.Font{Color: "64748B"}}},
		{&st.value, &excelize.Style{Font: &excelize.Font{Color: "1E293B"}}},
		{&st.recommended, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "000000"}}},
		{&st.footer, &excelize.Style{Font: &excelize.Font{Size: 8, Color: "94A3B8"}}},
	}
	for _, d := range defs {
		if *d.dst, err = f.NewStyle(d.style); err != nil {
			return styles{}, fmt.Errorf("create style: %w", err)
		}
	}
	return st, nil
}

// sheetWriter keeps the first error so a block of cells can be written
// without checking each call.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (s *sheetWriter) cell(col, value string, style int) {
	if s.err != nil {
		return
	}
	axis := fmt.Sprintf("%s%d", col, s.row)
	if s.err = s.f.SetCellValue(SheetName, axis, value); s.err != nil {
		return
	}
	s.err = s.f.SetCellStyle(SheetName, axis, axis, style)
}

func (s *sheetWriter) next() { s.row++ }
