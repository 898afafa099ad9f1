// Package export serializes tabular result sets into CSV, spreadsheet and
// PDF payloads. It carries no business logic; callers hand it a Table with
// an explicit column order and it writes bytes.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Table is a uniform list of flat records: an ordered header plus rows of
// typed cells. Supported cell types: string, int, int64, float64,
// decimal.Decimal and time.Time.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// formatCell renders a cell for the text-based sinks. Currency decimals are
// rounded to two places here, at the display boundary only.
func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case decimal.Decimal:
		return value.StringFixed(2)
	case time.Time:
		return value.Format("2006-01-02 15:04")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// WriteCSV serializes the table as CSV. An empty table emits the header row
// only; a table with no columns emits nothing. Never fails on empty input.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if len(t.Columns) > 0 {
		if err := cw.Write(t.Columns); err != nil {
			return err
		}
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCell(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteExcel serializes the table as an xlsx workbook with a bold, filled
// header row.
func WriteExcel(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	if len(t.Columns) > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, excelCellValue(v)); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// excelCellValue keeps numeric cells numeric in the spreadsheet.
func excelCellValue(v any) any {
	switch value := v.(type) {
	case decimal.Decimal:
		f, _ := value.Round(2).Float64()
		return f
	case time.Time:
		return value.Format("2006-01-02 15:04")
	default:
		return v
	}
}

// WritePDF serializes the table as a landscape A4 PDF with a title heading,
// a filled header row and alternating body shading. Pagination is handled by
// the document's automatic page breaks.
func WritePDF(w io.Writer, t Table) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if t.Title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	if len(t.Columns) == 0 {
		return pdf.Output(w)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Columns))

	// Header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range t.Columns {
		pdf.CellFormat(colWidth, 8, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Body rows with alternating shading
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range t.Rows {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(240, 240, 240)
		}
		for c := range t.Columns {
			text := ""
			if c < len(row) {
				text = formatCell(row[c])
			}
			pdf.CellFormat(colWidth, 7, tr(text), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
