package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spherical/legal-analyzer/internal/domain"
)

const (
	summarySheet = "Summary"
	clausesSheet = "Clauses"
)

// XLSXRenderer writes a workbook with a summary sheet and one row per clause.
type XLSXRenderer struct{}

// NewXLSXRenderer creates an XLSX renderer.
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Render(w io.Writer, res *domain.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("xlsx rename sheet: %w", err)
	}
	if _, err := f.NewSheet(clausesSheet); err != nil {
		return fmt.Errorf("xlsx new sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	agreement, confidence := "", ""
	if at := res.AgreementType; at != nil {
		agreement = at.Type
		confidence = formatConfidence(at.Confidence)
	}
	summary := [][2]string{
		{"Document", res.Document},
		{"Agreement Type", agreement},
		{"Confidence", confidence},
		{"Clauses", fmt.Sprintf("%d", len(res.Clauses))},
	}
	for i, kv := range summary {
		_ = f.SetCellValue(summarySheet, cellName(1, i+1), kv[0])
		_ = f.SetCellValue(summarySheet, cellName(2, i+1), kv[1])
	}
	_ = f.SetCellStyle(summarySheet, "A1", cellName(1, len(summary)), bold)
	_ = f.SetColWidth(summarySheet, "A", "A", 18)
	_ = f.SetColWidth(summarySheet, "B", "B", 60)

	headers := []string{"Clause", "Easy English", "Easy Urdu"}
	for i, h := range headers {
		_ = f.SetCellValue(clausesSheet, cellName(i+1, 1), h)
	}
	_ = f.SetCellStyle(clausesSheet, "A1", "C1", bold)

	row := 2
	for _, c := range res.Clauses {
		_ = f.SetCellValue(clausesSheet, cellName(1, row), c.Name)
		_ = f.SetCellValue(clausesSheet, cellName(2, row), c.EasyEnglish)
		_ = f.SetCellValue(clausesSheet, cellName(3, row), c.EasyUrdu)
		row++
	}
	if row > 2 {
		_ = f.SetCellStyle(clausesSheet, "A2", cellName(3, row-1), wrap)
	}

	_ = f.SetColWidth(clausesSheet, "A", "A", 18)
	_ = f.SetColWidth(clausesSheet, "B", "C", 60)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
