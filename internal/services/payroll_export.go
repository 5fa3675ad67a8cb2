package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportMonthlyXLSX renders a saved monthly report as an XLSX workbook.
func (s *PayrollService) ExportMonthlyXLSX(ctx context.Context, month string, year int) (*bytes.Buffer, error) {
	report, err := s.GetMonthly(ctx, month, year)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Username", "Position", "Salary", "Bonus", "Deductions", "Net Pay"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, entry := range report.Entries {
		values := []any{entry.Username, entry.Position, entry.Salary, entry.Bonus, entry.Deductions, entry.NetPay}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	summaryRow := len(report.Entries) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s %d", report.Month, report.Year))
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", summaryRow), report.TotalPayroll)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, serverError()
	}
	return buf, nil
}
