package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/payslip"
)

// RenderPayslip renders a payslip document and returns the PDF bytes. The
// caller decides where the bytes live; nothing is written to disk here.
func RenderPayslip(p payslip.Payslip, employeeName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(40, 10, "Payslip")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		p.PeriodStart.Format("2006-01-02"), p.PeriodEnd.Format("2006-01-02")))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Hours: %.1f total, %.1f overtime", p.TotalHours, p.OvertimeHours))
	doc.Ln(10)

	doc.Cell(0, 8, fmt.Sprintf("Gross Pay: %s", p.GrossPay.StringFixed(2)))
	doc.Ln(7)
	for _, d := range p.Deductions {
		doc.Cell(0, 8, fmt.Sprintf("%s: -%s", d.Type, d.Amount.StringFixed(2)))
		doc.Ln(7)
	}
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, fmt.Sprintf("Net Pay: %s", p.NetPay.StringFixed(2)))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
