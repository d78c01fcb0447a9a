package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceDocument carries the fields rendered onto a commission invoice.
type InvoiceDocument struct {
	InvoiceID   string
	JobTitle    string
	Subject     string
	Location    string
	TeacherName string
	Salary      float64
	Amount      float64
	Status      string
	IssuedAt    string
}

// RenderInvoice produces a one-page PDF for a commission invoice.
func RenderInvoice(doc InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "TutorHubBD - Commission Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice: %s", doc.InvoiceID), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s", doc.IssuedAt), "", 1, "", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Job", doc.JobTitle},
		{"Subject", doc.Subject},
		{"Location", doc.Location},
		{"Hired Teacher", doc.TeacherName},
		{"Monthly Salary", fmt.Sprintf("%.2f", doc.Salary)},
		{"Commission Due", fmt.Sprintf("%.2f", doc.Amount)},
		{"Status", doc.Status},
	}

	pdf.SetFont("Arial", "B", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 8, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(120, 8, row[1], "1", 1, "", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Payment is due within 14 days of the hire date.", "", 1, "", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
