package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"pizzeria/models"
	"pizzeria/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatExcel = "excel"
	FormatPDF   = "pdf"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Export is a rendered report file.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type metricRow struct {
	label string
	value string
}

// formatCLP renders whole pesos with dot thousands separators.
func formatCLP(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

func metricRows(r *models.MonthlyReport) []metricRow {
	return []metricRow{
		{"Total Eventos", fmt.Sprintf("%d", r.TotalEvents)},
		{"Ingresos Totales", formatCLP(r.TotalIncome)},
		{"Gastos Totales", formatCLP(r.TotalExpenses)},
		{"Utilidad Total", formatCLP(r.TotalProfit)},
		{"Promedio Participantes", fmt.Sprintf("%.1f", r.AvgParticipants)},
		{"Servicio Más Popular", r.MostPopularService},
		{"Tasa Retención Clientes", fmt.Sprintf("%.2f%%", r.ClientRetentionRate)},
	}
}

// ExportMonthly renders the monthly report as an Excel workbook or a PDF.
func (s *Service) ExportMonthly(ctx context.Context, year, month int, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatExcel
	}
	if format != FormatExcel && format != FormatPDF {
		return nil, utils.NewValidationError("format", "unsupported format, use excel or pdf")
	}
	r, err := s.Monthly(ctx, year, month)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("reporte_mensual_%d_%02d", year, month)
	if format == FormatPDF {
		data, err := renderPDF(r)
		if err != nil {
			return nil, err
		}
		return &Export{Filename: base + ".pdf", ContentType: contentTypePDF, Data: data}, nil
	}
	data, err := renderExcel(r)
	if err != nil {
		return nil, err
	}
	return &Export{Filename: base + ".xlsx", ContentType: contentTypeXLSX, Data: data}, nil
}

func renderExcel(r *models.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%s %d", MonthName(r.Month), r.Year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C0392B"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	cells := [][]any{{"Métrica", "Valor"}}
	for _, row := range metricRows(r) {
		cells = append(cells, []any{row.label, row.value})
	}
	for i, row := range cells {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", header); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "B", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPDF(r *models.MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Reporte Mensual - %s %d", MonthName(r.Month), r.Year)))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(192, 57, 43)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(90, 8, tr("Métrica"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, "Valor", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range metricRows(r) {
		pdf.CellFormat(90, 8, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, tr(row.value), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
