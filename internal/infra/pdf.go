package infra

// pdf.go — sales report export using go-pdf/fpdf.
// Renders an A4 report with one row per sale item, grouped by sale, plus a
// grand total. The output file is saved to storagePath/sales_{start}_{end}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateSalesReportPDF writes the PDF for the given period and returns the
// absolute path to the generated file. storagePath is created if needed.
func GenerateSalesReportPDF(sales []model.Sale, start, end time.Time, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("sales_%s_%s.pdf", start.Format("2006-01-02"), end.Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	period := fmt.Sprintf("%s to %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	pdf.CellFormat(contentW, 6, period, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	colDate := contentW * 0.16
	colItem := contentW * 0.34
	colQty := contentW * 0.10
	colPay := contentW * 0.14
	colSub := contentW * 0.26

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(colDate, 6, "Date", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colItem, 6, "Item", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, "Qty", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colPay, 6, "Payment", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colSub, 6, "Subtotal", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
	}
	writeHeader()

	grandTotal := decimal.Zero
	for _, sale := range sales {
		grandTotal = grandTotal.Add(sale.Total)
		for _, item := range sale.Items {
			if pdf.GetY() > 270 {
				pdf.AddPage()
				writeHeader()
			}
			name := item.ProductName + " " + item.VariationName
			// Truncate by runes, not bytes: names may carry accented characters.
			if runes := []rune(name); len(runes) > 38 {
				name = string(runes[:35]) + "..."
			}
			pdf.CellFormat(colDate, 5, sale.CreatedAt.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(colItem, 5, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(colQty, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
			pdf.CellFormat(colPay, 5, sale.PaymentMethod, "", 0, "L", false, 0, "")
			pdf.CellFormat(colSub, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(3)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colDate+colItem+colQty+colPay, 7, fmt.Sprintf("TOTAL (%d sales):", len(sales)), "", 0, "L", false, 0, "")
	pdf.CellFormat(colSub, 7, "$"+grandTotal.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
