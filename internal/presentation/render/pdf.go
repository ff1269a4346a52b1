package render

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// The PDF core fonts are cp1252; symbols outside it are spelled out.
const pdfCurrency = "Rs."

var lineColumns = []struct {
	title string
	width float64
}{
	{"Code", 22}, {"Name", 44}, {"Unit", 20}, {"Qty", 12},
	{"Tax %", 16}, {"Subtotal", 24}, {"Tax", 20}, {"Total", 24},
}

// SummaryPDF writes a printable A4 copy of an invoice view.
func (r *Renderer) SummaryPDF(view SummaryView, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, r.opts.CurrencySymbol, pdfCurrency))
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Invoice Summary", "", 1, "L", false, 0, "")

	if view.Empty {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, "No invoice generated yet.", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, text(view.Heading), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for _, col := range lineColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range view.Lines {
		cells := []string{
			line.ProductCode, line.ProductName, line.UnitPrice, line.Quantity,
			line.TaxPercentage, line.PurchasePrice, line.TaxPayableForItem, line.TotalPriceOfItem,
		}
		for i, cell := range cells {
			pdf.CellFormat(lineColumns[i].width, 7, text(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	for _, total := range view.Totals {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, total.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, text(total.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, listing := range []DenominationListing{view.Payment, view.Change} {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 7, listing.Label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, text(listing.Text()), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
