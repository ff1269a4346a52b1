package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/pkg/apperror"
	"github.com/sangkips/billing-console/pkg/logger"
	"github.com/sangkips/billing-console/pkg/printer"
)

// receiptCurrency replaces the display symbol, which thermal code pages lack.
const receiptCurrency = "Rs."

// InvoiceSource exposes the most recently generated invoice.
type InvoiceSource interface {
	LastInvoice() *entity.InvoiceSummary
}

// ReceiptOptions controls the printed layout.
type ReceiptOptions struct {
	Header   entity.ReceiptHeader
	Width    int
	Location *time.Location
}

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	invoices    InvoiceSource
	opts        ReceiptOptions
	printerType string
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	invoices InvoiceSource,
	opts ReceiptOptions,
	printerType string,
	log *zap.Logger,
) *PrinterService {
	if opts.Width <= 0 {
		opts.Width = printer.DefaultWidth
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		invoices:    invoices,
		opts:        opts,
		printerType: printerType,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.opts.Width,
	}
}

// PrintLastInvoice prints a receipt for the most recent invoice. The
// invoice is returned even when the printer fails so the caller can show it.
func (s *PrinterService) PrintLastInvoice(ctx context.Context) (*entity.InvoiceSummary, error) {
	summary := s.invoices.LastInvoice()
	if summary == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	data := FormatReceipt(summary, s.opts)
	if err := s.printer.Print(ctx, data); err != nil {
		s.log.With(logger.Fields(ctx)...).Warn("printer error",
			zap.Int64("purchase_id", summary.PurchaseID),
			zap.String("printer_type", s.printerType),
			zap.Error(err),
		)
		return summary, fmt.Errorf("failed to print receipt: %w", err)
	}
	return summary, nil
}

// FormatReceipt converts an invoice summary into ESC/POS bytes.
func FormatReceipt(summary *entity.InvoiceSummary, opts ReceiptOptions) []byte {
	doc := printer.NewDocument(opts.Width)

	// Header
	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(opts.Header.StoreName).
		Size(printer.SizeNormal).
		Bold(false)

	if opts.Header.Address != "" {
		doc.Wrap(opts.Header.Address)
	}
	if opts.Header.Phone != "" {
		doc.Line(opts.Header.Phone)
	}
	if opts.Header.TaxID != "" {
		doc.Linef("Tax ID: %s", opts.Header.TaxID)
	}

	doc.Align(printer.AlignLeft).
		Rule('-')

	doc.Pair("Purchase ID:", fmt.Sprintf("%d", summary.PurchaseID))
	if summary.CreatedAt != nil && !summary.CreatedAt.IsZero() {
		loc := opts.Location
		if loc == nil {
			loc = time.Local
		}
		doc.Pair("Date:", summary.CreatedAt.In(loc).Format("2006-01-02 15:04"))
	}
	if summary.CustomerEmail != "" {
		doc.Pair("Customer:", summary.CustomerEmail)
	}

	doc.Rule('-')

	// Items
	for _, line := range summary.Lines {
		name := line.ProductName
		if name == "" {
			name = line.ProductCode
		}
		doc.Wrap(name)
		doc.Pair(fmt.Sprintf("  %d x %s", line.Quantity, money(line.UnitPrice)), money(line.TotalPriceOfItem))
		doc.Linef("  Tax %s%%: %s", line.TaxPercentage, money(line.TaxPayableForItem))
	}

	doc.Rule('-')

	// Totals
	doc.Pair("Subtotal:", money(summary.TotalPriceWithoutTax)).
		Pair("Tax:", money(summary.TotalTaxPayable)).
		Pair("Net:", money(summary.NetPrice))
	doc.Bold(true).
		Pair("TOTAL:", money(summary.RoundedDownNetPrice)).
		Bold(false)
	doc.Pair("Paid:", money(summary.PaidAmount)).
		Pair("Change:", money(summary.BalancePayableToCustomer)).
		Pair("Remainder:", money(summary.ChangeRemainder))

	doc.Rule('-')

	doc.Wrap("Paid with: " + receiptDenominations(summary.PaymentDenomination))
	doc.Wrap("Change given: " + receiptDenominations(summary.BalanceDenomination))

	// Footer
	doc.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your purchase!").
		Align(printer.AlignLeft)

	doc.Feed(3).
		Cut(true)

	return doc.Bytes()
}

func money(a entity.Amount) string {
	return receiptCurrency + a.String()
}

func receiptDenominations(m entity.DenominationMap) string {
	if len(m) == 0 {
		return "None"
	}
	tags := make([]string, 0, len(m))
	for _, value := range m.Keys() {
		tags = append(tags, fmt.Sprintf("%s%d x %d", receiptCurrency, value, m[value]))
	}
	return strings.Join(tags, ", ")
}
