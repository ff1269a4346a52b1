package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/billing-console/internal/domain/entity"
)

const (
	// NoDenominations marks an empty or absent denomination map.
	NoDenominations = "None"
	// NoHistory is shown when a customer has no recorded purchases.
	NoHistory = "No purchases recorded for this email yet."

	timestampLayout = "1/2/2006, 3:04:05 PM"
)

// Options controls presentation details that do not depend on the invoice.
type Options struct {
	CurrencySymbol  string
	InvoiceViewPath string
	Location        *time.Location
}

// Renderer maps invoice summaries and purchase history to display views.
// It holds no state besides its options; every method is a pure function of
// its arguments.
type Renderer struct {
	opts Options
}

// NewRenderer fills in defaults for unset options.
func NewRenderer(opts Options) *Renderer {
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "₹"
	}
	if opts.InvoiceViewPath == "" {
		opts.InvoiceViewPath = "/invoice/"
	}
	if !strings.HasSuffix(opts.InvoiceViewPath, "/") {
		opts.InvoiceViewPath += "/"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Renderer{opts: opts}
}

// SummaryView is the display form of an invoice summary. RenderSummary(nil)
// returns a view with Empty set, which clears the invoice panel.
type SummaryView struct {
	Empty       bool                `json:"empty"`
	PurchaseID  int64               `json:"purchase_id,omitempty"`
	Heading     string              `json:"heading,omitempty"`
	InvoiceLink string              `json:"invoice_link,omitempty"`
	Lines       []LineView          `json:"lines,omitempty"`
	Totals      []TotalCell         `json:"totals,omitempty"`
	Payment     DenominationListing `json:"payment_denominations"`
	Change      DenominationListing `json:"change_denominations"`
}

// LineView carries the eight invoice line fields verbatim.
type LineView struct {
	ProductCode       string `json:"product_code"`
	ProductName       string `json:"product_name"`
	UnitPrice         string `json:"unit_price"`
	Quantity          string `json:"quantity"`
	TaxPercentage     string `json:"tax_percentage"`
	PurchasePrice     string `json:"purchase_price"`
	TaxPayableForItem string `json:"tax_payable_for_item"`
	TotalPriceOfItem  string `json:"total_price_of_item"`
}

type TotalCell struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DenominationListing is a set of "value × count" tags, or the None marker.
type DenominationListing struct {
	Label string   `json:"label"`
	Tags  []string `json:"tags,omitempty"`
	None  bool     `json:"none"`
}

// Text returns the tags joined by spaces, or the None marker.
func (l DenominationListing) Text() string {
	if l.None {
		return NoDenominations
	}
	return strings.Join(l.Tags, " ")
}

// RenderSummary builds the invoice view. A nil summary yields an empty view.
func (r *Renderer) RenderSummary(summary *entity.InvoiceSummary) SummaryView {
	if summary == nil {
		return SummaryView{Empty: true}
	}

	view := SummaryView{
		PurchaseID:  summary.PurchaseID,
		Heading:     fmt.Sprintf("Purchase ID: %d", summary.PurchaseID),
		InvoiceLink: r.InvoiceLink(summary.PurchaseID),
		Lines:       make([]LineView, 0, len(summary.Lines)),
	}

	for _, line := range summary.Lines {
		view.Lines = append(view.Lines, LineView{
			ProductCode:       line.ProductCode,
			ProductName:       line.ProductName,
			UnitPrice:         line.UnitPrice.String(),
			Quantity:          strconv.Itoa(line.Quantity),
			TaxPercentage:     line.TaxPercentage.String(),
			PurchasePrice:     line.PurchasePrice.String(),
			TaxPayableForItem: line.TaxPayableForItem.String(),
			TotalPriceOfItem:  line.TotalPriceOfItem.String(),
		})
	}

	view.Totals = []TotalCell{
		{Label: "Subtotal", Value: r.money(summary.TotalPriceWithoutTax)},
		{Label: "Total Tax", Value: r.money(summary.TotalTaxPayable)},
		{Label: "Net Price", Value: r.money(summary.NetPrice)},
		{Label: "Rounded Total", Value: r.money(summary.RoundedDownNetPrice)},
		{Label: "Paid", Value: r.money(summary.PaidAmount)},
		{
			Label: "Change Due",
			Value: fmt.Sprintf("%s (Remainder: %s)", r.money(summary.BalancePayableToCustomer), r.money(summary.ChangeRemainder)),
		},
	}

	view.Payment = r.denominations("Payment Denominations", summary.PaymentDenomination)
	view.Change = r.denominations("Change Denominations", summary.BalanceDenomination)
	return view
}

// HistoryView is the display form of a purchase history lookup.
type HistoryView struct {
	Empty       bool               `json:"empty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Entries     []HistoryEntryView `json:"entries,omitempty"`
}

type HistoryEntryView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Timestamp   string `json:"timestamp"`
	GrandTotal  string `json:"grand_total"`
	InvoiceLink string `json:"invoice_link"`
}

// RenderHistory builds the history view, keeping the service's order.
func (r *Renderer) RenderHistory(entries []entity.PurchaseHistoryEntry) HistoryView {
	if len(entries) == 0 {
		return HistoryView{Empty: true, Placeholder: NoHistory}
	}
	view := HistoryView{Entries: make([]HistoryEntryView, 0, len(entries))}
	for _, entry := range entries {
		view.Entries = append(view.Entries, HistoryEntryView{
			ID:          entry.ID,
			Title:       fmt.Sprintf("Purchase #%d", entry.ID),
			Timestamp:   r.timestamp(entry.CreatedAt),
			GrandTotal:  r.money(entry.GrandTotal),
			InvoiceLink: r.InvoiceLink(entry.ID),
		})
	}
	return view
}

// InvoiceLink is the printable view path for a purchase.
func (r *Renderer) InvoiceLink(purchaseID int64) string {
	return r.opts.InvoiceViewPath + strconv.FormatInt(purchaseID, 10)
}

func (r *Renderer) money(a entity.Amount) string {
	return r.opts.CurrencySymbol + a.String()
}

func (r *Renderer) timestamp(ts entity.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(r.opts.Location).Format(timestampLayout)
}

func (r *Renderer) denominations(label string, m entity.DenominationMap) DenominationListing {
	listing := DenominationListing{Label: label}
	if len(m) == 0 {
		listing.None = true
		return listing
	}
	for _, value := range m.Keys() {
		listing.Tags = append(listing.Tags, fmt.Sprintf("%s%d × %d", r.opts.CurrencySymbol, value, m[value]))
	}
	return listing
}
