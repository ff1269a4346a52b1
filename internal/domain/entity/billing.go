package entity

// BillingRequest is the payload submitted to the billing service.
type BillingRequest struct {
	CustomerEmail string              `json:"customer_email"`
	Items         []LineItem          `json:"items" validate:"required,min=1,dive"`
	Denominations DenominationPayment `json:"denominations"`
}

// InvoiceLine is one priced line of an invoice summary.
type InvoiceLine struct {
	ProductCode       string `json:"product_code" validate:"required"`
	ProductName       string `json:"product_name"`
	UnitPrice         Amount `json:"unit_price" validate:"required"`
	Quantity          int    `json:"quantity" validate:"gte=1"`
	TaxPercentage     Amount `json:"tax_percentage" validate:"required"`
	PurchasePrice     Amount `json:"purchase_price" validate:"required"`
	TaxPayableForItem Amount `json:"tax_payable_for_item" validate:"required"`
	TotalPriceOfItem  Amount `json:"total_price_of_item" validate:"required"`
}

// InvoiceSummary is the priced, taxed and change-reconciled result of a bill.
// The client renders it as-is and never checks its arithmetic.
type InvoiceSummary struct {
	PurchaseID               int64           `json:"purchase_id" validate:"required"`
	CustomerEmail            string          `json:"customer_email,omitempty"`
	CreatedAt                *Timestamp      `json:"created_at,omitempty"`
	Lines                    []InvoiceLine   `json:"lines" validate:"dive"`
	TotalPriceWithoutTax     Amount          `json:"total_price_without_tax" validate:"required"`
	TotalTaxPayable          Amount          `json:"total_tax_payable" validate:"required"`
	NetPrice                 Amount          `json:"net_price" validate:"required"`
	RoundedDownNetPrice      Amount          `json:"rounded_down_net_price" validate:"required"`
	PaidAmount               Amount          `json:"paid_amount" validate:"required"`
	BalancePayableToCustomer Amount          `json:"balance_payable_to_customer" validate:"required"`
	ChangeRemainder          Amount          `json:"change_remainder" validate:"required"`
	PaymentDenomination      DenominationMap `json:"payment_denomination"`
	BalanceDenomination      DenominationMap `json:"balance_denomination"`
}

// PurchaseHistoryEntry is one row of a customer's purchase history.
type PurchaseHistoryEntry struct {
	ID         int64     `json:"id" validate:"required"`
	CreatedAt  Timestamp `json:"created_at"`
	GrandTotal Amount    `json:"grand_total" validate:"required"`
}
