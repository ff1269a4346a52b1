package service

import "github.com/sangkips/billing-console/internal/domain/entity"

// LineItemSource yields validated line items.
type LineItemSource interface {
	Snapshot() ([]entity.LineItem, error)
}

// DenominationSource yields a validated cash breakdown for a paid amount.
type DenominationSource interface {
	Snapshot(paidInput string) (entity.DenominationPayment, error)
}

// BuildBillingRequest assembles a billing request from the two collectors.
// Line items are read first; the first failure is returned as-is.
func BuildBillingRequest(email string, items LineItemSource, denominations DenominationSource, paidInput string) (*entity.BillingRequest, error) {
	lineItems, err := items.Snapshot()
	if err != nil {
		return nil, err
	}
	payment, err := denominations.Snapshot(paidInput)
	if err != nil {
		return nil, err
	}
	return &entity.BillingRequest{
		CustomerEmail: email,
		Items:         lineItems,
		Denominations: payment,
	}, nil
}
